package rider

import "time"

type RiderDB struct {
	ID            string
	Name          string
	Phone         string
	Status        string
	TransportType string
	LastSeenAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RiderModifyDB struct {
	ID            *string
	Name          *string
	Phone         *string
	Status        *string
	TransportType *string
	LastSeenAt    *time.Time
}
