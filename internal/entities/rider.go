package entities

import (
	"time"
)

type Rider struct {
	ID            string
	Name          string
	Phone         string
	Status        RiderStatusType
	TransportType RiderTransportType
	LastSeenAt    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RiderTransportType string

const (
	OnFoot  RiderTransportType = "on_foot"
	Bicycle RiderTransportType = "bicycle"
	Scooter RiderTransportType = "scooter"
	Car     RiderTransportType = "car"
)

const DefaultTransportType = OnFoot

func (t RiderTransportType) String() string {
	return string(t)
}

type RiderStatusType string

const (
	RiderAvailable RiderStatusType = "available"
	RiderBusy      RiderStatusType = "busy"
	RiderPaused    RiderStatusType = "paused"
)

const DefaultStatusType = RiderPaused

func (t RiderStatusType) String() string {
	return string(t)
}

type RiderModify struct {
	ID            *string
	Name          *string
	Phone         *string
	Status        *RiderStatusType
	TransportType *RiderTransportType
	LastSeenAt    *time.Time
}

// RiderEventType тип события присутствия курьера из топика rider.status.changed.
type RiderEventType string

const (
	RiderWentOnline  RiderEventType = "online"
	RiderHeartbeat   RiderEventType = "heartbeat"
	RiderWentOffline RiderEventType = "offline"
	RiderTookOrder   RiderEventType = "busy"
)

func (t RiderEventType) String() string {
	return string(t)
}

type RiderStatusEvent struct {
	RiderID    string
	Type       RiderEventType
	OccurredAt time.Time
}
