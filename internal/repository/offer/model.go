package offer

import "time"

// OfferDB строка offers, вложенные структуры хранятся в jsonb.
type OfferDB struct {
	ID                 string
	BusinessID         string
	RiderID            *string
	Status             string
	Description        string
	PackageSize        string
	Price              int64
	Currency           string
	PickupCodeRequired bool
	Pickup             []byte
	Delivery           []byte
	Timeline           []byte
	Payment            []byte
	Dispute            []byte
	Cancellation       []byte
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OfferDeltaDB nil в полях означает "не менять колонку".
type OfferDeltaDB struct {
	Status       string
	RiderID      *string
	Pickup       []byte
	Delivery     []byte
	Payment      []byte
	Dispute      []byte
	Cancellation []byte
	TimelineAdd  []byte
	UpdatedAt    time.Time
}

type HistoryDB struct {
	OfferID   string
	Seq       int64
	Status    string
	UpdatedBy string
	Notes     *string
	Location  []byte
	CreatedAt time.Time
}
