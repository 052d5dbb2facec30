package entities

import "time"

type OfferStatusType string

const (
	OfferCreated   OfferStatusType = "created"
	OfferAccepted  OfferStatusType = "accepted"
	OfferPickedUp  OfferStatusType = "picked_up"
	OfferDelivered OfferStatusType = "delivered"
	OfferCompleted OfferStatusType = "completed"
	OfferCancelled OfferStatusType = "cancelled"
	OfferDisputed  OfferStatusType = "disputed"
)

func (s OfferStatusType) String() string {
	return string(s)
}

// IsTerminal: из completed, cancelled и disputed переходов нет.
func (s OfferStatusType) IsTerminal() bool {
	switch s {
	case OfferCompleted, OfferCancelled, OfferDisputed:
		return true
	default:
		return false
	}
}

func (s OfferStatusType) IsKnown() bool {
	switch s {
	case OfferCreated, OfferAccepted, OfferPickedUp, OfferDelivered,
		OfferCompleted, OfferCancelled, OfferDisputed:
		return true
	default:
		return false
	}
}

type PackageSizeType string

const (
	PackageSmall  PackageSizeType = "small"
	PackageMedium PackageSizeType = "medium"
	PackageLarge  PackageSizeType = "large"
)

func (p PackageSizeType) String() string {
	return string(p)
}

// Location координаты уже провалидированы внешней стороной, тут только диапазоны.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Leg одно плечо доставки (забор или вручение).
type Leg struct {
	Address          string     `json:"address"`
	PlannedLocation  Location   `json:"planned_location"`
	ActualTime       *time.Time `json:"actual_time,omitempty"`
	ActualLocation   *Location  `json:"actual_location,omitempty"`
	ConfirmationCode *string    `json:"confirmation_code,omitempty"`
	PhotoURL         *string    `json:"photo_url,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

type StatusHistoryEntry struct {
	Status    OfferStatusType `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	UpdatedBy string          `json:"updated_by"`
	Notes     *string         `json:"notes,omitempty"`
	Location  *Location       `json:"location,omitempty"`
}

// Milestone ключи Timeline.
type Milestone string

const (
	MilestoneCreated   Milestone = "createdAt"
	MilestoneAccepted  Milestone = "acceptedAt"
	MilestonePickedUp  Milestone = "pickedUpAt"
	MilestoneDelivered Milestone = "deliveredAt"
	MilestoneCompleted Milestone = "completedAt"
	MilestoneCancelled Milestone = "cancelledAt"
	MilestoneDisputed  Milestone = "disputedAt"
)

type Payment struct {
	Reference    *string `json:"reference,omitempty"`
	Waived       bool    `json:"waived"`
	WaivedBy     *string `json:"waived_by,omitempty"`
	WaiverReason *string `json:"waiver_reason,omitempty"`
}

type Dispute struct {
	Reason   string `json:"reason"`
	OpenedBy string `json:"opened_by"`
}

type Cancellation struct {
	Reason      *string `json:"reason,omitempty"`
	CancelledBy string  `json:"cancelled_by"`
}

type Offer struct {
	ID                 string
	BusinessID         string
	RiderID            *string
	Status             OfferStatusType
	Description        string
	PackageSize        PackageSizeType
	Price              int64
	Currency           string
	PickupCodeRequired bool
	Pickup             Leg
	Delivery           Leg
	Timeline           map[Milestone]time.Time
	StatusHistory      []StatusHistoryEntry
	Payment            *Payment
	Dispute            *Dispute
	Cancellation       *Cancellation
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OfferDelta набор полей, которые пишет один переход. nil означает "не трогать".
// Timeline и StatusHistory только дописываются.
type OfferDelta struct {
	Status        OfferStatusType
	RiderID       *string
	Pickup        *Leg
	Delivery      *Leg
	Payment       *Payment
	Dispute       *Dispute
	Cancellation  *Cancellation
	TimelineAdd   map[Milestone]time.Time
	HistoryAppend StatusHistoryEntry
	UpdatedAt     time.Time
}

// OfferCreate поля нового оффера, Version у нового всегда 1.
type OfferCreate struct {
	ID                 string
	BusinessID         string
	Description        string
	PackageSize        PackageSizeType
	Price              int64
	Currency           string
	PickupCodeRequired bool
	Pickup             Leg
	Delivery           Leg
	Timeline           map[Milestone]time.Time
	InitialEntry       StatusHistoryEntry
	CreatedAt          time.Time
}
