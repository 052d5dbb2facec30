package entities

type TransitionKind string

const (
	TransitionCreate          TransitionKind = "create"
	TransitionAccept          TransitionKind = "accept"
	TransitionConfirmPickup   TransitionKind = "confirm_pickup"
	TransitionConfirmDelivery TransitionKind = "confirm_delivery"
	TransitionComplete        TransitionKind = "complete"
	TransitionCancel          TransitionKind = "cancel"
	TransitionDispute         TransitionKind = "dispute"
)

func (k TransitionKind) String() string {
	return string(k)
}

// TransitionPayload опциональные данные перехода, какие поля нужны решает сам переход.
type TransitionPayload struct {
	Notes            *string
	Location         *Location
	ConfirmationCode *string
	PhotoURL         *string
	Reason           *string
	PaymentReference *string
	WaivePayment     bool
}

// OfferDraft данные от бизнеса для create.
type OfferDraft struct {
	Description      string
	PackageSize      PackageSizeType
	Price            int64
	Currency         string
	PickupAddress    string
	PickupLocation   *Location
	PickupCode       *string
	DeliveryAddress  string
	DeliveryLocation *Location
	Notes            *string
}

type TransitionResult struct {
	Offer    *Offer
	Dispatch DispatchSubmission
}
