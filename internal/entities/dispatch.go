package entities

import "time"

type DispatchKind string

const (
	DispatchNotification DispatchKind = "notification"
	DispatchPayment      DispatchKind = "payment"
)

func (k DispatchKind) String() string {
	return string(k)
}

type DispatchState string

const (
	// DispatchQueued принято к отправке, результат ещё неизвестен.
	DispatchQueued DispatchState = "queued"

	// DispatchRejected очередь переполнена или диспетчер остановлен.
	DispatchRejected DispatchState = "rejected"

	DispatchAcknowledged DispatchState = "acknowledged"
	DispatchFailed       DispatchState = "failed"
)

func (s DispatchState) String() string {
	return string(s)
}

type NotificationRequest struct {
	OfferID     string
	Version     int64
	NewStatus   OfferStatusType
	RecipientID string
	Transition  TransitionKind
	Context     map[string]string
}

type PaymentRequest struct {
	OfferID   string
	Version   int64
	Amount    int64
	Currency  string
	PayerID   string
	PayeeID   string
	Reference string
}

// DispatchRecord одна попытка побочного эффекта.
type DispatchRecord struct {
	ID          string        `json:"id"`
	Kind        DispatchKind  `json:"kind"`
	RecipientID string        `json:"recipient_id"`
	State       DispatchState `json:"state"`
	Error       string        `json:"error,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DispatchSubmission что движок знает о побочных эффектах сразу после коммита.
type DispatchSubmission struct {
	OfferID    string
	Version    int64
	Transition TransitionKind
	Records    []DispatchRecord
}

// Accepted true, если все эффекты перехода приняты к отправке.
func (d DispatchSubmission) Accepted() bool {
	for _, r := range d.Records {
		if r.State == DispatchRejected {
			return false
		}
	}
	return true
}
