package notification

type notificationMessage struct {
	OfferID     string            `json:"offer_id"`
	Version     int64             `json:"version"`
	Status      string            `json:"status"`
	RecipientID string            `json:"recipient_id"`
	Transition  string            `json:"transition"`
	Context     map[string]string `json:"context,omitempty"`
}
