package rider_status_changed

import "time"

type statusChangedEvent struct {
	RiderID    string    `json:"rider_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
