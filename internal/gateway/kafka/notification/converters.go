package notification

import (
	"fmt"

	"marketplace/internal/entities"
)

func fromDomain(request entities.NotificationRequest) notificationMessage {
	return notificationMessage{
		OfferID:     request.OfferID,
		Version:     request.Version,
		Status:      request.NewStatus.String(),
		RecipientID: request.RecipientID,
		Transition:  request.Transition.String(),
		Context:     request.Context,
	}
}

// idempotencyKey одинаков для повторной отправки того же уведомления.
func idempotencyKey(request entities.NotificationRequest) string {
	return fmt.Sprintf("%s:%d:%s", request.OfferID, request.Version, request.RecipientID)
}
