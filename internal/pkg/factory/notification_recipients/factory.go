package notification_recipients

import (
	"strconv"

	"marketplace/internal/entities"
)

type NotificationFactory struct{}

func New() *NotificationFactory {
	return &NotificationFactory{}
}

// Build возвращает уведомления для участников предложения, кроме самого актора.
// Для create уведомлений нет: свободные предложения курьеры видят в ленте.
func (f *NotificationFactory) Build(
	offer *entities.Offer,
	kind entities.TransitionKind,
	actor entities.Actor,
	payload entities.TransitionPayload,
) []entities.NotificationRequest {
	if offer == nil || kind == entities.TransitionCreate {
		return nil
	}

	recipients := make([]string, 0, 2)
	if offer.BusinessID != actor.ID {
		recipients = append(recipients, offer.BusinessID)
	}
	if offer.RiderID != nil && *offer.RiderID != actor.ID {
		recipients = append(recipients, *offer.RiderID)
	}

	requests := make([]entities.NotificationRequest, 0, len(recipients))
	for _, recipientID := range recipients {
		requests = append(requests, entities.NotificationRequest{
			OfferID:     offer.ID,
			Version:     offer.Version,
			NewStatus:   offer.Status,
			RecipientID: recipientID,
			Transition:  kind,
			Context:     f.context(offer, kind, actor, payload),
		})
	}
	return requests
}

func (f *NotificationFactory) context(
	offer *entities.Offer,
	kind entities.TransitionKind,
	actor entities.Actor,
	payload entities.TransitionPayload,
) map[string]string {
	result := map[string]string{
		"actor_id":   actor.ID,
		"actor_role": actor.Role.String(),
	}

	switch kind {
	case entities.TransitionCancel, entities.TransitionDispute:
		if payload.Reason != nil {
			result["reason"] = *payload.Reason
		}
	case entities.TransitionConfirmDelivery:
		if offer.Delivery.PhotoURL != nil {
			result["photo_url"] = *offer.Delivery.PhotoURL
		}
	case entities.TransitionComplete:
		result["amount"] = strconv.FormatInt(offer.Price, 10)
		result["currency"] = offer.Currency
	}

	return result
}
