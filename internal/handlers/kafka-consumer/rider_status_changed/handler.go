package rider_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"marketplace/internal/entities"
	riderservice "marketplace/internal/service/rider"
	"marketplace/internal/service/rider_status"
	"marketplace/pkg/logger"
)

type Handler struct {
	riderStatusService       Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, riderStatusService Service, timeout time.Duration) *Handler {
	return &Handler{
		riderStatusService:       riderStatusService,
		log:                      log.With(logger.NewField("handler", "rider.status.changed")),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("rider.status.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("rider.status.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение.
// Возвращает true, если нужно выйти из ConsumeClaim без коммита оффсета.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("rider.status.changed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("rider", event.RiderID),
		logger.NewField("event", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("rider.status.changed processing")

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = message.Timestamp
	}

	rider, err := h.riderStatusService.ProcessRiderStatusChange(ctx, entities.RiderStatusEvent{
		RiderID:    event.RiderID,
		Type:       entities.RiderEventType(event.Status),
		OccurredAt: occurredAt.UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("rider.status.changed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, rider_status.ErrUndefinedEvent), errors.Is(err, rider_status.ErrInvalidEvent):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("rider.status.changed handler skipped malformed event")

		case errors.Is(err, riderservice.ErrRiderNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("rider.status.changed handler unknown rider")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("rider.status.changed handler failed to process event")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("current_status", rider.Status.String()),
	).Info("rider.status.changed: processed")

	sess.MarkMessage(message, "")
	return false
}
