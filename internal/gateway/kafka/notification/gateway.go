package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"marketplace/internal/entities"
	"marketplace/internal/service/dispatch"
)

const idempotencyHeader = "idempotency-key"

var _ dispatch.Notifier = (*Gateway)(nil)

// Gateway публикует уведомления в топик, ключ сообщения id оффера.
type Gateway struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Gateway {
	return &Gateway{
		producer: producer,
		topic:    topic,
	}
}

func (g *Gateway) Publish(ctx context.Context, request entities.NotificationRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(fromDomain(request))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: g.topic,
		Key:   sarama.StringEncoder(request.OfferID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte(idempotencyHeader), Value: []byte(idempotencyKey(request))},
		},
	}

	_, _, err = g.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send notification for offer %s to %s: %w", request.OfferID, request.RecipientID, err)
	}

	return nil
}
