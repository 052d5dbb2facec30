package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"marketplace/internal/pkg/config"
	"marketplace/pkg/logger"
)

const producerTimeout = 5 * time.Second

// NewSyncProducer синхронный продюсер уведомлений. Ретраи sarama выключены,
// неудачная отправка фиксируется диспетчером как failed.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (sarama.SyncProducer, error) {
	saramaConfig, err := newSaramaConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Timeout = producerTimeout
	saramaConfig.Producer.Retry.Max = 0

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.NotificationsTopic),
	)

	err = pingKafka(ctx, kafkaLog, brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	return producer, nil
}

// SplitBrokers разбирает список брокеров через запятую.
func SplitBrokers(brokers string) []string {
	result := strings.Split(brokers, ",")
	for i := range result {
		result[i] = strings.TrimSpace(result[i])
	}
	return result
}
