package notification

import "github.com/IBM/sarama"

// producer подмножество sarama.SyncProducer.
type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}
