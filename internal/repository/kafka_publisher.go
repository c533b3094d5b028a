package repository

import (
	"context"

	"TermPulse/internal/domain/models"
	"TermPulse/internal/domain/repository"
	pkgkafka "TermPulse/pkg/kafka"
)

// KafkaPublisher implements Publisher over a Kafka topic. Analyses are
// keyed by the front contract ticker so one contract's signals stay ordered
// within a partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka-backed analysis publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishAnalysis(ctx context.Context, key string, a *models.Analysis) error {
	return p.producer.Publish(ctx, p.topic, []byte(key), a)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
