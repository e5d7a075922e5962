package repository

import (
	"context"

	"RiskDesk/internal/domain/models"
	"RiskDesk/internal/domain/repository"
	pkgkafka "RiskDesk/pkg/kafka"
)

// KafkaBundlePublisher publishes completed signal bundles for downstream
// consumers (journaling, alerting, dashboards).
type KafkaBundlePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaBundlePublisher creates a Kafka-backed bundle publisher.
func NewKafkaBundlePublisher(producer *pkgkafka.Producer, topic string) repository.BundlePublisher {
	return &KafkaBundlePublisher{producer: producer, topic: topic}
}

// Publish keys the message by as-of date so one partition carries one
// trading day in order; consumers dedupe re-runs by run_id.
func (p *KafkaBundlePublisher) Publish(ctx context.Context, b *models.SignalBundle) error {
	return p.producer.Publish(ctx, p.topic, []byte(b.AsOfDate), b)
}

func (p *KafkaBundlePublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
