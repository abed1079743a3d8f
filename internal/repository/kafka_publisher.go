package repository

import (
	"context"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domrepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
	pkgkafka "github.com/yigiitcoskun/us-economic-insights/pkg/kafka"
)

// KafkaPublisher is the ReportSink that publishes runs to Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ domrepo.ReportSink = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Name() string { return "kafka" }

// Publish sends the run as JSON keyed by its generation date, so all runs of a
// day land on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, run *models.Run) error {
	key := []byte(run.Result.GeneratedAt.UTC().Format("2006-01-02"))
	return p.producer.Publish(ctx, p.topic, key, run)
}

func (p *KafkaPublisher) Save(ctx context.Context, run *models.Run) error {
	return p.Publish(ctx, run)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
