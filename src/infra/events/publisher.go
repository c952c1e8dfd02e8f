package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher records events in the repository and, when a producer is
// configured, sends each one to Kafka as its API representation.
type Publisher struct {
	repo     ports.EventRepository
	producer sarama.SyncProducer
	topic    string
	mt       *translate.ModelTranslator
	log      *slog.Logger
}

// NewPublisher constructs a publisher. A nil producer keeps events local.
func NewPublisher(
	repo ports.EventRepository,
	producer sarama.SyncProducer,
	topic string,
	mt *translate.ModelTranslator,
	log *slog.Logger,
) *Publisher {
	return &Publisher{
		repo:     repo,
		producer: producer,
		topic:    topic,
		mt:       mt,
		log:      log,
	}
}

func (p *Publisher) Publish(ctx context.Context, e *domain.Event) error {
	if err := p.repo.CreateEvent(ctx, e); err != nil {
		return fmt.Errorf("store event %s: %w", e.ID, err)
	}
	if p.producer == nil {
		p.log.Debug("event recorded", "event_id", e.ID, "target", e.Target, "type", e.Type)
		return nil
	}

	out, err := translate.Translate[domain.Event, dto.EventDTO](p.mt, e)
	if err != nil {
		return err
	}
	body, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to serialize event %s: %w", e.ID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(partitionKey(e)),
		Value: sarama.ByteEncoder(body),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send event to kafka topic %s: %w", p.topic, err)
	}

	p.log.Debug("event published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"event_id", e.ID,
	)
	return nil
}

// partitionKey keeps the events of one owner in order.
func partitionKey(e *domain.Event) string {
	if e.OwnerID != "" {
		return e.OwnerID
	}
	return e.EntityID
}

// Close releases the producer, if any.
func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
