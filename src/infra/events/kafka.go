// Package events stores audit events and forwards them to Kafka.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/cenkalti/backoff"

	"candlepin/src/infra/config"
)

// NewSyncProducer connects a synchronous producer to the configured brokers,
// retrying with exponential backoff for up to cfg.ConnectTimeout.
func NewSyncProducer(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Return.Successes = true
	sc.Producer.Partitioner = sarama.NewHashPartitioner

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = time.Second
	expBackoff.MaxElapsedTime = cfg.ConnectTimeout

	var producer sarama.SyncProducer
	operation := func() error {
		var err error
		producer, err = sarama.NewSyncProducer(cfg.Brokers, sc)
		if err != nil {
			log.Warn("kafka not ready", "brokers", cfg.Brokers, "error", err)
			return err
		}
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		return nil, fmt.Errorf("failed to connect to kafka after retries: %w", err)
	}

	log.Info("kafka producer connected", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return producer, nil
}
