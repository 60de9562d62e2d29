package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"seatsense/internal/shared/config"
	"seatsense/pkg/logger"
)

// Producer publishes selection events for downstream consumers
type Producer interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaProducer creates a sync producer against the configured brokers.
// Selections are low volume; durability matters more than throughput, so the
// producer waits for all in-sync replicas and writes idempotently.
func NewKafkaProducer(cfg config.KafkaConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps each session's selections on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.GetDefault().Info("selection producer created", "brokers", cfg.Brokers, "topic", cfg.SelectionTopic)

	return &kafkaProducer{
		producer: producer,
		topic:    cfg.SelectionTopic,
	}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, event *Event) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal selection event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.ID.String())},
			{Key: []byte("session_id"), Value: []byte(event.SessionID.String())},
			{Key: []byte("venue_id"), Value: []byte(event.VenueID.String())},
			{Key: []byte("seat_id"), Value: []byte(event.SeatID)},
			{Key: []byte("selected_at"), Value: []byte(event.SelectedAt.Format(time.RFC3339))},
		},
		Timestamp: event.SelectedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send selection event: %w", err)
	}

	logger.GetDefault().Info("selection event published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"seat_id", event.SeatID,
	)
	return nil
}

func (p *kafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// noopProducer is used when Kafka is disabled. Selections are still logged so
// a local setup remains usable.
type noopProducer struct{}

// NewNoopProducer returns a producer that only logs
func NewNoopProducer() Producer {
	return &noopProducer{}
}

func (p *noopProducer) Publish(ctx context.Context, event *Event) error {
	logger.GetDefault().Info("selection event (kafka disabled)",
		"session_id", event.SessionID.String(),
		"seat_id", event.SeatID,
	)
	return nil
}

func (p *noopProducer) Close() error {
	return nil
}
