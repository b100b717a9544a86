package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	// the kafka-go transport logs outside any request context, so it gets its
	// own structured logger
	transportLogger := zap.L().Sugar()

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            compression,
		AllowAutoTopicCreation: true,
		Logger:                 kafka.LoggerFunc(transportLogger.Debugf),
		ErrorLogger:            kafka.LoggerFunc(transportLogger.Errorf),
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// MatchOutcomeEvent is emitted after a match set commits. Downstream
// analytics track these to evaluate matching quality over time.
type MatchOutcomeEvent struct {
	EventType         string              `json:"event_type"` // matches.computed
	ContractorID      string              `json:"contractor_id"`
	FocusAreaSelected string              `json:"focus_area_selected"`
	PartnerIDs        []string            `json:"partner_ids"`
	PrimaryPartnerID  string              `json:"primary_partner_id,omitempty"`
	TopScore          int                 `json:"top_score"`
	Reasons           []string            `json:"reasons,omitempty"`
	MatchedTypes      []models.EntityType `json:"matched_entity_types"`
	PodcastMatched    bool                `json:"podcast_matched"`
	EventMatched      bool                `json:"event_matched"`
	ManufacturerMatch bool                `json:"manufacturer_matched"`
	Metadata          map[string]string   `json:"metadata,omitempty"`
	Timestamp         time.Time           `json:"timestamp"`
}

// PublishMatchOutcome publishes a match outcome event to Kafka.
func (p *Producer) PublishMatchOutcome(ctx context.Context, event *MatchOutcomeEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishMatchOutcome")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.EventType == "" {
		event.EventType = "matches.computed"
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.ContractorID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "contractor_id", Value: []byte(event.ContractorID)},
			{Key: "schema_version", Value: []byte("1.0")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish match outcome event")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type":    event.EventType,
		"contractor_id": event.ContractorID,
	}).Debug("Published match outcome event")

	return nil
}
