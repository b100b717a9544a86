package kafka

import (
	"encoding/json"
	"time"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/pkg/errors"
)

// IncomingMessage is a raw Kafka message with parsed headers.
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	ContractorEvent *ContractorEvent
}

// ContractorEvent is an upstream profile change on the input topic. The
// consumer upserts the profile and recomputes matches.
type ContractorEvent struct {
	EventType  string             `json:"event_type"` // created, updated, deleted
	Contractor *models.Contractor `json:"contractor"`
	FocusArea  string             `json:"focus_area,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
}

// ParseContractorEvent decodes the message payload as a contractor event.
func (m *IncomingMessage) ParseContractorEvent() error {
	var event ContractorEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return errors.Wrap(err, "failed to parse contractor event")
	}
	if event.EventType == "" {
		return errors.New("contractor event missing event_type")
	}
	if event.Contractor == nil || event.Contractor.ID == "" {
		return errors.New("contractor event missing contractor id")
	}

	m.ContractorEvent = &event
	return nil
}
