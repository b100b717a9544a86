package processor

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/pkg/errors"
)

type ContractorWriter interface {
	UpsertContractor(ctx context.Context, contractor *models.Contractor) error
}

type Matcher interface {
	ComputeMatches(ctx context.Context, contractorID string, focusArea string) (*models.MatchBundle, error)
}

type MatchCleaner interface {
	ReplaceForContractor(ctx context.Context, contractorID string, matches []models.PartnerMatch) error
}

// Processor reacts to contractor profile events from the input topic: profile
// creates and updates are stored and immediately rematched, deletes clear the
// stored match set.
type Processor struct {
	contractors ContractorWriter
	matcher     Matcher
	matches     MatchCleaner
	logger      ectologger.Logger
}

func NewProcessor(contractors ContractorWriter, matcher Matcher, matches MatchCleaner, logger ectologger.Logger) *Processor {
	return &Processor{
		contractors: contractors,
		matcher:     matcher,
		matches:     matches,
		logger:      logger,
	}
}

// HandleMessage is the consumer callback. A returned error leaves the message
// uncommitted so it is retried.
func (p *Processor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.HandleMessage")
	defer span.End()

	event := msg.ContractorEvent
	if event == nil {
		return errors.New("message has no contractor event")
	}

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type":    event.EventType,
		"contractor_id": event.Contractor.ID,
	})

	switch event.EventType {
	case "created", "updated":
		if err := p.contractors.UpsertContractor(ctx, event.Contractor); err != nil {
			return errors.Wrap(err, "failed to upsert contractor")
		}
		if _, err := p.matcher.ComputeMatches(ctx, event.Contractor.ID, event.FocusArea); err != nil {
			return errors.Wrap(err, "failed to recompute matches")
		}
		log.Info("Processed contractor profile event")
		return nil

	case "deleted":
		if err := p.matches.ReplaceForContractor(ctx, event.Contractor.ID, nil); err != nil {
			return errors.Wrap(err, "failed to clear matches for deleted contractor")
		}
		log.Info("Cleared matches for deleted contractor")
		return nil

	default:
		// unknown event types are committed, not retried
		log.Warn("Skipping unknown contractor event type")
		return nil
	}
}
