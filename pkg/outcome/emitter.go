package outcome

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
)

// Publisher is the producer surface the emitter needs.
type Publisher interface {
	PublishMatchOutcome(ctx context.Context, event *kafka.MatchOutcomeEvent) error
}

// Emitter turns committed match bundles into outcome events. Emission is best
// effort: it runs detached from the request, is bounded by a timeout, and
// swallows every failure. A slow or dead sink can never stall or fail a
// matching request.
type Emitter struct {
	publisher Publisher
	logger    ectologger.Logger
	timeout   time.Duration
}

func NewEmitter(publisher Publisher, logger ectologger.Logger, timeout time.Duration) *Emitter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Emitter{
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
	}
}

// RecordMatchOutcome dispatches the outcome event without blocking the
// caller. The request context's values are kept for log correlation but its
// cancellation is not, so a finished request does not cancel the emission.
func (e *Emitter) RecordMatchOutcome(ctx context.Context, bundle *models.MatchBundle) {
	event := buildEvent(bundle)

	detached := context.WithoutCancel(ctx)
	go func() {
		emitCtx, cancel := context.WithTimeout(detached, e.timeout)
		defer cancel()

		if err := e.publisher.PublishMatchOutcome(emitCtx, event); err != nil {
			e.logger.WithContext(emitCtx).WithError(err).WithField("contractor_id", bundle.ContractorID).Warn("Failed to emit match outcome")
		}
	}()
}

func buildEvent(bundle *models.MatchBundle) *kafka.MatchOutcomeEvent {
	event := &kafka.MatchOutcomeEvent{
		EventType:         "matches.computed",
		ContractorID:      bundle.ContractorID,
		FocusAreaSelected: bundle.CurrentFocusArea,
		PodcastMatched:    bundle.Podcast != nil,
		EventMatched:      bundle.Event != nil,
		ManufacturerMatch: bundle.Manufacturer != nil,
		Timestamp:         bundle.ComputedAt,
	}

	for _, partner := range bundle.Partners {
		event.PartnerIDs = append(event.PartnerIDs, partner.Partner.ID)
		if partner.IsPrimary {
			event.PrimaryPartnerID = partner.Partner.ID
			event.TopScore = partner.Score
			event.Reasons = partner.Reasons
		}
	}

	if len(bundle.Partners) > 0 {
		event.MatchedTypes = append(event.MatchedTypes, models.EntityTypePartner)
	}
	if bundle.Podcast != nil {
		event.MatchedTypes = append(event.MatchedTypes, models.EntityTypePodcast)
	}
	if bundle.Event != nil {
		event.MatchedTypes = append(event.MatchedTypes, models.EntityTypeEvent)
	}
	if bundle.Manufacturer != nil {
		event.MatchedTypes = append(event.MatchedTypes, models.EntityTypeManufacturer)
	}

	return event
}
