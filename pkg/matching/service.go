package matching

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalize"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/google/uuid"
)

type ContractorRepository interface {
	GetContractor(ctx context.Context, id string) (*models.Contractor, error)
}

type PartnerRepository interface {
	ListActivePartners(ctx context.Context) ([]models.Partner, error)
	ListPartnersByIDs(ctx context.Context, ids []string) ([]models.Partner, error)
}

type PodcastRepository interface {
	ListActivePodcasts(ctx context.Context) ([]models.Podcast, error)
}

type EventRepository interface {
	ListActiveEvents(ctx context.Context) ([]models.Event, error)
}

type ManufacturerRepository interface {
	ListActiveManufacturers(ctx context.Context) ([]models.Manufacturer, error)
}

type PartnerMatchRepository interface {
	ReplaceForContractor(ctx context.Context, contractorID string, matches []models.PartnerMatch) error
	ListForContractor(ctx context.Context, contractorID string) ([]models.PartnerMatch, error)
}

// OutcomeRecorder is notified after a match set commits. Implementations must
// not block the caller and must swallow their own failures.
type OutcomeRecorder interface {
	RecordMatchOutcome(ctx context.Context, bundle *models.MatchBundle)
}

// ServiceConfig carries the matching knobs.
type ServiceConfig struct {
	TopPartnerMatches    int
	ManufacturersEnabled bool
}

// Service runs the full matching pipeline for a contractor: normalize,
// score, rank, annotate, persist, emit.
type Service struct {
	engine        *Engine
	reasons       *ReasonGenerator
	contractors   ContractorRepository
	partners      PartnerRepository
	podcasts      PodcastRepository
	events        EventRepository
	manufacturers ManufacturerRepository
	matches       PartnerMatchRepository
	outcomes      OutcomeRecorder
	config        ServiceConfig
	logger        ectologger.Logger

	// locks serializes matching per contractor so concurrent requests for the
	// same contractor cannot interleave the delete-then-insert persistence.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewService(
	engine *Engine,
	reasons *ReasonGenerator,
	contractors ContractorRepository,
	partners PartnerRepository,
	podcasts PodcastRepository,
	events EventRepository,
	manufacturers ManufacturerRepository,
	matches PartnerMatchRepository,
	outcomes OutcomeRecorder,
	config ServiceConfig,
	logger ectologger.Logger,
) *Service {
	if config.TopPartnerMatches <= 0 {
		config.TopPartnerMatches = 3
	}
	return &Service{
		engine:        engine,
		reasons:       reasons,
		contractors:   contractors,
		partners:      partners,
		podcasts:      podcasts,
		events:        events,
		manufacturers: manufacturers,
		matches:       matches,
		outcomes:      outcomes,
		config:        config,
		logger:        logger,
		locks:         make(map[string]*sync.Mutex),
	}
}

func (s *Service) contractorLock(contractorID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[contractorID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[contractorID] = lock
	}
	return lock
}

// ComputeMatches recomputes and replaces the contractor's match set, then
// returns the full bundle. Requests for the same contractor are serialized;
// requests for different contractors run independently.
func (s *Service) ComputeMatches(ctx context.Context, contractorID string, focusArea string) (*models.MatchBundle, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.ComputeMatches")
	defer span.End()

	lock := s.contractorLock(contractorID)
	lock.Lock()
	defer lock.Unlock()

	contractor, err := s.contractors.GetContractor(ctx, contractorID)
	if err != nil {
		return nil, err
	}

	profile := normalize.Profile(contractor, focusArea)

	bundle := &models.MatchBundle{
		ContractorID:     contractorID,
		CurrentFocusArea: profile.PrimaryFocusArea,
		AllFocusAreas:    profile.FocusAreas,
		ComputedAt:       time.Now().UTC(),
	}

	if bundle.Partners, err = s.matchPartners(ctx, profile); err != nil {
		return nil, err
	}
	if bundle.Podcast, err = s.matchPodcast(ctx, profile); err != nil {
		return nil, err
	}
	if bundle.Event, err = s.matchEvent(ctx, profile); err != nil {
		return nil, err
	}
	if s.config.ManufacturersEnabled {
		if bundle.Manufacturer, err = s.matchManufacturer(ctx, profile); err != nil {
			return nil, err
		}
	}

	if err := s.persistPartnerMatches(ctx, contractorID, bundle.Partners); err != nil {
		return nil, err
	}

	// outcome emission is best effort after commit; it never fails the request
	s.outcomes.RecordMatchOutcome(ctx, bundle)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"contractor_id": contractorID,
		"partners":      len(bundle.Partners),
		"focus_area":    bundle.CurrentFocusArea,
	}).Info("Computed contractor matches")

	return bundle, nil
}

// GetMatches returns the stored partner match set without recomputing.
func (s *Service) GetMatches(ctx context.Context, contractorID string) ([]models.ScoredPartner, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.GetMatches")
	defer span.End()

	rows, err := s.matches.ListForContractor(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []models.ScoredPartner{}, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.PartnerID
	}

	partners, err := s.partners.ListPartnersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Partner, len(partners))
	for _, partner := range partners {
		byID[partner.ID] = partner
	}

	result := make([]models.ScoredPartner, 0, len(rows))
	for _, row := range rows {
		partner, ok := byID[row.PartnerID]
		if !ok {
			// partner was deactivated or deleted after the match was stored
			continue
		}
		result = append(result, models.ScoredPartner{
			Partner:   partner,
			Score:     row.MatchScore,
			Reasons:   row.MatchReasons.Data,
			IsPrimary: row.IsPrimaryMatch,
		})
	}

	return result, nil
}

func (s *Service) matchPartners(ctx context.Context, profile models.ContractorProfile) ([]models.ScoredPartner, error) {
	partners, err := s.partners.ListActivePartners(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredPartner, 0, len(partners))
	for _, partner := range partners {
		score := s.engine.ScorePartner(profile, partner)
		scored = append(scored, models.ScoredPartner{
			Partner: partner,
			Score:   score.Total,
			Reasons: s.reasons.PartnerReasons(profile, partner, score),
		})
	}

	return RankPartners(scored, s.config.TopPartnerMatches), nil
}

func (s *Service) matchPodcast(ctx context.Context, profile models.ContractorProfile) (*models.ScoredPodcast, error) {
	podcasts, err := s.podcasts.ListActivePodcasts(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredPodcast, 0, len(podcasts))
	for _, podcast := range podcasts {
		score := s.engine.ScorePodcast(profile, podcast)
		scored = append(scored, models.ScoredPodcast{
			Podcast: podcast,
			Score:   score.Total,
			Reasons: s.reasons.PodcastReasons(profile, podcast, score),
		})
	}

	return BestPodcast(scored), nil
}

func (s *Service) matchEvent(ctx context.Context, profile models.ContractorProfile) (*models.ScoredEvent, error) {
	events, err := s.events.ListActiveEvents(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredEvent, 0, len(events))
	for _, event := range events {
		score := s.engine.ScoreEvent(profile, event)
		scored = append(scored, models.ScoredEvent{
			Event:   event,
			Score:   score.Total,
			Reasons: s.reasons.EventReasons(profile, event, score),
		})
	}

	return BestEvent(scored), nil
}

func (s *Service) matchManufacturer(ctx context.Context, profile models.ContractorProfile) (*models.ScoredManufacturer, error) {
	manufacturers, err := s.manufacturers.ListActiveManufacturers(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredManufacturer, 0, len(manufacturers))
	for _, manufacturer := range manufacturers {
		score := s.engine.ScoreManufacturer(profile, manufacturer)
		scored = append(scored, models.ScoredManufacturer{
			Manufacturer: manufacturer,
			Score:        score.Total,
			Reasons:      s.reasons.ManufacturerReasons(profile, manufacturer, score),
		})
	}

	return BestManufacturer(scored), nil
}

func (s *Service) persistPartnerMatches(ctx context.Context, contractorID string, partners []models.ScoredPartner) error {
	now := time.Now().UTC()
	rows := make([]models.PartnerMatch, len(partners))
	for i, partner := range partners {
		rows[i] = models.PartnerMatch{
			ID:             uuid.New().String(),
			ContractorID:   contractorID,
			PartnerID:      partner.Partner.ID,
			MatchScore:     partner.Score,
			MatchReasons:   models.NewReasons(partner.Reasons),
			IsPrimaryMatch: partner.IsPrimary,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	if err := s.matches.ReplaceForContractor(ctx, contractorID, rows); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("contractor_id", contractorID).Error("Failed to persist partner matches")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to persist partner matches")
	}

	return nil
}
