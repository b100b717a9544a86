package matching

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContractorRepo struct {
	contractor *models.Contractor
	err        error
}

func (f *fakeContractorRepo) GetContractor(ctx context.Context, id string) (*models.Contractor, error) {
	return f.contractor, f.err
}

type fakePartnerRepo struct {
	partners []models.Partner
}

func (f *fakePartnerRepo) ListActivePartners(ctx context.Context) ([]models.Partner, error) {
	return f.partners, nil
}

func (f *fakePartnerRepo) ListPartnersByIDs(ctx context.Context, ids []string) ([]models.Partner, error) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []models.Partner
	for _, partner := range f.partners {
		if _, ok := idSet[partner.ID]; ok {
			out = append(out, partner)
		}
	}
	return out, nil
}

type fakePodcastRepo struct {
	podcasts []models.Podcast
}

func (f *fakePodcastRepo) ListActivePodcasts(ctx context.Context) ([]models.Podcast, error) {
	return f.podcasts, nil
}

type fakeEventRepo struct {
	events []models.Event
}

func (f *fakeEventRepo) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	return f.events, nil
}

type fakeManufacturerRepo struct {
	manufacturers []models.Manufacturer
	calls         int
}

func (f *fakeManufacturerRepo) ListActiveManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	f.calls++
	return f.manufacturers, nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	stored  map[string][]models.PartnerMatch
	replace int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{stored: make(map[string][]models.PartnerMatch)}
}

func (f *fakeMatchRepo) ReplaceForContractor(ctx context.Context, contractorID string, matches []models.PartnerMatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replace++
	f.stored[contractorID] = matches
	return nil
}

func (f *fakeMatchRepo) ListForContractor(ctx context.Context, contractorID string) ([]models.PartnerMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[contractorID], nil
}

type fakeOutcomeRecorder struct {
	mu      sync.Mutex
	bundles []*models.MatchBundle
}

func (f *fakeOutcomeRecorder) RecordMatchOutcome(ctx context.Context, bundle *models.MatchBundle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bundles = append(f.bundles, bundle)
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

type serviceFixture struct {
	service       *Service
	contractors   *fakeContractorRepo
	partners      *fakePartnerRepo
	podcasts      *fakePodcastRepo
	events        *fakeEventRepo
	manufacturers *fakeManufacturerRepo
	matches       *fakeMatchRepo
	outcomes      *fakeOutcomeRecorder
}

func newServiceFixture(config ServiceConfig) *serviceFixture {
	teamSize := 12
	f := &serviceFixture{
		contractors: &fakeContractorRepo{
			contractor: &models.Contractor{
				ID:            "c-1",
				CompanyName:   "Acme Contracting",
				FocusAreas:    strPtr(`["revenue_growth","team_building"]`),
				AnnualRevenue: strPtr("5_10_million"),
				TeamSize:      &teamSize,
			},
		},
		partners: &fakePartnerRepo{
			partners: []models.Partner{
				{
					ID:                   "p-x",
					CompanyName:          "Partner X",
					FocusAreasServed:     strPtr(`["revenue_growth"]`),
					TargetRevenueRange:   strPtr(`["5_10_million"]`),
					PowerConfidenceScore: floatPtr(95),
					IsActive:             true,
				},
				{
					ID:               "p-y",
					CompanyName:      "Partner Y",
					FocusAreasServed: strPtr(`["greenfield"]`),
					IsActive:         true,
				},
				{
					ID:               "p-z",
					CompanyName:      "Partner Z",
					FocusAreasServed: strPtr(`["team_building"]`),
					IsActive:         true,
				},
				{
					ID:               "p-w",
					CompanyName:      "Partner W",
					FocusAreasServed: strPtr(`["operations"]`),
					IsActive:         true,
				},
			},
		},
		podcasts: &fakePodcastRepo{
			podcasts: []models.Podcast{
				{ID: "pod-1", Title: "Growth Talk", FocusAreasCovered: strPtr(`["revenue_growth"]`)},
				{ID: "pod-2", Title: "Other Talk", FocusAreasCovered: strPtr(`["greenfield"]`)},
			},
		},
		events:        &fakeEventRepo{},
		manufacturers: &fakeManufacturerRepo{},
		matches:       newFakeMatchRepo(),
		outcomes:      &fakeOutcomeRecorder{},
	}

	tables := DefaultTables()
	f.service = NewService(
		NewEngine(tables, 60),
		NewReasonGenerator(tables),
		f.contractors,
		f.partners,
		f.podcasts,
		f.events,
		f.manufacturers,
		f.matches,
		f.outcomes,
		config,
		testLogger(),
	)
	return f
}

func TestComputeMatches(t *testing.T) {
	fixture := newServiceFixture(ServiceConfig{TopPartnerMatches: 3, ManufacturersEnabled: true})

	bundle, err := fixture.service.ComputeMatches(context.Background(), "c-1", "")
	require.NoError(t, err)

	require.Len(t, bundle.Partners, 3)
	assert.Equal(t, "p-x", bundle.Partners[0].Partner.ID)
	assert.True(t, bundle.Partners[0].IsPrimary)
	assert.False(t, bundle.Partners[1].IsPrimary)
	assert.NotEmpty(t, bundle.Partners[0].Reasons)

	require.NotNil(t, bundle.Podcast)
	assert.Equal(t, "pod-1", bundle.Podcast.Podcast.ID)
	assert.Nil(t, bundle.Event)

	assert.Equal(t, "revenue_growth", bundle.CurrentFocusArea)
	assert.Equal(t, []string{"revenue_growth", "team_building"}, bundle.AllFocusAreas)

	stored, err := fixture.matches.ListForContractor(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.True(t, stored[0].IsPrimaryMatch)
	assert.Equal(t, bundle.Partners[0].Score, stored[0].MatchScore)

	require.Len(t, fixture.outcomes.bundles, 1)
	assert.Equal(t, bundle, fixture.outcomes.bundles[0])
}

func TestComputeMatchesFocusAreaOverride(t *testing.T) {
	fixture := newServiceFixture(ServiceConfig{TopPartnerMatches: 3})

	bundle, err := fixture.service.ComputeMatches(context.Background(), "c-1", "team_building")
	require.NoError(t, err)

	assert.Equal(t, "team_building", bundle.CurrentFocusArea)
	assert.Equal(t, []string{"team_building", "revenue_growth"}, bundle.AllFocusAreas)
	// the partner serving the promoted area now ranks first
	require.NotEmpty(t, bundle.Partners)
	assert.Equal(t, "p-z", bundle.Partners[0].Partner.ID)
}

func TestComputeMatchesManufacturersDisabled(t *testing.T) {
	fixture := newServiceFixture(ServiceConfig{TopPartnerMatches: 3, ManufacturersEnabled: false})

	bundle, err := fixture.service.ComputeMatches(context.Background(), "c-1", "")
	require.NoError(t, err)

	assert.Nil(t, bundle.Manufacturer)
	assert.Zero(t, fixture.manufacturers.calls)
}

func TestComputeMatchesIsIdempotent(t *testing.T) {
	fixture := newServiceFixture(ServiceConfig{TopPartnerMatches: 3})

	first, err := fixture.service.ComputeMatches(context.Background(), "c-1", "")
	require.NoError(t, err)
	second, err := fixture.service.ComputeMatches(context.Background(), "c-1", "")
	require.NoError(t, err)

	require.Equal(t, len(first.Partners), len(second.Partners))
	for i := range first.Partners {
		assert.Equal(t, first.Partners[i].Partner.ID, second.Partners[i].Partner.ID)
		assert.Equal(t, first.Partners[i].Score, second.Partners[i].Score)
		assert.Equal(t, first.Partners[i].Reasons, second.Partners[i].Reasons)
		assert.Equal(t, first.Partners[i].IsPrimary, second.Partners[i].IsPrimary)
	}

	stored, err := fixture.matches.ListForContractor(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Len(t, stored, len(first.Partners))
}

func TestComputeMatchesSerializesPerContractor(t *testing.T) {
	fixture := newServiceFixture(ServiceConfig{TopPartnerMatches: 3})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fixture.service.ComputeMatches(context.Background(), "c-1", "")
			assert.NoError(t, err)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("concurrent matching runs did not finish")
	}

	stored, err := fixture.matches.ListForContractor(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Len(t, stored, 3, "last writer must leave a complete match set")
	assert.Equal(t, 8, fixture.matches.replace)
}

func TestGetMatches(t *testing.T) {
	fixture := newServiceFixture(ServiceConfig{TopPartnerMatches: 3})

	_, err := fixture.service.ComputeMatches(context.Background(), "c-1", "")
	require.NoError(t, err)

	matches, err := fixture.service.GetMatches(context.Background(), "c-1")
	require.NoError(t, err)

	require.Len(t, matches, 3)
	assert.Equal(t, "p-x", matches[0].Partner.ID)
	assert.Equal(t, "Partner X", matches[0].Partner.CompanyName)
	assert.True(t, matches[0].IsPrimary)
	assert.NotEmpty(t, matches[0].Reasons)
}

func TestGetMatchesEmpty(t *testing.T) {
	fixture := newServiceFixture(ServiceConfig{TopPartnerMatches: 3})

	matches, err := fixture.service.GetMatches(context.Background(), "c-none")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
