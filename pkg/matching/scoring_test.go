package matching

import (
	"testing"
	"time"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func testProfile() models.ContractorProfile {
	return models.ContractorProfile{
		ID:               "c-1",
		CompanyName:      "Acme Contracting",
		FocusAreas:       []string{"revenue_growth", "team_building"},
		PrimaryFocusArea: "revenue_growth",
		AnnualRevenue:    "5_10_million",
	}
}

func TestScorePartnerRanking(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)
	profile := testProfile()

	partnerX := models.Partner{
		ID:                   "p-x",
		CompanyName:          "Partner X",
		FocusAreasServed:     strPtr(`["revenue_growth"]`),
		TargetRevenueRange:   strPtr(`["5_10_million"]`),
		PowerConfidenceScore: floatPtr(95),
		IsActive:             true,
	}
	partnerY := models.Partner{
		ID:                   "p-y",
		CompanyName:          "Partner Y",
		FocusAreasServed:     strPtr(`["greenfield"]`),
		PowerConfidenceScore: floatPtr(40),
		IsActive:             true,
	}

	scoreX := engine.ScorePartner(profile, partnerX)
	scoreY := engine.ScorePartner(profile, partnerY)

	assert.Greater(t, scoreX.Total, scoreY.Total+30, "aligned partner should win by a wide margin")
	assert.True(t, scoreX.PrimaryServed)
	assert.Equal(t, []string{"revenue_growth"}, scoreX.MatchedFocusAreas)
	assert.Empty(t, scoreY.MatchedFocusAreas)
}

func TestScorePartnerLegacyRevenueIsCompatibleNotExact(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)
	profile := testProfile()
	profile.AnnualRevenue = "1m_5m"

	partner := models.Partner{
		ID:                 "p-1",
		TargetRevenueRange: strPtr(`["0_5_million"]`),
	}

	score := engine.ScorePartner(profile, partner)
	assert.Equal(t, revenueTierCompatible, score.RevenueScore)
}

func TestScorePartnerRevenueTiers(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)

	tests := []struct {
		name               string
		contractorRevenue  string
		targetRevenueRange *string
		expected           float64
	}{
		{
			name:               "exact match",
			contractorRevenue:  "5_10_million",
			targetRevenueRange: strPtr(`["5_10_million"]`),
			expected:           revenueTierExact,
		},
		{
			name:               "adjacent rung",
			contractorRevenue:  "5_10_million",
			targetRevenueRange: strPtr(`["11_20_million"]`),
			expected:           revenueTierCompatible,
		},
		{
			name:               "far rung",
			contractorRevenue:  "5_10_million",
			targetRevenueRange: strPtr(`["151_300_million"]`),
			expected:           revenueTierIncompatible,
		},
		{
			name:               "contractor revenue unknown",
			contractorRevenue:  "",
			targetRevenueRange: strPtr(`["5_10_million"]`),
			expected:           revenueTierUnknown,
		},
		{
			name:               "candidate revenue absent",
			contractorRevenue:  "5_10_million",
			targetRevenueRange: nil,
			expected:           revenueTierUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testProfile()
			profile.AnnualRevenue = tt.contractorRevenue
			partner := models.Partner{ID: "p-1", TargetRevenueRange: tt.targetRevenueRange}

			score := engine.ScorePartner(profile, partner)
			assert.Equal(t, tt.expected, score.RevenueScore)
		})
	}
}

func TestScorePartnerTechStack(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)

	t.Run("no tech stack data is neutral", func(t *testing.T) {
		profile := testProfile()
		score := engine.ScorePartner(profile, models.Partner{ID: "p-1"})
		assert.Equal(t, 50.0, score.TechScore)
	})

	t.Run("modern tool raises the category score", func(t *testing.T) {
		profile := testProfile()
		profile.TechStack = map[string][]string{
			"sales": {"HubSpot"},
		}
		score := engine.ScorePartner(profile, models.Partner{ID: "p-1"})
		// 75 base + 15 modern + 10 any tools
		assert.Equal(t, 100.0, score.TechScore)
	})

	t.Run("complexity penalty above three tools", func(t *testing.T) {
		profile := testProfile()
		profile.TechStack = map[string][]string{
			"operations": {"a", "b", "c", "d"},
		}
		score := engine.ScorePartner(profile, models.Partner{ID: "p-1"})
		// 75 base + 10 any tools - 5 penalty
		assert.Equal(t, 80.0, score.TechScore)
	})
}

func TestScorePartnerReadiness(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)
	profile := testProfile()
	profile.Readiness = models.ReadinessIndicators{
		IncreasedTools:    true,
		IncreasedPeople:   true,
		IncreasedActivity: true,
	}

	score := engine.ScorePartner(profile, models.Partner{ID: "p-1"})
	assert.InDelta(t, 100.0, score.ReadinessScore, 0.01)
}

func TestScorePartnerBounds(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)

	profiles := []models.ContractorProfile{
		{},
		testProfile(),
		{
			FocusAreas:       []string{"a", "b", "c", "d", "e"},
			PrimaryFocusArea: "a",
			AnnualRevenue:    "300_plus_million",
			TechStack:        map[string][]string{"sales": {"HubSpot"}},
			Readiness:        models.ReadinessIndicators{IncreasedTools: true, IncreasedPeople: true, IncreasedActivity: true},
		},
	}
	partners := []models.Partner{
		{},
		{
			FocusAreasServed:     strPtr(`["a","b","c","d","e"]`),
			TargetRevenueRange:   strPtr(`["300_plus_million"]`),
			PowerConfidenceScore: floatPtr(100),
		},
		{FocusAreasServed: strPtr("[object Object]")},
	}

	for _, profile := range profiles {
		for _, partner := range partners {
			score := engine.ScorePartner(profile, partner)
			assert.GreaterOrEqual(t, score.Total, 0)
			assert.LessOrEqual(t, score.Total, 100)
		}
	}
}

func TestScorePodcast(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)
	profile := testProfile()

	t.Run("primary coverage plus additional area", func(t *testing.T) {
		podcast := models.Podcast{
			ID:                "pod-1",
			FocusAreasCovered: strPtr(`["revenue_growth","team_building"]`),
		}
		score := engine.ScorePodcast(profile, podcast)
		assert.Equal(t, 70, score.Total)
		assert.True(t, score.PrimaryCovered)
	})

	t.Run("primary bonus is not cumulative with the additional bonus", func(t *testing.T) {
		podcast := models.Podcast{
			ID:                "pod-2",
			FocusAreasCovered: strPtr(`["revenue_growth"]`),
		}
		score := engine.ScorePodcast(profile, podcast)
		assert.Equal(t, 50, score.Total)
	})

	t.Run("no coverage scores zero", func(t *testing.T) {
		podcast := models.Podcast{ID: "pod-3", FocusAreasCovered: strPtr(`["greenfield"]`)}
		score := engine.ScorePodcast(profile, podcast)
		assert.Equal(t, 0, score.Total)
	})
}

func TestScoreEvent(t *testing.T) {
	tables := DefaultTables()
	profile := testProfile()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newEngine := func() *Engine {
		engine := NewEngine(tables, 60)
		engine.now = func() time.Time { return now }
		return engine
	}

	t.Run("event within the window gets the bonus", func(t *testing.T) {
		date := now.Add(30 * 24 * time.Hour)
		event := models.Event{
			ID:                "e-1",
			Date:              &date,
			FocusAreasCovered: strPtr(`["revenue_growth"]`),
		}
		score := newEngine().ScoreEvent(profile, event)
		assert.Equal(t, 60, score.Total)
		assert.True(t, score.EventSoon)
	})

	t.Run("event outside the window gets no bonus", func(t *testing.T) {
		date := now.Add(90 * 24 * time.Hour)
		event := models.Event{
			ID:                "e-2",
			Date:              &date,
			FocusAreasCovered: strPtr(`["revenue_growth"]`),
		}
		score := newEngine().ScoreEvent(profile, event)
		assert.Equal(t, 50, score.Total)
		assert.False(t, score.EventSoon)
	})

	t.Run("past event gets no bonus", func(t *testing.T) {
		date := now.Add(-10 * 24 * time.Hour)
		event := models.Event{
			ID:                "e-3",
			Date:              &date,
			FocusAreasCovered: strPtr(`["revenue_growth"]`),
		}
		score := newEngine().ScoreEvent(profile, event)
		assert.Equal(t, 50, score.Total)
	})
}

func TestScoreManufacturer(t *testing.T) {
	engine := NewEngine(DefaultTables(), 60)
	profile := testProfile()

	t.Run("coverage with tier fit and quality bonuses", func(t *testing.T) {
		manufacturer := models.Manufacturer{
			ID:                   "m-1",
			FocusAreasServed:     strPtr(`["revenue_growth"]`),
			PriceRange:           strPtr("premium"),
			PowerConfidenceScore: floatPtr(95),
		}
		score := engine.ScoreManufacturer(profile, manufacturer)
		assert.Equal(t, 75, score.Total)
		assert.True(t, score.RevenueTierFit)
		assert.True(t, score.HighQuality)
	})

	t.Run("quality below threshold earns no bonus", func(t *testing.T) {
		manufacturer := models.Manufacturer{
			ID:                   "m-2",
			FocusAreasServed:     strPtr(`["revenue_growth"]`),
			PowerConfidenceScore: floatPtr(89),
		}
		score := engine.ScoreManufacturer(profile, manufacturer)
		assert.Equal(t, 50, score.Total)
		assert.False(t, score.HighQuality)
	})
}

func TestRevenueAdjacencyTables(t *testing.T) {
	tables := DefaultTables()

	assert.Equal(t, "0_5_million", tables.ResolveRevenue("1m_5m"))
	assert.Equal(t, "51_75_million", tables.ResolveRevenue("50m_plus"))
	assert.Equal(t, "5_10_million", tables.ResolveRevenue("5_10_million"))

	assert.True(t, tables.RevenueCompatible("5_10_million", "0_5_million"))
	assert.True(t, tables.RevenueCompatible("5_10_million", "11_20_million"))
	assert.False(t, tables.RevenueCompatible("5_10_million", "76_100_million"))

	// legacy codes share their modern equivalent's compatibility class
	assert.True(t, tables.RevenueCompatible("1m_5m", "5_10_million"))
	assert.True(t, tables.RevenueCompatible("under_1m", "0_5_million"))

	// unknown codes have an empty class
	assert.Empty(t, tables.CompatibleRevenues("galactic"))
}
