package matching

import (
	"testing"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerReasons(t *testing.T) {
	generator := NewReasonGenerator(DefaultTables())
	profile := testProfile()

	t.Run("focus overlap leads the list", func(t *testing.T) {
		partner := models.Partner{ID: "p-1", PowerConfidenceScore: floatPtr(95)}
		score := PartnerScore{
			Total:             85,
			RevenueScore:      revenueTierExact,
			MatchedFocusAreas: []string{"revenue_growth"},
		}

		reasons := generator.PartnerReasons(profile, partner, score)
		require.NotEmpty(t, reasons)
		assert.Equal(t, "Serves your Revenue Growth focus area", reasons[0])
	})

	t.Run("multiple matched areas are joined", func(t *testing.T) {
		score := PartnerScore{
			Total:             70,
			MatchedFocusAreas: []string{"revenue_growth", "team_building"},
		}

		reasons := generator.PartnerReasons(profile, models.Partner{ID: "p-1"}, score)
		require.NotEmpty(t, reasons)
		assert.Equal(t, "Serves your Revenue Growth and Team Building focus areas", reasons[0])
	})

	t.Run("capped at three", func(t *testing.T) {
		profile := testProfile()
		profile.Readiness = models.ReadinessIndicators{IncreasedTools: true, IncreasedPeople: true}
		profile.TeamSize = 80

		partner := models.Partner{ID: "p-1", PowerConfidenceScore: floatPtr(95)}
		score := PartnerScore{
			Total:             90,
			RevenueScore:      revenueTierExact,
			MatchedFocusAreas: []string{"revenue_growth"},
		}

		reasons := generator.PartnerReasons(profile, partner, score)
		assert.Len(t, reasons, 3)
	})

	t.Run("revenue reason names the formatted range", func(t *testing.T) {
		score := PartnerScore{Total: 60, RevenueScore: revenueTierCompatible}
		reasons := generator.PartnerReasons(profile, models.Partner{ID: "p-1"}, score)
		assert.Contains(t, reasons, "Works with contractors in the $5-10M revenue range")
	})

	t.Run("legacy revenue codes format as their modern range", func(t *testing.T) {
		legacyProfile := testProfile()
		legacyProfile.AnnualRevenue = "1m_5m"
		score := PartnerScore{Total: 60, RevenueScore: revenueTierCompatible}
		reasons := generator.PartnerReasons(legacyProfile, models.Partner{ID: "p-1"}, score)
		assert.Contains(t, reasons, "Works with contractors in the $0-5M revenue range")
	})

	t.Run("falls back to generic reason for nonzero score", func(t *testing.T) {
		score := PartnerScore{Total: 12}
		reasons := generator.PartnerReasons(profile, models.Partner{ID: "p-1"}, score)
		assert.Equal(t, []string{fallbackReason}, reasons)
	})

	t.Run("zero score may have no reasons", func(t *testing.T) {
		score := PartnerScore{Total: 0}
		reasons := generator.PartnerReasons(models.ContractorProfile{}, models.Partner{ID: "p-1"}, score)
		assert.Empty(t, reasons)
	})
}

func TestSecondaryPoolReasons(t *testing.T) {
	generator := NewReasonGenerator(DefaultTables())
	profile := testProfile()

	t.Run("podcast cadence", func(t *testing.T) {
		podcast := models.Podcast{ID: "pod-1", Frequency: strPtr("Weekly")}
		score := CandidateScore{Total: 50, MatchedFocusAreas: []string{"revenue_growth"}}

		reasons := generator.PodcastReasons(profile, podcast, score)
		assert.Equal(t, []string{
			"Covers Revenue Growth",
			"New episodes weekly",
		}, reasons)
	})

	t.Run("event recency and format", func(t *testing.T) {
		event := models.Event{ID: "e-1", Format: strPtr("in_person")}
		score := CandidateScore{Total: 60, MatchedFocusAreas: []string{"revenue_growth"}, EventSoon: true}

		reasons := generator.EventReasons(profile, event, score)
		assert.Equal(t, []string{
			"Covers Revenue Growth",
			"Happening soon, registration is open now",
			"In Person format",
		}, reasons)
	})

	t.Run("manufacturer tier and quality", func(t *testing.T) {
		manufacturer := models.Manufacturer{ID: "m-1", PowerConfidenceScore: floatPtr(95)}
		score := CandidateScore{Total: 75, MatchedFocusAreas: []string{"revenue_growth"}, RevenueTierFit: true, HighQuality: true}

		reasons := generator.ManufacturerReasons(profile, manufacturer, score)
		assert.Equal(t, []string{
			"Covers Revenue Growth",
			"Product pricing fits the $5-10M revenue range",
			"Top-rated manufacturer with a PowerConfidence score of 95",
		}, reasons)
	})
}
