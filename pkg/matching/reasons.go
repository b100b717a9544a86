package matching

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalize"
)

const maxReasons = 3

const fallbackReason = "Recommended based on your overall business profile"

// revenueLabels formats revenue codes for display in reasons.
var revenueLabels = map[string]string{
	"0_5_million":      "$0-5M",
	"5_10_million":     "$5-10M",
	"11_20_million":    "$11-20M",
	"21_30_million":    "$21-30M",
	"31_50_million":    "$31-50M",
	"51_75_million":    "$51-75M",
	"76_100_million":   "$76-100M",
	"101_150_million":  "$101-150M",
	"151_300_million":  "$151-300M",
	"300_plus_million": "$300M+",
}

// ReasonGenerator renders the short explanation strings attached to each
// match. Rules fire independently in priority order; output is capped.
type ReasonGenerator struct {
	tables *Tables
}

func NewReasonGenerator(tables *Tables) *ReasonGenerator {
	return &ReasonGenerator{tables: tables}
}

func (g *ReasonGenerator) RevenueLabel(code string) string {
	resolved := g.tables.ResolveRevenue(code)
	if label, ok := revenueLabels[resolved]; ok {
		return label
	}
	return normalize.FocusAreaLabel(code)
}

// PartnerReasons builds the ranked reason list for a partner match.
func (g *ReasonGenerator) PartnerReasons(profile models.ContractorProfile, partner models.Partner, score PartnerScore) []string {
	var reasons []string

	if len(score.MatchedFocusAreas) > 0 {
		reasons = append(reasons, focusOverlapReason(score.MatchedFocusAreas))
	}

	if score.RevenueScore >= revenueTierCompatible && profile.AnnualRevenue != "" {
		reasons = append(reasons, fmt.Sprintf("Works with contractors in the %s revenue range", g.RevenueLabel(profile.AnnualRevenue)))
	}

	if partner.PowerConfidenceScore != nil && *partner.PowerConfidenceScore >= highQualityThreshold {
		reasons = append(reasons, fmt.Sprintf("Top-rated partner with a PowerConfidence score of %.0f", *partner.PowerConfidenceScore))
	}

	if profile.Readiness.Count() >= 2 {
		reasons = append(reasons, "Strong fit for your current growth investments")
	}

	if profile.TeamSize >= 50 {
		reasons = append(reasons, "Experienced with larger contractor teams")
	}

	return capReasons(reasons, score.Total)
}

// PodcastReasons builds the reason list for a podcast match.
func (g *ReasonGenerator) PodcastReasons(profile models.ContractorProfile, podcast models.Podcast, score CandidateScore) []string {
	var reasons []string

	if len(score.MatchedFocusAreas) > 0 {
		reasons = append(reasons, focusCoverageReason(score.MatchedFocusAreas))
	}

	if frequency := normalize.String(podcast.Frequency); frequency != "" {
		reasons = append(reasons, fmt.Sprintf("New episodes %s", strings.ToLower(frequency)))
	}

	return capReasons(reasons, score.Total)
}

// EventReasons builds the reason list for an event match.
func (g *ReasonGenerator) EventReasons(profile models.ContractorProfile, event models.Event, score CandidateScore) []string {
	var reasons []string

	if len(score.MatchedFocusAreas) > 0 {
		reasons = append(reasons, focusCoverageReason(score.MatchedFocusAreas))
	}

	if score.EventSoon {
		reasons = append(reasons, "Happening soon, registration is open now")
	}

	if format := normalize.String(event.Format); format != "" {
		reasons = append(reasons, fmt.Sprintf("%s format", normalize.FocusAreaLabel(format)))
	}

	return capReasons(reasons, score.Total)
}

// ManufacturerReasons builds the reason list for a manufacturer match.
func (g *ReasonGenerator) ManufacturerReasons(profile models.ContractorProfile, manufacturer models.Manufacturer, score CandidateScore) []string {
	var reasons []string

	if len(score.MatchedFocusAreas) > 0 {
		reasons = append(reasons, focusCoverageReason(score.MatchedFocusAreas))
	}

	if score.RevenueTierFit && profile.AnnualRevenue != "" {
		reasons = append(reasons, fmt.Sprintf("Product pricing fits the %s revenue range", g.RevenueLabel(profile.AnnualRevenue)))
	}

	if score.HighQuality && manufacturer.PowerConfidenceScore != nil {
		reasons = append(reasons, fmt.Sprintf("Top-rated manufacturer with a PowerConfidence score of %.0f", *manufacturer.PowerConfidenceScore))
	}

	return capReasons(reasons, score.Total)
}

func focusOverlapReason(matched []string) string {
	labels := make([]string, len(matched))
	for i, area := range matched {
		labels[i] = normalize.FocusAreaLabel(area)
	}
	if len(labels) == 1 {
		return fmt.Sprintf("Serves your %s focus area", labels[0])
	}
	return fmt.Sprintf("Serves your %s focus areas", joinWithAnd(labels))
}

func focusCoverageReason(matched []string) string {
	labels := make([]string, len(matched))
	for i, area := range matched {
		labels[i] = normalize.FocusAreaLabel(area)
	}
	if len(labels) == 1 {
		return fmt.Sprintf("Covers %s", labels[0])
	}
	return fmt.Sprintf("Covers %s", joinWithAnd(labels))
}

func joinWithAnd(items []string) string {
	if len(items) <= 1 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// capReasons trims to the display limit and guarantees a non-empty list for
// any candidate that scored at all.
func capReasons(reasons []string, total int) []string {
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	if len(reasons) == 0 && total > 0 {
		reasons = []string{fallbackReason}
	}
	return reasons
}
