package matching

import (
	"math"
	"time"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalize"
)

// Partner dimension weights. They sum to 1.
const (
	weightFocus     = 0.50
	weightRevenue   = 0.15
	weightTechStack = 0.15
	weightQuality   = 0.10
	weightReadiness = 0.10
)

// Revenue compatibility tiers.
const (
	revenueTierExact        = 100.0
	revenueTierCompatible   = 75.0
	revenueTierIncompatible = 25.0
	revenueTierUnknown      = 50.0
)

const (
	readinessPointsPerFlag = 100.0 / 3.0
	highQualityThreshold   = 90.0
)

// Secondary-pool scoring bonuses.
const (
	primaryCoverageBonus  = 50
	additionalAreaBonus   = 20
	eventSoonBonus        = 10
	revenueTierFitBonus   = 15
	highQualityScoreBonus = 10
)

// PartnerScore is a scored partner with the per-dimension breakdown the
// reason generator needs.
type PartnerScore struct {
	Total             int
	FocusScore        float64
	RevenueScore      float64
	TechScore         float64
	QualityScore      float64
	ReadinessScore    float64
	MatchedFocusAreas []string
	PrimaryServed     bool
}

// CandidateScore is a scored podcast, event, or manufacturer.
type CandidateScore struct {
	Total             int
	MatchedFocusAreas []string
	PrimaryCovered    bool
	EventSoon         bool
	RevenueTierFit    bool
	HighQuality       bool
}

// Engine computes compatibility scores between a normalized contractor
// profile and candidates. It holds no mutable state; a single instance is
// safe for concurrent use.
type Engine struct {
	tables          *Tables
	eventSoonWindow time.Duration
	now             func() time.Time
}

func NewEngine(tables *Tables, eventSoonWindowDays int) *Engine {
	return &Engine{
		tables:          tables,
		eventSoonWindow: time.Duration(eventSoonWindowDays) * 24 * time.Hour,
		now:             time.Now,
	}
}

// ScorePartner computes the weighted multi-dimension partner score.
func (e *Engine) ScorePartner(profile models.ContractorProfile, partner models.Partner) PartnerScore {
	served := normalize.Array(partner.FocusAreasServed)
	targetRevenues := normalize.Array(partner.TargetRevenueRange)

	focus, matched, primaryServed := e.focusAlignment(profile, served)
	revenue := e.revenueCompatibility(profile.AnnualRevenue, targetRevenues)
	tech := e.techStackCompatibility(profile.TechStack)

	quality := 0.0
	if partner.PowerConfidenceScore != nil {
		quality = clamp(*partner.PowerConfidenceScore, 0, 100)
	}

	readiness := float64(profile.Readiness.Count()) * readinessPointsPerFlag

	total := weightFocus*focus +
		weightRevenue*revenue +
		weightTechStack*tech +
		weightQuality*quality +
		weightReadiness*readiness

	return PartnerScore{
		Total:             clampScore(total),
		FocusScore:        focus,
		RevenueScore:      revenue,
		TechScore:         tech,
		QualityScore:      quality,
		ReadinessScore:    readiness,
		MatchedFocusAreas: matched,
		PrimaryServed:     primaryServed,
	}
}

// ScorePodcast applies the two-tier coverage rule.
func (e *Engine) ScorePodcast(profile models.ContractorProfile, podcast models.Podcast) CandidateScore {
	return e.scoreCoverage(profile, normalize.Array(podcast.FocusAreasCovered))
}

// ScoreEvent applies the two-tier coverage rule plus a bonus for events
// happening soon.
func (e *Engine) ScoreEvent(profile models.ContractorProfile, event models.Event) CandidateScore {
	score := e.scoreCoverage(profile, normalize.Array(event.FocusAreasCovered))

	if event.Date != nil {
		until := event.Date.Sub(e.now())
		if until >= 0 && until <= e.eventSoonWindow {
			score.EventSoon = true
			score.Total = clampScore(float64(score.Total + eventSoonBonus))
		}
	}

	return score
}

// ScoreManufacturer applies the two-tier coverage rule plus revenue-tier and
// quality bonuses.
func (e *Engine) ScoreManufacturer(profile models.ContractorProfile, manufacturer models.Manufacturer) CandidateScore {
	score := e.scoreCoverage(profile, normalize.Array(manufacturer.FocusAreasServed))

	if e.priceRangeFits(profile.AnnualRevenue, normalize.String(manufacturer.PriceRange)) {
		score.RevenueTierFit = true
		score.Total = clampScore(float64(score.Total + revenueTierFitBonus))
	}

	if manufacturer.PowerConfidenceScore != nil && *manufacturer.PowerConfidenceScore >= highQualityThreshold {
		score.HighQuality = true
		score.Total = clampScore(float64(score.Total + highQualityScoreBonus))
	}

	return score
}

// scoreCoverage awards the primary-coverage bonus once, then the additional
// bonus per other overlapping area. The primary area never counts twice.
func (e *Engine) scoreCoverage(profile models.ContractorProfile, covered []string) CandidateScore {
	coveredSet := toSet(covered)

	score := 0
	var matched []string
	primaryCovered := false

	if profile.PrimaryFocusArea != "" {
		if _, ok := coveredSet[profile.PrimaryFocusArea]; ok {
			primaryCovered = true
			matched = append(matched, profile.PrimaryFocusArea)
			score += primaryCoverageBonus
		}
	}

	for _, area := range profile.FocusAreas {
		if area == profile.PrimaryFocusArea {
			continue
		}
		if _, ok := coveredSet[area]; ok {
			matched = append(matched, area)
			score += additionalAreaBonus
		}
	}

	return CandidateScore{
		Total:             clampScore(float64(score)),
		MatchedFocusAreas: matched,
		PrimaryCovered:    primaryCovered,
	}
}

// focusAlignment scores how well the candidate's served areas cover the
// contractor's ordered focus areas, as a share of the best possible coverage.
func (e *Engine) focusAlignment(profile models.ContractorProfile, served []string) (float64, []string, bool) {
	if len(profile.FocusAreas) == 0 {
		return 0, nil, false
	}

	servedSet := toSet(served)

	possible := e.tables.FocusWeights.PrimaryServedBonus
	earned := 0.0
	var matched []string
	for i, area := range profile.FocusAreas {
		weight := e.tables.PositionalWeight(i)
		possible += weight
		if _, ok := servedSet[area]; ok {
			earned += weight
			matched = append(matched, area)
		}
	}

	primaryServed := false
	if profile.PrimaryFocusArea != "" {
		if _, ok := servedSet[profile.PrimaryFocusArea]; ok {
			primaryServed = true
			earned += e.tables.FocusWeights.PrimaryServedBonus
		}
	}

	return clamp(earned/possible*100, 0, 100), matched, primaryServed
}

// revenueCompatibility resolves the contractor's range against the
// candidate's served set into one of the four compatibility tiers.
func (e *Engine) revenueCompatibility(contractorRevenue string, targetRevenues []string) float64 {
	if contractorRevenue == "" || len(targetRevenues) == 0 {
		return revenueTierUnknown
	}

	// exact tier requires the raw code; a legacy code resolving into a served
	// modern range is only adjacency-compatible
	for _, target := range targetRevenues {
		if target == contractorRevenue {
			return revenueTierExact
		}
	}

	for _, target := range targetRevenues {
		if e.tables.RevenueCompatible(contractorRevenue, target) {
			return revenueTierCompatible
		}
	}

	return revenueTierIncompatible
}

// techStackCompatibility averages the per-category scores over populated
// categories. A contractor with no tech-stack data at all is neutral.
func (e *Engine) techStackCompatibility(stack map[string][]string) float64 {
	if len(stack) == 0 {
		return revenueTierUnknown
	}

	sum := 0.0
	for _, tools := range stack {
		category := 75.0

		for _, tool := range tools {
			if e.tables.IsModernTool(tool) {
				category += 15
				break
			}
		}

		if len(tools) > 0 {
			category += 10
		}
		if len(tools) > 3 {
			category -= 5 // complexity penalty
		}

		sum += clamp(category, 0, 100)
	}

	return sum / float64(len(stack))
}

// priceRangeFits maps a manufacturer price range onto the contractor's rung
// of the revenue ladder.
func (e *Engine) priceRangeFits(contractorRevenue, priceRange string) bool {
	if contractorRevenue == "" || priceRange == "" {
		return false
	}

	rung := -1
	resolved := e.tables.ResolveRevenue(contractorRevenue)
	for i, code := range revenueLadder {
		if code == resolved {
			rung = i
			break
		}
	}
	if rung < 0 {
		return false
	}

	switch priceRange {
	case "budget":
		return rung == 0
	case "mid_range":
		return rung >= 0 && rung <= 2
	case "premium":
		return rung >= 1
	default:
		return false
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampScore rounds to the nearest integer and bounds the result to [0,100].
func clampScore(v float64) int {
	rounded := int(math.Round(v))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
