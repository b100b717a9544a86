package matching

import "strings"

// FocusWeights is the positional weight schedule for focus-area alignment.
type FocusWeights struct {
	Primary            float64
	Secondary          float64
	Tertiary           float64
	Additional         float64
	PrimaryServedBonus float64
}

// Tables holds the static compatibility configuration consumed by the scoring
// engine. Instances are immutable after construction; the engine never
// mutates them.
type Tables struct {
	FocusWeights FocusWeights

	// revenueAdjacency maps each modern revenue code to its compatibility
	// class: itself plus immediate neighbors on the ladder.
	revenueAdjacency map[string][]string

	// legacyRevenue maps retired revenue codes to their modern equivalents.
	legacyRevenue map[string]string

	// modernTools is a lowercased allowlist of tools that signal an
	// up-to-date stack.
	modernTools map[string]struct{}
}

// revenueLadder is the ordered set of modern revenue-range codes.
var revenueLadder = []string{
	"0_5_million",
	"5_10_million",
	"11_20_million",
	"21_30_million",
	"31_50_million",
	"51_75_million",
	"76_100_million",
	"101_150_million",
	"151_300_million",
	"300_plus_million",
}

var legacyRevenueCodes = map[string]string{
	"under_1m": "0_5_million",
	"1m_5m":    "0_5_million",
	"5m_10m":   "5_10_million",
	"10m_20m":  "11_20_million",
	"20m_30m":  "21_30_million",
	"30m_50m":  "31_50_million",
	"50m_plus": "51_75_million",
}

var defaultModernTools = []string{
	"hubspot",
	"salesforce",
	"pipedrive",
	"servicetitan",
	"jobber",
	"jobnimbus",
	"buildertrend",
	"acculynx",
	"monday.com",
	"asana",
	"quickbooks online",
	"netsuite",
	"slack",
	"podium",
	"companycam",
}

// NewTables builds a Tables with the given weights and modern-tool allowlist.
// The revenue adjacency classes are derived from the ladder order.
func NewTables(weights FocusWeights, modernTools []string) *Tables {
	adjacency := make(map[string][]string, len(revenueLadder))
	for i, code := range revenueLadder {
		class := []string{code}
		if i > 0 {
			class = append(class, revenueLadder[i-1])
		}
		if i < len(revenueLadder)-1 {
			class = append(class, revenueLadder[i+1])
		}
		adjacency[code] = class
	}

	tools := make(map[string]struct{}, len(modernTools))
	for _, tool := range modernTools {
		tools[strings.ToLower(strings.TrimSpace(tool))] = struct{}{}
	}

	return &Tables{
		FocusWeights:     weights,
		revenueAdjacency: adjacency,
		legacyRevenue:    legacyRevenueCodes,
		modernTools:      tools,
	}
}

// DefaultTables returns the production configuration.
func DefaultTables() *Tables {
	return NewTables(FocusWeights{
		Primary:            3.0,
		Secondary:          2.0,
		Tertiary:           1.0,
		Additional:         1.0,
		PrimaryServedBonus: 2.0,
	}, defaultModernTools)
}

// ResolveRevenue maps a revenue code to its modern equivalent. Unknown codes
// pass through unchanged.
func (t *Tables) ResolveRevenue(code string) string {
	if modern, ok := t.legacyRevenue[code]; ok {
		return modern
	}
	return code
}

// CompatibleRevenues returns the compatibility class for a revenue code:
// itself plus immediate ladder neighbors. Legacy codes resolve to the class
// of their modern equivalent. Unknown codes have an empty class.
func (t *Tables) CompatibleRevenues(code string) []string {
	return t.revenueAdjacency[t.ResolveRevenue(code)]
}

// RevenueCompatible reports whether two revenue codes fall in the same
// compatibility class.
func (t *Tables) RevenueCompatible(contractorCode, candidateCode string) bool {
	candidate := t.ResolveRevenue(candidateCode)
	for _, code := range t.CompatibleRevenues(contractorCode) {
		if code == candidate {
			return true
		}
	}
	return false
}

// PositionalWeight returns the weight for a focus area at the given position
// in the contractor's ordered list.
func (t *Tables) PositionalWeight(position int) float64 {
	switch position {
	case 0:
		return t.FocusWeights.Primary
	case 1:
		return t.FocusWeights.Secondary
	case 2:
		return t.FocusWeights.Tertiary
	default:
		return t.FocusWeights.Additional
	}
}

// IsModernTool reports whether the tool is on the modern-stack allowlist.
// Comparison is case-insensitive.
func (t *Tables) IsModernTool(name string) bool {
	_, ok := t.modernTools[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
