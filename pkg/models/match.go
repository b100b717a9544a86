package models

import (
	"time"

	"github.com/Ramsey-B/clover/pkg/database"
)

// PartnerMatch is a row in contractor_partner_matches. The set of rows for a
// contractor is replaced wholesale on every matching run, never patched.
type PartnerMatch struct {
	ID             string                   `json:"id" db:"id"`
	ContractorID   string                   `json:"contractor_id" db:"contractor_id"`
	PartnerID      string                   `json:"partner_id" db:"partner_id"`
	MatchScore     int                      `json:"match_score" db:"match_score"`
	MatchReasons   database.JSONB[[]string] `json:"match_reasons" db:"match_reasons"`
	IsPrimaryMatch bool                     `json:"is_primary_match" db:"is_primary_match"`
	CreatedAt      time.Time                `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at" db:"updated_at"`
}

// NewReasons wraps a reason list for the jsonb match_reasons column. A nil
// list is stored as an empty array, not null.
func NewReasons(reasons []string) database.JSONB[[]string] {
	if reasons == nil {
		reasons = []string{}
	}
	return database.NewJSONB(reasons)
}

type ScoredPartner struct {
	Partner   Partner  `json:"partner"`
	Score     int      `json:"score"`
	Reasons   []string `json:"reasons"`
	IsPrimary bool     `json:"is_primary"`
}

type ScoredPodcast struct {
	Podcast Podcast  `json:"podcast"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type ScoredEvent struct {
	Event   Event    `json:"event"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type ScoredManufacturer struct {
	Manufacturer Manufacturer `json:"manufacturer"`
	Score        int          `json:"score"`
	Reasons      []string     `json:"reasons"`
}

// MatchBundle is the full result of one matching run for a contractor.
type MatchBundle struct {
	ContractorID     string              `json:"contractor_id"`
	CurrentFocusArea string              `json:"current_focus_area"`
	AllFocusAreas    []string            `json:"all_focus_areas"`
	Partners         []ScoredPartner     `json:"partners"`
	Podcast          *ScoredPodcast      `json:"podcast,omitempty"`
	Event            *ScoredEvent        `json:"event,omitempty"`
	Manufacturer     *ScoredManufacturer `json:"manufacturer,omitempty"`
	ComputedAt       time.Time           `json:"computed_at"`
}

// ComputeMatchesRequest is the request body for triggering a matching run.
type ComputeMatchesRequest struct {
	FocusArea string `json:"focus_area,omitempty" validate:"omitempty,max=100"`
}
