package normalize

import (
	"testing"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestArray(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{
			name:     "nil value",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "nil string pointer",
			input:    (*string)(nil),
			expected: []string{},
		},
		{
			name:     "string slice passes through cleaned",
			input:    []string{" revenue_growth ", "", "team_building"},
			expected: []string{"revenue_growth", "team_building"},
		},
		{
			name:     "json array string",
			input:    `["revenue_growth","team_building"]`,
			expected: []string{"revenue_growth", "team_building"},
		},
		{
			name:     "json string scalar wraps",
			input:    `"revenue_growth"`,
			expected: []string{"revenue_growth"},
		},
		{
			name:     "comma separated string",
			input:    "revenue_growth, team_building,  operations",
			expected: []string{"revenue_growth", "team_building", "operations"},
		},
		{
			name:     "bare value wraps",
			input:    "revenue_growth",
			expected: []string{"revenue_growth"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: []string{},
		},
		{
			name:     "malformed object sentinel",
			input:    "[object Object]",
			expected: []string{},
		},
		{
			name:     "json object carries no list data",
			input:    `{"focus":"revenue_growth"}`,
			expected: []string{},
		},
		{
			name:     "json null",
			input:    "null",
			expected: []string{},
		},
		{
			name:     "json array with mixed types keeps strings",
			input:    `["revenue_growth", 42, null, "operations"]`,
			expected: []string{"revenue_growth", "operations"},
		},
		{
			name:     "string pointer",
			input:    strPtr(`["greenfield"]`),
			expected: []string{"greenfield"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Array(tt.input))
		})
	}
}

func TestArrayIsIdempotent(t *testing.T) {
	inputs := []any{
		`["revenue_growth","team_building"]`,
		"revenue_growth, team_building",
		"[object Object]",
		"revenue_growth",
	}

	for _, input := range inputs {
		first := Array(input)
		second := Array(first)
		assert.Equal(t, first, second)
	}
}

func TestFocusAreaLabel(t *testing.T) {
	assert.Equal(t, "Revenue Growth", FocusAreaLabel("revenue_growth"))
	assert.Equal(t, "Customer Experience", FocusAreaLabel("customer_experience"))
	assert.Equal(t, "Operations", FocusAreaLabel("operations"))
	assert.Equal(t, "", FocusAreaLabel(""))
}

func TestTechStack(t *testing.T) {
	contractor := &models.Contractor{
		TechStackSales:      strPtr(`["HubSpot","Salesforce"]`),
		TechStackOperations: strPtr("Jobber, ServiceTitan"),
		TechStackMarketing:  strPtr(""),
	}

	stack := TechStack(contractor)

	assert.Equal(t, []string{"HubSpot", "Salesforce"}, stack["sales"])
	assert.Equal(t, []string{"Jobber", "ServiceTitan"}, stack["operations"])
	assert.NotContains(t, stack, "marketing")
	assert.NotContains(t, stack, "customer_experience")
}

func TestProfile(t *testing.T) {
	teamSize := 12
	base := func() *models.Contractor {
		return &models.Contractor{
			ID:            "c-1",
			CompanyName:   "Acme Contracting",
			FocusAreas:    strPtr(`["revenue_growth","team_building","operations"]`),
			AnnualRevenue: strPtr("5_10_million"),
			TeamSize:      &teamSize,
		}
	}

	t.Run("first focus area becomes primary by default", func(t *testing.T) {
		profile := Profile(base(), "")
		assert.Equal(t, "revenue_growth", profile.PrimaryFocusArea)
		assert.Equal(t, []string{"revenue_growth", "team_building", "operations"}, profile.FocusAreas)
	})

	t.Run("explicit primary column wins", func(t *testing.T) {
		c := base()
		c.PrimaryFocusArea = strPtr("team_building")
		profile := Profile(c, "")
		assert.Equal(t, "team_building", profile.PrimaryFocusArea)
	})

	t.Run("override promotes the area to the front", func(t *testing.T) {
		profile := Profile(base(), "operations")
		assert.Equal(t, "operations", profile.PrimaryFocusArea)
		assert.Equal(t, []string{"operations", "revenue_growth", "team_building"}, profile.FocusAreas)
	})

	t.Run("override not in the list is ignored", func(t *testing.T) {
		profile := Profile(base(), "greenfield")
		assert.Equal(t, "revenue_growth", profile.PrimaryFocusArea)
		assert.Equal(t, []string{"revenue_growth", "team_building", "operations"}, profile.FocusAreas)
	})

	t.Run("malformed focus areas degrade to empty", func(t *testing.T) {
		c := base()
		c.FocusAreas = strPtr("[object Object]")
		profile := Profile(c, "")
		assert.Empty(t, profile.FocusAreas)
		assert.Equal(t, "", profile.PrimaryFocusArea)
	})
}
