// Package normalize canonicalizes raw contractor and candidate fields before
// scoring. Persisted list columns arrive as JSON arrays, comma strings, bare
// values, or junk left behind by older writers; everything here degrades to
// empty values instead of failing.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
)

// malformedSentinel is a stringified object written by a buggy legacy client.
// It carries no usable data and normalizes to an empty list.
const malformedSentinel = "[object Object]"

// Array canonicalizes any raw representation of a string list. Accepts nil,
// []string, *string, string, and json.RawMessage.
func Array(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanList(v)
	case *string:
		if v == nil {
			return []string{}
		}
		return parseString(*v)
	case string:
		return parseString(v)
	case json.RawMessage:
		return parseString(string(v))
	default:
		return []string{}
	}
}

func parseString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == malformedSentinel {
		return []string{}
	}

	// JSON first: arrays are used as-is, scalars are wrapped
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		switch p := parsed.(type) {
		case []any:
			out := make([]string, 0, len(p))
			for _, item := range p {
				if str, ok := item.(string); ok {
					out = append(out, str)
				}
			}
			return cleanList(out)
		case string:
			return cleanList([]string{p})
		case float64, bool:
			return []string{trimmed}
		default:
			// objects and null carry no list data
			return []string{}
		}
	}

	if strings.Contains(trimmed, ",") {
		return cleanList(strings.Split(trimmed, ","))
	}

	return []string{trimmed}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || item == malformedSentinel {
			continue
		}
		out = append(out, item)
	}
	return out
}

// String canonicalizes an optional text column to a trimmed value.
func String(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// FocusAreaLabel formats a focus-area code for display: underscores become
// spaces and each word is capitalized.
func FocusAreaLabel(code string) string {
	words := strings.Split(strings.ReplaceAll(code, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// TechStack builds the category → tools map from the contractor's six raw
// tech-stack columns. Categories with no tools are omitted.
func TechStack(c *models.Contractor) map[string][]string {
	columns := map[string]*string{
		"sales":               c.TechStackSales,
		"operations":          c.TechStackOperations,
		"marketing":           c.TechStackMarketing,
		"customer_experience": c.TechStackCustomerExperience,
		"project_management":  c.TechStackProjectManagement,
		"accounting_finance":  c.TechStackAccountingFinance,
	}

	stack := make(map[string][]string)
	for category, raw := range columns {
		tools := Array(raw)
		if len(tools) > 0 {
			stack[category] = tools
		}
	}
	return stack
}

// Profile canonicalizes a contractor row into the form the scoring engine
// consumes. focusAreaOverride, when non-empty and present in the contractor's
// focus areas, is promoted to the front of the list and becomes the primary.
func Profile(c *models.Contractor, focusAreaOverride string) models.ContractorProfile {
	focusAreas := Array(c.FocusAreas)

	primary := String(c.PrimaryFocusArea)
	if primary == "" && len(focusAreas) > 0 {
		primary = focusAreas[0]
	}

	if focusAreaOverride != "" {
		for i, area := range focusAreas {
			if area == focusAreaOverride {
				focusAreas = append(focusAreas[:i], focusAreas[i+1:]...)
				focusAreas = append([]string{focusAreaOverride}, focusAreas...)
				primary = focusAreaOverride
				break
			}
		}
	}

	teamSize := 0
	if c.TeamSize != nil {
		teamSize = *c.TeamSize
	}

	return models.ContractorProfile{
		ID:               c.ID,
		CompanyName:      c.CompanyName,
		FocusAreas:       focusAreas,
		PrimaryFocusArea: primary,
		AnnualRevenue:    String(c.AnnualRevenue),
		TeamSize:         teamSize,
		TechStack:        TechStack(c),
		Readiness: models.ReadinessIndicators{
			IncreasedTools:    c.IncreasedTools,
			IncreasedPeople:   c.IncreasedPeople,
			IncreasedActivity: c.IncreasedActivity,
		},
	}
}
