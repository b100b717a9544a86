package models

import "time"

// Contractor is the persisted profile. List-valued columns are stored as raw
// text (JSON arrays, comma strings, or worse) and are canonicalized at read
// time before scoring.
type Contractor struct {
	ID               string  `json:"id" db:"id"`
	Name             string  `json:"name" db:"name"`
	CompanyName      string  `json:"company_name" db:"company_name"`
	ServiceArea      *string `json:"service_area,omitempty" db:"service_area"`
	FocusAreas       *string `json:"focus_areas,omitempty" db:"focus_areas"`
	PrimaryFocusArea *string `json:"primary_focus_area,omitempty" db:"primary_focus_area"`
	AnnualRevenue    *string `json:"annual_revenue,omitempty" db:"annual_revenue"`
	TeamSize         *int    `json:"team_size,omitempty" db:"team_size"`

	TechStackSales              *string `json:"tech_stack_sales,omitempty" db:"tech_stack_sales"`
	TechStackOperations         *string `json:"tech_stack_operations,omitempty" db:"tech_stack_operations"`
	TechStackMarketing          *string `json:"tech_stack_marketing,omitempty" db:"tech_stack_marketing"`
	TechStackCustomerExperience *string `json:"tech_stack_customer_experience,omitempty" db:"tech_stack_customer_experience"`
	TechStackProjectManagement  *string `json:"tech_stack_project_management,omitempty" db:"tech_stack_project_management"`
	TechStackAccountingFinance  *string `json:"tech_stack_accounting_finance,omitempty" db:"tech_stack_accounting_finance"`

	IncreasedTools    bool `json:"increased_tools" db:"increased_tools"`
	IncreasedPeople   bool `json:"increased_people" db:"increased_people"`
	IncreasedActivity bool `json:"increased_activity" db:"increased_activity"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReadinessIndicators are the growth-investment flags used by the readiness
// scoring dimension.
type ReadinessIndicators struct {
	IncreasedTools    bool `json:"increased_tools"`
	IncreasedPeople   bool `json:"increased_people"`
	IncreasedActivity bool `json:"increased_activity"`
}

func (r ReadinessIndicators) Count() int {
	count := 0
	if r.IncreasedTools {
		count++
	}
	if r.IncreasedPeople {
		count++
	}
	if r.IncreasedActivity {
		count++
	}
	return count
}

// ContractorProfile is the canonical form of a contractor used by the scoring
// engine. FocusAreas is ordered; index 0 is the primary unless overridden.
type ContractorProfile struct {
	ID               string              `json:"id"`
	CompanyName      string              `json:"company_name"`
	FocusAreas       []string            `json:"focus_areas"`
	PrimaryFocusArea string              `json:"primary_focus_area"`
	AnnualRevenue    string              `json:"annual_revenue"`
	TeamSize         int                 `json:"team_size"`
	TechStack        map[string][]string `json:"tech_stack"`
	Readiness        ReadinessIndicators `json:"readiness_indicators"`
}
