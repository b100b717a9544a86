package models

import "time"

// EntityType identifies which candidate pool a match came from.
type EntityType string

const (
	EntityTypePartner      EntityType = "partner"
	EntityTypePodcast      EntityType = "podcast"
	EntityTypeEvent        EntityType = "event"
	EntityTypeManufacturer EntityType = "manufacturer"
)

// Partner is a strategic partner candidate. List-valued columns are raw text
// like the contractor's.
type Partner struct {
	ID                   string    `json:"id" db:"id"`
	CompanyName          string    `json:"company_name" db:"company_name"`
	Description          *string   `json:"description,omitempty" db:"description"`
	LogoURL              *string   `json:"logo_url,omitempty" db:"logo_url"`
	FocusAreasServed     *string   `json:"focus_areas_served,omitempty" db:"focus_areas_served"`
	TargetRevenueRange   *string   `json:"target_revenue_range,omitempty" db:"target_revenue_range"`
	PowerConfidenceScore *float64  `json:"power_confidence_score,omitempty" db:"power_confidence_score"`
	KeyDifferentiators   *string   `json:"key_differentiators,omitempty" db:"key_differentiators"`
	PricingModel         *string   `json:"pricing_model,omitempty" db:"pricing_model"`
	IsActive             bool      `json:"is_active" db:"is_active"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

type Podcast struct {
	ID                string    `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Host              *string   `json:"host,omitempty" db:"host"`
	FocusAreasCovered *string   `json:"focus_areas_covered,omitempty" db:"focus_areas_covered"`
	TopicTags         *string   `json:"topic_tags,omitempty" db:"topic_tags"`
	Frequency         *string   `json:"frequency,omitempty" db:"frequency"`
	Website           *string   `json:"website,omitempty" db:"website"`
	IsActive          bool      `json:"is_active" db:"is_active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type Event struct {
	ID                   string     `json:"id" db:"id"`
	Name                 string     `json:"name" db:"name"`
	Date                 *time.Time `json:"date,omitempty" db:"date"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty" db:"registration_deadline"`
	FocusAreasCovered    *string    `json:"focus_areas_covered,omitempty" db:"focus_areas_covered"`
	Format               *string    `json:"format,omitempty" db:"format"`
	Location             *string    `json:"location,omitempty" db:"location"`
	ExpectedAttendance   *string    `json:"expected_attendance,omitempty" db:"expected_attendance"`
	IsActive             bool       `json:"is_active" db:"is_active"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

type Manufacturer struct {
	ID                   string    `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	ProductCategories    *string   `json:"product_categories,omitempty" db:"product_categories"`
	FocusAreasServed     *string   `json:"focus_areas_served,omitempty" db:"focus_areas_served"`
	PriceRange           *string   `json:"price_range,omitempty" db:"price_range"`
	PowerConfidenceScore *float64  `json:"power_confidence_score,omitempty" db:"power_confidence_score"`
	LeadTimeDays         *int      `json:"lead_time_days,omitempty" db:"lead_time_days"`
	IsActive             bool      `json:"is_active" db:"is_active"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}
