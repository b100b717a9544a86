package contractor

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/huandu/go-sqlbuilder"
)

var contractorColumns = []string{
	"id", "name", "company_name", "service_area", "focus_areas", "primary_focus_area",
	"annual_revenue", "team_size",
	"tech_stack_sales", "tech_stack_operations", "tech_stack_marketing",
	"tech_stack_customer_experience", "tech_stack_project_management", "tech_stack_accounting_finance",
	"increased_tools", "increased_people", "increased_activity",
	"created_at", "updated_at",
}

// Repository handles contractor persistence and lookups
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetContractor(ctx context.Context, id string) (*models.Contractor, error) {
	ctx, span := tracing.StartSpan(ctx, "contractor.Repository.GetContractor")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(contractorColumns...)
	sb.From("contractors")
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var contractor models.Contractor
	if err := r.db.GetContext(ctx, &contractor, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "contractor not found")
		}
		r.logger.WithContext(ctx).WithError(err).WithField("contractor_id", id).Error("Failed to load contractor")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load contractor")
	}

	return &contractor, nil
}

// UpsertContractor inserts or refreshes a contractor profile. Used by the
// event consumer when upstream profile updates arrive.
func (r *Repository) UpsertContractor(ctx context.Context, c *models.Contractor) error {
	ctx, span := tracing.StartSpan(ctx, "contractor.Repository.UpsertContractor")
	defer span.End()

	now := time.Now().UTC()

	ib := database.NewInsertBuilder()
	ib.InsertInto("contractors")
	ib.Cols(contractorColumns...)
	ib.Values(
		c.ID, c.Name, c.CompanyName, c.ServiceArea, c.FocusAreas, c.PrimaryFocusArea,
		c.AnnualRevenue, c.TeamSize,
		c.TechStackSales, c.TechStackOperations, c.TechStackMarketing,
		c.TechStackCustomerExperience, c.TechStackProjectManagement, c.TechStackAccountingFinance,
		c.IncreasedTools, c.IncreasedPeople, c.IncreasedActivity,
		now, now,
	)
	ub := ib.OnConflict("id")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("company_name", database.Excluded("company_name")),
		ub.Assign("service_area", database.Excluded("service_area")),
		ub.Assign("focus_areas", database.Excluded("focus_areas")),
		ub.Assign("primary_focus_area", database.Excluded("primary_focus_area")),
		ub.Assign("annual_revenue", database.Excluded("annual_revenue")),
		ub.Assign("team_size", database.Excluded("team_size")),
		ub.Assign("tech_stack_sales", database.Excluded("tech_stack_sales")),
		ub.Assign("tech_stack_operations", database.Excluded("tech_stack_operations")),
		ub.Assign("tech_stack_marketing", database.Excluded("tech_stack_marketing")),
		ub.Assign("tech_stack_customer_experience", database.Excluded("tech_stack_customer_experience")),
		ub.Assign("tech_stack_project_management", database.Excluded("tech_stack_project_management")),
		ub.Assign("tech_stack_accounting_finance", database.Excluded("tech_stack_accounting_finance")),
		ub.Assign("increased_tools", database.Excluded("increased_tools")),
		ub.Assign("increased_people", database.Excluded("increased_people")),
		ub.Assign("increased_activity", database.Excluded("increased_activity")),
		ub.Assign("updated_at", database.Excluded("updated_at")),
	)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("contractor_id", c.ID).Error("Failed to upsert contractor")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert contractor")
	}

	return nil
}
