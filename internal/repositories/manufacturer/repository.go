package manufacturer

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/huandu/go-sqlbuilder"
)

// Repository handles manufacturer lookups
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) ListActiveManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	ctx, span := tracing.StartSpan(ctx, "manufacturer.Repository.ListActiveManufacturers")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "name", "product_categories", "focus_areas_served", "price_range", "power_confidence_score", "lead_time_days", "is_active", "created_at", "updated_at")
	sb.From("manufacturers")
	sb.Where(sb.Equal("is_active", true))
	sb.OrderBy("created_at ASC", "id ASC")
	query, args := sb.Build()

	var manufacturers []models.Manufacturer
	if err := r.db.SelectContext(ctx, &manufacturers, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to load active manufacturers")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load manufacturers")
	}

	return manufacturers, nil
}
