package partner

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
)

var partnerColumns = []string{
	"id", "company_name", "description", "logo_url", "focus_areas_served",
	"target_revenue_range", "power_confidence_score", "key_differentiators",
	"pricing_model", "is_active", "created_at", "updated_at",
}

// Repository handles strategic partner lookups
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ListActivePartners returns every active partner in insertion order. The
// stable fetch order is what breaks score ties downstream.
func (r *Repository) ListActivePartners(ctx context.Context) ([]models.Partner, error) {
	ctx, span := tracing.StartSpan(ctx, "partner.Repository.ListActivePartners")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(partnerColumns...)
	sb.From("strategic_partners")
	sb.Where(sb.Equal("is_active", true))
	sb.OrderBy("created_at ASC", "id ASC")
	query, args := sb.Build()

	var partners []models.Partner
	if err := r.db.SelectContext(ctx, &partners, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to load active partners")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load partners")
	}

	return partners, nil
}

func (r *Repository) ListPartnersByIDs(ctx context.Context, ids []string) ([]models.Partner, error) {
	ctx, span := tracing.StartSpan(ctx, "partner.Repository.ListPartnersByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
	  SELECT id, company_name, description, logo_url, focus_areas_served,
			 target_revenue_range, power_confidence_score, key_differentiators,
			 pricing_model, is_active, created_at, updated_at
	  FROM strategic_partners
	  WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to build partner query")
	}
	query = r.db.Rebind(query)

	var partners []models.Partner
	if err := r.db.SelectContext(ctx, &partners, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to load partners by ids")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load partners")
	}

	return partners, nil
}
