package event

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

// Repository handles event lookups
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	ctx, span := tracing.StartSpan(ctx, "event.Repository.ListActiveEvents")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "name", "date", "registration_deadline", "focus_areas_covered", "format", "location", "expected_attendance", "is_active", "created_at", "updated_at")
	sb.From("events")
	sb.Where(sb.Equal("is_active", true))
	sb.OrderBy("date ASC NULLS LAST", "id ASC")
	query, args := sb.Build()

	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to load active events")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load events")
	}

	return events, nil
}
