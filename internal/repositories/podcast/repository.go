package podcast

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

// Repository handles podcast lookups
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) ListActivePodcasts(ctx context.Context) ([]models.Podcast, error) {
	ctx, span := tracing.StartSpan(ctx, "podcast.Repository.ListActivePodcasts")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "title", "host", "focus_areas_covered", "topic_tags", "frequency", "website", "is_active", "created_at", "updated_at")
	sb.From("podcasts")
	sb.Where(sb.Equal("is_active", true))
	sb.OrderBy("created_at ASC", "id ASC")
	query, args := sb.Build()

	var podcasts []models.Podcast
	if err := r.db.SelectContext(ctx, &podcasts, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to load active podcasts")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load podcasts")
	}

	return podcasts, nil
}
