package partnermatch

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

// Repository handles the contractor_partner_matches table
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ReplaceForContractor swaps the contractor's match set in one transaction:
// delete everything, insert the new rows. A failure anywhere aborts the whole
// swap so a partial set is never visible.
func (r *Repository) ReplaceForContractor(ctx context.Context, contractorID string, matches []models.PartnerMatch) error {
	ctx, span := tracing.StartSpan(ctx, "partnermatch.Repository.ReplaceForContractor")
	defer span.End()

	txCtx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	// rollback with the pre-transaction context so an aborted swap really
	// rolls back instead of seeing the open-transaction marker
	defer tx.Rollback(ctx)

	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("contractor_partner_matches")
	db.Where(db.Equal("contractor_id", contractorID))
	query, args := db.Build()
	if _, err := tx.ExecContext(txCtx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("contractor_id", contractorID).Error("Failed to delete existing partner matches")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete existing partner matches")
	}

	if len(matches) == 0 {
		if err := tx.Commit(txCtx); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithField("contractor_id", contractorID).Error("Failed to commit transaction")
			return httperror.NewHTTPError(http.StatusInternalServerError, "failed to commit")
		}
		return nil
	}

	const batchSize = 500
	for i := 0; i < len(matches); i += batchSize {
		end := i + batchSize
		if end > len(matches) {
			end = len(matches)
		}

		ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
		ib.InsertInto("contractor_partner_matches")
		ib.Cols("id", "contractor_id", "partner_id", "match_score", "match_reasons", "is_primary_match", "created_at", "updated_at")
		for _, match := range matches[i:end] {
			ib.Values(match.ID, match.ContractorID, match.PartnerID, match.MatchScore, match.MatchReasons, match.IsPrimaryMatch, match.CreatedAt, match.UpdatedAt)
		}
		query, args := ib.Build()
		if _, err := tx.ExecContext(txCtx, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithField("contractor_id", contractorID).Error("Failed to insert partner matches")
			return httperror.NewHTTPError(http.StatusInternalServerError, "failed to insert partner matches")
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("contractor_id", contractorID).Error("Failed to commit transaction")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to commit")
	}
	return nil
}

// ListForContractor returns the stored match set, primary first, then by
// descending score.
func (r *Repository) ListForContractor(ctx context.Context, contractorID string) ([]models.PartnerMatch, error) {
	ctx, span := tracing.StartSpan(ctx, "partnermatch.Repository.ListForContractor")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "contractor_id", "partner_id", "match_score", "match_reasons", "is_primary_match", "created_at", "updated_at")
	sb.From("contractor_partner_matches")
	sb.Where(sb.Equal("contractor_id", contractorID))
	sb.OrderBy("is_primary_match DESC", "match_score DESC", "id ASC")
	query, args := sb.Build()

	var matches []models.PartnerMatch
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("contractor_id", contractorID).Error("Failed to load partner matches")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load partner matches")
	}

	return matches, nil
}
