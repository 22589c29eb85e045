package postgres

import (
	"context"
	"fmt"

	"github.com/retailpulse/backend/internal/domain"
)

type transferRepository struct {
	db *DB
}

func NewTransferRepository(db *DB) *transferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) InsertRejection(ctx context.Context, rejection *domain.TransferRejection) error {
	query := `
		INSERT INTO transfer_rejections (source_store_id, target_store_id, product_id, reason, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		rejection.SourceStoreID, rejection.TargetStoreID, rejection.ProductID, rejection.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer rejection: %w", err)
	}
	return nil
}

// IncrementRoutePenalty bumps the penalty counter for a source→target
// pair, creating the row on first rejection, and returns the new score.
func (r *transferRepository) IncrementRoutePenalty(ctx context.Context, sourceStoreID, targetStoreID int64) (int, error) {
	query := `
		INSERT INTO route_penalties (source_store_id, target_store_id, penalty_score, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (source_store_id, target_store_id)
		DO UPDATE SET penalty_score = route_penalties.penalty_score + 1, updated_at = NOW()
		RETURNING penalty_score
	`

	var score int
	if err := r.db.QueryRowContext(ctx, query, sourceStoreID, targetStoreID).Scan(&score); err != nil {
		return 0, fmt.Errorf("failed to increment route penalty: %w", err)
	}
	return score, nil
}
