package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *domain.Block) error {
	ctx, span := tracing.StartSpan(ctx, "postgres.blockRepository.Create")
	defer span.End()

	query := `
		INSERT INTO blocks (blocker_id, blocked_id, reason, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, block.BlockerID, block.BlockedID, block.Reason, block.Description).
		Scan(&block.ID, &block.CreatedAt)
	if hasCode(err, uniqueViolation) {
		return domain.ErrBlockAlreadyExists
	}
	return err
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID int) error {
	ctx, span := tracing.StartSpan(ctx, "postgres.blockRepository.Delete")
	defer span.End()

	result, err := r.db.ExecContext(ctx, `DELETE FROM blocks WHERE blocker_id = $1 AND blocked_id = $2`, blockerID, blockedID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}

func (r *blockRepository) IsBlocked(ctx context.Context, user1ID, user2ID int) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.blockRepository.IsBlocked")
	defer span.End()

	var blocked bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocks
			WHERE (blocker_id = $1 AND blocked_id = $2) OR (blocker_id = $2 AND blocked_id = $1)
		)
	`
	err := r.db.GetContext(ctx, &blocked, query, user1ID, user2ID)
	return blocked, err
}

func (r *blockRepository) ListByBlocker(ctx context.Context, blockerID int) ([]*domain.Block, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.blockRepository.ListByBlocker")
	defer span.End()

	var blocks []*domain.Block
	query := `
		SELECT id, blocker_id, blocked_id, reason, description, created_at
		FROM blocks WHERE blocker_id = $1
		ORDER BY id DESC
	`
	err := r.db.SelectContext(ctx, &blocks, query, blockerID)
	return blocks, err
}
