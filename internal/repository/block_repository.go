package repository

import (
	"context"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type BlockRepository interface {
	// Create returns ErrBlockAlreadyExists when the blocker already blocked that user.
	Create(ctx context.Context, block *domain.Block) error
	Delete(ctx context.Context, blockerID, blockedID int) error
	IsBlocked(ctx context.Context, user1ID, user2ID int) (bool, error)
	ListByBlocker(ctx context.Context, blockerID int) ([]*domain.Block, error)
}
