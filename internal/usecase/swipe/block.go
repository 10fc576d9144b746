package swipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/events"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
)

// BlockRequest represents a block action
type BlockRequest struct {
	BlockedID   int                `json:"blocked" binding:"required,gt=0"`
	Reason      domain.BlockReason `json:"reason" binding:"omitempty,oneof=spam inappropriate harassment fake other"`
	Description string             `json:"description" binding:"max=1000"`
}

// Block stores the block and deactivates any match between the two users.
// The match row is kept so that history survives an unblock.
func (uc *SwipeUseCase) Block(ctx context.Context, blockerID int, req *BlockRequest) (*domain.Block, error) {
	ctx, span := tracing.StartSpan(ctx, "swipe.Block")
	defer span.End()

	if blockerID == req.BlockedID {
		return nil, domain.ErrCannotBlockSelf
	}
	if !req.Reason.IsValid() {
		return nil, domain.ErrInvalidBlockReason
	}

	block, match, err := uc.blockPair(ctx, blockerID, req)
	if err != nil {
		return nil, err
	}
	metrics.RecordBlock(string(req.Reason))

	if match != nil {
		metrics.RecordMatchEvent(metrics.MatchDeactivated)
		uc.log.Info("match deactivated by block", "match_id", match.ID, "blocker_id", blockerID)
		uc.publish(ctx, events.TypeMatchDeactivated, match, blockerID)
	}
	return block, nil
}

// blockPair stores the block under the pair lock and returns the match it deactivated, if any.
func (uc *SwipeUseCase) blockPair(ctx context.Context, blockerID int, req *BlockRequest) (*domain.Block, *domain.Match, error) {
	unlock, err := uc.locker.LockPair(ctx, blockerID, req.BlockedID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock pair: %w", err)
	}
	defer unlock()

	block := &domain.Block{
		BlockerID:   blockerID,
		BlockedID:   req.BlockedID,
		Reason:      req.Reason,
		Description: req.Description,
	}
	if err := uc.blockRepo.Create(ctx, block); err != nil {
		if errors.Is(err, domain.ErrBlockAlreadyExists) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to create block: %w", err)
	}

	match, err := uc.matchRepo.DeactivatePair(ctx, blockerID, req.BlockedID)
	switch {
	case errors.Is(err, domain.ErrMatchNotFound):
		return block, nil, nil
	case err != nil:
		return nil, nil, fmt.Errorf("failed to deactivate match: %w", err)
	}
	return block, match, nil
}

// Unblock removes the block. A match deactivated by it stays inactive.
func (uc *SwipeUseCase) Unblock(ctx context.Context, blockerID, blockedID int) error {
	if err := uc.blockRepo.Delete(ctx, blockerID, blockedID); err != nil {
		if errors.Is(err, domain.ErrBlockNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete block: %w", err)
	}
	return nil
}

func (uc *SwipeUseCase) ListBlocks(ctx context.Context, blockerID int) ([]*domain.Block, error) {
	blocks, err := uc.blockRepo.ListByBlocker(ctx, blockerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}
