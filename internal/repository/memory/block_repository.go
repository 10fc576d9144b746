package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type BlockRepository struct {
	store *Store
}

func (r *BlockRepository) Create(ctx context.Context, block *domain.Block) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := directed{from: block.BlockerID, to: block.BlockedID}
	if _, exists := r.store.blocks[key]; exists {
		return domain.ErrBlockAlreadyExists
	}
	r.store.lastBlockID++
	block.ID = r.store.lastBlockID
	block.CreatedAt = r.store.now()
	stored := *block
	r.store.blocks[key] = &stored
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, blockerID, blockedID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := directed{from: blockerID, to: blockedID}
	if _, exists := r.store.blocks[key]; !exists {
		return domain.ErrBlockNotFound
	}
	delete(r.store.blocks, key)
	return nil
}

func (r *BlockRepository) IsBlocked(ctx context.Context, user1ID, user2ID int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.blockedLocked(user1ID, user2ID), nil
}

func (r *BlockRepository) ListByBlocker(ctx context.Context, blockerID int) ([]*domain.Block, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var blocks []*domain.Block
	for key, b := range r.store.blocks {
		if key.from == blockerID {
			out := *b
			blocks = append(blocks, &out)
		}
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].ID > blocks[j].ID
	})
	return blocks, nil
}

// blockedLocked reports a block in either direction. Callers hold s.mu.
func (s *Store) blockedLocked(a, b int) bool {
	if _, ok := s.blocks[directed{from: a, to: b}]; ok {
		return true
	}
	_, ok := s.blocks[directed{from: b, to: a}]
	return ok
}
