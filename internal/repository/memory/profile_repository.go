package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type ProfileRepository struct {
	store *Store
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int) (*domain.ProfileFacts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, facts *domain.ProfileFacts) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, exists := r.store.profiles[facts.UserID]
	facts.UpdatedAt = r.store.now()
	stored := *facts
	r.store.profiles[facts.UserID] = &stored
	return !exists, nil
}

func (r *ProfileRepository) ListCandidates(ctx context.Context, viewerID int, limit int) ([]*domain.ProfileFacts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.ProfileFacts
	for id, p := range r.store.profiles {
		if id == viewerID || !p.IsVisible {
			continue
		}
		if _, swiped := r.store.swipes[directed{from: viewerID, to: id}]; swiped {
			continue
		}
		if r.store.blockedLocked(viewerID, id) {
			continue
		}
		c := *p
		out = append(out, &c)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
