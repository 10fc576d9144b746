package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type SwipeRepository struct {
	store *Store
}

func (r *SwipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := directed{from: swipe.FromUserID, to: swipe.ToUserID}
	if _, exists := r.store.swipes[key]; exists {
		return domain.ErrSwipeAlreadyExists
	}
	r.store.lastSwipeID++
	swipe.ID = r.store.lastSwipeID
	swipe.CreatedAt = r.store.now()
	stored := *swipe
	r.store.swipes[key] = &stored
	return nil
}

func (r *SwipeRepository) GetByUsers(ctx context.Context, fromUserID, toUserID int) (*domain.Swipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.swipes[directed{from: fromUserID, to: toUserID}]
	if !ok {
		return nil, domain.ErrSwipeNotFound
	}
	out := *s
	return &out, nil
}

func (r *SwipeRepository) HasLiked(ctx context.Context, fromUserID, toUserID int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.swipes[directed{from: fromUserID, to: toUserID}]
	return ok && s.Action == domain.SwipeLike, nil
}

func (r *SwipeRepository) GetLikesReceived(ctx context.Context, userID int, limit, offset int) ([]*domain.Swipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var likes []*domain.Swipe
	for key, s := range r.store.swipes {
		if key.to != userID || s.Action != domain.SwipeLike {
			continue
		}
		// likes already answered by the user are not pending
		if _, answered := r.store.swipes[directed{from: userID, to: key.from}]; answered {
			continue
		}
		out := *s
		likes = append(likes, &out)
	}
	sort.Slice(likes, func(i, j int) bool {
		return likes[i].ID > likes[j].ID
	})
	return paginate(likes, limit, offset), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
