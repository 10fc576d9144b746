package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) CreateWithConversation(ctx context.Context, match *domain.Match) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	match.User1ID, match.User2ID = domain.PairKey(match.User1ID, match.User2ID)
	key := pair{lo: match.User1ID, hi: match.User2ID}
	if existing, ok := r.store.matches[key]; ok {
		*match = *existing
		return false, nil
	}

	now := r.store.now()
	r.store.lastMatchID++
	r.store.lastConversationID++
	match.ID = r.store.lastMatchID
	match.ConversationID = r.store.lastConversationID
	match.MatchedAt = now

	stored := *match
	r.store.matches[key] = &stored
	r.store.conversations[match.ConversationID] = &domain.Conversation{
		ID:        match.ConversationID,
		MatchID:   match.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return true, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, m := range r.store.matches {
		if m.ID == id {
			out := *m
			return &out, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *MatchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.matches[newPair(user1ID, user2ID)]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	out := *m
	return &out, nil
}

func (r *MatchRepository) GetActiveMatches(ctx context.Context, userID int) ([]*domain.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matches []*domain.Match
	for _, m := range r.store.matches {
		if m.IsActive && m.HasUser(userID) {
			out := *m
			matches = append(matches, &out)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].MatchedAt.Equal(matches[j].MatchedAt) {
			return matches[i].MatchedAt.After(matches[j].MatchedAt)
		}
		return matches[i].ID > matches[j].ID
	})
	return matches, nil
}

func (r *MatchRepository) DeactivatePair(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[newPair(user1ID, user2ID)]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	m.IsActive = false
	out := *m
	return &out, nil
}

func (r *MatchRepository) DeletePair(ctx context.Context, user1ID, user2ID int) (domain.CleanupResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var res domain.CleanupResult
	key := newPair(user1ID, user2ID)
	m, ok := r.store.matches[key]
	if !ok {
		return res, domain.ErrMatchNotFound
	}

	res.ConversationsDeleted, res.MessagesDeleted = r.store.dropConversation(m.ID)
	delete(r.store.matches, key)
	res.MatchesDeleted = 1
	res.SwipesDeleted = r.store.dropSwipe(user1ID, user2ID) + r.store.dropSwipe(user2ID, user1ID)
	return res, nil
}

func (r *MatchRepository) PurgeUser(ctx context.Context, userID int) (domain.CleanupResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var res domain.CleanupResult

	for convID, msgs := range r.store.messages {
		kept := msgs[:0]
		for _, m := range msgs {
			if m.SenderID == userID {
				res.MessagesDeleted++
				continue
			}
			kept = append(kept, m)
		}
		r.store.messages[convID] = kept
	}

	for key, m := range r.store.matches {
		if !m.HasUser(userID) {
			continue
		}
		convs, _ := r.store.dropConversation(m.ID)
		res.ConversationsDeleted += convs
		delete(r.store.matches, key)
		res.MatchesDeleted++
	}

	for key := range r.store.swipes {
		if key.from == userID || key.to == userID {
			delete(r.store.swipes, key)
			res.SwipesDeleted++
		}
	}
	return res, nil
}
