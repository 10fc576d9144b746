package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

func newTestStore() *Store {
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewStore().WithClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})
}

func like(t *testing.T, s *Store, from, to int) {
	t.Helper()
	require.NoError(t, s.Swipes().Create(context.Background(), &domain.Swipe{FromUserID: from, ToUserID: to, Action: domain.SwipeLike}))
}

func TestCreateWithConversationIsIdempotentPerPair(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	repo := s.Matches()

	first := &domain.Match{User1ID: 9, User2ID: 4, IsActive: true, CompatibilityScore: 70}
	created, err := repo.CreateWithConversation(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4, first.User1ID)
	assert.Equal(t, 9, first.User2ID)
	assert.NotZero(t, first.ConversationID)

	second := &domain.Match{User1ID: 4, User2ID: 9, IsActive: true, CompatibilityScore: 10}
	created, err = repo.CreateWithConversation(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, 70, second.CompatibilityScore)

	conv, err := s.Messages().GetConversation(ctx, first.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, conv.MatchID)
}

func TestSwipeDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	like(t, s, 1, 2)
	err := s.Swipes().Create(ctx, &domain.Swipe{FromUserID: 1, ToUserID: 2, Action: domain.SwipePass})
	assert.ErrorIs(t, err, domain.ErrSwipeAlreadyExists)

	liked, err := s.Swipes().HasLiked(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = s.Swipes().HasLiked(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestDeletePairClearsEverything(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	like(t, s, 1, 2)
	like(t, s, 2, 1)

	m := &domain.Match{User1ID: 1, User2ID: 2, IsActive: true}
	_, err := s.Matches().CreateWithConversation(ctx, m)
	require.NoError(t, err)
	require.NoError(t, s.Messages().Create(ctx, &domain.Message{ConversationID: m.ConversationID, SenderID: 1, Type: domain.MessageText, Content: "hi"}))
	require.NoError(t, s.Messages().Create(ctx, &domain.Message{ConversationID: m.ConversationID, SenderID: 2, Type: domain.MessageText, Content: "hey"}))

	res, err := s.Matches().DeletePair(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.CleanupResult{MessagesDeleted: 2, ConversationsDeleted: 1, MatchesDeleted: 1, SwipesDeleted: 2}, res)

	_, err = s.Matches().GetByUsers(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	_, err = s.Swipes().GetByUsers(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrSwipeNotFound)
	_, err = s.Messages().GetConversation(ctx, m.ConversationID)
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)

	_, err = s.Matches().DeletePair(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestPurgeUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	like(t, s, 1, 2)
	like(t, s, 2, 1)
	like(t, s, 3, 1)
	like(t, s, 2, 3)

	m12 := &domain.Match{User1ID: 1, User2ID: 2, IsActive: true}
	_, err := s.Matches().CreateWithConversation(ctx, m12)
	require.NoError(t, err)
	m23 := &domain.Match{User1ID: 2, User2ID: 3, IsActive: true}
	_, err = s.Matches().CreateWithConversation(ctx, m23)
	require.NoError(t, err)

	require.NoError(t, s.Messages().Create(ctx, &domain.Message{ConversationID: m12.ConversationID, SenderID: 1, Content: "a"}))
	require.NoError(t, s.Messages().Create(ctx, &domain.Message{ConversationID: m12.ConversationID, SenderID: 1, Content: "b"}))
	require.NoError(t, s.Messages().Create(ctx, &domain.Message{ConversationID: m23.ConversationID, SenderID: 3, Content: "c"}))

	res, err := s.Matches().PurgeUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.CleanupResult{MessagesDeleted: 2, ConversationsDeleted: 1, MatchesDeleted: 1, SwipesDeleted: 3}, res)

	remaining, err := s.Matches().GetActiveMatches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, m23.ID, remaining[0].ID)

	msgs, err := s.Messages().ListByConversation(ctx, m23.ConversationID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestListCandidatesExclusions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	profiles := s.Profiles()

	for id := 1; id <= 6; id++ {
		_, err := profiles.Upsert(ctx, &domain.ProfileFacts{UserID: id, IsVisible: id != 5})
		require.NoError(t, err)
	}
	like(t, s, 1, 2)
	require.NoError(t, s.Blocks().Create(ctx, &domain.Block{BlockerID: 3, BlockedID: 1}))
	// a swipe from someone else does not hide them
	like(t, s, 4, 1)

	got, err := profiles.ListCandidates(ctx, 1, 0)
	require.NoError(t, err)
	ids := make([]int, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.UserID)
	}
	// most recently updated first
	assert.Equal(t, []int{6, 4}, ids)

	got, err = profiles.ListCandidates(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpsertReportsCreation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	created, err := s.Profiles().Upsert(ctx, &domain.ProfileFacts{UserID: 1, DisplayName: "a"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Profiles().Upsert(ctx, &domain.ProfileFacts{UserID: 1, DisplayName: "b"})
	require.NoError(t, err)
	assert.False(t, created)

	p, err := s.Profiles().GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", p.DisplayName)

	_, err = s.Profiles().GetByUserID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestLikesReceivedSkipsAnswered(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	like(t, s, 2, 1)
	like(t, s, 3, 1)
	require.NoError(t, s.Swipes().Create(ctx, &domain.Swipe{FromUserID: 4, ToUserID: 1, Action: domain.SwipePass}))
	require.NoError(t, s.Swipes().Create(ctx, &domain.Swipe{FromUserID: 1, ToUserID: 3, Action: domain.SwipePass}))

	likes, err := s.Swipes().GetLikesReceived(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, 2, likes[0].FromUserID)
}

func TestMessagesUnreadAndMarkRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	m := &domain.Match{User1ID: 1, User2ID: 2, IsActive: true}
	_, err := s.Matches().CreateWithConversation(ctx, m)
	require.NoError(t, err)

	for _, sender := range []int{2, 2, 1} {
		require.NoError(t, s.Messages().Create(ctx, &domain.Message{ConversationID: m.ConversationID, SenderID: sender, Content: "x"}))
	}

	n, err := s.Messages().CountUnread(ctx, m.ConversationID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	marked, err := s.Messages().MarkRead(ctx, m.ConversationID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	n, err = s.Messages().CountUnread(ctx, m.ConversationID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	last, err := s.Messages().GetLastMessage(ctx, m.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, 1, last.SenderID)

	err = s.Messages().Create(ctx, &domain.Message{ConversationID: 999, SenderID: 1})
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}
