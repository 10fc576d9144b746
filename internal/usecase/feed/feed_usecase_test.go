package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/matching"
	"github.com/gdugdh24/matchmaker-backend/internal/repository/memory"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newFeed(t *testing.T) (*FeedUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ranker := matching.NewRanker(matching.DefaultConfig(), matching.WithClock(func() time.Time { return fixedNow }))
	uc := NewFeedUseCase(store.Profiles(), ranker, 500, logger.NewNop())
	uc.now = func() time.Time { return fixedNow }

	dob := fixedNow.AddDate(-30, 0, 0)
	ctx := context.Background()
	for _, p := range []*domain.ProfileFacts{
		{
			UserID:     1,
			Gender:     domain.GenderMale,
			TagIDs:     []int{1, 2, 3},
			LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderFemale}},
			IsVisible:  true,
		},
		{UserID: 2, DisplayName: "Close", Gender: domain.GenderFemale, DateOfBirth: &dob, TagIDs: []int{1, 2, 3}, IsVisible: true},
		{UserID: 3, DisplayName: "Filtered", Gender: domain.GenderMale, TagIDs: []int{1, 2, 3}, IsVisible: true},
		{UserID: 4, DisplayName: "Hidden", Gender: domain.GenderFemale, TagIDs: []int{1, 2, 3}},
		{UserID: 5, DisplayName: "Swiped", Gender: domain.GenderFemale, IsVisible: true},
		{UserID: 6, DisplayName: "Blocker", Gender: domain.GenderFemale, IsVisible: true},
		{UserID: 7, DisplayName: "Far", Gender: domain.GenderFemale, TagIDs: []int{9}, IsVisible: true},
	} {
		_, err := store.Profiles().Upsert(ctx, p)
		require.NoError(t, err)
	}
	require.NoError(t, store.Swipes().Create(ctx, &domain.Swipe{FromUserID: 1, ToUserID: 5, Action: domain.SwipePass}))
	require.NoError(t, store.Blocks().Create(ctx, &domain.Block{BlockerID: 6, BlockedID: 1}))
	return uc, store
}

func userIDs(cards []*FeedUserResponse) []int {
	ids := make([]int, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.UserID)
	}
	return ids
}

func TestDiscover(t *testing.T) {
	zero := 0
	full := 100

	tests := []struct {
		name    string
		viewer  int
		req     *DiscoverRequest
		wantIDs []int
	}{
		{
			name:    "ranks by compatibility and drops excluded candidates",
			viewer:  1,
			req:     &DiscoverRequest{MinScore: &zero},
			wantIDs: []int{2, 7},
		},
		{
			name:    "limit keeps the best",
			viewer:  1,
			req:     &DiscoverRequest{Limit: 1, MinScore: &zero},
			wantIDs: []int{2},
		},
		{
			name:    "threshold removes everyone",
			viewer:  1,
			req:     &DiscoverRequest{MinScore: &full},
			wantIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newFeed(t)
			cards, err := uc.Discover(context.Background(), tt.viewer, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, userIDs(cards))
		})
	}
}

func TestDiscoverCard(t *testing.T) {
	uc, _ := newFeed(t)
	zero := 0

	cards, err := uc.Discover(context.Background(), 1, &DiscoverRequest{MinScore: &zero})
	require.NoError(t, err)
	require.NotEmpty(t, cards)

	best := cards[0]
	assert.Equal(t, "Close", best.DisplayName)
	require.NotNil(t, best.Age)
	assert.Equal(t, 30, *best.Age)
	assert.Equal(t, 3, best.SharedTagsCount)
	assert.Nil(t, best.DistanceKm)
	assert.Equal(t, best.Breakdown.TotalScore(), best.Compatibility)
	assert.Greater(t, best.Compatibility, cards[1].Compatibility)
}

func TestDiscoverWithoutViewerProfile(t *testing.T) {
	uc, _ := newFeed(t)

	cards, err := uc.Discover(context.Background(), 42, nil)
	require.NoError(t, err)
	// visible candidates, unscored
	assert.Len(t, cards, 6)
	for _, c := range cards {
		assert.Zero(t, c.Compatibility)
	}
}

func TestCompatibility(t *testing.T) {
	uc, _ := newFeed(t)
	ctx := context.Background()

	card, err := uc.Compatibility(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, card.UserID)
	assert.Equal(t, 3, card.SharedTagsCount)
	// pairwise lookups skip the hard filter but still score the mismatch
	assert.Equal(t, float64(10), card.Breakdown.GenderMatch)

	_, err = uc.Compatibility(ctx, 1, 404)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	card, err = uc.Compatibility(ctx, 404, 2)
	require.NoError(t, err)
	assert.Zero(t, card.Compatibility)
}
