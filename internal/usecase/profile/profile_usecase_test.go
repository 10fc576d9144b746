package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/repository/memory"
)

type supportSpy struct {
	calls []int
	err   error
}

func (s *supportSpy) EnsureSupportMatch(_ context.Context, userID int) (*domain.Match, error) {
	s.calls = append(s.calls, userID)
	return nil, s.err
}

func TestUpdateFactsValidation(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0)

	tests := []struct {
		name string
		req  UpdateFactsRequest
	}{
		{name: "min age above max age", req: UpdateFactsRequest{LookingFor: &LookingForRequest{MinAge: 40, MaxAge: 30}}},
		{name: "min age below adult", req: UpdateFactsRequest{LookingFor: &LookingForRequest{MinAge: 16}}},
		{name: "unknown gender", req: UpdateFactsRequest{Gender: "robot"}},
		{name: "everyone is not an own gender", req: UpdateFactsRequest{Gender: domain.GenderEveryone}},
		{name: "unknown preferred gender", req: UpdateFactsRequest{LookingFor: &LookingForRequest{Genders: []domain.Gender{"men"}}}},
		{name: "unknown mood", req: UpdateFactsRequest{Mood: "sleepy"}},
		{name: "bad time preference", req: UpdateFactsRequest{PreferredTimes: []domain.TimePreference{"noon"}}},
		{name: "latitude out of range", req: UpdateFactsRequest{Location: &LocationRequest{Lat: 91}}},
		{name: "non positive tag", req: UpdateFactsRequest{TagIDs: []int{1, 0}}},
		{name: "birth date in the future", req: UpdateFactsRequest{DateOfBirth: &future}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			uc := NewProfileUseCase(store.Profiles(), nil, logger.NewNop())

			_, err := uc.UpdateFacts(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidPreferences)

			_, err = store.Profiles().GetByUserID(context.Background(), 1)
			assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		})
	}
}

func TestUpdateFacts(t *testing.T) {
	store := memory.NewStore()
	spy := &supportSpy{}
	uc := NewProfileUseCase(store.Profiles(), spy, logger.NewNop())
	ctx := context.Background()

	dob := time.Date(1996, 4, 12, 0, 0, 0, 0, time.UTC)
	hidden := false
	req := &UpdateFactsRequest{
		DisplayName:    "  Ann ",
		Gender:         domain.GenderFemale,
		DateOfBirth:    &dob,
		Location:       &LocationRequest{Lat: 55.75, Lon: 37.61},
		TagIDs:         []int{3, 1, 3},
		Mood:           domain.MoodChatty,
		PreferredTimes: []domain.TimePreference{domain.TimeEvening, domain.TimeEvening},
		LookingFor: &LookingForRequest{
			Genders: []domain.Gender{domain.GenderEveryone},
			MinAge:  25,
			MaxAge:  35,
		},
	}

	facts, err := uc.UpdateFacts(ctx, 7, req)
	require.NoError(t, err)
	assert.Equal(t, "Ann", facts.DisplayName)
	assert.Equal(t, []int{3, 1}, facts.TagIDs)
	assert.Equal(t, []domain.TimePreference{domain.TimeEvening}, facts.PreferredTimes)
	assert.True(t, facts.IsVisible)
	require.NotNil(t, facts.Location)
	assert.Equal(t, 55.75, facts.Location.Lat)
	assert.Equal(t, []int{7}, spy.calls)

	stored, err := uc.GetFacts(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, facts.LookingFor, stored.LookingFor)

	req.IsVisible = &hidden
	facts, err = uc.UpdateFacts(ctx, 7, req)
	require.NoError(t, err)
	assert.False(t, facts.IsVisible)
	// support match only on first save
	assert.Equal(t, []int{7}, spy.calls)
}

func TestUpdateFactsSupportFailureIsNotFatal(t *testing.T) {
	store := memory.NewStore()
	spy := &supportSpy{err: errors.New("db down")}
	uc := NewProfileUseCase(store.Profiles(), spy, logger.NewNop())

	_, err := uc.UpdateFacts(context.Background(), 1, &UpdateFactsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, spy.calls)
}

func TestGetFactsMissing(t *testing.T) {
	uc := NewProfileUseCase(memory.NewStore().Profiles(), nil, logger.NewNop())

	_, err := uc.GetFacts(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
