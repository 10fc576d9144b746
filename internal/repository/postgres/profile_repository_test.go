package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

func TestProfileRowConversion(t *testing.T) {
	dob := time.Date(1995, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		facts *domain.ProfileFacts
	}{
		{
			name: "full profile",
			facts: &domain.ProfileFacts{
				UserID:         7,
				DisplayName:    "Ann",
				Gender:         domain.GenderFemale,
				DateOfBirth:    &dob,
				Location:       &domain.Coordinates{Lat: 55.75, Lon: 37.61},
				TagIDs:         []int{1, 2},
				InterestIDs:    []int{3},
				Mood:           domain.MoodChatty,
				ResponsePace:   domain.ResponsePaceQuick,
				DatePace:       domain.DatePaceReady,
				PreferredTimes: []domain.TimePreference{domain.TimeEvening},
				LookingFor: &domain.LookingFor{
					Genders:           []domain.Gender{domain.GenderMale},
					MinAge:            25,
					MaxAge:            35,
					MaxDistanceKm:     40,
					RelationshipTypes: []domain.RelationshipType{domain.RelationshipSerious},
				},
				IsVisible: true,
			},
		},
		{
			name: "sparse profile keeps optional parts nil",
			facts: &domain.ProfileFacts{
				UserID:         8,
				TagIDs:         []int{},
				InterestIDs:    []int{},
				PreferredTimes: []domain.TimePreference{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newProfileRow(tt.facts).toFacts()
			assert.Equal(t, tt.facts, got)
		})
	}
}

func TestCandidatesQuery(t *testing.T) {
	query, args := candidatesQuery(42, 500)

	assert.True(t, strings.HasPrefix(query, "SELECT p.user_id"))
	assert.Contains(t, query, "FROM profiles p")
	assert.Contains(t, query, "NOT EXISTS (SELECT 1 FROM swipes s")
	assert.Contains(t, query, "NOT EXISTS (SELECT 1 FROM blocks b")
	assert.Contains(t, query, "ORDER BY p.updated_at DESC, p.user_id")
	assert.NotContains(t, query, "?")
	assert.Equal(t, []interface{}{true, 42, 42, 42, 42}, args[:5])
	assert.Contains(t, query, "LIMIT")

	query, _ = candidatesQuery(42, 0)
	assert.NotContains(t, query, "LIMIT")
}
