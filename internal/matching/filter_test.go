package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

func TestFilterGender(t *testing.T) {
	f := newTestFilter()

	tests := []struct {
		name      string
		user      *domain.ProfileFacts
		candidate *domain.ProfileFacts
		want      bool
	}{
		{
			name:      "no preferences on either side",
			user:      &domain.ProfileFacts{Gender: domain.GenderMale},
			candidate: &domain.ProfileFacts{Gender: domain.GenderMale},
			want:      true,
		},
		{
			name:      "viewer wants women, candidate is a woman",
			user:      &domain.ProfileFacts{Gender: domain.GenderMale, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderFemale}}},
			candidate: &domain.ProfileFacts{Gender: domain.GenderFemale},
			want:      true,
		},
		{
			name:      "viewer wants women, candidate is a man",
			user:      &domain.ProfileFacts{Gender: domain.GenderMale, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderFemale}}},
			candidate: &domain.ProfileFacts{Gender: domain.GenderMale},
			want:      false,
		},
		{
			name:      "viewer has specific preference, candidate gender unset",
			user:      &domain.ProfileFacts{Gender: domain.GenderMale, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderFemale}}},
			candidate: &domain.ProfileFacts{},
			want:      false,
		},
		{
			name:      "everyone is permissive",
			user:      &domain.ProfileFacts{Gender: domain.GenderMale, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderFemale, domain.GenderEveryone}}},
			candidate: &domain.ProfileFacts{},
			want:      true,
		},
		{
			name:      "candidate does not want the viewer's gender",
			user:      &domain.ProfileFacts{Gender: domain.GenderFemale},
			candidate: &domain.ProfileFacts{Gender: domain.GenderMale, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderNonBinary}}},
			want:      false,
		},
		{
			name:      "candidate has specific preference, viewer gender unset",
			user:      &domain.ProfileFacts{},
			candidate: &domain.ProfileFacts{Gender: domain.GenderMale, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderFemale}}},
			want:      false,
		},
		{
			name:      "mutual match",
			user:      &domain.ProfileFacts{Gender: domain.GenderNonBinary, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderOther}}},
			candidate: &domain.ProfileFacts{Gender: domain.GenderOther, LookingFor: &domain.LookingFor{Genders: []domain.Gender{domain.GenderNonBinary}}},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsRelevant(tt.user, tt.candidate))
		})
	}
}

func TestFilterAge(t *testing.T) {
	f := newTestFilter()
	thirtyToForty := &domain.LookingFor{MinAge: 30, MaxAge: 40}

	tests := []struct {
		name      string
		user      *domain.ProfileFacts
		candidate *domain.ProfileFacts
		want      bool
	}{
		{
			name:      "unknown viewer age passes",
			user:      &domain.ProfileFacts{LookingFor: thirtyToForty},
			candidate: &domain.ProfileFacts{DateOfBirth: born(2006, time.January, 1)},
			want:      true,
		},
		{
			name:      "unknown candidate age passes",
			user:      &domain.ProfileFacts{DateOfBirth: born(1990, time.January, 1), LookingFor: thirtyToForty},
			candidate: &domain.ProfileFacts{},
			want:      true,
		},
		{
			name:      "candidate too young for viewer",
			user:      &domain.ProfileFacts{DateOfBirth: born(1990, time.January, 1), LookingFor: thirtyToForty},
			candidate: &domain.ProfileFacts{DateOfBirth: born(2000, time.January, 1)},
			want:      false,
		},
		{
			name:      "viewer outside candidate range",
			user:      &domain.ProfileFacts{DateOfBirth: born(1990, time.January, 1)},
			candidate: &domain.ProfileFacts{DateOfBirth: born(1990, time.January, 1), LookingFor: &domain.LookingFor{MinAge: 18, MaxAge: 25}},
			want:      false,
		},
		{
			name:      "both in range, bounds inclusive",
			user:      &domain.ProfileFacts{DateOfBirth: born(1986, time.January, 1), LookingFor: thirtyToForty},
			candidate: &domain.ProfileFacts{DateOfBirth: born(1996, time.January, 1), LookingFor: thirtyToForty},
			want:      true,
		},
		{
			name:      "birthday later this year counts as younger",
			user:      &domain.ProfileFacts{DateOfBirth: born(1990, time.January, 1), LookingFor: thirtyToForty},
			candidate: &domain.ProfileFacts{DateOfBirth: born(1996, time.December, 31)},
			want:      false,
		},
		{
			name:      "zero preference fields fall back to 18-99",
			user:      &domain.ProfileFacts{DateOfBirth: born(1990, time.January, 1), LookingFor: &domain.LookingFor{}},
			candidate: &domain.ProfileFacts{DateOfBirth: born(2010, time.January, 1)},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsRelevant(tt.user, tt.candidate))
		})
	}
}

func TestFilterDistance(t *testing.T) {
	f := newTestFilter()
	tenKm := &domain.LookingFor{MaxDistanceKm: 10}

	tests := []struct {
		name      string
		user      *domain.ProfileFacts
		candidate *domain.ProfileFacts
		want      bool
	}{
		{
			name:      "missing coordinates pass",
			user:      &domain.ProfileFacts{Location: at(0, 0), LookingFor: tenKm},
			candidate: &domain.ProfileFacts{},
			want:      true,
		},
		{
			name:      "beyond preference but inside tolerance",
			user:      &domain.ProfileFacts{Location: at(0, 0), LookingFor: tenKm},
			candidate: &domain.ProfileFacts{Location: at(0.1, 0)},
			want:      true,
		},
		{
			name:      "beyond tolerance",
			user:      &domain.ProfileFacts{Location: at(0, 0), LookingFor: tenKm},
			candidate: &domain.ProfileFacts{Location: at(0.12, 0)},
			want:      false,
		},
		{
			name:      "default max distance with tolerance",
			user:      &domain.ProfileFacts{Location: at(0, 0)},
			candidate: &domain.ProfileFacts{Location: at(1.07, 0)},
			want:      true,
		},
		{
			name:      "default max distance exceeded",
			user:      &domain.ProfileFacts{Location: at(0, 0)},
			candidate: &domain.ProfileFacts{Location: at(1.1, 0)},
			want:      false,
		},
		{
			name:      "only the viewer's preference applies",
			user:      &domain.ProfileFacts{Location: at(0, 0)},
			candidate: &domain.ProfileFacts{Location: at(0.5, 0), LookingFor: tenKm},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsRelevant(tt.user, tt.candidate))
		})
	}
}

func TestFilterIsPure(t *testing.T) {
	f := newTestFilter()
	user := &domain.ProfileFacts{Gender: domain.GenderFemale, DateOfBirth: born(1995, time.January, 1), Location: at(10, 10)}
	candidate := &domain.ProfileFacts{Gender: domain.GenderMale, DateOfBirth: born(1993, time.January, 1), Location: at(10.2, 10)}

	first := f.IsRelevant(user, candidate)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, f.IsRelevant(user, candidate))
	}
}
