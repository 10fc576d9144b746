package matching

import (
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

// Filter rejects candidates that fail the hard mutual constraints on gender, age and distance.
type Filter struct {
	cfg Config
	now func() time.Time
}

func NewFilter(cfg Config, opts ...Option) *Filter {
	o := buildOptions(opts)
	return &Filter{cfg: cfg.withDefaults(), now: o.now}
}

// IsRelevant reports whether candidate may be shown to user. Missing data never rejects.
func (f *Filter) IsRelevant(user, candidate *domain.ProfileFacts) bool {
	return f.genderAccepted(user, candidate) &&
		f.ageAccepted(user, candidate) &&
		f.distanceAccepted(user, candidate)
}

func (f *Filter) genderAccepted(user, candidate *domain.ProfileFacts) bool {
	return wantsGender(preferredGenders(user), candidate.Gender) &&
		wantsGender(preferredGenders(candidate), user.Gender)
}

func wantsGender(prefs []domain.Gender, g domain.Gender) bool {
	if acceptsAnyGender(prefs) {
		return true
	}
	if g == "" {
		return false
	}
	return containsGender(prefs, g)
}

func (f *Filter) ageAccepted(user, candidate *domain.ProfileFacts) bool {
	now := f.now()
	userAge, ok := user.AgeAt(now)
	if !ok {
		return true
	}
	candidateAge, ok := candidate.AgeAt(now)
	if !ok {
		return true
	}

	userMin, userMax := f.cfg.ageRange(user)
	if candidateAge < userMin || candidateAge > userMax {
		return false
	}
	candMin, candMax := f.cfg.ageRange(candidate)
	return userAge >= candMin && userAge <= candMax
}

func (f *Filter) distanceAccepted(user, candidate *domain.ProfileFacts) bool {
	d, ok := distanceBetween(user, candidate)
	if !ok {
		return true
	}
	return d <= f.cfg.maxDistance(user)*f.cfg.DistanceTolerance
}
