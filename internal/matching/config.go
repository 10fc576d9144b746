package matching

import (
	"runtime"
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

// Config carries the product-tuning values of the engine.
type Config struct {
	Weights domain.Weights

	// DistanceTolerance stretches the viewer's max distance in the hard filter.
	DistanceTolerance    float64
	DefaultMaxDistanceKm float64
	// CloseDistanceKm and below always scores 100 on the distance dimension.
	CloseDistanceKm float64
	DefaultMinAge   int
	DefaultMaxAge   int

	DefaultLimit int
	// DefaultMinScore of 0 ranks every eligible candidate; negative means unset.
	DefaultMinScore int

	// Candidate lists at least this long are scored concurrently.
	ParallelThreshold int
	Workers           int
}

func DefaultConfig() Config {
	return Config{
		Weights:              domain.DefaultWeights(),
		DistanceTolerance:    1.2,
		DefaultMaxDistanceKm: 100,
		CloseDistanceKm:      5,
		DefaultMinAge:        18,
		DefaultMaxAge:        99,
		DefaultLimit:         20,
		DefaultMinScore:      35,
		ParallelThreshold:    64,
		Workers:              runtime.NumCPU(),
	}
}

// withDefaults fills zero fields from DefaultConfig. DefaultMinScore is only
// replaced when negative, since 0 is a valid threshold.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Weights == (domain.Weights{}) {
		c.Weights = d.Weights
	}
	if c.DistanceTolerance <= 0 {
		c.DistanceTolerance = d.DistanceTolerance
	}
	if c.DefaultMaxDistanceKm <= 0 {
		c.DefaultMaxDistanceKm = d.DefaultMaxDistanceKm
	}
	if c.CloseDistanceKm <= 0 {
		c.CloseDistanceKm = d.CloseDistanceKm
	}
	if c.DefaultMinAge <= 0 {
		c.DefaultMinAge = d.DefaultMinAge
	}
	if c.DefaultMaxAge <= 0 {
		c.DefaultMaxAge = d.DefaultMaxAge
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.DefaultMinScore < 0 {
		c.DefaultMinScore = d.DefaultMinScore
	}
	if c.ParallelThreshold <= 0 {
		c.ParallelThreshold = d.ParallelThreshold
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	return c
}

// Option customizes a Filter, Scorer or Ranker.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock pins the clock used to compute ages.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ageRange returns the [min, max] age window of a profile's preferences.
func (c Config) ageRange(p *domain.ProfileFacts) (int, int) {
	minAge, maxAge := c.DefaultMinAge, c.DefaultMaxAge
	if p != nil && p.LookingFor != nil {
		if p.LookingFor.MinAge > 0 {
			minAge = p.LookingFor.MinAge
		}
		if p.LookingFor.MaxAge > 0 {
			maxAge = p.LookingFor.MaxAge
		}
	}
	return minAge, maxAge
}

func (c Config) maxDistance(p *domain.ProfileFacts) float64 {
	if p != nil && p.LookingFor != nil && p.LookingFor.MaxDistanceKm > 0 {
		return p.LookingFor.MaxDistanceKm
	}
	return c.DefaultMaxDistanceKm
}

func preferredGenders(p *domain.ProfileFacts) []domain.Gender {
	if p == nil || p.LookingFor == nil {
		return nil
	}
	return p.LookingFor.Genders
}

func relationshipTypes(p *domain.ProfileFacts) []domain.RelationshipType {
	if p == nil || p.LookingFor == nil {
		return nil
	}
	return p.LookingFor.RelationshipTypes
}

// acceptsAnyGender reports whether a preference set is permissive.
func acceptsAnyGender(prefs []domain.Gender) bool {
	if len(prefs) == 0 {
		return true
	}
	for _, g := range prefs {
		if g == domain.GenderEveryone {
			return true
		}
	}
	return false
}

func containsGender(prefs []domain.Gender, g domain.Gender) bool {
	for _, p := range prefs {
		if p == g {
			return true
		}
	}
	return false
}

func distanceBetween(a, b *domain.ProfileFacts) (float64, bool) {
	if !a.HasLocation() || !b.HasLocation() {
		return 0, false
	}
	return DistanceKm(a.Location.Lat, a.Location.Lon, b.Location.Lat, b.Location.Lon), true
}
