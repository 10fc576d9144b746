package matching

import (
	"math"
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

const neutralScore = 50.0

// Scorer computes the nine-dimension compatibility breakdown for an ordered pair of profiles.
// Every dimension is a pure function of the two profiles.
type Scorer struct {
	cfg Config
	now func() time.Time
}

func NewScorer(cfg Config, opts ...Option) *Scorer {
	o := buildOptions(opts)
	return &Scorer{cfg: cfg.withDefaults(), now: o.now}
}

// Score returns the breakdown of candidate as seen by user.
func (s *Scorer) Score(user, candidate *domain.ProfileFacts) domain.CompatibilityBreakdown {
	b := domain.CompatibilityBreakdown{Weights: s.cfg.Weights}

	b.SharedTags, b.SharedTagsCount = s.sharedTags(user, candidate)
	b.SharedInterests, b.SharedInterestsCount = s.sharedInterests(user, candidate)
	b.Distance, b.DistanceKm = s.distance(user, candidate)
	b.AgeCompatibility = s.ageCompatibility(user, candidate)
	b.GenderMatch = s.genderMatch(user, candidate)
	b.RelationshipType = s.relationshipType(user, candidate)
	b.Mood = s.mood(user, candidate)
	b.Pace = s.pace(user, candidate)
	b.TimePreferences = s.timePreferences(user, candidate)

	return b
}

func (s *Scorer) sharedTags(user, candidate *domain.ProfileFacts) (float64, int) {
	shared, union := overlap(user.TagIDs, candidate.TagIDs)
	switch {
	case len(user.TagIDs) == 0 && len(candidate.TagIDs) == 0:
		return neutralScore, 0
	case len(user.TagIDs) == 0 || len(candidate.TagIDs) == 0:
		return 30, 0
	}

	score := jaccard(shared, union) * 80
	if shared > 0 {
		score += math.Min(20, float64(shared)*10)
	}
	return math.Min(100, score), shared
}

func (s *Scorer) sharedInterests(user, candidate *domain.ProfileFacts) (float64, int) {
	shared, union := overlap(user.InterestIDs, candidate.InterestIDs)
	switch {
	case len(user.InterestIDs) == 0 && len(candidate.InterestIDs) == 0:
		return neutralScore, 0
	case len(user.InterestIDs) == 0 || len(candidate.InterestIDs) == 0:
		return 40, 0
	}

	score := jaccard(shared, union)*70 + math.Min(30, float64(shared)*6)
	return math.Min(100, score), shared
}

func (s *Scorer) distance(user, candidate *domain.ProfileFacts) (float64, *float64) {
	d, ok := distanceBetween(user, candidate)
	if !ok {
		return neutralScore, nil
	}

	maxDistance := s.cfg.maxDistance(user)
	switch {
	case d <= s.cfg.CloseDistanceKm:
		return 100, &d
	case d <= maxDistance:
		return math.Max(40, 100-(d/maxDistance)*60), &d
	default:
		overage := (d - maxDistance) / maxDistance
		return math.Max(10, 40-overage*30), &d
	}
}

func (s *Scorer) ageCompatibility(user, candidate *domain.ProfileFacts) float64 {
	age, ok := candidate.AgeAt(s.now())
	if !ok {
		return neutralScore
	}

	minAge, maxAge := s.cfg.ageRange(user)
	if age >= minAge && age <= maxAge {
		rangeSize := float64(maxAge - minAge)
		if rangeSize == 0 {
			return 100
		}
		center := float64(minAge+maxAge) / 2
		normalized := math.Abs(float64(age)-center) / (rangeSize / 2)
		return 100 - normalized*20
	}

	outside := minAge - age
	if age > maxAge {
		outside = age - maxAge
	}
	return math.Max(0, neutralScore-float64(outside)*5)
}

func (s *Scorer) genderMatch(user, candidate *domain.ProfileFacts) float64 {
	prefs := preferredGenders(user)
	switch {
	case acceptsAnyGender(prefs):
		return 100
	case candidate.Gender == "":
		return neutralScore
	case containsGender(prefs, candidate.Gender):
		return 100
	default:
		return 10
	}
}

func (s *Scorer) relationshipType(user, candidate *domain.ProfileFacts) float64 {
	userTypes := relationshipTypes(user)
	candidateTypes := relationshipTypes(candidate)
	if len(userTypes) == 0 || len(candidateTypes) == 0 {
		return neutralScore
	}

	shared, _ := overlap(userTypes, candidateTypes)
	if shared == 0 {
		return 25
	}
	larger := max(len(toSet(userTypes)), len(toSet(candidateTypes)))
	return 60 + 40*float64(shared)/float64(larger)
}

func (s *Scorer) mood(user, candidate *domain.ProfileFacts) float64 {
	if user.Mood == "" || candidate.Mood == "" {
		return neutralScore
	}
	if score, ok := moodCompatibility[moodPair{user.Mood, candidate.Mood}]; ok {
		return score
	}
	return neutralScore
}

// pace averages whichever of response pace and date pace both profiles have set.
func (s *Scorer) pace(user, candidate *domain.ProfileFacts) float64 {
	var total float64
	var n int

	if user.ResponsePace != "" && candidate.ResponsePace != "" {
		total += responsePaceScore(user.ResponsePace, candidate.ResponsePace)
		n++
	}
	if user.DatePace != "" && candidate.DatePace != "" {
		total += datePaceScore(user.DatePace, candidate.DatePace)
		n++
	}

	if n == 0 {
		return neutralScore
	}
	return total / float64(n)
}

func responsePaceScore(a, b domain.ResponsePace) float64 {
	if a == domain.ResponsePaceVariable || b == domain.ResponsePaceVariable {
		return 80
	}
	stepA, ok := responsePaceStep[a]
	if !ok {
		stepA = 2
	}
	stepB, ok := responsePaceStep[b]
	if !ok {
		stepB = 2
	}

	diff := stepA - stepB
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 100
	case 1:
		return 75
	default:
		return 50
	}
}

func datePaceScore(a, b domain.DatePace) float64 {
	if a == b {
		return 100
	}
	if a == domain.DatePaceFlexible || b == domain.DatePaceFlexible {
		return 85
	}
	if score, ok := datePaceCompatibility[datePacePair{a, b}]; ok {
		return score
	}
	return neutralScore
}

func (s *Scorer) timePreferences(user, candidate *domain.ProfileFacts) float64 {
	userTimes := toSet(user.PreferredTimes)
	candidateTimes := toSet(candidate.PreferredTimes)
	if len(userTimes) == 0 || len(candidateTimes) == 0 {
		return neutralScore
	}
	if userTimes[domain.TimeFlexible] || candidateTimes[domain.TimeFlexible] {
		return 90
	}

	shared, _ := overlap(user.PreferredTimes, candidate.PreferredTimes)
	if shared > 0 {
		smaller := min(len(userTimes), len(candidateTimes))
		return 60 + 40*float64(shared)/float64(smaller)
	}

	for a := range userTimes {
		for b := range candidateTimes {
			if adjacentTimes[timePair{a, b}] {
				return 45
			}
		}
	}
	return 25
}

func toSet[T comparable](items []T) map[T]bool {
	set := make(map[T]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// overlap returns the intersection and union sizes of two lists treated as sets.
func overlap[T comparable](a, b []T) (shared, union int) {
	setA := toSet(a)
	setB := toSet(b)
	for item := range setA {
		if setB[item] {
			shared++
		}
	}
	return shared, len(setA) + len(setB) - shared
}

func jaccard(shared, union int) float64 {
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}
