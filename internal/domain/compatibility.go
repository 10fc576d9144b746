package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
)

// Weights assigns each compatibility dimension its share of the total score.
type Weights struct {
	SharedTags       float64 `json:"shared_tags" mapstructure:"shared_tags"`
	SharedInterests  float64 `json:"shared_interests" mapstructure:"shared_interests"`
	Distance         float64 `json:"distance" mapstructure:"distance"`
	AgeCompatibility float64 `json:"age" mapstructure:"age"`
	GenderMatch      float64 `json:"gender" mapstructure:"gender"`
	RelationshipType float64 `json:"relationship_type" mapstructure:"relationship_type"`
	Mood             float64 `json:"mood" mapstructure:"mood"`
	Pace             float64 `json:"pace" mapstructure:"pace"`
	TimePreferences  float64 `json:"time_preferences" mapstructure:"time_preferences"`
}

func DefaultWeights() Weights {
	return Weights{
		SharedTags:       0.20,
		SharedInterests:  0.15,
		Distance:         0.15,
		AgeCompatibility: 0.10,
		GenderMatch:      0.10,
		RelationshipType: 0.10,
		Mood:             0.08,
		Pace:             0.07,
		TimePreferences:  0.05,
	}
}

func (w Weights) Sum() float64 {
	return w.SharedTags + w.SharedInterests + w.Distance + w.AgeCompatibility +
		w.GenderMatch + w.RelationshipType + w.Mood + w.Pace + w.TimePreferences
}

// CompatibilityBreakdown explains how a total compatibility score was derived.
// The zero value is the "empty" breakdown and totals to 0.
type CompatibilityBreakdown struct {
	SharedTags       float64
	SharedInterests  float64
	Distance         float64
	AgeCompatibility float64
	GenderMatch      float64
	RelationshipType float64
	Mood             float64
	Pace             float64
	TimePreferences  float64

	Weights Weights

	SharedTagsCount      int
	SharedInterestsCount int
	DistanceKm           *float64
}

// TotalScore is the weighted sum of all dimensions, rounded and clamped to [0, 100].
func (b CompatibilityBreakdown) TotalScore() int {
	w := b.Weights
	sum := b.SharedTags*w.SharedTags +
		b.SharedInterests*w.SharedInterests +
		b.Distance*w.Distance +
		b.AgeCompatibility*w.AgeCompatibility +
		b.GenderMatch*w.GenderMatch +
		b.RelationshipType*w.RelationshipType +
		b.Mood*w.Mood +
		b.Pace*w.Pace +
		b.TimePreferences*w.TimePreferences

	return int(math.Round(math.Max(0, math.Min(100, sum))))
}

type breakdownScores struct {
	SharedTags       float64 `json:"shared_tags"`
	SharedInterests  float64 `json:"shared_interests"`
	Distance         float64 `json:"distance"`
	AgeCompatibility float64 `json:"age"`
	GenderMatch      float64 `json:"gender"`
	RelationshipType float64 `json:"relationship_type"`
	Mood             float64 `json:"mood"`
	Pace             float64 `json:"pace"`
	TimePreferences  float64 `json:"time_preferences"`
}

type breakdownMetadata struct {
	SharedTagsCount      int      `json:"shared_tags_count"`
	SharedInterestsCount int      `json:"shared_interests_count"`
	DistanceKm           *float64 `json:"distance_km"`
}

type breakdownJSON struct {
	TotalScore int               `json:"total_score"`
	Breakdown  breakdownScores   `json:"breakdown"`
	Weights    *Weights          `json:"weights,omitempty"`
	Metadata   breakdownMetadata `json:"metadata"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (b CompatibilityBreakdown) MarshalJSON() ([]byte, error) {
	out := breakdownJSON{
		TotalScore: b.TotalScore(),
		Breakdown: breakdownScores{
			SharedTags:       round1(b.SharedTags),
			SharedInterests:  round1(b.SharedInterests),
			Distance:         round1(b.Distance),
			AgeCompatibility: round1(b.AgeCompatibility),
			GenderMatch:      round1(b.GenderMatch),
			RelationshipType: round1(b.RelationshipType),
			Mood:             round1(b.Mood),
			Pace:             round1(b.Pace),
			TimePreferences:  round1(b.TimePreferences),
		},
		Metadata: breakdownMetadata{
			SharedTagsCount:      b.SharedTagsCount,
			SharedInterestsCount: b.SharedInterestsCount,
		},
	}
	if b.Weights != (Weights{}) {
		w := b.Weights
		out.Weights = &w
	}
	if b.DistanceKm != nil {
		d := round1(*b.DistanceKm)
		out.Metadata.DistanceKm = &d
	}
	return json.Marshal(out)
}

func (b *CompatibilityBreakdown) UnmarshalJSON(data []byte) error {
	var in breakdownJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = CompatibilityBreakdown{
		SharedTags:           in.Breakdown.SharedTags,
		SharedInterests:      in.Breakdown.SharedInterests,
		Distance:             in.Breakdown.Distance,
		AgeCompatibility:     in.Breakdown.AgeCompatibility,
		GenderMatch:          in.Breakdown.GenderMatch,
		RelationshipType:     in.Breakdown.RelationshipType,
		Mood:                 in.Breakdown.Mood,
		Pace:                 in.Breakdown.Pace,
		TimePreferences:      in.Breakdown.TimePreferences,
		SharedTagsCount:      in.Metadata.SharedTagsCount,
		SharedInterestsCount: in.Metadata.SharedInterestsCount,
		DistanceKm:           in.Metadata.DistanceKm,
	}
	if in.Weights != nil {
		b.Weights = *in.Weights
	}
	return nil
}

// Value stores the breakdown in a JSONB column.
func (b CompatibilityBreakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *CompatibilityBreakdown) Scan(value interface{}) error {
	if value == nil {
		*b = CompatibilityBreakdown{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("compatibility breakdown: unsupported column type")
	}
	if len(data) == 0 || string(data) == "{}" {
		*b = CompatibilityBreakdown{}
		return nil
	}
	return json.Unmarshal(data, b)
}
