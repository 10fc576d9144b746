package domain

import "time"

type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "nonbinary"
	GenderOther     Gender = "other"
	// GenderEveryone is only meaningful inside LookingFor.Genders.
	GenderEveryone Gender = "everyone"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary, GenderOther:
		return true
	}
	return false
}

type Mood string

const (
	MoodLowEnergy   Mood = "lowEnergy"
	MoodOpen        Mood = "open"
	MoodChatty      Mood = "chatty"
	MoodAdventurous Mood = "adventurous"
)

type ResponsePace string

const (
	ResponsePaceQuick    ResponsePace = "quick"
	ResponsePaceModerate ResponsePace = "moderate"
	ResponsePaceSlow     ResponsePace = "slow"
	ResponsePaceVariable ResponsePace = "variable"
)

type DatePace string

const (
	DatePaceReady    DatePace = "ready"
	DatePaceSlow     DatePace = "slow"
	DatePaceVirtual  DatePace = "virtual"
	DatePaceFlexible DatePace = "flexible"
)

type TimePreference string

const (
	TimeMorning   TimePreference = "morning"
	TimeAfternoon TimePreference = "afternoon"
	TimeEvening   TimePreference = "evening"
	TimeNight     TimePreference = "night"
	TimeFlexible  TimePreference = "flexible"
)

type RelationshipType string

const (
	RelationshipCasual   RelationshipType = "casual"
	RelationshipSerious  RelationshipType = "serious"
	RelationshipFriends  RelationshipType = "friends"
	RelationshipActivity RelationshipType = "activity"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LookingFor holds a user's partner preferences. Zero values mean "use the default".
type LookingFor struct {
	Genders           []Gender           `json:"genders"`
	MinAge            int                `json:"min_age"`
	MaxAge            int                `json:"max_age"`
	MaxDistanceKm     float64            `json:"max_distance_km"`
	RelationshipTypes []RelationshipType `json:"relationship_types"`
}

// ProfileFacts is the part of a profile the matching engine reads.
type ProfileFacts struct {
	UserID         int              `json:"user_id" db:"user_id"`
	DisplayName    string           `json:"display_name" db:"display_name"`
	Gender         Gender           `json:"gender" db:"gender"`
	DateOfBirth    *time.Time       `json:"date_of_birth" db:"date_of_birth"`
	Location       *Coordinates     `json:"location"`
	TagIDs         []int            `json:"tag_ids"`
	InterestIDs    []int            `json:"interest_ids"`
	Mood           Mood             `json:"mood" db:"current_mood"`
	ResponsePace   ResponsePace     `json:"response_pace" db:"response_pace"`
	DatePace       DatePace         `json:"date_pace" db:"date_pace"`
	PreferredTimes []TimePreference `json:"preferred_times"`
	LookingFor     *LookingFor      `json:"looking_for"`
	IsVisible      bool             `json:"is_visible" db:"is_visible"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// AgeAt returns the age in whole years on the given day, false when no birth date is known.
func (p *ProfileFacts) AgeAt(now time.Time) (int, bool) {
	if p == nil || p.DateOfBirth == nil {
		return 0, false
	}
	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

func (p *ProfileFacts) HasLocation() bool {
	return p != nil && p.Location != nil
}
