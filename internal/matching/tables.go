package matching

import "github.com/gdugdh24/matchmaker-backend/internal/domain"

type moodPair struct {
	a, b domain.Mood
}

var moodCompatibility = map[moodPair]float64{
	{domain.MoodLowEnergy, domain.MoodLowEnergy}:     90,
	{domain.MoodLowEnergy, domain.MoodOpen}:          70,
	{domain.MoodLowEnergy, domain.MoodChatty}:        40,
	{domain.MoodLowEnergy, domain.MoodAdventurous}:   30,
	{domain.MoodOpen, domain.MoodLowEnergy}:          70,
	{domain.MoodOpen, domain.MoodOpen}:               85,
	{domain.MoodOpen, domain.MoodChatty}:             90,
	{domain.MoodOpen, domain.MoodAdventurous}:        80,
	{domain.MoodChatty, domain.MoodLowEnergy}:        40,
	{domain.MoodChatty, domain.MoodOpen}:             90,
	{domain.MoodChatty, domain.MoodChatty}:           95,
	{domain.MoodChatty, domain.MoodAdventurous}:      85,
	{domain.MoodAdventurous, domain.MoodLowEnergy}:   30,
	{domain.MoodAdventurous, domain.MoodOpen}:        80,
	{domain.MoodAdventurous, domain.MoodChatty}:      85,
	{domain.MoodAdventurous, domain.MoodAdventurous}: 100,
}

type datePacePair struct {
	a, b domain.DatePace
}

var datePaceCompatibility = map[datePacePair]float64{
	{domain.DatePaceReady, domain.DatePaceSlow}:    60,
	{domain.DatePaceSlow, domain.DatePaceReady}:    60,
	{domain.DatePaceReady, domain.DatePaceVirtual}: 50,
	{domain.DatePaceVirtual, domain.DatePaceReady}: 50,
	{domain.DatePaceSlow, domain.DatePaceVirtual}:  75,
	{domain.DatePaceVirtual, domain.DatePaceSlow}:  75,
}

var responsePaceStep = map[domain.ResponsePace]int{
	domain.ResponsePaceQuick:    1,
	domain.ResponsePaceModerate: 2,
	domain.ResponsePaceSlow:     3,
}

type timePair struct {
	a, b domain.TimePreference
}

var adjacentTimes = map[timePair]bool{
	{domain.TimeMorning, domain.TimeAfternoon}: true,
	{domain.TimeAfternoon, domain.TimeMorning}: true,
	{domain.TimeAfternoon, domain.TimeEvening}: true,
	{domain.TimeEvening, domain.TimeAfternoon}: true,
	{domain.TimeEvening, domain.TimeNight}:     true,
	{domain.TimeNight, domain.TimeEvening}:     true,
}
