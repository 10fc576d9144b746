package matching

import (
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

var fixedNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func born(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func at(lat, lon float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lon: lon}
}

func newTestScorer() *Scorer {
	return NewScorer(DefaultConfig(), WithClock(clock))
}

func newTestFilter() *Filter {
	return NewFilter(DefaultConfig(), WithClock(clock))
}
