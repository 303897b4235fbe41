package domain

import (
	"math"
	"slices"

	"github.com/alexanderramin/effortplan/internal/calendar"
)

const (
	DefaultBufferPercentage = 10.0
	DefaultTeamSize         = 1
)

// Settings hold the project-wide parameters that feed aggregation and
// scheduling.
type Settings struct {
	BufferPercentage float64
	TeamSize         int
	// HolidayDays is the legacy holiday count, used only when Holidays is empty.
	HolidayDays int
	Holidays    []calendar.Date
	// StartDate anchors the flat-model timeline. Zero means "today".
	StartDate calendar.Date
}

func DefaultSettings() Settings {
	return Settings{
		BufferPercentage: DefaultBufferPercentage,
		TeamSize:         DefaultTeamSize,
	}
}

// ClampBufferPercentage maps negative and non-numeric input to 0.
func ClampBufferPercentage(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return p
}

// ClampTeamSize maps anything below one person to 1.
func ClampTeamSize(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ClampEffort maps negative and non-numeric effort to 0.
func ClampEffort(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Normalize returns a copy with every field inside its valid range and the
// holiday list deduplicated and sorted.
func (s Settings) Normalize() Settings {
	out := s
	out.BufferPercentage = ClampBufferPercentage(s.BufferPercentage)
	out.TeamSize = ClampTeamSize(s.TeamSize)
	if out.HolidayDays < 0 {
		out.HolidayDays = 0
	}
	out.Holidays = calendar.NewHolidaySet(s.Holidays...).Dates()
	if len(out.Holidays) == 0 {
		out.Holidays = nil
	}
	return out
}

func (s *Settings) SetBufferPercentage(p float64) {
	s.BufferPercentage = ClampBufferPercentage(p)
}

func (s *Settings) SetTeamSize(n int) {
	s.TeamSize = ClampTeamSize(n)
}

// AddHoliday inserts d keeping the list sorted. It reports false when d was
// already present or is the zero date.
func (s *Settings) AddHoliday(d calendar.Date) bool {
	if d.IsZero() {
		return false
	}
	i, found := slices.BinarySearchFunc(s.Holidays, d, calendar.Date.Compare)
	if found {
		return false
	}
	s.Holidays = slices.Insert(s.Holidays, i, d)
	return true
}

// RemoveHoliday deletes d, reporting whether it was present.
func (s *Settings) RemoveHoliday(d calendar.Date) bool {
	i, found := slices.BinarySearchFunc(s.Holidays, d, calendar.Date.Compare)
	if !found {
		return false
	}
	s.Holidays = slices.Delete(s.Holidays, i, i+1)
	if len(s.Holidays) == 0 {
		s.Holidays = nil
	}
	return true
}

func (s Settings) HolidaySet() calendar.HolidaySet {
	return calendar.NewHolidaySet(s.Holidays...)
}

// HolidayCount is the number of holidays added to the estimated duration:
// the explicit list when present, otherwise the legacy count.
func (s Settings) HolidayCount() int {
	if len(s.Holidays) > 0 {
		return len(s.Holidays)
	}
	if s.HolidayDays < 0 {
		return 0
	}
	return s.HolidayDays
}

func (s Settings) Clone() Settings {
	out := s
	out.Holidays = slices.Clone(s.Holidays)
	return out
}
