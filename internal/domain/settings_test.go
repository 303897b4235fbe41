package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/effortplan/internal/calendar"
)

func TestSettingsClamp(t *testing.T) {
	s := DefaultSettings()
	s.SetTeamSize(0)
	s.SetBufferPercentage(-5)
	assert.Equal(t, 1, s.TeamSize)
	assert.Zero(t, s.BufferPercentage)

	s.SetBufferPercentage(math.NaN())
	assert.Zero(t, s.BufferPercentage)
}

func TestSettingsHolidays_SetSemantics(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.AddHoliday(calendar.MustParseDate("2024-01-05")))
	assert.True(t, s.AddHoliday(calendar.MustParseDate("2024-01-02")))
	assert.False(t, s.AddHoliday(calendar.MustParseDate("2024-01-05")))
	assert.False(t, s.AddHoliday(calendar.Date{}))

	assert.Equal(t, []calendar.Date{
		calendar.MustParseDate("2024-01-02"),
		calendar.MustParseDate("2024-01-05"),
	}, s.Holidays)

	assert.True(t, s.RemoveHoliday(calendar.MustParseDate("2024-01-02")))
	assert.False(t, s.RemoveHoliday(calendar.MustParseDate("2024-01-02")))
	assert.Equal(t, 1, s.HolidayCount())
}

func TestSettingsHolidayCount_FallsBackToLegacyCount(t *testing.T) {
	s := Settings{HolidayDays: 3}
	assert.Equal(t, 3, s.HolidayCount())
	s.Holidays = []calendar.Date{calendar.MustParseDate("2024-01-02")}
	assert.Equal(t, 1, s.HolidayCount())
}

func TestSettingsNormalize(t *testing.T) {
	s := Settings{
		BufferPercentage: -1,
		TeamSize:         -3,
		HolidayDays:      -2,
		Holidays: []calendar.Date{
			calendar.MustParseDate("2024-01-05"),
			calendar.MustParseDate("2024-01-02"),
			calendar.MustParseDate("2024-01-05"),
		},
	}
	n := s.Normalize()
	assert.Zero(t, n.BufferPercentage)
	assert.Equal(t, 1, n.TeamSize)
	assert.Zero(t, n.HolidayDays)
	assert.Len(t, n.Holidays, 2)
	assert.Equal(t, "2024-01-02", n.Holidays[0].String())
}
