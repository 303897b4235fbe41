package calendar

import (
	"math"
	"sort"
	"time"
)

// HolidaySet holds dates excluded from business-day counting in addition to
// weekends. A nil HolidaySet is empty.
type HolidaySet map[Date]struct{}

// NewHolidaySet builds a set from dates, ignoring zero values.
func NewHolidaySet(dates ...Date) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

func (h HolidaySet) Contains(d Date) bool {
	_, ok := h[d]
	return ok
}

func (h HolidaySet) Len() int {
	return len(h)
}

// Dates returns the holidays in ascending order.
func (h HolidaySet) Dates() []Date {
	out := make([]Date, 0, len(h))
	for d := range h {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay reports whether d is neither a weekend day nor a holiday.
func IsBusinessDay(d Date, holidays HolidaySet) bool {
	return !IsWeekend(d) && !holidays.Contains(d)
}

// AddBusinessDays steps forward from start one calendar day at a time and
// returns the day on which the n-th business day is reached. start itself
// never counts. n <= 0 returns start unchanged.
func AddBusinessDays(start Date, n int, holidays HolidaySet) Date {
	current := start
	for remaining := n; remaining > 0; {
		current = current.AddDays(1)
		if IsBusinessDay(current, holidays) {
			remaining--
		}
	}
	return current
}

// WholeBusinessDays converts a fractional effort to the number of business
// days walked for it: any positive remainder takes a full day.
func WholeBusinessDays(effort float64) int {
	if effort <= 0 || math.IsNaN(effort) {
		return 0
	}
	return int(math.Ceil(effort))
}

// AdvanceEffort returns the end date of effort days of work starting at start.
func AdvanceEffort(start Date, effort float64, holidays HolidaySet) Date {
	return AddBusinessDays(start, WholeBusinessDays(effort), holidays)
}

// CountBusinessDays counts business days in the half-open range (start, end].
func CountBusinessDays(start, end Date, holidays HolidaySet) int {
	count := 0
	for d := start.AddDays(1); !d.After(end); d = d.AddDays(1) {
		if IsBusinessDay(d, holidays) {
			count++
		}
	}
	return count
}

// DaysBetween returns the number of calendar days from start to end,
// rounded up the way a millisecond difference divided by one day would be.
func DaysBetween(start, end Date) int {
	return int(math.Ceil(end.Time().Sub(start.Time()).Hours() / 24))
}
