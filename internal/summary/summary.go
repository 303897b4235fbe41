// Package summary derives read-only projections (counts, per-category and
// per-team effort, date-range labels) from a document and its computed
// totals and timeline.
package summary

import (
	"fmt"
	"math"
	"slices"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/estimate"
	"github.com/alexanderramin/effortplan/internal/timeline"
)

// NoStartDates labels a plan whose assignments carry no start dates.
const NoStartDates = "no start dates set"

// TeamPalette is assigned to team names in order of first appearance.
var TeamPalette = []string{
	"#2563eb", "#16a34a", "#dc2626", "#9333ea",
	"#ea580c", "#0891b2", "#4f46e5", "#be123c",
}

// TeamColor returns the palette colour for the i-th distinct team.
func TeamColor(i int) string {
	if i < 0 {
		i = -i
	}
	return TeamPalette[i%len(TeamPalette)]
}

// FormatDateRange renders "<start> - <end> (<N> days)" where N counts
// calendar days between the two dates. The unit stays plural for N == 1.
func FormatDateRange(start, end calendar.Date) string {
	n := int(math.Abs(float64(calendar.DaysBetween(start, end))))
	return fmt.Sprintf("%s - %s (%d days)", start, end, n)
}

type EstimationSummary struct {
	Name             string
	ScreenGroups     int
	Screens          int
	TaskGroups       int
	Tasks            int
	ScreenEffort     float64
	TaskEffort       float64
	Subtotal         float64
	BufferPercentage float64
	BufferDays       float64
	FinalEffort      float64
	TeamSize         int
	HolidayCount     int
	DurationDays     int
	Start            calendar.Date
	End              calendar.Date
	CalendarDays     int
	DateRange        string
}

func SummarizeEstimation(e *domain.Estimation, totals estimate.Totals, tl timeline.Timeline) EstimationSummary {
	s := EstimationSummary{
		Name:             e.Name,
		ScreenGroups:     len(e.ScreenGroups),
		TaskGroups:       len(e.TaskGroups),
		ScreenEffort:     totals.Category(estimate.CategoryScreens),
		TaskEffort:       totals.Category(estimate.CategoryTasks),
		Subtotal:         totals.Subtotal,
		BufferPercentage: totals.BufferPercentage,
		BufferDays:       totals.BufferDays,
		FinalEffort:      totals.FinalEffort,
		TeamSize:         totals.TeamSize,
		HolidayCount:     totals.HolidayCount,
		DurationDays:     totals.EstimatedDurationDays,
		Start:            tl.Start,
		End:              tl.End,
		CalendarDays:     tl.CalendarDays(),
	}
	for _, g := range e.ScreenGroups {
		s.Screens += len(g.Items)
	}
	for _, g := range e.TaskGroups {
		s.Tasks += len(g.Items)
	}
	if !tl.Start.IsZero() {
		s.DateRange = FormatDateRange(tl.Start, tl.End)
	}
	return s
}

// ScheduleRow is one assignment in a team's schedule.
type ScheduleRow struct {
	TeamID   string
	Label    string
	Start    calendar.Date
	End      calendar.Date
	Effort   float64
	Parallel bool
}

type TeamSummary struct {
	Name        string
	PaletteSlot int
	Color       string
	Assignments int
	Effort      float64
	Schedule    []ScheduleRow
}

type SubTaskEffort struct {
	ID     string
	Name   string
	Effort float64
}

type TaskEffort struct {
	ID       string
	Name     string
	Effort   float64
	SubTasks []SubTaskEffort
}

type PlanSummary struct {
	Name        string
	Tasks       int
	SubTasks    int
	Assignments int
	Unscheduled int
	Teams       []TeamSummary
	TaskEfforts []TaskEffort
	TotalEffort float64
	FinalEffort float64
	Start       calendar.Date
	End         calendar.Date
	DateRange   string
}

// SummarizePlan groups assignments by team name. Teams keep the order of
// their first appearance; each team's schedule is sorted by start date,
// unscheduled assignments last, ties in declaration order.
func SummarizePlan(p *domain.Plan, totals estimate.Totals, tl timeline.Timeline) PlanSummary {
	s := PlanSummary{
		Name:        p.Name,
		Unscheduled: tl.Unscheduled,
		TotalEffort: totals.Subtotal,
		FinalEffort: totals.FinalEffort,
		Start:       tl.Start,
		End:         tl.End,
		DateRange:   NoStartDates,
	}
	s.Tasks, s.SubTasks, s.Assignments = p.Counts()
	if tl.Scheduled() {
		s.DateRange = FormatDateRange(tl.Start, tl.End)
	}

	ends := make(map[string]calendar.Date, len(tl.Entries))
	for _, e := range tl.Entries {
		ends[e.Key] = e.End
	}

	slot := map[string]int{}
	for _, t := range p.Tasks {
		te := TaskEffort{ID: t.ID, Name: t.Name, Effort: estimate.TaskEffort(t)}
		for _, st := range t.SubTasks {
			te.SubTasks = append(te.SubTasks, SubTaskEffort{ID: st.ID, Name: st.Name, Effort: estimate.SubTaskEffort(st)})
			for _, tm := range st.Teams {
				i, ok := slot[tm.Name]
				if !ok {
					i = len(s.Teams)
					slot[tm.Name] = i
					s.Teams = append(s.Teams, TeamSummary{Name: tm.Name, PaletteSlot: i, Color: TeamColor(i)})
				}
				team := &s.Teams[i]
				team.Assignments++
				team.Effort += domain.ClampEffort(tm.Effort)
				team.Schedule = append(team.Schedule, ScheduleRow{
					TeamID:   tm.ID,
					Label:    t.Name + " > " + st.Name,
					Start:    tm.StartDate,
					End:      ends[timeline.Key(t.ID, st.ID, tm.ID)],
					Effort:   domain.ClampEffort(tm.Effort),
					Parallel: tm.IsParallel,
				})
			}
		}
		s.TaskEfforts = append(s.TaskEfforts, te)
	}
	for i := range s.Teams {
		slices.SortStableFunc(s.Teams[i].Schedule, compareRows)
	}
	return s
}

func compareRows(a, b ScheduleRow) int {
	switch {
	case a.Start.IsZero() && b.Start.IsZero():
		return 0
	case a.Start.IsZero():
		return 1
	case b.Start.IsZero():
		return -1
	}
	return a.Start.Compare(b.Start)
}

// TeamNames returns the distinct team names in first-appearance order.
func (s PlanSummary) TeamNames() []string {
	names := make([]string, len(s.Teams))
	for i, t := range s.Teams {
		names[i] = t.Name
	}
	return names
}
