package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
)

var fixtureCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, fixtureCounter.Add(1))
}

// Monday is a fixed Monday used as the default start date in fixtures.
var Monday = calendar.MustParseDate("2024-01-01")

// Estimation options
type EstimationOption func(*domain.Estimation)

func WithBuffer(p float64) EstimationOption {
	return func(e *domain.Estimation) { e.Settings.BufferPercentage = p }
}

func WithTeamSize(n int) EstimationOption {
	return func(e *domain.Estimation) { e.Settings.TeamSize = n }
}

func WithStartDate(d calendar.Date) EstimationOption {
	return func(e *domain.Estimation) { e.Settings.StartDate = d }
}

func WithHolidays(dates ...string) EstimationOption {
	return func(e *domain.Estimation) {
		for _, s := range dates {
			e.Settings.AddHoliday(calendar.MustParseDate(s))
		}
	}
}

// WithScreens adds a screen group holding one screen per effort value.
func WithScreens(group string, efforts ...float64) EstimationOption {
	return func(e *domain.Estimation) {
		g := domain.Group{ID: nextID("sg"), Name: group, Kind: domain.GroupScreen}
		for i, d := range efforts {
			g.Items = append(g.Items, domain.Item{
				ID:         nextID("s"),
				Name:       fmt.Sprintf("%s %d", group, i+1),
				Complexity: domain.ComplexityNormal,
				EffortDays: d,
			})
		}
		e.ScreenGroups = append(e.ScreenGroups, g)
	}
}

// WithTasks adds a task group holding one task per effort value.
func WithTasks(group string, efforts ...float64) EstimationOption {
	return func(e *domain.Estimation) {
		g := domain.Group{ID: nextID("tg"), Name: group, Kind: domain.GroupTask}
		for i, d := range efforts {
			g.Items = append(g.Items, domain.Item{
				ID:         nextID("t"),
				Name:       fmt.Sprintf("%s %d", group, i+1),
				EffortDays: d,
			})
		}
		e.TaskGroups = append(e.TaskGroups, g)
	}
}

// NewTestEstimation returns an estimation anchored on Monday with a 10%
// buffer and one person, then applies opts.
func NewTestEstimation(name string, opts ...EstimationOption) *domain.Estimation {
	e := domain.NewEstimation(name)
	e.Settings.StartDate = Monday
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Plan options
type PlanOption func(*domain.Plan)

// Assignment describes one team entry for WithSubTask.
type Assignment struct {
	Team     string
	Start    string
	Effort   float64
	Parallel bool
}

// WithTask appends an empty task.
func WithTask(name string) PlanOption {
	return func(p *domain.Plan) {
		p.Tasks = append(p.Tasks, domain.PlanTask{ID: nextID("task"), Name: name})
	}
}

// WithSubTask appends a subtask to the last task, creating one if needed.
func WithSubTask(name string, teams ...Assignment) PlanOption {
	return func(p *domain.Plan) {
		if len(p.Tasks) == 0 {
			WithTask("Task")(p)
		}
		t := &p.Tasks[len(p.Tasks)-1]
		st := domain.SubTask{ID: nextID("sub"), Name: name}
		for _, a := range teams {
			var start calendar.Date
			if a.Start != "" {
				start = calendar.MustParseDate(a.Start)
			}
			st.Teams = append(st.Teams, domain.TeamAssignment{
				ID:         nextID("team"),
				Name:       a.Team,
				StartDate:  start,
				Effort:     a.Effort,
				IsParallel: a.Parallel,
			})
		}
		t.SubTasks = append(t.SubTasks, st)
	}
}

func WithPlanHolidays(dates ...string) PlanOption {
	return func(p *domain.Plan) {
		for _, s := range dates {
			p.Holidays = append(p.Holidays, calendar.MustParseDate(s))
		}
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{ID: nextID("plan"), Name: name}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FixedClock returns a clock stuck on d at noon UTC.
func FixedClock(d calendar.Date) func() time.Time {
	t := d.Time().Add(12 * time.Hour)
	return func() time.Time { return t }
}
