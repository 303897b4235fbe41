// Package estimate aggregates leaf effort into totals with a contingency
// buffer and an estimated calendar duration.
package estimate

import (
	"math"

	"github.com/alexanderramin/effortplan/internal/domain"
)

// Category keys for the flat model.
const (
	CategoryScreens = "screens"
	CategoryTasks   = "tasks"
)

// CategoryTotal is the raw effort of one category: screens or tasks in the
// flat model, one top-level task in the hierarchical model.
type CategoryTotal struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Effort float64 `json:"effort"`
}

type Totals struct {
	Categories            []CategoryTotal `json:"categories"`
	Subtotal              float64         `json:"subtotal"`
	BufferPercentage      float64         `json:"bufferPercentage"`
	BufferDays            float64         `json:"bufferDays"`
	FinalEffort           float64         `json:"finalEffort"`
	TeamSize              int             `json:"teamSize"`
	HolidayCount          int             `json:"holidayCount"`
	EstimatedDurationDays int             `json:"estimatedDurationDays"`
}

// ComputeEstimation totals a flat estimation using its own settings.
func ComputeEstimation(e *domain.Estimation) Totals {
	var screens, tasks float64
	for _, g := range e.ScreenGroups {
		screens += sumItems(g.Items)
	}
	for _, g := range e.TaskGroups {
		tasks += sumItems(g.Items)
	}
	cats := []CategoryTotal{
		{Key: CategoryScreens, Name: "Screens", Effort: screens},
		{Key: CategoryTasks, Name: "Tasks", Effort: tasks},
	}
	return finish(cats, screens+tasks, e.Settings)
}

// ComputePlan totals a hierarchical plan. Buffer and team size come from
// settings; the plan's own holiday list replaces the settings list when set.
func ComputePlan(p *domain.Plan, settings domain.Settings) Totals {
	cats := make([]CategoryTotal, 0, len(p.Tasks))
	var subtotal float64
	for _, t := range p.Tasks {
		effort := TaskEffort(t)
		cats = append(cats, CategoryTotal{Key: t.ID, Name: t.Name, Effort: effort})
		subtotal += effort
	}
	if len(p.Holidays) > 0 {
		settings.Holidays = p.Holidays
	}
	return finish(cats, subtotal, settings)
}

// TaskEffort sums every team assignment under t.
func TaskEffort(t domain.PlanTask) float64 {
	var total float64
	for _, st := range t.SubTasks {
		total += SubTaskEffort(st)
	}
	return total
}

func SubTaskEffort(st domain.SubTask) float64 {
	var total float64
	for _, tm := range st.Teams {
		total += domain.ClampEffort(tm.Effort)
	}
	return total
}

func sumItems(items []domain.Item) float64 {
	var total float64
	for _, it := range items {
		total += domain.ClampEffort(it.EffortDays)
	}
	return total
}

func finish(cats []CategoryTotal, subtotal float64, s domain.Settings) Totals {
	buffer := domain.ClampBufferPercentage(s.BufferPercentage)
	team := domain.ClampTeamSize(s.TeamSize)
	bufferDays := subtotal * buffer / 100
	final := subtotal + bufferDays
	holidays := s.HolidayCount()
	return Totals{
		Categories:            cats,
		Subtotal:              subtotal,
		BufferPercentage:      buffer,
		BufferDays:            bufferDays,
		FinalEffort:           final,
		TeamSize:              team,
		HolidayCount:          holidays,
		EstimatedDurationDays: int(math.Ceil(final/float64(team))) + holidays,
	}
}

// Category returns the total for key, or zero when absent.
func (t Totals) Category(key string) float64 {
	for _, c := range t.Categories {
		if c.Key == key {
			return c.Effort
		}
	}
	return 0
}
