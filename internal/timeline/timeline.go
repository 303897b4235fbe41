// Package timeline projects leaf effort onto the business-day calendar.
//
// Flat estimations are scheduled as a single sequential chain from one
// anchor date. Plans are scheduled from each team assignment's own start
// date, so assignments may overlap.
package timeline

import (
	"strings"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
)

type Level string

const (
	LevelGroup   Level = "group"
	LevelTask    Level = "task"
	LevelSubTask Level = "subtask"
	LevelTeam    Level = "team"
)

// Key joins ids from the root down. Ids are only unique among siblings, so
// the key is what identifies a leaf or container within one timeline.
func Key(ids ...string) string {
	return strings.Join(ids, "/")
}

// Entry is one scheduled leaf.
type Entry struct {
	LeafID       string
	Key          string
	Name         string
	Path         []string
	Kind         domain.LeafKind
	Start        calendar.Date
	End          calendar.Date
	DurationDays float64
	Parallel     bool
	// Offset is the number of calendar days from the timeline start.
	Offset int
}

// Span covers a container or leaf in Gantt order.
type Span struct {
	ID        string
	Key       string
	Name      string
	Level     Level
	ParentID  string
	ParentKey string
	Start    calendar.Date
	End      calendar.Date
	Effort   float64
}

type Timeline struct {
	Entries []Entry
	Spans   []Span
	Start   calendar.Date
	End     calendar.Date
	// Unscheduled counts plan assignments skipped for lack of a start date.
	Unscheduled int
}

// Scheduled reports whether at least one leaf was placed on the calendar.
func (t Timeline) Scheduled() bool {
	return len(t.Entries) > 0
}

// CalendarDays is the calendar-day length of the whole timeline.
func (t Timeline) CalendarDays() int {
	if !t.Scheduled() {
		return 0
	}
	return calendar.DaysBetween(t.Start, t.End)
}

// SequentialChain schedules every item of e back to back from start:
// screen groups first, then task groups, each in declaration order. Each
// item starts on the day the previous one ended.
func SequentialChain(e *domain.Estimation, start calendar.Date, holidays calendar.HolidaySet) Timeline {
	tl := Timeline{Start: start, End: start}
	cursor := start
	for _, g := range e.AllGroups() {
		kind := domain.LeafScreen
		if g.Kind == domain.GroupTask {
			kind = domain.LeafTask
		}
		groupKey := Key(string(g.Kind), g.ID)
		groupStart := cursor
		var groupEffort float64
		for _, it := range g.Items {
			effort := domain.ClampEffort(it.EffortDays)
			end := calendar.AdvanceEffort(cursor, effort, holidays)
			tl.Entries = append(tl.Entries, Entry{
				LeafID:       it.ID,
				Key:          Key(groupKey, it.ID),
				Name:         g.Name + " - " + it.Name,
				Path:         []string{g.Name, it.Name},
				Kind:         kind,
				Start:        cursor,
				End:          end,
				DurationDays: effort,
				Offset:       calendar.DaysBetween(start, cursor),
			})
			groupEffort += effort
			cursor = end
		}
		if len(g.Items) > 0 {
			tl.Spans = append(tl.Spans, Span{
				ID: g.ID, Key: groupKey, Name: g.Name, Level: LevelGroup,
				Start: groupStart, End: cursor, Effort: groupEffort,
			})
		}
	}
	tl.End = cursor
	return tl
}

// ExplicitStart schedules each team assignment of p from its own start date.
// Subtask and task spans cover their children; containers without a
// scheduled leaf emit no span. Assignments without a start date are counted
// in Unscheduled. Dependencies are not consulted.
func ExplicitStart(p *domain.Plan, holidays calendar.HolidaySet) Timeline {
	var tl Timeline
	var bounds spanBounds
	for _, t := range p.Tasks {
		var taskBounds spanBounds
		var taskEffort float64
		taskAt := len(tl.Spans)
		tl.Spans = append(tl.Spans, Span{}) // placeholder, filled once children are known

		var children []Span
		for _, st := range t.SubTasks {
			subKey := Key(t.ID, st.ID)
			var subBounds spanBounds
			var subEffort float64
			var teams []Span
			for _, tm := range st.Teams {
				if tm.StartDate.IsZero() {
					tl.Unscheduled++
					continue
				}
				effort := domain.ClampEffort(tm.Effort)
				end := calendar.AdvanceEffort(tm.StartDate, effort, holidays)
				tl.Entries = append(tl.Entries, Entry{
					LeafID:       tm.ID,
					Key:          Key(subKey, tm.ID),
					Name:         tm.Name,
					Path:         []string{t.Name, st.Name, tm.Name},
					Kind:         domain.LeafTeam,
					Start:        tm.StartDate,
					End:          end,
					DurationDays: effort,
					Parallel:     tm.IsParallel,
				})
				teams = append(teams, Span{
					ID: tm.ID, Key: Key(subKey, tm.ID), Name: tm.Name, Level: LevelTeam,
					ParentID: st.ID, ParentKey: subKey,
					Start: tm.StartDate, End: end, Effort: effort,
				})
				subBounds.add(tm.StartDate, end)
				subEffort += effort
			}
			if !subBounds.set {
				continue
			}
			children = append(children, Span{
				ID: st.ID, Key: subKey, Name: st.Name, Level: LevelSubTask,
				ParentID: t.ID, ParentKey: Key(t.ID),
				Start: subBounds.start, End: subBounds.end, Effort: subEffort,
			})
			children = append(children, teams...)
			taskBounds.add(subBounds.start, subBounds.end)
			taskEffort += subEffort
		}
		if !taskBounds.set {
			tl.Spans = tl.Spans[:taskAt]
			continue
		}
		tl.Spans[taskAt] = Span{
			ID: t.ID, Key: Key(t.ID), Name: t.Name, Level: LevelTask,
			Start: taskBounds.start, End: taskBounds.end, Effort: taskEffort,
		}
		tl.Spans = append(tl.Spans, children...)
		bounds.add(taskBounds.start, taskBounds.end)
	}
	if bounds.set {
		tl.Start, tl.End = bounds.start, bounds.end
		for i := range tl.Entries {
			tl.Entries[i].Offset = calendar.DaysBetween(tl.Start, tl.Entries[i].Start)
		}
	}
	return tl
}

type spanBounds struct {
	start, end calendar.Date
	set        bool
}

func (b *spanBounds) add(start, end calendar.Date) {
	if !b.set {
		b.start, b.end, b.set = start, end, true
		return
	}
	if start.Before(b.start) {
		b.start = start
	}
	if end.After(b.end) {
		b.end = end
	}
}

// SpanFor returns the span whose Key is key.
func (t Timeline) SpanFor(key string) (Span, bool) {
	for _, s := range t.Spans {
		if s.Key == key {
			return s, true
		}
	}
	return Span{}, false
}
