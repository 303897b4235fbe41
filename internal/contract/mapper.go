package contract

import (
	"github.com/alexanderramin/effortplan/internal/service"
	"github.com/alexanderramin/effortplan/internal/summary"
)

// FromView renders a computed view for the wire.
func FromView(code string, v *service.View) ProjectView {
	out := ProjectView{
		Code:     code,
		Kind:     string(v.Kind),
		Name:     v.Name,
		Start:    v.Timeline.Start.String(),
		End:      v.Timeline.End.String(),
		Timeline: make([]TimelineEntry, 0, len(v.Timeline.Entries)),
		Spans:    make([]Span, 0, len(v.Timeline.Spans)),
		Totals: Totals{
			Categories:            make([]Category, 0, len(v.Totals.Categories)),
			Subtotal:              v.Totals.Subtotal,
			BufferPercentage:      v.Totals.BufferPercentage,
			BufferDays:            v.Totals.BufferDays,
			FinalEffort:           v.Totals.FinalEffort,
			TeamSize:              v.Totals.TeamSize,
			HolidayCount:          v.Totals.HolidayCount,
			EstimatedDurationDays: v.Totals.EstimatedDurationDays,
		},
	}
	for _, c := range v.Totals.Categories {
		out.Totals.Categories = append(out.Totals.Categories, Category{Key: c.Key, Name: c.Name, Effort: c.Effort})
	}
	for _, e := range v.Timeline.Entries {
		path := append([]string{}, e.Path...)
		out.Timeline = append(out.Timeline, TimelineEntry{
			LeafID:       e.LeafID,
			Key:          e.Key,
			Name:         e.Name,
			Path:         path,
			Kind:         string(e.Kind),
			Start:        e.Start.String(),
			End:          e.End.String(),
			DurationDays: e.DurationDays,
			Parallel:     e.Parallel,
			Offset:       e.Offset,
		})
	}
	for _, s := range v.Timeline.Spans {
		out.Spans = append(out.Spans, Span{
			ID:        s.ID,
			Key:       s.Key,
			Name:      s.Name,
			Level:     string(s.Level),
			ParentID:  s.ParentID,
			ParentKey: s.ParentKey,
			Start:     s.Start.String(),
			End:       s.End.String(),
			Effort:    s.Effort,
		})
	}

	if s := v.Estimation; s != nil {
		out.DateRange = s.DateRange
		out.Estimation = &EstimationSummary{
			ScreenGroups: s.ScreenGroups,
			Screens:      s.Screens,
			TaskGroups:   s.TaskGroups,
			Tasks:        s.Tasks,
			ScreenEffort: s.ScreenEffort,
			TaskEffort:   s.TaskEffort,
			CalendarDays: s.CalendarDays,
		}
	}
	if s := v.Plan; s != nil {
		out.DateRange = s.DateRange
		out.Plan = fromPlanSummary(s)
	}
	return out
}

func fromPlanSummary(s *summary.PlanSummary) *PlanSummary {
	out := &PlanSummary{
		Tasks:       s.Tasks,
		SubTasks:    s.SubTasks,
		Assignments: s.Assignments,
		Unscheduled: s.Unscheduled,
		Teams:       make([]Team, 0, len(s.Teams)),
		TaskEfforts: make([]TaskEffort, 0, len(s.TaskEfforts)),
	}
	for _, t := range s.Teams {
		team := Team{
			Name:        t.Name,
			Color:       t.Color,
			Assignments: t.Assignments,
			Effort:      t.Effort,
			Schedule:    make([]ScheduleRow, 0, len(t.Schedule)),
		}
		for _, r := range t.Schedule {
			team.Schedule = append(team.Schedule, ScheduleRow{
				TeamID:   r.TeamID,
				Label:    r.Label,
				Start:    r.Start.String(),
				End:      r.End.String(),
				Effort:   r.Effort,
				Parallel: r.Parallel,
			})
		}
		out.Teams = append(out.Teams, team)
	}
	for _, te := range s.TaskEfforts {
		task := TaskEffort{ID: te.ID, Name: te.Name, Effort: te.Effort, SubTasks: make([]SubTaskEffort, 0, len(te.SubTasks))}
		for _, st := range te.SubTasks {
			task.SubTasks = append(task.SubTasks, SubTaskEffort{ID: st.ID, Name: st.Name, Effort: st.Effort})
		}
		out.TaskEfforts = append(out.TaskEfforts, task)
	}
	return out
}

// FromEntries renders library entries for the wire.
func FromEntries(entries []service.LibraryEntry) []ProjectListEntry {
	out := make([]ProjectListEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ProjectListEntry{Code: e.Code, Name: e.Name, Kind: string(e.Kind)})
	}
	return out
}
