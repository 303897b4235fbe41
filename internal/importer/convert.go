package importer

import (
	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/estimate"
)

// ToEstimation builds a flat estimation from a validated file. Settings are
// clamped into range and items without an id get a fresh one.
func ToEstimation(f *EstimationFile) *domain.Estimation {
	e := &domain.Estimation{Name: f.ProjectName}

	for _, g := range f.ScreenGroups {
		group := domain.Group{ID: idOrNew(g.ID), Name: g.Name, Kind: domain.GroupScreen}
		for _, s := range g.Screens {
			group.Items = append(group.Items, domain.Item{
				ID:         idOrNew(s.ID),
				Name:       s.Name,
				Complexity: domain.Complexity(s.Complexity),
				EffortDays: domain.ClampEffort(float64(s.EffortDays)),
			})
		}
		e.ScreenGroups = append(e.ScreenGroups, group)
	}
	for _, g := range f.TaskGroups {
		group := domain.Group{ID: idOrNew(g.ID), Name: g.Name, Kind: domain.GroupTask}
		for _, t := range g.Tasks {
			group.Items = append(group.Items, domain.Item{
				ID:         idOrNew(t.ID),
				Name:       t.Name,
				EffortDays: domain.ClampEffort(float64(t.EffortDays)),
			})
		}
		e.TaskGroups = append(e.TaskGroups, group)
	}

	start, _ := calendar.ParseDate(f.StartDate)
	e.Settings = domain.Settings{
		BufferPercentage: f.BufferPercentage.value(domain.DefaultBufferPercentage),
		TeamSize:         int(f.TeamSize.value(domain.DefaultTeamSize)),
		HolidayDays:      int(f.HolidayDays.value(0)),
		Holidays:         parseDates(f.Holidays),
		StartDate:        start,
	}.Normalize()
	return e
}

// ToPlan builds a hierarchical plan from a validated file.
func ToPlan(f *PlanFile) *domain.Plan {
	p := &domain.Plan{
		ID:          idOrNew(f.ID),
		Name:        f.Name,
		Description: f.Description,
		Holidays:    calendar.NewHolidaySet(parseDates(f.Holidays)...).Dates(),
	}
	if len(p.Holidays) == 0 {
		p.Holidays = nil
	}
	for _, t := range f.Tasks {
		task := domain.PlanTask{
			ID:           idOrNew(t.ID),
			Name:         t.Name,
			Description:  t.Description,
			Dependencies: idStrings(t.Dependencies),
		}
		for _, st := range t.SubTasks {
			sub := domain.SubTask{
				ID:           idOrNew(st.ID),
				Name:         st.Name,
				Description:  st.Description,
				Dependencies: idStrings(st.Dependencies),
			}
			for _, tm := range st.Teams {
				start, _ := calendar.ParseDate(tm.StartDate)
				sub.Teams = append(sub.Teams, domain.TeamAssignment{
					ID:         idOrNew(tm.ID),
					Name:       tm.Name,
					StartDate:  start,
					Effort:     domain.ClampEffort(float64(tm.Effort)),
					IsParallel: tm.IsParallel,
				})
			}
			task.SubTasks = append(task.SubTasks, sub)
		}
		p.Tasks = append(p.Tasks, task)
	}
	return p
}

// FromEstimation renders e in file shape with the derived totals filled in.
func FromEstimation(e *domain.Estimation) EstimationFile {
	totals := estimate.ComputeEstimation(e)
	f := EstimationFile{
		ProjectName:       e.Name,
		ScreenGroups:      make([]ScreenGroupFile, 0, len(e.ScreenGroups)),
		TaskGroups:        make([]TaskGroupFile, 0, len(e.TaskGroups)),
		BufferPercentage:  flex(e.Settings.BufferPercentage),
		TeamSize:          flex(float64(e.Settings.TeamSize)),
		Holidays:          formatDates(e.Settings.Holidays),
		HolidayDays:       flex(float64(e.Settings.HolidayDays)),
		StartDate:         e.Settings.StartDate.String(),
		TotalEffort:       totals.FinalEffort,
		EstimatedDuration: totals.EstimatedDurationDays,
	}
	for _, g := range e.ScreenGroups {
		gf := ScreenGroupFile{ID: FlexID(g.ID), Name: g.Name, Screens: make([]ScreenFile, 0, len(g.Items))}
		for _, it := range g.Items {
			gf.Screens = append(gf.Screens, ScreenFile{
				ID:         FlexID(it.ID),
				Name:       it.Name,
				Complexity: string(it.Complexity),
				EffortDays: FlexNumber(it.EffortDays),
			})
		}
		f.ScreenGroups = append(f.ScreenGroups, gf)
	}
	for _, g := range e.TaskGroups {
		gf := TaskGroupFile{ID: FlexID(g.ID), Name: g.Name, Tasks: make([]TaskItemFile, 0, len(g.Items))}
		for _, it := range g.Items {
			gf.Tasks = append(gf.Tasks, TaskItemFile{ID: FlexID(it.ID), Name: it.Name, EffortDays: FlexNumber(it.EffortDays)})
		}
		f.TaskGroups = append(f.TaskGroups, gf)
	}
	return f
}

// FromPlan renders p in file shape.
func FromPlan(p *domain.Plan) PlanFile {
	f := PlanFile{
		ID:          FlexID(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Tasks:       make([]PlanTaskFile, 0, len(p.Tasks)),
	}
	if len(p.Holidays) > 0 {
		f.Holidays = formatDates(p.Holidays)
	}
	for _, t := range p.Tasks {
		tf := PlanTaskFile{
			ID:           FlexID(t.ID),
			Name:         t.Name,
			Description:  t.Description,
			Dependencies: flexIDs(t.Dependencies),
			SubTasks:     make([]SubTaskFile, 0, len(t.SubTasks)),
		}
		for _, st := range t.SubTasks {
			sf := SubTaskFile{
				ID:           FlexID(st.ID),
				Name:         st.Name,
				Description:  st.Description,
				Dependencies: flexIDs(st.Dependencies),
				Teams:        make([]TeamFile, 0, len(st.Teams)),
			}
			for _, tm := range st.Teams {
				sf.Teams = append(sf.Teams, TeamFile{
					ID:         FlexID(tm.ID),
					Name:       tm.Name,
					StartDate:  tm.StartDate.String(),
					Effort:     FlexNumber(tm.Effort),
					IsParallel: tm.IsParallel,
				})
			}
			tf.SubTasks = append(tf.SubTasks, sf)
		}
		f.Tasks = append(f.Tasks, tf)
	}
	return f
}

func idOrNew(id FlexID) string {
	if id == "" {
		return domain.NewID()
	}
	return string(id)
}

func idStrings(ids []FlexID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func flexIDs(ids []string) []FlexID {
	out := make([]FlexID, len(ids))
	for i, id := range ids {
		out[i] = FlexID(id)
	}
	return out
}

func parseDates(in []string) []calendar.Date {
	var out []calendar.Date
	for _, s := range in {
		if d, err := calendar.ParseDate(s); err == nil && !d.IsZero() {
			out = append(out, d)
		}
	}
	return out
}

func formatDates(in []calendar.Date) []string {
	out := make([]string, 0, len(in))
	for _, d := range in {
		out = append(out, d.String())
	}
	return out
}
