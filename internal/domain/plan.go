package domain

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/effortplan/internal/calendar"
)

// TeamAssignment is a leaf of the hierarchical model: one team's share of a
// subtask with its own start date.
type TeamAssignment struct {
	ID         string
	Name       string
	StartDate  calendar.Date
	Effort     float64
	IsParallel bool
}

type SubTask struct {
	ID          string
	Name        string
	Description string
	// Dependencies are kept for round trips. Scheduling never reads them.
	Dependencies []string
	Teams        []TeamAssignment
}

type PlanTask struct {
	ID           string
	Name         string
	Description  string
	Dependencies []string
	SubTasks     []SubTask
}

// Plan is the root of the hierarchical model.
type Plan struct {
	ID          string
	Name        string
	Description string
	Tasks       []PlanTask
	Holidays    []calendar.Date
}

// Patches carry optional updates; nil fields are left alone.
type (
	TaskPatch struct {
		Name         *string
		Description  *string
		Dependencies *[]string
	}
	SubTaskPatch = TaskPatch

	TeamPatch struct {
		Name       *string
		StartDate  *calendar.Date
		Effort     *float64
		IsParallel *bool
	}
)

func NewPlan(name string) *Plan {
	return &Plan{ID: NewID(), Name: name}
}

func (p *Plan) AddTask(name, description string) *PlanTask {
	p.Tasks = append(p.Tasks, PlanTask{ID: NewID(), Name: name, Description: description})
	return &p.Tasks[len(p.Tasks)-1]
}

func (p *Plan) FindTask(id string) (*PlanTask, error) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func (p *Plan) UpdateTask(id string, patch TaskPatch) error {
	t, err := p.FindTask(id)
	if err != nil {
		return err
	}
	applyTaskPatch(&t.Name, &t.Description, &t.Dependencies, patch)
	return nil
}

// DeleteTask removes the task with all of its subtasks and assignments.
func (p *Plan) DeleteTask(id string) error {
	i := slices.IndexFunc(p.Tasks, func(t PlanTask) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	p.Tasks = slices.Delete(p.Tasks, i, i+1)
	return nil
}

// FindSubTask searches every task for the subtask and returns it with its
// parent. Subtask ids are unique per task only; an id present under several
// tasks is reported as ambiguous.
func (p *Plan) FindSubTask(id string) (*PlanTask, *SubTask, error) {
	var (
		parent *PlanTask
		found  *SubTask
		n      int
	)
	for i := range p.Tasks {
		if st, err := p.Tasks[i].FindSubTask(id); err == nil {
			parent, found = &p.Tasks[i], st
			n++
		}
	}
	switch n {
	case 0:
		return nil, nil, fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	case 1:
		return parent, found, nil
	}
	return nil, nil, fmt.Errorf("subtask %s: %w (%d matches)", id, ErrAmbiguous, n)
}

// FindTeam searches the whole plan for an assignment.
func (p *Plan) FindTeam(id string) (*SubTask, *TeamAssignment, error) {
	var (
		parent *SubTask
		found  *TeamAssignment
		n      int
	)
	for i := range p.Tasks {
		for j := range p.Tasks[i].SubTasks {
			st := &p.Tasks[i].SubTasks[j]
			if tm, err := st.FindTeam(id); err == nil {
				parent, found = st, tm
				n++
			}
		}
	}
	switch n {
	case 0:
		return nil, nil, fmt.Errorf("team %s: %w", id, ErrNotFound)
	case 1:
		return parent, found, nil
	}
	return nil, nil, fmt.Errorf("team %s: %w (%d matches)", id, ErrAmbiguous, n)
}

func (t *PlanTask) AddSubTask(name, description string) *SubTask {
	t.SubTasks = append(t.SubTasks, SubTask{ID: NewID(), Name: name, Description: description})
	return &t.SubTasks[len(t.SubTasks)-1]
}

func (t *PlanTask) FindSubTask(id string) (*SubTask, error) {
	for i := range t.SubTasks {
		if t.SubTasks[i].ID == id {
			return &t.SubTasks[i], nil
		}
	}
	return nil, fmt.Errorf("subtask %s: %w", id, ErrNotFound)
}

func (t *PlanTask) UpdateSubTask(id string, patch SubTaskPatch) error {
	st, err := t.FindSubTask(id)
	if err != nil {
		return err
	}
	applyTaskPatch(&st.Name, &st.Description, &st.Dependencies, patch)
	return nil
}

func (t *PlanTask) DeleteSubTask(id string) error {
	i := slices.IndexFunc(t.SubTasks, func(st SubTask) bool { return st.ID == id })
	if i < 0 {
		return fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}
	t.SubTasks = slices.Delete(t.SubTasks, i, i+1)
	return nil
}

// AddTeam appends an assignment. Negative effort is clamped to zero.
func (st *SubTask) AddTeam(name string, start calendar.Date, effort float64, parallel bool) *TeamAssignment {
	st.Teams = append(st.Teams, TeamAssignment{
		ID:         NewID(),
		Name:       name,
		StartDate:  start,
		Effort:     ClampEffort(effort),
		IsParallel: parallel,
	})
	return &st.Teams[len(st.Teams)-1]
}

func (st *SubTask) FindTeam(id string) (*TeamAssignment, error) {
	for i := range st.Teams {
		if st.Teams[i].ID == id {
			return &st.Teams[i], nil
		}
	}
	return nil, fmt.Errorf("team %s: %w", id, ErrNotFound)
}

func (st *SubTask) UpdateTeam(id string, patch TeamPatch) error {
	tm, err := st.FindTeam(id)
	if err != nil {
		return err
	}
	if patch.Name != nil {
		tm.Name = *patch.Name
	}
	if patch.StartDate != nil {
		tm.StartDate = *patch.StartDate
	}
	if patch.Effort != nil {
		tm.Effort = ClampEffort(*patch.Effort)
	}
	if patch.IsParallel != nil {
		tm.IsParallel = *patch.IsParallel
	}
	return nil
}

func (st *SubTask) DeleteTeam(id string) error {
	i := slices.IndexFunc(st.Teams, func(tm TeamAssignment) bool { return tm.ID == id })
	if i < 0 {
		return fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	st.Teams = slices.Delete(st.Teams, i, i+1)
	return nil
}

func applyTaskPatch(name, desc *string, deps *[]string, patch TaskPatch) {
	if patch.Name != nil {
		*name = *patch.Name
	}
	if patch.Description != nil {
		*desc = *patch.Description
	}
	if patch.Dependencies != nil {
		*deps = slices.Clone(*patch.Dependencies)
	}
}

// Counts returns the number of tasks, subtasks and team assignments.
func (p *Plan) Counts() (tasks, subtasks, teams int) {
	tasks = len(p.Tasks)
	for _, t := range p.Tasks {
		subtasks += len(t.SubTasks)
		for _, st := range t.SubTasks {
			teams += len(st.Teams)
		}
	}
	return tasks, subtasks, teams
}

func (p *Plan) HolidaySet() calendar.HolidaySet {
	return calendar.NewHolidaySet(p.Holidays...)
}

func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	out := *p
	out.Holidays = slices.Clone(p.Holidays)
	if p.Tasks != nil {
		out.Tasks = make([]PlanTask, len(p.Tasks))
		for i, t := range p.Tasks {
			out.Tasks[i] = t.clone()
		}
	}
	return &out
}

func (t PlanTask) clone() PlanTask {
	t.Dependencies = slices.Clone(t.Dependencies)
	if t.SubTasks != nil {
		subs := make([]SubTask, len(t.SubTasks))
		for i, st := range t.SubTasks {
			st.Dependencies = slices.Clone(st.Dependencies)
			st.Teams = slices.Clone(st.Teams)
			subs[i] = st
		}
		t.SubTasks = subs
	}
	return t
}
