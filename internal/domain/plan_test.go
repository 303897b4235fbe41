package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/calendar"
)

func TestPlanMutations(t *testing.T) {
	p := NewPlan("Release")
	task := p.AddTask("Build", "")
	st := task.AddSubTask("API", "rest endpoints")
	tm := st.AddTeam("Backend", calendar.MustParseDate("2024-01-01"), -2, false)
	assert.Zero(t, tm.Effort)

	effort := 4.0
	parallel := true
	require.NoError(t, st.UpdateTeam(tm.ID, TeamPatch{Effort: &effort, IsParallel: &parallel}))

	parent, found, err := p.FindTeam(tm.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, parent.ID)
	assert.Equal(t, 4.0, found.Effort)
	assert.True(t, found.IsParallel)

	deps := []string{"x"}
	name := "Ship"
	require.NoError(t, p.UpdateTask(task.ID, TaskPatch{Name: &name, Dependencies: &deps}))
	assert.Equal(t, "Ship", p.Tasks[0].Name)
	assert.Equal(t, []string{"x"}, p.Tasks[0].Dependencies)

	tasks, subs, teams := p.Counts()
	assert.Equal(t, [3]int{1, 1, 1}, [3]int{tasks, subs, teams})
}

func TestPlanDelete_Cascades(t *testing.T) {
	p := NewPlan("Release")
	task := p.AddTask("Build", "")
	st := task.AddSubTask("API", "")
	tm := st.AddTeam("Backend", calendar.Date{}, 1, false)
	teamID := tm.ID

	require.NoError(t, p.DeleteTask(task.ID))
	_, _, err := p.FindTeam(teamID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, p.DeleteTask(task.ID), ErrNotFound)
}

func TestPlanUnknownIDs(t *testing.T) {
	p := NewPlan("Release")
	task := p.AddTask("Build", "")
	st := task.AddSubTask("API", "")

	assert.ErrorIs(t, p.UpdateTask("nope", TaskPatch{}), ErrNotFound)
	assert.ErrorIs(t, task.UpdateSubTask("nope", SubTaskPatch{}), ErrNotFound)
	assert.ErrorIs(t, task.DeleteSubTask("nope"), ErrNotFound)
	assert.ErrorIs(t, st.UpdateTeam("nope", TeamPatch{}), ErrNotFound)
	assert.ErrorIs(t, st.DeleteTeam("nope"), ErrNotFound)
	_, _, err := p.FindSubTask("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanClone_IsDeep(t *testing.T) {
	p := NewPlan("Release")
	p.Holidays = []calendar.Date{calendar.MustParseDate("2024-01-03")}
	st := p.AddTask("Build", "").AddSubTask("API", "")
	st.AddTeam("Backend", calendar.MustParseDate("2024-01-01"), 2, false)

	cp := p.Clone()
	cp.Tasks[0].SubTasks[0].Teams[0].Effort = 99
	cp.Holidays[0] = calendar.MustParseDate("2025-01-01")

	assert.Equal(t, 2.0, p.Tasks[0].SubTasks[0].Teams[0].Effort)
	assert.Equal(t, "2024-01-03", p.Holidays[0].String())
}

func TestDocument_CheckAndClone(t *testing.T) {
	assert.ErrorIs(t, Document{Kind: ModelPlan}.Check(), ErrKindMismatch)
	assert.ErrorIs(t, Document{Kind: "other"}.Check(), ErrKindMismatch)

	doc := NewEstimationDocument(NewEstimation("Shop"))
	require.NoError(t, doc.Check())
	cp := doc.Clone()
	cp.Estimation.Name = "Other"
	assert.Equal(t, "Shop", doc.Name())
}

func TestPlanSharedIDs_AcrossParents(t *testing.T) {
	p := &Plan{Tasks: []PlanTask{
		{ID: "1", SubTasks: []SubTask{
			{ID: "1", Teams: []TeamAssignment{{ID: "1", Name: "Backend"}}},
			{ID: "2", Teams: []TeamAssignment{{ID: "1", Name: "Frontend"}}},
		}},
		{ID: "2", SubTasks: []SubTask{{ID: "1", Name: "Ship"}}},
	}}

	_, _, err := p.FindSubTask("1")
	assert.ErrorIs(t, err, ErrAmbiguous)
	_, _, err = p.FindTeam("1")
	assert.ErrorIs(t, err, ErrAmbiguous)

	parent, st, err := p.FindSubTask("2")
	require.NoError(t, err)
	assert.Equal(t, "1", parent.ID)

	tm, err := st.FindTeam("1")
	require.NoError(t, err)
	assert.Equal(t, "Frontend", tm.Name)
}
