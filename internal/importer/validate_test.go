package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEstimationFile_Valid(t *testing.T) {
	f := &EstimationFile{
		ProjectName: "p",
		StartDate:   "2024-01-01",
		Holidays:    []string{"2024-01-02"},
		ScreenGroups: []ScreenGroupFile{{ID: "g", Screens: []ScreenFile{
			{ID: "1", Complexity: "easy"},
			{ID: "2"},
		}}},
		TaskGroups: []TaskGroupFile{{ID: "g", Tasks: []TaskItemFile{{ID: "1"}}}},
	}
	assert.Empty(t, ValidateEstimationFile(f))
}

func TestValidateEstimationFile_CollectsAllErrors(t *testing.T) {
	f := &EstimationFile{
		StartDate: "yesterday",
		Holidays:  []string{"2024-13-40"},
		ScreenGroups: []ScreenGroupFile{
			{ID: "g", Screens: []ScreenFile{{ID: "1", Complexity: "huge"}, {ID: "1"}}},
			{ID: "g"},
		},
	}
	errs := ValidateEstimationFile(f)
	assert.Len(t, errs, 5)
}

func TestValidatePlanFile(t *testing.T) {
	f := &PlanFile{Tasks: []PlanTaskFile{
		{ID: "t", SubTasks: []SubTaskFile{
			{ID: "s", Teams: []TeamFile{{ID: "a", StartDate: "bad"}, {ID: "a"}}},
		}},
		{ID: "t"},
	}}
	errs := ValidatePlanFile(f)
	assert.Len(t, errs, 3)

	assert.Empty(t, ValidatePlanFile(&PlanFile{Tasks: []PlanTaskFile{{SubTasks: []SubTaskFile{{Teams: []TeamFile{{}, {}}}}}}}))
}

func TestValidatePlanFile_IDsScopedToParent(t *testing.T) {
	f := &PlanFile{Tasks: []PlanTaskFile{
		{ID: "1", SubTasks: []SubTaskFile{
			{ID: "1", Teams: []TeamFile{{ID: "1"}}},
			{ID: "2", Teams: []TeamFile{{ID: "1"}}},
		}},
		{ID: "2", SubTasks: []SubTaskFile{{ID: "1"}}},
	}}
	assert.Empty(t, ValidatePlanFile(f))
}
