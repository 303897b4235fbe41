package importer

import (
	"fmt"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
)

// ValidateEstimationFile checks a flat file before conversion.
// Returns a slice of all validation errors found.
func ValidateEstimationFile(f *EstimationFile) []error {
	var errs []error

	if f.StartDate != "" {
		if _, err := calendar.ParseDate(f.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("startDate: %w", err))
		}
	}
	errs = append(errs, validateDates("holidays", f.Holidays)...)

	groupIDs := make(map[FlexID]bool)
	for i, g := range f.ScreenGroups {
		path := fmt.Sprintf("screenGroups[%d]", i)
		errs = append(errs, checkUnique(path, g.ID, groupIDs)...)
		itemIDs := make(map[FlexID]bool)
		for j, s := range g.Screens {
			spath := fmt.Sprintf("%s.screens[%d]", path, j)
			errs = append(errs, checkUnique(spath, s.ID, itemIDs)...)
			if s.Complexity != "" && !domain.Complexity(s.Complexity).Valid() {
				errs = append(errs, fmt.Errorf("%s.complexity: invalid value %q", spath, s.Complexity))
			}
		}
	}

	groupIDs = make(map[FlexID]bool)
	for i, g := range f.TaskGroups {
		path := fmt.Sprintf("taskGroups[%d]", i)
		errs = append(errs, checkUnique(path, g.ID, groupIDs)...)
		itemIDs := make(map[FlexID]bool)
		for j, t := range g.Tasks {
			errs = append(errs, checkUnique(fmt.Sprintf("%s.tasks[%d]", path, j), t.ID, itemIDs)...)
		}
	}

	return errs
}

// ValidatePlanFile checks a hierarchical file before conversion.
func ValidatePlanFile(f *PlanFile) []error {
	var errs []error

	errs = append(errs, validateDates("holidays", f.Holidays)...)

	// ids are unique among siblings only; the same id may recur under
	// another parent.
	taskIDs := make(map[FlexID]bool)
	for i, t := range f.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		errs = append(errs, checkUnique(path, t.ID, taskIDs)...)
		subIDs := make(map[FlexID]bool)
		for j, st := range t.SubTasks {
			spath := fmt.Sprintf("%s.subTasks[%d]", path, j)
			errs = append(errs, checkUnique(spath, st.ID, subIDs)...)
			teamIDs := make(map[FlexID]bool)
			for k, tm := range st.Teams {
				tpath := fmt.Sprintf("%s.teams[%d]", spath, k)
				errs = append(errs, checkUnique(tpath, tm.ID, teamIDs)...)
				if tm.StartDate != "" {
					if _, err := calendar.ParseDate(tm.StartDate); err != nil {
						errs = append(errs, fmt.Errorf("%s.startDate: %w", tpath, err))
					}
				}
			}
		}
	}

	return errs
}

func validateDates(field string, dates []string) []error {
	var errs []error
	for i, s := range dates {
		if _, err := calendar.ParseDate(s); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", field, i, err))
		}
	}
	return errs
}

// checkUnique records id in seen. Empty ids are assigned on conversion and
// are never duplicates.
func checkUnique(path string, id FlexID, seen map[FlexID]bool) []error {
	if id == "" {
		return nil
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", path, id)}
	}
	seen[id] = true
	return nil
}
