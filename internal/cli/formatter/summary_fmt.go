package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/effortplan/internal/summary"
)

// FormatEstimationSummary renders the overview of a flat estimation.
func FormatEstimationSummary(s *summary.EstimationSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s\n",
		pluralize(s.Screens, "screen", "screens"), pluralize(s.ScreenGroups, "group", "groups"))
	fmt.Fprintf(&b, "%s in %s\n",
		pluralize(s.Tasks, "task", "tasks"), pluralize(s.TaskGroups, "group", "groups"))
	fmt.Fprintf(&b, "\nScreens      %s\n", Days(s.ScreenEffort))
	fmt.Fprintf(&b, "Tasks        %s\n", Days(s.TaskEffort))
	fmt.Fprintf(&b, "Final        %s with %s buffer\n", Bold(Days(s.FinalEffort)), Percent(s.BufferPercentage))
	fmt.Fprintf(&b, "Duration     %s for a team of %d\n", WorkingDays(s.DurationDays), s.TeamSize)
	if s.DateRange != "" {
		fmt.Fprintf(&b, "Schedule     %s\n", s.DateRange)
	}
	return RenderBox(s.Name, strings.TrimRight(b.String(), "\n"))
}

// FormatPlanSummary renders the overview of a plan: counts, per-task effort
// and each team's schedule in its palette colour.
func FormatPlanSummary(s *summary.PlanSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s, %s\n",
		pluralize(s.Tasks, "task", "tasks"),
		pluralize(s.SubTasks, "subtask", "subtasks"),
		pluralize(s.Assignments, "assignment", "assignments"))
	fmt.Fprintf(&b, "Effort       %s (%s with buffer)\n", Days(s.TotalEffort), Bold(Days(s.FinalEffort)))
	fmt.Fprintf(&b, "Schedule     %s\n", s.DateRange)
	out := RenderBox(s.Name, strings.TrimRight(b.String(), "\n"))

	if len(s.TaskEfforts) > 0 {
		var items []TreeItem
		for _, t := range s.TaskEfforts {
			items = append(items, TreeItem{Title: t.Name, Detail: Days(t.Effort)})
			for i, st := range t.SubTasks {
				items = append(items, TreeItem{Title: st.Name, Level: 1, IsLast: i == len(t.SubTasks)-1, Detail: Days(st.Effort)})
			}
		}
		out += "\n\n" + Header("Tasks") + "\n" + RenderTree(items)
	}

	if len(s.Teams) > 0 {
		out += "\n" + Header("Teams") + "\n"
		for _, team := range s.Teams {
			style := TeamStyle(team.Color)
			out += fmt.Sprintf("%s %s  %s\n", style.Render("●"), style.Bold(true).Render(team.Name),
				Dim(fmt.Sprintf("%s, %s", pluralize(team.Assignments, "assignment", "assignments"), Days(team.Effort))))
			rows := make([][]string, 0, len(team.Schedule))
			for _, r := range team.Schedule {
				start, end := r.Start.String(), r.End.String()
				if r.Start.IsZero() {
					start, end = Dim("unscheduled"), ""
				}
				label := r.Label
				if r.Parallel {
					label += Dim(" (parallel)")
				}
				rows = append(rows, []string{label, start, end, Days(r.Effort)})
			}
			out += RenderTable([]string{"WORK", "START", "END", "EFFORT"}, rows) + "\n"
		}
	}
	return strings.TrimRight(out, "\n")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
