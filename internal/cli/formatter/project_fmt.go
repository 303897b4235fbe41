package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/estimate"
	"github.com/alexanderramin/effortplan/internal/service"
)

// FormatStructure renders the work breakdown of doc as a tree with IDs, so
// that edit commands can address its nodes.
func FormatStructure(doc domain.Document) string {
	var items []TreeItem
	switch doc.Kind {
	case domain.ModelEstimation:
		for _, g := range doc.Estimation.AllGroups() {
			items = append(items, TreeItem{
				Title:  fmt.Sprintf("%s %s", g.Name, Dim("("+string(g.Kind)+"s)")),
				ID:     g.ID,
				Detail: Days(groupEffort(g)),
			})
			for i, it := range g.Items {
				title := it.Name
				if it.Complexity != "" {
					title += " " + Dim(string(it.Complexity))
				}
				items = append(items, TreeItem{Title: title, ID: it.ID, Level: 1, IsLast: i == len(g.Items)-1, Detail: Days(it.EffortDays)})
			}
		}
	case domain.ModelPlan:
		for _, t := range doc.Plan.Tasks {
			items = append(items, TreeItem{Title: t.Name, ID: t.ID, Detail: Days(estimate.TaskEffort(t))})
			for i, st := range t.SubTasks {
				items = append(items, TreeItem{Title: st.Name, ID: st.ID, Level: 1, IsLast: i == len(t.SubTasks)-1, Detail: Days(estimate.SubTaskEffort(st))})
				for j, tm := range st.Teams {
					when := Or(tm.StartDate.String(), "no start")
					if tm.IsParallel {
						when += ", parallel"
					}
					items = append(items, TreeItem{
						Title:  fmt.Sprintf("%s %s", tm.Name, Dim(when)),
						ID:     tm.ID,
						Level:  2,
						IsLast: j == len(st.Teams)-1,
						Detail: Days(tm.Effort),
					})
				}
			}
		}
	}

	header := fmt.Sprintf("%s %s", Bold(doc.Name()), KindBadge(string(doc.Kind)))
	if len(items) == 0 {
		return header + "\n" + Dim("(empty)") + "\n"
	}
	return header + "\n\n" + RenderTree(items)
}

func groupEffort(g *domain.Group) float64 {
	var sum float64
	for _, it := range g.Items {
		sum += domain.ClampEffort(it.EffortDays)
	}
	return sum
}

// FormatSettings renders estimation settings.
func FormatSettings(s domain.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Buffer       %s\n", Percent(s.BufferPercentage))
	fmt.Fprintf(&b, "Team size    %d\n", s.TeamSize)
	fmt.Fprintf(&b, "Start date   %s\n", Or(s.StartDate.String(), "today"))
	if len(s.Holidays) > 0 {
		dates := make([]string, len(s.Holidays))
		for i, d := range s.Holidays {
			dates[i] = d.String()
		}
		fmt.Fprintf(&b, "Holidays     %s\n", strings.Join(dates, ", "))
	} else {
		fmt.Fprintf(&b, "Holidays     %d\n", s.HolidayDays)
	}
	return RenderBox("Settings", strings.TrimRight(b.String(), "\n"))
}

// FormatLibrary renders the published projects.
func FormatLibrary(entries []service.LibraryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{Bold(e.Code), Or(e.Name, "--"), KindBadge(string(e.Kind)), Ago(e.UpdatedAt)})
	}
	return RenderTable([]string{"CODE", "NAME", "KIND", "UPDATED"}, rows)
}
