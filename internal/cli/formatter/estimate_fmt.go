package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/effortplan/internal/estimate"
)

// FormatTotals renders the effort breakdown of a project as a boxed list.
func FormatTotals(name string, t estimate.Totals) string {
	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "%-20s %s\n", label, value)
	}
	for _, c := range t.Categories {
		row(c.Name, Days(c.Effort))
	}
	if len(t.Categories) > 0 {
		b.WriteString(Dim(strings.Repeat("─", 32)) + "\n")
	}
	row("Subtotal", Days(t.Subtotal))
	row("Buffer "+Percent(t.BufferPercentage), Days(t.BufferDays))
	row("Final effort", Bold(Days(t.FinalEffort)))
	row("Team size", fmt.Sprintf("%d", t.TeamSize))
	if t.HolidayCount > 0 {
		row("Holidays", fmt.Sprintf("%d", t.HolidayCount))
	}
	row("Duration", StyleGreen.Render(WorkingDays(t.EstimatedDurationDays)))
	return RenderBox(name, strings.TrimRight(b.String(), "\n"))
}
