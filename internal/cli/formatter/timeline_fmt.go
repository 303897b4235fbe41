package formatter

import (
	"strings"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/summary"
	"github.com/alexanderramin/effortplan/internal/timeline"
)

// GanttWidth is the number of cells available to the widest bar.
const GanttWidth = 40

// FormatTimeline renders scheduled leaves as a table with a text Gantt bar.
// colors maps plan team names to palette colours; other leaves use blue.
func FormatTimeline(tl timeline.Timeline, colors map[string]string) string {
	if !tl.Scheduled() {
		return Dim(summary.NoStartDates) + "\n"
	}

	span := max(1, tl.CalendarDays())
	rows := make([][]string, 0, len(tl.Entries))
	for _, e := range tl.Entries {
		name := e.Name
		if e.Kind == domain.LeafTeam {
			name = strings.Join(e.Path, " > ")
		}
		if e.Start.IsZero() {
			rows = append(rows, []string{name, Dim("unscheduled"), "", Days(e.DurationDays), ""})
			continue
		}
		rows = append(rows, []string{
			name,
			e.Start.String(),
			e.End.String(),
			Days(e.DurationDays),
			ganttBar(e, span, colors),
		})
	}

	out := RenderTable([]string{"LEAF", "START", "END", "EFFORT", "SCHEDULE"}, rows)
	if tl.Unscheduled > 0 {
		out += Dim(pluralize(tl.Unscheduled, "assignment", "assignments")+" without a start date") + "\n"
	}
	return out
}

func ganttBar(e timeline.Entry, span int, colors map[string]string) string {
	scale := float64(GanttWidth) / float64(span)
	offset := int(float64(e.Offset) * scale)
	length := max(1, int(float64(calendar.DaysBetween(e.Start, e.End))*scale))
	if offset+length > GanttWidth {
		length = max(1, GanttWidth-offset)
	}

	style := StyleBlue
	if e.Kind == domain.LeafTeam {
		if c, ok := colors[e.Name]; ok {
			style = TeamStyle(c)
		}
	}
	bar := strings.Repeat("█", length)
	if e.Parallel {
		bar = strings.Repeat("▒", length)
	}
	return strings.Repeat(" ", offset) + style.Render(bar)
}
