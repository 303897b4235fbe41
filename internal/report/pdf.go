// Package report renders a computed project view as a PDF document.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/service"
	"github.com/alexanderramin/effortplan/internal/summary"
	"github.com/alexanderramin/effortplan/internal/timeline"
)

const (
	pageWidth   = 190.0 // A4 minus 10mm margins
	labelWidth  = 70.0
	rowHeight   = 6.0
	barColorHex = "#64748b"
)

// WritePDF renders v as an A4 report: totals, a Gantt chart of the timeline
// and, for plans, per-team schedules.
func WritePDF(w io.Writer, v *service.View) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(v.Name, true)
	pdf.SetCreator("effortplan", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Effort Report: %s", v.Name)))
	pdf.Ln(12)

	writeTotals(pdf, tr, v)
	writeGantt(pdf, tr, v.Timeline, teamColors(v))
	if v.Plan != nil {
		writeTeams(pdf, tr, v.Plan)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf.Output(w)
}

func writeTotals(pdf *fpdf.Fpdf, tr func(string) string, v *service.View) {
	heading(pdf, "Totals")
	pdf.SetFont("Arial", "", 11)
	row := func(label, value string) {
		pdf.CellFormat(labelWidth, rowHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, rowHeight, tr(value), "", 1, "L", false, 0, "")
	}
	for _, c := range v.Totals.Categories {
		row(c.Name, days(c.Effort))
	}
	row("Subtotal", days(v.Totals.Subtotal))
	row(fmt.Sprintf("Buffer (%s%%)", num(v.Totals.BufferPercentage)), days(v.Totals.BufferDays))
	row("Final effort", days(v.Totals.FinalEffort))
	row("Team size", strconv.Itoa(v.Totals.TeamSize))
	row("Holidays", strconv.Itoa(v.Totals.HolidayCount))
	row("Estimated duration", fmt.Sprintf("%d working days", v.Totals.EstimatedDurationDays))
	if label := dateRange(v); label != "" {
		row("Schedule", label)
	}
	pdf.Ln(4)
}

func writeGantt(pdf *fpdf.Fpdf, tr func(string) string, tl timeline.Timeline, colors map[string]string) {
	heading(pdf, "Timeline")
	pdf.SetFont("Arial", "", 9)
	if !tl.Scheduled() {
		pdf.Cell(0, rowHeight, tr(summary.NoStartDates))
		pdf.Ln(rowHeight + 2)
		return
	}

	total := tl.CalendarDays()
	if total < 1 {
		total = 1
	}
	scale := (pageWidth - labelWidth) / float64(total)
	x0 := pdf.GetX() + labelWidth

	for _, e := range tl.Entries {
		if e.Start.IsZero() {
			continue
		}
		y := pdf.GetY()
		label := e.Name
		if e.Kind == domain.LeafTeam {
			label = strings.Join(e.Path, " > ")
		}
		pdf.CellFormat(labelWidth, rowHeight, tr(truncate(label, 40)), "", 0, "L", false, 0, "")

		width := float64(max(1, calendar.DaysBetween(e.Start, e.End))) * scale
		r, g, b := hexRGB(colorFor(e, colors))
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x0+float64(e.Offset)*scale, y+1, width, rowHeight-2, "F")
		pdf.Ln(rowHeight)
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, rowHeight, tr(fmt.Sprintf("%s to %s", tl.Start, tl.End)), "", 1, "R", false, 0, "")
	pdf.Ln(2)
}

func writeTeams(pdf *fpdf.Fpdf, tr func(string) string, s *summary.PlanSummary) {
	heading(pdf, "Teams")
	for _, team := range s.Teams {
		r, g, b := hexRGB(team.Color)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, rowHeight, tr(fmt.Sprintf("%s  (%d assignments, %s)", team.Name, team.Assignments, days(team.Effort))), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 9)
		for _, row := range team.Schedule {
			when := "unscheduled"
			if !row.Start.IsZero() {
				when = row.Start.String() + " - " + row.End.String()
			}
			if row.Parallel {
				when += " (parallel)"
			}
			pdf.CellFormat(100, rowHeight, tr(row.Label), "", 0, "L", false, 0, "")
			pdf.CellFormat(60, rowHeight, when, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, rowHeight, days(row.Effort), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func dateRange(v *service.View) string {
	switch {
	case v.Estimation != nil:
		return v.Estimation.DateRange
	case v.Plan != nil:
		return v.Plan.DateRange
	}
	return ""
}

// teamColors maps plan team names to their palette colour.
func teamColors(v *service.View) map[string]string {
	out := map[string]string{}
	if v.Plan == nil {
		return out
	}
	for _, t := range v.Plan.Teams {
		out[t.Name] = t.Color
	}
	return out
}

func colorFor(e timeline.Entry, colors map[string]string) string {
	if e.Kind != domain.LeafTeam {
		return barColorHex
	}
	if c, ok := colors[e.Name]; ok {
		return c
	}
	return barColorHex
}

func hexRGB(hex string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(hex, "#")) != 6 {
		return 100, 116, 139
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func days(d float64) string {
	if d == 1 {
		return "1 day"
	}
	return num(d) + " days"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "..."
}
