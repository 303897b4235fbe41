package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Days renders an effort in days, e.g. "1 day", "3.3 days", "1,250 days".
func Days(d float64) string {
	if d == 1 {
		return "1 day"
	}
	return Num(d) + " days"
}

// WorkingDays renders a whole number of business days.
func WorkingDays(n int) string {
	if n == 1 {
		return "1 working day"
	}
	return humanize.Comma(int64(n)) + " working days"
}

// Num formats a number with thousands separators and at most two decimals.
func Num(f float64) string {
	return humanize.CommafWithDigits(f, 2)
}

// Percent renders a buffer percentage.
func Percent(p float64) string {
	return humanize.FtoaWithDigits(p, 2) + "%"
}

// Ago renders a timestamp relative to now, e.g. "3 days ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	return humanize.Time(t)
}

// Or returns s, or a dimmed placeholder when s is empty.
func Or(s, placeholder string) string {
	if s == "" {
		return Dim(placeholder)
	}
	return s
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
