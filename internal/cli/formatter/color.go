package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (gruvbox). Team colours come from the summary palette
// instead, so the Gantt bars match the PDF report.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var kindColors = map[string]lipgloss.Color{
	"estimation": ColorBlue,
	"screen":     ColorBlue,
	"plan":       ColorPurple,
	"team":       ColorPurple,
	"task":       ColorYellow,
}

// TeamStyle colours text with a team's palette colour.
func TeamStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// KindBadge labels a model or leaf kind.
func KindBadge(kind string) string {
	if kind == "" {
		return StyleDim.Render("--")
	}
	c, ok := kindColors[kind]
	if !ok {
		return StyleDim.Render(kind)
	}
	return lipgloss.NewStyle().Foreground(c).Render(kind)
}

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
