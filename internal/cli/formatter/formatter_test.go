package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/service"
	"github.com/alexanderramin/effortplan/internal/testutil"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestDays(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{3.3, "3.3 days"},
		{2.126, "2.13 days"},
		{1250, "1,250 days"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Days(tt.in))
		})
	}
	assert.Equal(t, "1 working day", WorkingDays(1))
	assert.Equal(t, "12 working days", WorkingDays(12))
	assert.Equal(t, "12.5%", Percent(12.5))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{
		{StyleGreen.Render("long cell"), "x"},
		{"s", "y"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Equal(t, strings.Index(lines[0], "B"), strings.Index(lines[2], "x"))
}

func TestRenderTree(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "Build"},
		{Title: "API", Level: 1},
		{Title: "Backend", Level: 2, IsLast: true},
		{Title: "UI", Level: 1, IsLast: true},
		{Title: "Frontend", Level: 2, IsLast: true, Detail: "2 days"},
	}))
	assert.Equal(t, "Build\n"+
		"├─ API\n"+
		"│  └─ Backend\n"+
		"└─ UI\n"+
		"   └─ Frontend  [ 2 days ]\n", out)
}

func TestFormatTotals(t *testing.T) {
	e := testutil.NewTestEstimation("Shop", testutil.WithScreens("Auth", 3), testutil.WithHolidays("2024-01-02"))
	v, err := service.BuildView(domain.NewEstimationDocument(e), domain.DefaultSettings(), testutil.Monday)
	require.NoError(t, err)

	out := stripANSI(FormatTotals(v.Name, v.Totals))
	assert.Contains(t, out, "SHOP")
	assert.Contains(t, out, "Subtotal")
	assert.Contains(t, out, "3.3 days")
	assert.Contains(t, out, "Holidays")
	assert.Contains(t, out, "5 working days")
}

func TestFormatTimeline_Estimation(t *testing.T) {
	e := testutil.NewTestEstimation("Shop", testutil.WithScreens("Auth", 3, 2))
	v, err := service.BuildView(domain.NewEstimationDocument(e), domain.DefaultSettings(), testutil.Monday)
	require.NoError(t, err)

	out := stripANSI(FormatTimeline(v.Timeline, nil))
	assert.Contains(t, out, "Auth - Auth 1")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "2024-01-08")
	assert.Contains(t, out, "█")
}

func TestFormatTimeline_Unscheduled(t *testing.T) {
	p := testutil.NewTestPlan("P", testutil.WithSubTask("API", testutil.Assignment{Team: "BE", Effort: 2}))
	v, err := service.BuildView(domain.NewPlanDocument(p), domain.DefaultSettings(), testutil.Monday)
	require.NoError(t, err)

	assert.Equal(t, "no start dates set\n", stripANSI(FormatTimeline(v.Timeline, nil)))
}

func TestFormatPlanSummary(t *testing.T) {
	p := testutil.NewTestPlan("Release",
		testutil.WithTask("Build"),
		testutil.WithSubTask("API",
			testutil.Assignment{Team: "Backend", Start: "2024-01-03", Effort: 2},
			testutil.Assignment{Team: "QA", Start: "2024-01-01", Effort: 1, Parallel: true},
		),
		testutil.WithSubTask("Docs", testutil.Assignment{Team: "Backend", Start: "2024-01-01", Effort: 1}),
	)
	v, err := service.BuildView(domain.NewPlanDocument(p), domain.DefaultSettings(), testutil.Monday)
	require.NoError(t, err)

	out := stripANSI(FormatPlanSummary(v.Plan))
	assert.Contains(t, out, "1 task, 2 subtasks, 3 assignments")
	assert.Contains(t, out, "Build > API")
	assert.Contains(t, out, "(parallel)")
	assert.Less(t, strings.Index(out, "Backend"), strings.Index(out, "QA"))
	// Backend's schedule is ordered by start date
	assert.Less(t, strings.Index(out, "Build > Docs"), strings.Index(out, "Build > API"))
}

func TestFormatStructure(t *testing.T) {
	e := testutil.NewTestEstimation("Shop", testutil.WithScreens("Auth", 3), testutil.WithTasks("Ops", 1))
	out := stripANSI(FormatStructure(domain.NewEstimationDocument(e)))
	assert.Contains(t, out, "Shop estimation")
	assert.Contains(t, out, "Auth (screens)")
	assert.Contains(t, out, "Ops (tasks)")
	assert.Contains(t, out, "normal")

	out = stripANSI(FormatStructure(domain.NewPlanDocument(domain.NewPlan("Empty"))))
	assert.Contains(t, out, "(empty)")
}

func TestFormatLibrary(t *testing.T) {
	out := stripANSI(FormatLibrary([]service.LibraryEntry{
		{Code: "shop", Name: "Shop", Kind: domain.ModelEstimation, UpdatedAt: time.Now().Add(-49 * time.Hour)},
		{Code: "bare"},
	}))
	assert.Contains(t, out, "shop")
	assert.Contains(t, out, "2 days ago")
	assert.Contains(t, out, "--")
}
