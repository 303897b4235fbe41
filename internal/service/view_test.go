package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/testutil"
)

func TestBuildView_Estimation(t *testing.T) {
	e := testutil.NewTestEstimation("Shop",
		testutil.WithScreens("Auth", 3, 2),
		testutil.WithTasks("Ops", 1),
		testutil.WithHolidays("2024-01-02"),
	)
	v, err := BuildView(domain.NewEstimationDocument(e), domain.DefaultSettings(), calendar.MustParseDate("2030-01-01"))
	require.NoError(t, err)

	assert.Equal(t, "Shop", v.Name)
	assert.Equal(t, testutil.Monday, v.Timeline.Start)
	assert.Equal(t, "2024-01-10", v.Timeline.End.String())
	assert.Equal(t, 8, v.Totals.EstimatedDurationDays)
	assert.Equal(t, 3, v.Estimation.Screens+v.Estimation.Tasks)
}

func TestBuildView_PlanHolidaysFallBackToSettings(t *testing.T) {
	p := testutil.NewTestPlan("P", testutil.WithSubTask("API", testutil.Assignment{Team: "BE", Start: "2024-01-01", Effort: 2}))
	settings := domain.DefaultSettings()
	settings.Holidays = []calendar.Date{calendar.MustParseDate("2024-01-02")}

	v, err := BuildView(domain.NewPlanDocument(p), settings, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-04", v.Timeline.End.String())

	p.Holidays = []calendar.Date{calendar.MustParseDate("2024-01-03")}
	v, err = BuildView(domain.NewPlanDocument(p), settings, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-04", v.Timeline.End.String())
	assert.Equal(t, 1, v.Totals.HolidayCount)

	p.Holidays = nil
	settings.Holidays = nil
	v, err = BuildView(domain.NewPlanDocument(p), settings, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", v.Timeline.End.String())
}

func TestBuildView_RejectsEmptyDocument(t *testing.T) {
	_, err := BuildView(domain.Document{}, domain.DefaultSettings(), testutil.Monday)
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestViewCache_ReusesEqualInputs(t *testing.T) {
	var c ViewCache
	e := testutil.NewTestEstimation("Shop", testutil.WithScreens("Auth", 3))
	doc := domain.NewEstimationDocument(e)

	first, err := c.Build(doc, domain.DefaultSettings(), testutil.Monday)
	require.NoError(t, err)
	second, err := c.Build(doc.Clone(), domain.DefaultSettings(), testutil.Monday)
	require.NoError(t, err)
	assert.Same(t, first, second)

	e.ScreenGroups[0].Items[0].EffortDays = 4
	third, err := c.Build(doc, domain.DefaultSettings(), testutil.Monday)
	require.NoError(t, err)
	assert.NotSame(t, first, third)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}
