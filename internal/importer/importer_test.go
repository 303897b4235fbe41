package importer

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
)

func TestLoad_Estimation(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "shop-estimation.json"))
	require.NoError(t, err)
	require.Equal(t, domain.ModelEstimation, doc.Kind)

	e := doc.Estimation
	assert.Equal(t, "Web Shop", e.Name)
	require.Len(t, e.ScreenGroups, 1)
	assert.Equal(t, "1", e.ScreenGroups[0].ID)
	assert.Equal(t, "11", e.ScreenGroups[0].Items[0].ID)
	assert.Equal(t, 5.0, e.ScreenGroups[0].Items[1].EffortDays)
	assert.Equal(t, domain.GroupTask, e.TaskGroups[0].Kind)
	assert.Zero(t, e.TaskGroups[0].Items[1].EffortDays)

	assert.Equal(t, 2, e.Settings.TeamSize)
	assert.Equal(t, []calendar.Date{
		calendar.MustParseDate("2024-01-02"),
		calendar.MustParseDate("2024-01-03"),
	}, e.Settings.Holidays)
}

func TestLoad_Plan(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "release_plan.json"))
	require.NoError(t, err)
	require.Equal(t, domain.ModelPlan, doc.Kind)

	p := doc.Plan
	assert.Equal(t, "release", p.ID)
	require.Len(t, p.Tasks, 1)
	assert.Nil(t, p.Tasks[0].Dependencies)
	st := p.Tasks[0].SubTasks[0]
	assert.Equal(t, []string{"t0"}, st.Dependencies)
	assert.Equal(t, "2024-01-02", st.Teams[1].StartDate.String())
	assert.True(t, st.Teams[1].IsParallel)
}

func TestLoad_YAML(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "shop.yaml"))
	require.NoError(t, err)
	e := doc.Estimation
	assert.Equal(t, "YAML Shop", e.Name)
	assert.Equal(t, "1", e.ScreenGroups[0].Items[0].ID)
	assert.Equal(t, 2.0, e.ScreenGroups[0].Items[0].EffortDays)
	assert.Zero(t, e.Settings.BufferPercentage)
	assert.Equal(t, "2024-01-01", e.Settings.StartDate.String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"projectName": `), FormatJSON, "broken.json")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "broken.json", pe.Source)
}

func TestParse_UnknownShape(t *testing.T) {
	_, err := Parse([]byte(`{"hello": 1}`), FormatJSON, "")
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)

	_, err = Parse([]byte(`[1,2]`), FormatJSON, "")
	assert.ErrorAs(t, err, &pe)
}

func TestParse_NonNumericEffort(t *testing.T) {
	in := `{"projectName":"x","screenGroups":[],"taskGroups":[{"id":1,"name":"g","tasks":[{"id":1,"name":"t","effortDays":"lots"}]}]}`
	_, err := Parse([]byte(in), FormatJSON, "")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "not a number")
}

func TestParse_ClampsSettings(t *testing.T) {
	in := `{"projectName":"x","screenGroups":[],"taskGroups":[],"bufferPercentage":-5,"teamSize":0,"holidays":[]}`
	doc, err := Parse([]byte(in), FormatJSON, "")
	require.NoError(t, err)
	assert.Zero(t, doc.Estimation.Settings.BufferPercentage)
	assert.Equal(t, 1, doc.Estimation.Settings.TeamSize)
}

func TestParse_DefaultsWhenSettingsMissing(t *testing.T) {
	doc, err := Parse([]byte(`{"projectName":"x"}`), FormatJSON, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBufferPercentage, doc.Estimation.Settings.BufferPercentage)
	assert.Equal(t, domain.DefaultTeamSize, doc.Estimation.Settings.TeamSize)
}

func TestParse_MissingIDsAssigned(t *testing.T) {
	in := `{"tasks":[{"name":"a","subTasks":[{"name":"b","teams":[{"name":"c","effort":1}]}]}]}`
	doc, err := Parse([]byte(in), FormatJSON, "")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Plan.ID)
	assert.NotEmpty(t, doc.Plan.Tasks[0].SubTasks[0].Teams[0].ID)
}

func TestParse_PlanIDsRepeatUnderDifferentParents(t *testing.T) {
	in := `{"tasks":[
		{"id":1,"name":"Build","subTasks":[
			{"id":1,"name":"API","teams":[{"id":1,"name":"Backend","startDate":"2024-01-01","effort":2}]},
			{"id":2,"name":"Web","teams":[{"id":1,"name":"Frontend","startDate":"2024-01-01","effort":3}]}
		]},
		{"id":2,"name":"Release","subTasks":[{"id":1,"name":"Ship","teams":[]}]}
	]}`
	doc, err := Parse([]byte(in), FormatJSON, "")
	require.NoError(t, err)

	p := doc.Plan
	require.Len(t, p.Tasks, 2)
	require.Len(t, p.Tasks[0].SubTasks, 2)
	assert.Equal(t, "1", p.Tasks[0].SubTasks[0].Teams[0].ID)
	assert.Equal(t, "1", p.Tasks[0].SubTasks[1].Teams[0].ID)
	assert.Equal(t, "1", p.Tasks[1].SubTasks[0].ID)
}

func TestExportImport_RoundTrip(t *testing.T) {
	for _, name := range []string{"shop-estimation.json", "release_plan.json", "shop.yaml"} {
		t.Run(name, func(t *testing.T) {
			doc, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			for _, format := range []Format{FormatJSON, FormatYAML} {
				data, err := Marshal(doc, format)
				require.NoError(t, err)
				again, err := Parse(data, format, "")
				require.NoError(t, err)
				assert.Equal(t, doc, again, "format %s", format)
			}
		})
	}
}

func TestMarshal_DerivedTotals(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "shop-estimation.json"))
	require.NoError(t, err)
	data, err := Marshal(doc, FormatJSON)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	// 8.5 days + 10% buffer, two people, two holidays
	assert.InDelta(t, 9.35, out["totalEffort"], 1e-9)
	assert.Equal(t, 7.0, out["estimatedDuration"])
	assert.Contains(t, string(data), "\n  \"projectName\"")
}

func TestMarshal_EmptyListsAreArrays(t *testing.T) {
	p := domain.NewPlan("p")
	p.AddTask("t", "")
	data, err := Marshal(domain.NewPlanDocument(p), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dependencies": []`)
	assert.Contains(t, string(data), `"subTasks": []`)
	assert.NotContains(t, string(data), "null")
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "Web-Shop-estimation.json", ExportFilename(domain.NewEstimationDocument(domain.NewEstimation("Web  \tShop"))))
	assert.Equal(t, "Release_plan.json", ExportFilename(domain.NewPlanDocument(domain.NewPlan("Release"))))
	assert.Equal(t, "project_plan.json", ExportFilename(domain.NewPlanDocument(domain.NewPlan(""))))
	assert.Equal(t, "Release_plan.pdf", WithExt("Release_plan.json", "pdf"))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("a"))
}
