package service

import (
	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/estimate"
	"github.com/alexanderramin/effortplan/internal/summary"
	"github.com/alexanderramin/effortplan/internal/timeline"
)

// View is everything derived from a document: totals, timeline and the
// summary for its model kind. Exactly one of Estimation and Plan is set.
type View struct {
	Kind       domain.ModelKind
	Name       string
	Totals     estimate.Totals
	Timeline   timeline.Timeline
	Estimation *summary.EstimationSummary
	Plan       *summary.PlanSummary
}

// BuildView recomputes the view of doc. Flat estimations use their own
// settings and start on today when no start date is set; plans take buffer
// and team size from settings and holidays from the plan, falling back to
// the settings list.
func BuildView(doc domain.Document, settings domain.Settings, today calendar.Date) (*View, error) {
	if err := doc.Check(); err != nil {
		return nil, err
	}

	v := &View{Kind: doc.Kind, Name: doc.Name()}
	switch doc.Kind {
	case domain.ModelEstimation:
		e := doc.Estimation
		start := e.Settings.StartDate
		if start.IsZero() {
			start = today
		}
		v.Totals = estimate.ComputeEstimation(e)
		v.Timeline = timeline.SequentialChain(e, start, e.Settings.HolidaySet())
		s := summary.SummarizeEstimation(e, v.Totals, v.Timeline)
		v.Estimation = &s
	case domain.ModelPlan:
		p := doc.Plan
		holidays := settings.HolidaySet()
		if len(p.Holidays) > 0 {
			holidays = p.HolidaySet()
		}
		v.Totals = estimate.ComputePlan(p, settings)
		v.Timeline = timeline.ExplicitStart(p, holidays)
		s := summary.SummarizePlan(p, v.Totals, v.Timeline)
		v.Plan = &s
	}
	return v, nil
}

type viewInput struct {
	Doc      domain.Document
	Settings domain.Settings
	Today    calendar.Date
}

// ViewCache memoizes BuildView on the structural hash of its inputs.
// Returned views are shared and must not be modified.
type ViewCache struct {
	memo estimate.Memo[*View]
}

func (c *ViewCache) Build(doc domain.Document, settings domain.Settings, today calendar.Date) (*View, error) {
	in := viewInput{Doc: doc, Settings: settings, Today: today}
	return c.memo.Get(in, func() (*View, error) {
		return BuildView(doc, settings, today)
	})
}

// Stats exposes the cache hit and miss counters.
func (c *ViewCache) Stats() (hits, misses int) {
	return c.memo.Stats()
}
