package domain

import "fmt"

// Document is the working project: exactly one of Estimation or Plan is set,
// selected by Kind.
type Document struct {
	Kind       ModelKind
	Estimation *Estimation
	Plan       *Plan
}

func NewEstimationDocument(e *Estimation) Document {
	return Document{Kind: ModelEstimation, Estimation: e}
}

func NewPlanDocument(p *Plan) Document {
	return Document{Kind: ModelPlan, Plan: p}
}

// Check reports whether the variant named by Kind is present.
func (d Document) Check() error {
	switch d.Kind {
	case ModelEstimation:
		if d.Estimation == nil {
			return fmt.Errorf("%w: estimation document without estimation", ErrKindMismatch)
		}
	case ModelPlan:
		if d.Plan == nil {
			return fmt.Errorf("%w: plan document without plan", ErrKindMismatch)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrKindMismatch, d.Kind)
	}
	return nil
}

func (d Document) Name() string {
	switch d.Kind {
	case ModelEstimation:
		if d.Estimation != nil {
			return d.Estimation.Name
		}
	case ModelPlan:
		if d.Plan != nil {
			return d.Plan.Name
		}
	}
	return ""
}

// Clone deep-copies the document so edits can be applied and discarded.
func (d Document) Clone() Document {
	switch d.Kind {
	case ModelEstimation:
		return Document{Kind: d.Kind, Estimation: d.Estimation.Clone()}
	case ModelPlan:
		return Document{Kind: d.Kind, Plan: d.Plan.Clone()}
	}
	return Document{Kind: d.Kind}
}
