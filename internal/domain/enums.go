package domain

import "fmt"

// ModelKind selects which work-breakdown variant a Document holds.
type ModelKind string

const (
	ModelEstimation ModelKind = "estimation" // screen and task groups
	ModelPlan       ModelKind = "plan"       // tasks, subtasks, team assignments
)

// GroupKind distinguishes the two group lists of an Estimation.
type GroupKind string

const (
	GroupScreen GroupKind = "screen"
	GroupTask   GroupKind = "task"
)

// ParseGroupKind accepts the singular or plural name of a group kind.
func ParseGroupKind(s string) (GroupKind, error) {
	switch s {
	case "screen", "screens":
		return GroupScreen, nil
	case "task", "tasks":
		return GroupTask, nil
	}
	return "", fmt.Errorf("invalid group kind %q (expected screen or task)", s)
}

// LeafKind tags scheduled leaves.
type LeafKind string

const (
	LeafScreen LeafKind = "screen"
	LeafTask   LeafKind = "task"
	LeafTeam   LeafKind = "team"
)

type Complexity string

const (
	ComplexityEasy    Complexity = "easy"
	ComplexitySimple  Complexity = "simple"
	ComplexityNormal  Complexity = "normal"
	ComplexityComplex Complexity = "complex"
)

// BaseScreenDays maps a complexity label to the effort it assigns to a screen.
var BaseScreenDays = map[Complexity]float64{
	ComplexityEasy:    1,
	ComplexitySimple:  2,
	ComplexityNormal:  3,
	ComplexityComplex: 5,
}

// Valid reports whether c is one of the known labels.
func (c Complexity) Valid() bool {
	_, ok := BaseScreenDays[c]
	return ok
}

// BaseDays returns the base effort for c, or 0 for an unknown label.
func (c Complexity) BaseDays() float64 {
	return BaseScreenDays[c]
}

func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w %q (expected easy, simple, normal or complex)", ErrInvalidComplexity, s)
	}
	return c, nil
}
