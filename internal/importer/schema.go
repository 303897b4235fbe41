package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EstimationFile is the on-disk shape of a flat estimation.
type EstimationFile struct {
	ProjectName      string            `json:"projectName" yaml:"projectName"`
	ScreenGroups     []ScreenGroupFile `json:"screenGroups" yaml:"screenGroups"`
	TaskGroups       []TaskGroupFile   `json:"taskGroups" yaml:"taskGroups"`
	BufferPercentage *FlexNumber       `json:"bufferPercentage,omitempty" yaml:"bufferPercentage,omitempty"`
	TeamSize         *FlexNumber       `json:"teamSize,omitempty" yaml:"teamSize,omitempty"`
	Holidays         []string          `json:"holidays" yaml:"holidays"`
	HolidayDays      *FlexNumber       `json:"holidayDays,omitempty" yaml:"holidayDays,omitempty"`
	StartDate        string            `json:"startDate,omitempty" yaml:"startDate,omitempty"`

	// Derived on export, ignored on import.
	TotalEffort       float64 `json:"totalEffort" yaml:"totalEffort"`
	EstimatedDuration int     `json:"estimatedDuration" yaml:"estimatedDuration"`
}

type ScreenGroupFile struct {
	ID      FlexID       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Screens []ScreenFile `json:"screens" yaml:"screens"`
}

type ScreenFile struct {
	ID         FlexID     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Complexity string     `json:"complexity" yaml:"complexity"`
	EffortDays FlexNumber `json:"effortDays" yaml:"effortDays"`
}

type TaskGroupFile struct {
	ID    FlexID         `json:"id" yaml:"id"`
	Name  string         `json:"name" yaml:"name"`
	Tasks []TaskItemFile `json:"tasks" yaml:"tasks"`
}

type TaskItemFile struct {
	ID         FlexID     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	EffortDays FlexNumber `json:"effortDays" yaml:"effortDays"`
}

// PlanFile is the on-disk shape of a hierarchical plan.
type PlanFile struct {
	ID          FlexID         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Tasks       []PlanTaskFile `json:"tasks" yaml:"tasks"`
	Holidays    []string       `json:"holidays,omitempty" yaml:"holidays,omitempty"`
}

type PlanTaskFile struct {
	ID           FlexID        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description" yaml:"description"`
	Dependencies []FlexID      `json:"dependencies" yaml:"dependencies"`
	SubTasks     []SubTaskFile `json:"subTasks" yaml:"subTasks"`
}

type SubTaskFile struct {
	ID           FlexID     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Description  string     `json:"description" yaml:"description"`
	Dependencies []FlexID   `json:"dependencies" yaml:"dependencies"`
	Teams        []TeamFile `json:"teams" yaml:"teams"`
}

type TeamFile struct {
	ID         FlexID     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	StartDate  string     `json:"startDate" yaml:"startDate"`
	Effort     FlexNumber `json:"effort" yaml:"effort"`
	IsParallel bool       `json:"isParallel" yaml:"isParallel"`
}

// FlexID accepts a string or a number and keeps its literal text.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", b)
	}
	*id = FlexID(n.String())
	return nil
}

func (id *FlexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a string or number", value.Line)
	}
	if value.Tag == "!!null" {
		*id = ""
		return nil
	}
	*id = FlexID(value.Value)
	return nil
}

// FlexNumber accepts a number or a numeric string. Empty strings and null
// decode as zero.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = 0
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return n.parse(s)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	*n = FlexNumber(f)
	return nil
}

func (n *FlexNumber) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	if value.Tag == "!!null" {
		*n = 0
		return nil
	}
	return n.parse(value.Value)
}

func (n *FlexNumber) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*n = FlexNumber(f)
	return nil
}

func (n *FlexNumber) value(fallback float64) float64 {
	if n == nil {
		return fallback
	}
	return float64(*n)
}

func flex(v float64) *FlexNumber {
	n := FlexNumber(v)
	return &n
}
