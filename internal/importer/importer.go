// Package importer reads and writes project files in the two on-disk
// shapes: flat estimations and hierarchical plans, as JSON or YAML.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/effortplan/internal/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ParseError reports input that could not be read as a project file.
// The working project is never modified when one is returned.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parsing project: %v", e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the project file at path.
func Load(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data, FormatFromPath(path), path)
}

// Parse decodes data, detects which shape it holds, validates it and converts
// it to a Document. Every failure is a *ParseError.
func Parse(data []byte, format Format, source string) (domain.Document, error) {
	fail := func(err error) (domain.Document, error) {
		return domain.Document{}, &ParseError{Source: source, Err: err}
	}

	kind, err := Detect(data, format)
	if err != nil {
		return fail(err)
	}

	switch kind {
	case domain.ModelEstimation:
		var f EstimationFile
		if err := decode(data, format, &f); err != nil {
			return fail(err)
		}
		if errs := ValidateEstimationFile(&f); len(errs) > 0 {
			return fail(errors.Join(errs...))
		}
		return domain.NewEstimationDocument(ToEstimation(&f)), nil
	case domain.ModelPlan:
		var f PlanFile
		if err := decode(data, format, &f); err != nil {
			return fail(err)
		}
		if errs := ValidatePlanFile(&f); len(errs) > 0 {
			return fail(errors.Join(errs...))
		}
		return domain.NewPlanDocument(ToPlan(&f)), nil
	}
	return fail(fmt.Errorf("unsupported model kind %q", kind))
}

// Detect inspects the top-level keys: projectName, screenGroups or
// taskGroups mark a flat estimation; tasks marks a plan.
func Detect(data []byte, format Format) (domain.ModelKind, error) {
	var top map[string]any
	if err := decode(data, format, &top); err != nil {
		return "", err
	}
	if top == nil {
		return "", errors.New("expected a JSON object")
	}
	for _, k := range []string{"screenGroups", "taskGroups", "projectName"} {
		if _, ok := top[k]; ok {
			return domain.ModelEstimation, nil
		}
	}
	if _, ok := top["tasks"]; ok {
		return domain.ModelPlan, nil
	}
	return "", errors.New("unrecognised project file: expected screenGroups/taskGroups or tasks")
}

func decode(data []byte, format Format, v any) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// Marshal renders doc in file shape. JSON is indented with two spaces.
func Marshal(doc domain.Document, format Format) ([]byte, error) {
	if err := doc.Check(); err != nil {
		return nil, err
	}
	var v any
	switch doc.Kind {
	case domain.ModelEstimation:
		v = FromEstimation(doc.Estimation)
	case domain.ModelPlan:
		v = FromPlan(doc.Plan)
	}

	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename names the export file for doc: flat estimations become
// "<name with whitespace runs as dashes>-estimation.json", plans
// "<name or project>_plan.json".
func ExportFilename(doc domain.Document) string {
	switch doc.Kind {
	case domain.ModelPlan:
		return domain.CoalesceStr(doc.Name(), "project") + "_plan.json"
	default:
		return whitespaceRun.ReplaceAllString(doc.Name(), "-") + "-estimation.json"
	}
}

// WithExt swaps the extension of name for ext (given without the dot).
func WithExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + ext
}
