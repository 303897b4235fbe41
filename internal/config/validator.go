package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/effortplan/internal/calendar"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

func ValidLogFormats() []string {
	return []string{"text", "json"}
}

func ValidBackends() []string {
	return []string{BackendDir, BackendSQLite}
}

// Validate checks c for values that cannot be clamped into range.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	oneOf := func(field, value string, valid []string) {
		if !slices.Contains(valid, strings.ToLower(value)) {
			errs = append(errs, ValidationError{
				Field:   field,
				Value:   value,
				Message: "must be one of " + strings.Join(valid, ", "),
			})
		}
	}
	oneOf("log.level", c.Log.Level, ValidLogLevels())
	oneOf("log.format", c.Log.Format, ValidLogFormats())
	oneOf("library.backend", c.Library.Backend, ValidBackends())

	if c.Workspace.File == "" {
		errs = append(errs, ValidationError{Field: "workspace.file", Value: "", Message: "must not be empty"})
	}
	for i, h := range c.Defaults.Holidays {
		if _, err := calendar.ParseDate(h); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("defaults.holidays[%d]", i),
				Value:   h,
				Message: "must be a YYYY-MM-DD date",
			})
		}
	}
	return errs
}
