package repository

import (
	"fmt"
	"regexp"

	"github.com/alexanderramin/effortplan/internal/domain"
)

// ErrNotFound is returned when no project is stored under a code. It is the
// domain sentinel, so errors.Is matches either name.
var ErrNotFound = domain.ErrNotFound

var codePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidCode reports whether code can name a stored project. Codes double as
// file names, so path separators and dots are rejected.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

func checkCode(code string) error {
	if !ValidCode(code) {
		return fmt.Errorf("project %q: invalid code: %w", code, ErrNotFound)
	}
	return nil
}
