package domain

import "errors"

var (
	// ErrNotFound is returned when an identifier does not name an element
	// in the scope it was looked up in.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned by document-wide lookups when the same id
	// names elements under more than one parent.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrInvalidComplexity is returned for unknown complexity labels and for
	// complexity set on a non-screen item.
	ErrInvalidComplexity = errors.New("invalid complexity")

	// ErrKindMismatch is returned when an operation for one model variant is
	// applied to a Document of the other.
	ErrKindMismatch = errors.New("model kind mismatch")
)
