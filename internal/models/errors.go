package models

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound indicates a lookup that matched no node.
var ErrNodeNotFound = errors.New("node not found")

// ErrAmbiguousReference indicates a string-based lookup matched more than one node.
var ErrAmbiguousReference = errors.New("ambiguous reference")

// ErrInvalidReference indicates a reference that cannot be resolved by construction.
var ErrInvalidReference = errors.New("invalid reference")

// StructuralError reports a traversal tree that does not alternate node and edge layers.
type StructuralError struct {
	Path   string
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return "malformed traversal tree: " + e.Reason
	}

	return fmt.Sprintf("malformed traversal tree at %s: %s", e.Path, e.Reason)
}

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
