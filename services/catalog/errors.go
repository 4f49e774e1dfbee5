package catalog

import "fmt"

// MismatchError reports a referenced id that is missing from the catalog. It is
// surfaced to the user as a retry-able "service temporarily unavailable"
// condition, never silently defaulted to a zero price.
type MismatchError struct {
	Kind string // "service" or "extra"
	ID   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("catalogMismatch: %s %q not found in catalog", e.Kind, e.ID)
}

// NewServiceMismatch reports a missing service id.
func NewServiceMismatch(id string) error {
	return &MismatchError{Kind: "service", ID: id}
}

// NewExtraMismatch reports a missing extra id.
func NewExtraMismatch(id string) error {
	return &MismatchError{Kind: "extra", ID: id}
}
