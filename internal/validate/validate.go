// Package validate is the input validation collaborator.  Each rule returns
// an *InvalidDataError carrying a human-readable reason; callers run these
// before constructing entities.
package validate

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDataError reports that an input failed a validation rule.
type InvalidDataError struct {
	Field  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *InvalidDataError {
	return &InvalidDataError{Field: field, Reason: reason}
}

// MaxCapacity bounds event capacity; matches what a single venue on the
// platform can plausibly hold.
const MaxCapacity = 100_000

// Name requires a non-empty name of reasonable length.
func Name(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("name", "must not be empty")
	}
	if len(name) > 200 {
		return invalid("name", "must not exceed 200 characters")
	}
	return nil
}

// Email does a structural check: exactly one @ with a dotted domain.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "must not be empty")
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || !strings.Contains(parts[1], ".") {
		return invalid("email", "is not a valid email address")
	}
	return nil
}

// Description allows empty but bounds the length.
func Description(desc string) error {
	if len(desc) > 2000 {
		return invalid("description", "must not exceed 2000 characters")
	}
	return nil
}

// Dates requires both timestamps set and the end strictly after the start.
func Dates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return invalid("dates", "start and end must be set")
	}
	if !end.After(start) {
		return invalid("dates", "end must be after start")
	}
	return nil
}

// Location requires a non-empty location.
func Location(loc string) error {
	if strings.TrimSpace(loc) == "" {
		return invalid("location", "must not be empty")
	}
	return nil
}

// Capacity requires a positive capacity within platform bounds.
func Capacity(capacity int) error {
	if capacity <= 0 {
		return invalid("capacity", "must be a positive integer")
	}
	if capacity > MaxCapacity {
		return invalid("capacity", fmt.Sprintf("must not exceed %d", MaxCapacity))
	}
	return nil
}
