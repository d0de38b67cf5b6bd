package pagination

import (
	"errors"
	"fmt"
)

// ErrUnpageable matches any *UnpageableResourceError via errors.Is.
var ErrUnpageable = errors.New("resource is not pageable")

// UnpageableResourceError is returned when a resource is missing a capability
// the requested operation needs.
type UnpageableResourceError struct {
	// Capability is the missing method, e.g. "TotalPages".
	Capability string
}

func (e *UnpageableResourceError) Error() string {
	return fmt.Sprintf("resource does not implement %q", e.Capability)
}

func (e *UnpageableResourceError) Is(target error) bool {
	return target == ErrUnpageable
}
