package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no row matches the given id.
var ErrNotFound = errors.New("not found")

// MissingRequiredFieldError reports a required field absent from the
// values used to build an item.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// UnknownFieldError reports an update against a field that is not part
// of the active inventory type.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not configured for this inventory type", e.Field)
}
