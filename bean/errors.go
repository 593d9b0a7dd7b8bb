package bean

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStruct is returned when a struct or struct pointer was expected
	ErrNotStruct = errors.New("not a struct")
	// ErrNotEditable is returned when target is not an instance of the editable type
	ErrNotEditable = errors.New("target is not editable")
	// ErrUnknownProperty is returned when struct has no property with requested name
	ErrUnknownProperty = errors.New("unknown property")
	// ErrNilPrimitive is returned when nil would be copied into a primitive property
	ErrNilPrimitive = errors.New("nil value for primitive property")
)

// PropertyError represents a fill or copy failure of a single property
type PropertyError struct {
	Source string
	Target string
	Err    error
}

// Error returns error message
func (e *PropertyError) Error() string {
	if e.Source == "" || e.Source == e.Target {
		return fmt.Sprintf("failed to set property %v: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("failed to copy property %v to %v: %v", e.Source, e.Target, e.Err)
}

// Unwrap returns underlying error
func (e *PropertyError) Unwrap() error {
	return e.Err
}
