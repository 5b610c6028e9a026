package variant

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every structured error below unwraps to one of these so
// callers can test with errors.Is.
var (
	ErrIncompatibleSpec      = errors.New("variant: incompatible spec")
	ErrOverflow              = errors.New("variant: overflow")
	ErrIndexOutOfBounds      = errors.New("variant: index out of bounds")
	ErrFixedSize             = errors.New("variant: fixed size violation")
	ErrFixedCapacity         = errors.New("variant: fixed capacity violation")
	ErrCannotPopOnEmpty      = errors.New("variant: cannot pop on empty list")
	ErrResolutionOutOfBounds = errors.New("variant: resolution out of bounds")
	ErrInvalidFormat         = errors.New("variant: invalid format")
	ErrOutOfRange            = errors.New("variant: value out of range")
	ErrNotSupported          = errors.New("variant: not supported")
	ErrNotOrdered            = errors.New("variant: spec is not ordered")
	ErrReadOnly              = errors.New("variant: read-only value")
	ErrNotAccessLevel        = errors.New("variant: spec is not at access level")
)

// SpecError reports that a provided spec does not satisfy a required spec.
type SpecError struct {
	Provided string
	Required string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("variant: incompatible spec: provided %s, required %s", e.Provided, e.Required)
}

func (e *SpecError) Unwrap() error { return ErrIncompatibleSpec }

// OverflowError reports a numeric value outside the range of its storage.
type OverflowError struct {
	Value string
	Min   string
	Max   string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("variant: overflow: %s is outside the allowed range [%s, %s]", e.Value, e.Min, e.Max)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

func newOverflow[T, L, H any](value T, lo L, hi H) *OverflowError {
	return &OverflowError{
		Value: fmt.Sprint(value),
		Min:   fmt.Sprint(lo),
		Max:   fmt.Sprint(hi),
	}
}

// IndexError reports an index outside the current length of a collection.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("variant: index %d out of bounds (len=%d)", e.Index, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfBounds }

// FixedSizeError reports a length-changing operation on a fixed-size list.
type FixedSizeError struct {
	Op   string
	Size int
}

func (e *FixedSizeError) Error() string {
	return fmt.Sprintf("variant: cannot %s: list has fixed size %d", e.Op, e.Size)
}

func (e *FixedSizeError) Unwrap() error { return ErrFixedSize }

// FixedCapacityError reports growth beyond the capacity of a fixed-capacity list.
type FixedCapacityError struct {
	Capacity int
}

func (e *FixedCapacityError) Error() string {
	return fmt.Sprintf("variant: fixed capacity %d exceeded", e.Capacity)
}

func (e *FixedCapacityError) Unwrap() error { return ErrFixedCapacity }

// ResolutionError reports a time or duration component finer than the
// declared resolution.
type ResolutionError struct {
	Component  string
	Value      int64
	Resolution string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("variant: %s=%d is finer than the configured resolution %s", e.Component, e.Value, e.Resolution)
}

func (e *ResolutionError) Unwrap() error { return ErrResolutionOutOfBounds }

// RangeError reports a component outside its valid range, such as month 13.
type RangeError struct {
	Component string
	Value     int64
	Min       int64
	Max       int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("variant: %s %d out of range [%d, %d]", e.Component, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// FormatError reports text that could not be parsed.
type FormatError struct {
	What      string // what was being parsed, e.g. "date"
	Substring string // the offending part of Input
	Input     string
	Reason    string
}

func (e *FormatError) Error() string {
	if e.Substring == "" {
		return fmt.Sprintf("variant: invalid %s %q: %s", e.What, e.Input, e.Reason)
	}
	return fmt.Sprintf("variant: invalid %s %q: %s %q", e.What, e.Input, e.Reason, e.Substring)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// ProviderError wraps a failure reported by a storage backend.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("variant: provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
