package prov

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoInputs is returned when Build is called with an empty input set.
// A zero-input derivation has no meaning in this model.
var ErrNoInputs = errors.New("provenance template requires at least one input entity")

// UnknownActivityTypeError reports an activity type outside the closed set.
type UnknownActivityTypeError struct {
	Code string
}

func (e *UnknownActivityTypeError) Error() string {
	return fmt.Sprintf("unknown activity type %q", e.Code)
}

// IntervalError reports an activity interval whose end precedes its start.
type IntervalError struct {
	Start time.Time
	End   time.Time
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("activity end %s precedes start %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// CycleError reports an output entity that also appears among the inputs,
// which would record a self-derivation.
type CycleError struct {
	Entity string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("output entity %q also appears as an input", e.Entity)
}
