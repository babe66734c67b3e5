package comparison

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports missing, extra or invalid step inputs and settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrIO reports a failed load or save through the list store.
	ErrIO = errors.New("io error")
	// ErrPattern reports a malformed file pattern.
	ErrPattern = errors.New("pattern error")
	// ErrTokenResolution reports a reference to a token no earlier step produces.
	ErrTokenResolution = errors.New("token resolution error")
)

// Phase is the point of a step's lifecycle at which it failed.
type Phase string

const (
	PhasePlanning   Phase = "planning"
	PhaseResolving  Phase = "resolving"
	PhaseExecuting  Phase = "executing"
	PhasePersisting Phase = "persisting"
)

// StepError identifies the failing step of a comparison call.
type StepError struct {
	// Index is the zero-based step index, or -1 for failures not tied to one step.
	Index int
	// Type is the failing step's comparison type.
	Type ComparisonType
	// Output is the failing step's output identifier.
	Output string
	// Phase is where in the step lifecycle the failure happened.
	Phase Phase
	// Kind is one of the package's sentinel errors.
	Kind error
	// Err is the underlying cause.
	Err error
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	where := "comparison"
	if e.Index >= 0 {
		where = fmt.Sprintf("step %d (%s -> %s)", e.Index+1, e.Type, e.Output)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s failed while %s: %s", where, e.Phase, e.Kind)
	}
	return fmt.Sprintf("%s failed while %s: %s: %v", where, e.Phase, e.Kind, e.Err)
}

// Unwrap exposes both the sentinel kind and the cause to errors.Is / errors.As.
func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func planErr(index int, step Step, kind error, format string, args ...any) *StepError {
	return &StepError{
		Index:  index,
		Type:   step.Type,
		Output: step.Output,
		Phase:  PhasePlanning,
		Kind:   kind,
		Err:    fmt.Errorf(format, args...),
	}
}
