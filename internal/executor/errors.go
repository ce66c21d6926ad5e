package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned for a disallowed lifecycle move.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrMissingOutput means a step did not return a declared output.
	ErrMissingOutput = errors.New("declared output missing")
	// ErrUnexpectedOutput means a step returned an output it did not declare.
	ErrUnexpectedOutput = errors.New("undeclared output returned")
	// ErrOutputType means an output value does not match its declared type.
	ErrOutputType = errors.New("output has wrong type")
)

// StepExecutionError tags a failure with the step that caused it.
type StepExecutionError struct {
	Step string
	Err  error
}

func (e *StepExecutionError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepExecutionError) Unwrap() error {
	return e.Err
}
