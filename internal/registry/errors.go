package registry

import (
	"errors"
	"fmt"
)

// ErrInvalidStep is returned for malformed step definitions.
var ErrInvalidStep = errors.New("invalid step definition")

// DuplicateOutputError reports an output name declared by two steps.
type DuplicateOutputError struct {
	Output       string
	Step         string
	ExistingStep string
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("duplicate output %q: declared by step %q and already produced by step %q", e.Output, e.Step, e.ExistingStep)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStep, fmt.Sprintf(format, args...))
}
