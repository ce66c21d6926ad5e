package executor

import "fmt"

// State is the lifecycle state of one Execute call.
type State string

const (
	Idle      State = "IDLE"
	Resolving State = "RESOLVING"
	Running   State = "RUNNING"
	Succeeded State = "SUCCEEDED"
	Failed    State = "FAILED"
)

// IsTerminal reports whether the state is terminal (finished).
func IsTerminal(s State) bool {
	return s == Succeeded || s == Failed
}

// Transition validates a move between states and returns the new state.
// Disallowed moves wrap ErrInvalidTransition.
func Transition(from, to State) (State, error) {
	if !isAllowedTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case Idle:
		return to == Resolving
	case Resolving:
		return to == Running || to == Failed
	case Running:
		return to == Succeeded || to == Failed
	default:
		return false
	}
}
