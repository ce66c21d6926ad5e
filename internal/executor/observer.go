package executor

import (
	"context"
	"time"

	"github.com/vk/genomeprep/internal/registry"
)

// StepEvent describes one step invocation.
type StepEvent struct {
	RunID string
	Step  string
	// Index is the 1-based position of the step in the plan.
	Index int
	Total int
	// Inputs are only set for StepStarted, Outputs only for a successful
	// StepFinished.
	Inputs   registry.Inputs
	Outputs  registry.Outputs
	Duration time.Duration
}

// Observer is notified around every step invocation. Observers report; they
// cannot change what runs or what a step sees.
type Observer interface {
	StepStarted(ctx context.Context, ev StepEvent)
	StepFinished(ctx context.Context, ev StepEvent, err error)
}
