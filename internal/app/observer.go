package app

import (
	"context"

	"github.com/vk/genomeprep/internal/config"
	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/executor"
	"github.com/zclconf/go-cty/cty"
)

// lifecycleObserver logs each step's inputs and outputs at debug level and
// feeds the health endpoint.
type lifecycleObserver struct {
	progress *progress
}

func (o *lifecycleObserver) StepStarted(ctx context.Context, ev executor.StepEvent) {
	o.progress.total.Store(int32(ev.Total))
	ctxlog.FromContext(ctx).Debug("Step inputs:", "index", ev.Index, "total", ev.Total, "data", loggableMap(ev.Inputs))
}

func (o *lifecycleObserver) StepFinished(ctx context.Context, ev executor.StepEvent, err error) {
	logger := ctxlog.FromContext(ctx)
	if err != nil {
		o.progress.failed.Store(true)
		logger.Debug("Step errored.", "duration", ev.Duration, "error", err)
		return
	}
	o.progress.finished.Add(1)
	logger.Debug("Step outputs:", "duration", ev.Duration, "data", loggableMap(ev.Outputs))
}

func loggableMap[M ~map[string]cty.Value](m M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = config.Loggable(v)
	}
	return out
}
