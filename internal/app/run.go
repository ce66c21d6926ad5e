package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/vk/genomeprep/internal/config"
	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/dag"
	"github.com/vk/genomeprep/internal/executor"
)

// Run executes the pipeline for the configured targets and prints the
// resulting values to the app's output.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.healthCheckServer(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.closeHealthCheckServer())
	}()

	a.progress.total.Store(0)
	a.progress.finished.Store(0)
	a.progress.failed.Store(false)

	a.logger.Info("🚀 Starting pipeline...", "targets", a.targets, "steps_registered", a.registry.Len())
	exec := executor.New(a.registry, &lifecycleObserver{progress: &a.progress})
	result, err := exec.Execute(ctx, a.targets, a.values)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	printSummary(a.outW, result)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// Graph writes the whole dependency graph in DOT format, highlighting the
// steps the configured targets need.
func (a *App) Graph(ctx context.Context, w io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	graph, err := dag.Build(ctx, a.registry, a.values.Names())
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	plan, err := dag.Resolve(ctx, a.registry, a.values.Names(), a.targets)
	if err != nil {
		return fmt.Errorf("failed to resolve targets: %w", err)
	}
	a.logger.Debug("Rendering dependency graph.", "nodes", len(graph.NodeIDs()), "planned_steps", plan.StepNames())

	return dag.WriteDOT(w, graph, plan)
}

func printSummary(w io.Writer, result executor.Result) {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, color.GreenString("✔ Pipeline finished"))
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %v\n", color.CyanString("%s", name), config.Loggable(result[name]))
	}
}
