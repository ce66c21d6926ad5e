package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/genomeprep/internal/app"
	"github.com/vk/genomeprep/internal/cli"
	"github.com/vk/genomeprep/internal/fsutil"
)

// main is the entrypoint for the genomeprep application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	genomeApp, err := app.NewApp(outW, inv.Config)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch inv.Command {
	case cli.WriteGraph:
		if inv.GraphOut == "-" {
			return genomeApp.Graph(ctx, outW)
		}
		if err := fsutil.WriteFileAtomic(inv.GraphOut, func(w io.Writer) error {
			return genomeApp.Graph(ctx, w)
		}); err != nil {
			return err
		}
		fmt.Fprintf(outW, "Dependency graph written to %s\n", inv.GraphOut)
		return nil
	default:
		return genomeApp.Run(ctx)
	}
}
