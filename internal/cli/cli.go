package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/genomeprep/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command selects what the invocation does.
type Command int

const (
	// RunPipeline executes the pipeline for the configured targets.
	RunPipeline Command = iota
	// WriteGraph renders the dependency graph.
	WriteGraph
)

// DefaultGraphOut is where the graph command writes unless told otherwise.
const DefaultGraphOut = "execution_graph.dot"

// Invocation is the parsed command line.
type Invocation struct {
	Command Command
	Config  *app.Config
	// GraphOut is the DOT output path for WriteGraph; "-" means the output writer.
	GraphOut string
}

type flags struct {
	configPath      string
	logFormat       string
	logLevel        string
	targets         []string
	healthcheckPort int
	graphOut        string
}

// Parse processes command-line arguments. It returns the Invocation, a
// boolean indicating if the program should exit cleanly (help was shown),
// or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")

	var f flags
	var inv *Invocation
	build := func(cmd Command) error {
		cfg, err := f.config()
		if err != nil {
			return err
		}
		inv = &Invocation{Command: cmd, Config: cfg, GraphOut: f.graphOut}
		return nil
	}

	root := &cobra.Command{
		Use:   "genomeprep",
		Short: "Download and prepare a reference genome",
		Long: `genomeprep downloads a gzip-compressed reference genome, decompresses it and
extracts the chromosome names. Steps are wired by name from the config file
(genome_url, genome_name, data_root) and skip work whose output already exists.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(*cobra.Command, []string) error {
			return build(RunPipeline)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", app.DefaultConfigPath, "Config file name (.yaml, .yml or .hcl) or a directory of them.")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringArrayVarP(&f.targets, "target", "t", nil, "Output to produce; repeatable. Defaults to the pipeline's final outputs.")
	root.Flags().IntVar(&f.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	graph := &cobra.Command{
		Use:   "graph",
		Short: "Write the dependency graph in Graphviz DOT format",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return build(WriteGraph)
		},
	}
	graph.Flags().StringVarP(&f.graphOut, "out", "o", DefaultGraphOut, "Output file for the graph; '-' for standard output.")
	root.AddCommand(graph)

	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if inv == nil {
		slog.Debug("No command ran, exiting.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", inv.Config, "command", inv.Command)
	return inv, false, nil
}

func (f *flags) config() (*app.Config, error) {
	logFormat := strings.ToLower(f.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(f.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:      f.configPath,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Targets:         f.targets,
		HealthcheckPort: f.healthcheckPort,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, nil
}
