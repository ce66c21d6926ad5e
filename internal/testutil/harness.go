package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/vk/genomeprep/internal/app"
	"github.com/vk/genomeprep/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	// Err is the startup or run error, if any.
	Err error
	// App is nil when startup failed.
	App *app.App
}

// RunIntegrationTest writes files (relative path to content) into a fresh
// config directory, builds an App over it with the given modules and runs
// the pipeline for targets.
func RunIntegrationTest(t *testing.T, files map[string]string, targets []string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, targets, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-supplied context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, targets []string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	configDir := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	for name, content := range files {
		filePath := filepath.Join(configDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig := &app.Config{
		ConfigPath: configDir,
		LogLevel:   "debug",
		LogFormat:  "text",
		Targets:    targets,
	}

	// Summaries are asserted on as plain text.
	color.NoColor = true

	logBuffer := &SafeBuffer{}
	testApp, err := app.NewApp(logBuffer, appConfig, modules...)
	if err == nil {
		err = testApp.Run(ctx)
	}

	if os.Getenv("GENOMEPREP_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
	}
}
