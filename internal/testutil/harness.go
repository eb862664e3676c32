package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nervecenter/gnuplotgo/internal/app"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an app-level test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	OutDir    string
}

// RunAppTest provides a standardized harness for running app-level tests
// using a default background context.
func RunAppTest(t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunAppTestWithContext(context.Background(), t, files, mutate)
}

// RunAppTestWithContext provides a standardized harness for running app-level
// tests with a specific context provided by the caller.
//
// Keys in files are paths relative to a fresh temporary root, so a test can
// lay out "plots/latency.hcl" next to "plots/data.csv". The app is pointed
// at the root's plots/ subdirectory and renders into its out/ subdirectory.
// The optional mutate callback adjusts the config before the app starts.
func RunAppTestWithContext(ctx context.Context, t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir, err := os.MkdirTemp("", ".tmp-render-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	plotsDir := filepath.Join(tmpDir, "plots")
	outDir := filepath.Join(tmpDir, "out")
	require.NoError(t, os.Mkdir(plotsDir, 0755))
	require.NoError(t, os.Mkdir(outDir, 0755))

	// 2. Write all input files to the temporary directory. The test provides
	//    relative paths (e.g. "plots/latency.hcl"), which naturally creates
	//    the subdirectory structure within the root tmpDir.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		dir := filepath.Dir(filePath)
		require.NoError(t, os.MkdirAll(dir, 0755))
		err = os.WriteFile(filePath, []byte(content), 0644)
		require.NoError(t, err)
	}

	// 3. Configure the app to use the dedicated, non-overlapping subdirectories.
	appConfig := &app.Config{
		PlotPath:  plotsDir,
		OutDir:    outDir,
		Separator: ";",
		Workers:   4,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if mutate != nil {
		mutate(appConfig)
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("GNUPLOTGO_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.New(ctx, logBuffer, appConfig)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			App:       nil,
			OutDir:    outDir,
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("GNUPLOTGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		OutDir:    outDir,
	}
}
