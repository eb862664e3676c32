package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nervecenter/gnuplotgo/gnuplot"
	"github.com/nervecenter/gnuplotgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApp_StartupPanicsOnUnparsablePlotfile checks that a syntax error in a
// plotfile surfaces as a recovered startup panic, not a half-built app.
func TestApp_StartupPanicsOnUnparsablePlotfile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"plots/broken.hcl": `
			plot "broken" {
				commands = [
		`,
	}

	// --- Act ---
	result := testutil.RunAppTest(t, files, nil)

	// --- Assert ---
	require.Error(t, result.Err)
	require.Nil(t, result.App, "No app instance should survive a startup panic")
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), "failed to parse")
}

// TestApp_StartupSuggestsClosestDataBlock checks that a series referencing a
// misspelled data block fails with a useful suggestion.
func TestApp_StartupSuggestsClosestDataBlock(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"plots/latency.hcl": `
			plot "latency" {
				data "results" {
					column "ms" {
						values = [1.5]
					}
				}
				series {
					data  = "resuls"
					using = "0:1"
				}
			}
		`,
	}

	// --- Act ---
	result := testutil.RunAppTest(t, files, nil)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), `unknown data block "resuls"`)
	assert.Contains(t, result.Err.Error(), `did you mean "results"?`)
}

// TestApp_ReportsMissingInterpreter checks that an unreachable gnuplot binary
// fails the run with a pointed error instead of an empty artifact.
func TestApp_ReportsMissingInterpreter(t *testing.T) {
	// --- Arrange ---
	t.Setenv(gnuplot.EnvBin, filepath.Join(t.TempDir(), "no-such-gnuplot"))

	files := map[string]string{
		"plots/latency.hcl": `
			plot "latency" {
				commands = ["plot sin(x)"]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunAppTest(t, files, nil)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "rendering failed for latency")
	assert.Contains(t, result.Err.Error(), "unavailable")

	var toolErr *gnuplot.ToolError
	require.ErrorAs(t, result.Err, &toolErr)
}

// TestApp_PassesThroughInterpreterExit checks that a nonzero gnuplot exit is
// not treated as a pipeline failure: whatever output the tool produced is
// still captured.
func TestApp_PassesThroughInterpreterExit(t *testing.T) {
	// --- Arrange ---
	t.Setenv(gnuplot.EnvBin, testutil.FakeInterpreter(t, "echo 'partial output'; exit 3"))

	files := map[string]string{
		"plots/latency.hcl": `
			plot "latency" {
				commands = ["plot sin(x)"]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunAppTest(t, files, nil)

	// --- Assert ---
	require.NoError(t, result.Err, "A nonzero interpreter exit should not fail the run")

	content, err := os.ReadFile(filepath.Join(result.OutDir, "latency.svg"))
	require.NoError(t, err)
	assert.Equal(t, "partial output\n", string(content))
}
