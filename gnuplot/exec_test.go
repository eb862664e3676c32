package gnuplot

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeTool drops a shell script standing in for the gnuplot binary and
// returns its path.
func writeFakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter requires sh")
	}
	path := filepath.Join(t.TempDir(), "gnuplot-fake")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	require.NoError(t, err, "failed to write fake interpreter")
	return path
}

func TestExecuteReturnsInterpreterOutput(t *testing.T) {
	// --- Arrange ---
	// The fake renders a fixed artifact to stdout, the way gnuplot's svg
	// terminal does when no output file is set.
	fake := writeFakeTool(t, `echo '<svg xmlns="http://www.w3.org/2000/svg"></svg>'`)
	t.Setenv(EnvBin, fake)

	s := NewScript(Options{})
	s.AddCommand("set terminal svg\nplot sin(x)")

	// --- Act ---
	data, err := s.Execute(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("<svg")), "artifact should carry the svg signature, got %q", data)
}

func TestExecuteAppendsExitDirective(t *testing.T) {
	// --- Arrange ---
	// The fake echoes the script file back, so the returned bytes are the
	// exact text handed to the interpreter.
	fake := writeFakeTool(t, `cat "$1"`)
	t.Setenv(EnvBin, fake)

	s := NewScript(Options{})
	s.AddCommand("set terminal svg")
	s.AddCommand("plot sin(x)")

	// --- Act ---
	data, err := s.Execute(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "set terminal svg\nplot sin(x)\nexit\n", string(data))
}

func TestExecuteEchoesScript(t *testing.T) {
	// --- Arrange ---
	fake := writeFakeTool(t, `cat "$1"`)
	t.Setenv(EnvBin, fake)

	var echoed bytes.Buffer
	s := NewScript(Options{Echo: true, Out: &echoed})
	s.AddCommand("plot sin(x)")

	// --- Act ---
	_, err := s.Execute(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "plot sin(x)\nexit\n", echoed.String())
}

func TestExecuteKeepsScriptCopy(t *testing.T) {
	// --- Arrange ---
	fake := writeFakeTool(t, `cat "$1"`)
	t.Setenv(EnvBin, fake)
	workDir := t.TempDir()
	t.Chdir(workDir)

	s := NewScript(Options{KeepScript: true})
	s.AddCommand("plot sin(x)")

	// --- Act ---
	_, err := s.Execute(context.Background())

	// --- Assert ---
	kept, globErr := filepath.Glob(filepath.Join(workDir, "*.plt"))
	require.NoError(t, err)
	require.NoError(t, globErr)
	require.Len(t, kept, 1, "exactly one script copy should survive in the working directory")

	text, readErr := os.ReadFile(kept[0])
	require.NoError(t, readErr)
	assert.Equal(t, "plot sin(x)\nexit\n", string(text))
}

func TestExecuteRemovesTempFiles(t *testing.T) {
	// --- Arrange ---
	// Point the platform temp directory somewhere observable.
	tempDir := t.TempDir()
	fake := writeFakeTool(t, `cat "$1"`)
	t.Setenv(EnvBin, fake)
	t.Setenv("TMPDIR", tempDir)

	s := NewScript(Options{})
	s.AddCommand("plot sin(x)")

	// --- Act ---
	_, err := s.Execute(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	entries, readErr := os.ReadDir(tempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "script and output temp files must be gone after execution")
}

func TestExecuteRemovesTempFilesOnFailure(t *testing.T) {
	// --- Arrange ---
	tempDir := t.TempDir()
	t.Setenv(EnvBin, filepath.Join(t.TempDir(), "no-such-gnuplot"))
	t.Setenv("TMPDIR", tempDir)

	s := NewScript(Options{})
	s.AddCommand("plot sin(x)")

	// --- Act ---
	_, err := s.Execute(context.Background())

	// --- Assert ---
	require.Error(t, err)
	entries, readErr := os.ReadDir(tempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "temp files must be gone even when the run fails")
}

func TestExecuteMissingInterpreterIsToolError(t *testing.T) {
	// --- Arrange ---
	missing := filepath.Join(t.TempDir(), "no-such-gnuplot")
	t.Setenv(EnvBin, missing)

	s := NewScript(Options{})
	s.AddCommand("plot sin(x)")

	// --- Act ---
	data, err := s.Execute(context.Background())

	// --- Assert ---
	require.Nil(t, data)
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr, "a missing interpreter must surface as a ToolError")
	assert.Equal(t, missing, toolErr.Path)
	assert.Contains(t, toolErr.Error(), "unavailable")
}

func TestExecuteNonZeroExitPassesArtifactThrough(t *testing.T) {
	// --- Arrange ---
	// gnuplot exits nonzero on script errors but may still have written
	// usable output; the caller gets whatever landed in the artifact.
	fake := writeFakeTool(t, "echo partial\necho 'line 0: undefined variable' >&2\nexit 1")
	t.Setenv(EnvBin, fake)

	s := NewScript(Options{})
	s.AddCommand("plot undefined_var")

	// --- Act ---
	data, err := s.Execute(context.Background())

	// --- Assert ---
	require.NoError(t, err, "interpreter exit codes are not surfaced as errors")
	assert.Equal(t, "partial\n", string(data))
}

func TestExecuteTwiceReturnsErrAlreadyExecuted(t *testing.T) {
	// --- Arrange ---
	fake := writeFakeTool(t, `cat "$1"`)
	t.Setenv(EnvBin, fake)

	s := NewScript(Options{})
	s.AddCommand("plot sin(x)")
	_, err := s.Execute(context.Background())
	require.NoError(t, err)

	// --- Act ---
	data, err := s.Execute(context.Background())

	// --- Assert ---
	require.Nil(t, data)
	require.ErrorIs(t, err, ErrAlreadyExecuted)
}

func TestExecuteHonoursCancelledContext(t *testing.T) {
	// --- Arrange ---
	fake := writeFakeTool(t, `cat "$1"`)
	t.Setenv(EnvBin, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScript(Options{})
	s.AddCommand("plot sin(x)")

	// --- Act ---
	data, err := s.Execute(ctx)

	// --- Assert ---
	require.Nil(t, data)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTempStemsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 64 {
		stem := tempStem()
		require.False(t, seen[stem], "stem %q repeated", stem)
		seen[stem] = true
		assert.True(t, strings.Contains(stem, "_"), "stem should be <timestamp>_<random>")
	}
}

func TestExecuteAgainstInstalledGnuplot(t *testing.T) {
	// --- Arrange ---
	real, err := exec.LookPath("gnuplot")
	if err != nil {
		t.Skip("gnuplot not installed")
	}
	t.Setenv(EnvBin, real)

	s := NewScript(Options{})
	s.AddCommand("set terminal svg")
	s.AddCommand("plot sin(x)")

	// --- Act ---
	data, execErr := s.Execute(context.Background())

	// --- Assert ---
	require.NoError(t, execErr)
	require.NotEmpty(t, data)
	assert.Contains(t, string(data), "<svg")
}
