package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// FakeInterpreter writes a shell script standing in for the gnuplot binary
// and returns its path. Tests point the GNUPLOT environment variable at it
// with t.Setenv.
func FakeInterpreter(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter requires sh")
	}
	path := filepath.Join(t.TempDir(), "gnuplot-fake")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	require.NoError(t, err, "failed to write fake interpreter")
	return path
}

// EchoInterpreter returns a fake interpreter that prints the given artifact
// text, the way gnuplot's svg terminal streams output to stdout.
func EchoInterpreter(t *testing.T, artifact string) string {
	t.Helper()
	return FakeInterpreter(t, "echo '"+artifact+"'")
}

// CatInterpreter returns a fake interpreter that copies the script it was
// handed to stdout, so tests can assert on the exact generated script text.
func CatInterpreter(t *testing.T) string {
	t.Helper()
	return FakeInterpreter(t, `cat "$1"`)
}
