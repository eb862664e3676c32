package gnuplot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nervecenter/gnuplotgo/internal/ctxlog"
)

// EnvBin names the environment variable consulted for the interpreter path
// before falling back to the platform default on PATH.
const EnvBin = "GNUPLOT"

const (
	scriptExt  = ".plt"
	outputExt  = ".out"
	terminator = "exit"
)

// binPath resolves the interpreter to invoke.
func binPath() string {
	if p := os.Getenv(EnvBin); p != "" {
		return p
	}
	if runtime.GOOS == "windows" {
		return "gnuplot.exe"
	}
	return "gnuplot"
}

// tempStem builds a collision-resistant basename for the temp file pair.
func tempStem() string {
	return fmt.Sprintf("%d_%06d", time.Now().UnixNano(), rand.IntN(1_000_000))
}

// Execute finishes the script and runs it through the gnuplot interpreter,
// returning the raw bytes of the rendered artifact.
//
// The script gains a trailing exit directive, is written to a temp file, and
// is handed to the interpreter with its stdout redirected into a sibling
// temp file. Both temp files are removed before Execute returns, success or
// not. With Options.KeepScript set, a copy of the script text survives in
// the working directory under the same basename for inspection.
//
// A script that ran but produced diagnostics of its own is not treated as a
// failure here: gnuplot's exit code is logged and whatever artifact it wrote
// is returned. Execute returns a *ToolError when the interpreter cannot be
// invoked at all or the artifact cannot be read back, and ErrAlreadyExecuted
// when the script was already consumed by an earlier call.
func (s *Script) Execute(ctx context.Context) ([]byte, error) {
	if s.executed {
		return nil, ErrAlreadyExecuted
	}
	s.executed = true

	logger := ctxlog.FromContext(ctx)

	s.lines = append(s.lines, terminator)
	text := strings.Join(s.lines, "\n") + "\n"

	if s.opts.Echo {
		out := s.opts.Out
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprint(out, text)
	}

	stem := tempStem()
	if s.opts.KeepScript {
		if err := os.WriteFile(stem+scriptExt, []byte(text), 0o644); err != nil {
			logger.Warn("Failed to keep script copy", "path", stem+scriptExt, "error", err)
		}
	}

	scriptPath := filepath.Join(os.TempDir(), stem+scriptExt)
	outPath := filepath.Join(os.TempDir(), stem+outputExt)
	defer os.Remove(scriptPath)
	defer os.Remove(outPath)

	if err := os.WriteFile(scriptPath, []byte(text), 0o600); err != nil {
		return nil, fmt.Errorf("writing temp script: %w", err)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("creating temp output: %w", err)
	}

	bin := binPath()
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, scriptPath)
	cmd.Stdout = outFile
	cmd.Stderr = &stderr

	logger.Debug("Invoking gnuplot", "bin", bin, "script", scriptPath, "lines", len(s.lines))
	runErr := cmd.Run()
	outFile.Close()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("gnuplot run interrupted: %w", ctx.Err())
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// Never started: binary missing, not executable, and so on.
			return nil, &ToolError{Path: bin, Err: runErr}
		}
		// The interpreter ran and chose to fail; pass its artifact through
		// and let the script's own diagnostics tell the story.
		logger.Debug("gnuplot exited nonzero", "code", exitErr.ExitCode(), "stderr", stderr.String())
	} else if stderr.Len() > 0 {
		logger.Debug("gnuplot wrote diagnostics", "stderr", stderr.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, &ToolError{Path: bin, Err: err}
	}

	logger.Debug("Captured rendered artifact", "bytes", len(data))
	return data, nil
}
