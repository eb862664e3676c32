package gnuplot

import (
	"errors"
	"fmt"
)

// ErrAlreadyExecuted reports a builder call or Execute on a script that has
// already been executed. Scripts are consumed by execution; build a new one
// for the next render.
var ErrAlreadyExecuted = errors.New("gnuplot: script already executed")

// ToolError reports that the gnuplot interpreter could not be invoked, or
// that the rendered artifact could not be read back afterwards. The two
// conditions are deliberately not distinguished: both mean "gnuplot is not
// installed, not on PATH, or failed before producing output". The underlying
// cause is available through Unwrap.
type ToolError struct {
	// Path is the interpreter path that was invoked.
	Path string
	// Err is the underlying invocation or read failure.
	Err error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("gnuplot: %q unavailable or produced no readable output: %v", e.Path, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }
