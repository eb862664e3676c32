package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nervecenter/gnuplotgo/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("gnuplotgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gnuplotgo - A declarative gnuplot front end.

Usage:
  gnuplotgo [options] [PLOT_PATH]

Arguments:
  PLOT_PATH
    Path to a single .hcl plotfile or a directory containing plotfiles.

Environment:
  GNUPLOT
    Path to the gnuplot binary. Defaults to 'gnuplot' on PATH
    ('gnuplot.exe' on Windows).

Options:
`)
		flagSet.PrintDefaults()
	}

	plotsFlag := flagSet.String("plots", "", "Path to the plotfile or directory.")
	pFlag := flagSet.String("p", "", "Path to the plotfile or directory (shorthand).")
	outDirFlag := flagSet.String("out-dir", ".", "Directory for rendered artifacts.")
	separatorFlag := flagSet.String("separator", ";", "Datablock delimiter for plots that do not set one.")
	precisionFlag := flagSet.Int("precision", 0, "Significant digits for float values. 0 keeps the default of 10.")
	workersFlag := flagSet.Int("workers", 4, "Number of plots to render concurrently.")
	echoFlag := flagSet.Bool("echo", false, "Print each generated script before running it.")
	keepFlag := flagSet.Bool("keep-scripts", false, "Keep a copy of each generated script in the working directory.")
	watchFlag := flagSet.Bool("watch", false, "Stay running and re-render when plotfiles change.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *plotsFlag != "" {
		path = *plotsFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *precisionFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid precision: must not be negative"}
	}
	if *workersFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
	}

	config, err := app.NewConfig(app.Config{
		PlotPath:    path,
		OutDir:      *outDirFlag,
		Separator:   *separatorFlag,
		Precision:   *precisionFlag,
		Workers:     *workersFlag,
		Echo:        *echoFlag,
		KeepScripts: *keepFlag,
		Watch:       *watchFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
