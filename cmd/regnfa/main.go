// Command regnfa generates Go matchers from regular expressions and filters
// input lines by full match.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/KromDaniel/regnfa/internal/config"
	"github.com/KromDaniel/regnfa/pkg/regnfa"
	"github.com/KromDaniel/regnfa/stream"
)

// exitError carries a process exit code. An empty msg prints nothing.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.msg != "" {
				fmt.Fprintln(os.Stderr, exitErr.msg)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("regnfa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, `Usage:
  regnfa -pattern P -name N -output F [-package pkg] [-test-inputs x ...]
  regnfa -config patterns.hcl
  regnfa -match P [FILE]

Options:
`)
		fs.PrintDefaults()
	}

	pattern := fs.String("pattern", "", "Regular expression to generate a matcher for.")
	name := fs.String("name", "", "Name of the generated type.")
	output := fs.String("output", "", "Path of the generated Go file.")
	pkg := fs.String("package", "main", "Package name of the generated file.")
	stateSlice := fs.Bool("state-slice", false, "Always generate the []bool simulation.")
	var testInputs arrayFlags
	fs.Var(&testInputs, "test-inputs", "Input for the generated test file (repeatable).")
	configPath := fs.String("config", "", "HCL file listing patterns to generate.")
	match := fs.String("match", "", "Print the input lines that fully match this expression.")
	verbose := fs.Bool("verbose", false, "Log analysis and engine decisions.")
	logLevel := fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &exitError{code: 2, msg: err.Error()}
	}

	logger := newSlogLogger(strings.ToLower(*logLevel), strings.ToLower(*logFormat), stderr)

	switch {
	case *match != "":
		return runMatch(*match, fs.Args(), stdin, stdout)
	case *configPath != "":
		return runConfig(*configPath, *verbose, logger)
	case *pattern != "":
		opts := regnfa.Options{
			Pattern:        *pattern,
			Name:           *name,
			OutputFile:     *output,
			Package:        *pkg,
			StateSlice:     *stateSlice,
			TestFileInputs: testInputs,
			Verbose:        *verbose,
			Logger:         logger,
		}
		if err := regnfa.Generate(opts); err != nil {
			return &exitError{code: 1, msg: err.Error()}
		}
		logger.Info("Generated matcher.", "name", opts.Name, "file", opts.OutputFile)
		return nil
	default:
		fs.Usage()
		return &exitError{code: 2, msg: "one of -pattern, -config or -match is required"}
	}
}

// runMatch copies the lines of the named file, or of stdin, that fully match
// expr. Like grep it fails with code 1 when no line matched.
func runMatch(expr string, files []string, stdin io.Reader, stdout io.Writer) error {
	re, err := regnfa.Compile(expr)
	if err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	in := stdin
	switch len(files) {
	case 0:
	case 1:
		f, err := os.Open(files[0])
		if err != nil {
			return &exitError{code: 2, msg: err.Error()}
		}
		defer f.Close()
		in = f
	default:
		return &exitError{code: 2, msg: "-match takes at most one file"}
	}

	matched := 0
	r := stream.LineFilter(in, func(line []byte) bool {
		if re.FullMatch(string(line)) {
			matched++
			return true
		}
		return false
	})
	if _, err := io.Copy(stdout, r); err != nil {
		return fmt.Errorf("failed to filter input: %w", err)
	}
	if matched == 0 {
		return &exitError{code: 1}
	}
	return nil
}

// runConfig generates every pattern listed in the HCL file at path.
func runConfig(path string, verbose bool, logger *slog.Logger) error {
	f, err := config.Load(path)
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}
	if err := f.Validate(); err != nil {
		return &exitError{code: 1, msg: fmt.Sprintf("invalid config %s: %v", path, err)}
	}
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, p := range f.Patterns {
		opts := regnfa.Options{
			Pattern:        p.Expr,
			Name:           p.Name,
			OutputFile:     f.OutputFile(p),
			Package:        f.Package,
			StateSlice:     p.StateSlice,
			TestFileInputs: p.Inputs,
			Verbose:        verbose,
			Logger:         logger,
		}
		if err := regnfa.Generate(opts); err != nil {
			return &exitError{code: 1, msg: fmt.Sprintf("pattern %s: %v", p.Name, err)}
		}
		logger.Info("Generated matcher.", "name", p.Name, "file", opts.OutputFile)
	}
	logger.Debug("Batch complete.", "patterns", len(f.Patterns))
	return nil
}

// newSlogLogger creates a slog.Logger writing to w at the given level, as
// text or json.
func newSlogLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
