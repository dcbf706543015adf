package regnfa

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KromDaniel/regnfa/internal/compiler"
)

// Options configures code generation.
type Options struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the generated type name (e.g., "Digits" generates type Digits and var CompiledDigits)
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// StateSlice forces the []bool simulation even when the automaton fits a uint64 bitset
	StateSlice bool

	// GenerateTestFile generates a test file with tests and benchmarks (default: true if TestFileInputs provided)
	GenerateTestFile bool

	// TestFileInputs is a list of test inputs for the generated test file. If empty and GenerateTestFile is true, defaults to []string{"example"}
	TestFileInputs []string

	// Verbose logs analysis and engine decisions to Logger
	Verbose bool

	// Logger receives verbose output (default: text on stderr)
	Logger *slog.Logger
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return errors.New("pattern cannot be empty")
	}
	if o.Name == "" {
		return errors.New("name cannot be empty")
	}
	if o.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}
	if o.Package == "" {
		return errors.New("package cannot be empty")
	}
	return nil
}

// Generate writes a Go matcher for opts.Pattern to opts.OutputFile.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	re, err := Compile(opts.Pattern)
	if err != nil {
		return err
	}

	testInputs := opts.TestFileInputs
	generateTestFile := opts.GenerateTestFile || len(testInputs) > 0
	if generateTestFile && len(testInputs) == 0 {
		testInputs = []string{"example"}
	}

	c := compiler.New(compiler.Config{
		Pattern:          opts.Pattern,
		Name:             opts.Name,
		Package:          opts.Package,
		Graph:            re.graph,
		GenerateTestFile: generateTestFile,
		TestFileInputs:   testInputs,
		ForceStateSlice:  opts.StateSlice,
		Verbose:          opts.Verbose,
		Logger:           opts.Logger,
	})
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
