// Package compiler generates standalone Go matchers from compiled automata.
package compiler

import (
	"errors"
	"fmt"
	"go/format"
	"log/slog"
	"os"

	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string
	Name             string
	OutputFile       string
	Package          string
	Graph            *nfa.Graph   // Automaton to generate a matcher for
	GenerateTestFile bool         // Generate test file with tests and benchmarks
	TestFileInputs   []string     // Test inputs for generated test file
	ForceStateSlice  bool         // Use the []bool simulation even for small automata
	Verbose          bool         // Enable verbose logging of analysis decisions
	Logger           *slog.Logger // Backend for verbose logging (default: text on stderr)
}

// Compiler generates Go code for an automaton.
type Compiler struct {
	config   Config
	file     *jen.File
	logger   *Logger       // Verbose logger for analysis decisions
	analysis GraphAnalysis // Dense view of the automaton
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	compiler := &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLoggerWith(config.Verbose, config.Logger),
	}

	if config.Graph != nil {
		compiler.analysis = analyzeGraph(config.Graph)
	}

	compiler.analyzeAndLog()

	return compiler
}

// analyzeAndLog logs the graph analysis if verbose mode is enabled.
func (c *Compiler) analyzeAndLog() {
	c.logger.Section("Pattern Analysis")
	c.logger.Log("Pattern: %q", c.config.Pattern)

	if c.config.Graph == nil {
		c.logger.Log("No automaton supplied")
		return
	}

	stats := c.config.Graph.Stats()
	c.logger.Attrs("graph", "nodes", stats.Nodes, "transitions", stats.Transitions, "epsilons", stats.Epsilons, "freed_slots", stats.FreedSlots)
	c.logger.Log("Start closure: %v", c.analysis.Start)
	c.logger.Log("Accept state: %d", c.analysis.Accept)
	c.logger.Log("Has loops: %v", c.analysis.HasLoop)
	c.logger.Log("Accept reachable: %v", c.analysis.ReachesFinal)
	if c.analysis.DeadEdges > 0 {
		c.logger.Log("Dropped %d transitions that accept no byte", c.analysis.DeadEdges)
	}

	c.logger.Section("Engine Selection")
	switch {
	case c.config.ForceStateSlice:
		c.logger.Log("Match engine: state-slice Thompson NFA (forced by user)")
	case c.analysis.States <= MaxBitsetStates:
		c.logger.Log("Match engine: bitset Thompson NFA")
	default:
		c.logger.Log("Match engine: state-slice Thompson NFA (%d states exceed bitset limit %d)", c.analysis.States, MaxBitsetStates)
	}
}

// Analysis returns the result of the graph analysis.
func (c *Compiler) Analysis() GraphAnalysis {
	return c.analysis
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if c.config.Graph == nil {
		return errors.New("no automaton to generate from")
	}
	if c.config.Name == "" {
		return errors.New("name cannot be empty")
	}
	if c.config.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}

	c.file.Comment(fmt.Sprintf("Code generated by regnfa for pattern: %q", c.config.Pattern))
	c.file.Comment("DO NOT EDIT.")
	c.file.Line()

	// Generate the main struct type
	c.file.Type().Id(c.config.Name).Struct()
	c.file.Line()

	// Generate convenience variable for direct usage
	c.file.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	c.file.Line()

	thompsonGen := NewThompsonGenerator(c)
	matchStringCode, err := thompsonGen.GenerateMatchFunction(false)
	if err != nil {
		return fmt.Errorf("failed to generate match string function: %w", err)
	}
	matchBytesCode, err := thompsonGen.GenerateMatchFunction(true)
	if err != nil {
		return fmt.Errorf("failed to generate match bytes function: %w", err)
	}

	// Add MatchString method
	c.file.Comment(fmt.Sprintf("MatchString reports whether the whole input matches %q.", c.config.Pattern))
	c.method("MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(matchStringCode...)

	// Add MatchBytes method
	c.file.Comment(fmt.Sprintf("MatchBytes reports whether the whole input matches %q.", c.config.Pattern))
	c.method("MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(matchBytesCode...)

	// Save to file
	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	// Format the generated file
	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}

	// Generate test file if requested
	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	c.logger.Attrs("generated", "file", c.config.OutputFile, "test_file", c.config.GenerateTestFile)
	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
