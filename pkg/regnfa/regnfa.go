// Package regnfa compiles regular expressions into nondeterministic finite
// automata, matches them at runtime by state-set simulation and generates
// standalone Go matchers from them at build time.
//
// Matching is always against the whole input:
//
//	re := regnfa.MustCompile(`[0-9]+(\.[0-9]+)?`)
//	re.FullMatch("3.14") // true
//	re.FullMatch("3.")   // false
package regnfa

import (
	"fmt"
	"io"

	"github.com/KromDaniel/regnfa/internal/ast"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/KromDaniel/regnfa/internal/parser"
	"github.com/KromDaniel/regnfa/internal/sim"
	"github.com/KromDaniel/regnfa/stream"
)

// SyntaxError describes a malformed expression.
type SyntaxError = parser.SyntaxError

// Regex is a compiled expression. The zero value has an empty expression,
// which matches nothing.
//
// A Regex returned by New compiles on first use and must not be shared
// between goroutines before then. One returned by Compile is already
// compiled and may be matched concurrently.
type Regex struct {
	expr  string
	graph *nfa.Graph
	err   error
}

// New returns a Regex for expr. Compilation is deferred to the first match,
// and a malformed expression is reported by Err after it.
func New(expr string) *Regex {
	return &Regex{expr: expr}
}

// Compile parses expr and builds its automaton.
func Compile(expr string) (*Regex, error) {
	re := New(expr)
	if err := re.compile(); err != nil {
		return nil, err
	}
	return re, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(expr string) *Regex {
	re, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return re
}

func (re *Regex) compile() error {
	if re.graph != nil || re.err != nil {
		return re.err
	}
	node, err := parser.Parse(re.expr)
	if err != nil {
		re.err = fmt.Errorf("failed to parse pattern: %w", err)
		return re.err
	}
	re.graph = ast.Build(node)
	return nil
}

// Expression returns the source text of the expression.
func (re *Regex) Expression() string {
	return re.expr
}

// SetExpression replaces the expression. The automaton is rebuilt on the
// next match.
func (re *Regex) SetExpression(expr string) {
	re.expr = expr
	re.graph = nil
	re.err = nil
}

// Err returns the error from the last compilation, if any.
func (re *Regex) Err() error {
	return re.err
}

// Graph returns the compiled automaton, compiling it if needed. It returns
// nil if the expression is malformed. Callers must not modify the graph.
func (re *Regex) Graph() *nfa.Graph {
	if re.compile() != nil {
		return nil
	}
	return re.graph
}

// FullMatch reports whether the whole of s matches the expression. A
// malformed expression matches nothing; Err reports why.
func (re *Regex) FullMatch(s string) bool {
	if re.compile() != nil {
		return false
	}
	return sim.New(re.graph).Run([]byte(s))
}

// MatchReader reports whether everything read from r matches the
// expression. Reading stops early once no match is possible. Input running
// past cfg.MaxBytes does not match, since it was never read in full.
func (re *Regex) MatchReader(r io.Reader, cfg stream.Config) (bool, error) {
	if err := re.compile(); err != nil {
		return false, err
	}
	res, err := stream.Run(r, cfg, sim.New(re.graph))
	if err != nil {
		return false, err
	}
	if res.Truncated {
		return false, nil
	}
	return res.Accepted, nil
}
