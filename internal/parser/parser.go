// Package parser turns a pattern string into an ast.Node.
//
// Supported syntax:
//
//	a|b      alternation
//	ab       concatenation
//	a* a+ a? repetition (quantifiers may be stacked)
//	(a)      group
//	(?:a)    non-capturing group
//	.        any byte
//	[abc]    byte set, ranges like [a-z], negation with [^...]
//	\c       the literal byte c
//
// An empty alternative (as in "a|" or "(|a)") contributes no branch.
package parser

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/regnfa/internal/ast"
	"github.com/KromDaniel/regnfa/internal/nfa"
)

// SyntaxError reports a malformed pattern.
type SyntaxError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Msg, e.Pos, e.Pattern)
}

type parser struct {
	src string
	pos int
}

// Parse parses pattern. The empty pattern yields a nil node.
func Parse(pattern string) (ast.Node, error) {
	p := &parser{src: pattern}
	n, err := p.parseChoice()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf(p.pos, "unexpected )")
	}
	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) ast.Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	return c
}

func (p *parser) errorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pattern: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseChoice() (ast.Node, error) {
	node, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.peek() == '|' {
		p.pos++
		if p.eof() {
			break
		}
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		node = &ast.Choice{Left: node, Right: right}
	}
	return node, nil
}

// concatEnds reports whether the current concatenation is over.
func (p *parser) concatEnds() bool {
	return p.eof() || p.peek() == '|' || p.peek() == ')'
}

func (p *parser) parseConcat() (ast.Node, error) {
	if p.concatEnds() {
		return nil, nil
	}
	node, err := p.parseQuantified()
	if err != nil {
		return nil, err
	}
	for !p.concatEnds() {
		right, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		node = &ast.Concat{Left: node, Right: right}
	}
	return node, nil
}

func isQuantifier(c byte) bool {
	return c == '*' || c == '+' || c == '?'
}

func (p *parser) parseQuantified() (ast.Node, error) {
	if isQuantifier(p.peek()) {
		return nil, p.errorf(p.pos, "missing argument to repetition operator %q", p.peek())
	}
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for !p.eof() && isQuantifier(p.peek()) {
		switch p.next() {
		case '*':
			node = &ast.Star{Child: node}
		case '+':
			node = &ast.Plus{Child: node}
		case '?':
			node = &ast.Optional{Child: node}
		}
	}
	return node, nil
}

func (p *parser) parsePrimary() (ast.Node, error) {
	start := p.pos
	switch c := p.next(); c {
	case '\\':
		if p.eof() {
			return nil, p.errorf(start, "trailing backslash")
		}
		return ast.SingleCharacter(p.next()), nil
	case '.':
		return ast.AnyCharacter(), nil
	case '[':
		return p.parseBracket(start)
	case '(':
		capture := true
		if strings.HasPrefix(p.src[p.pos:], "?:") {
			p.pos += 2
			capture = false
		}
		inner, err := p.parseChoice()
		if err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorf(start, "missing closing )")
		}
		p.pos++
		if capture {
			return &ast.Group{Child: inner}, nil
		}
		return inner, nil
	default:
		return ast.SingleCharacter(c), nil
	}
}

// parseBracket parses a byte set; start is the offset of the opening '['.
// A ']' right after the opening bracket (or after '^') is a literal, as is
// a '-' that cannot form a range.
func (p *parser) parseBracket(start int) (ast.Node, error) {
	negate := false
	if !p.eof() && p.peek() == '^' {
		negate = true
		p.pos++
	}

	var set []byte
	first := true
	for {
		if p.eof() {
			return nil, p.errorf(start, "missing closing ]")
		}
		if p.peek() == ']' && !first {
			p.pos++
			break
		}
		first = false

		lo, err := p.bracketByte(start)
		if err != nil {
			return nil, err
		}
		if p.pos+1 < len(p.src) && p.peek() == '-' && p.src[p.pos+1] != ']' {
			rangeAt := p.pos
			p.pos++
			hi, err := p.bracketByte(start)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.errorf(rangeAt, "invalid character class range %q-%q", lo, hi)
			}
			for c := int(lo); c <= int(hi); c++ {
				set = append(set, byte(c))
			}
			continue
		}
		set = append(set, lo)
	}

	cond := nfa.OneOf(string(set))
	if negate {
		cond = nfa.NoneOf(string(set))
	}
	return &ast.Leaf{Cond: cond, Desc: p.src[start:p.pos]}, nil
}

func (p *parser) bracketByte(start int) (byte, error) {
	c := p.next()
	if c != '\\' {
		return c, nil
	}
	if p.eof() {
		return 0, p.errorf(start, "missing closing ]")
	}
	return p.next(), nil
}
