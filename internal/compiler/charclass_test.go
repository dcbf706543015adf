package compiler

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"testing"

	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/dave/jennifer/jen"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, s *jen.Statement) string {
	t.Helper()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%#v", s)
}

func TestRanges(t *testing.T) {
	set := nfa.Tabulate(nfa.OneOf("abcxz"))
	want := []byteRange{{'a', 'c'}, {'x', 'x'}, {'z', 'z'}}
	if diff := cmp.Diff(want, ranges(set), cmp.AllowUnexported(byteRange{})); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestMembers(t *testing.T) {
	set := nfa.Tabulate(nfa.NoneOf("ab"))
	assert.Equal(t, []byte{'a', 'b'}, members(set, true))
	assert.Len(t, members(set, false), ByteValues-2)
}

func TestGenerateByteCheck(t *testing.T) {
	tests := []struct {
		name string
		pred nfa.Predicate
		want []string // substrings of the rendered check
		none bool
	}{
		{"any byte needs no check", nfa.Any(), nil, true},
		{"empty set", func(byte) bool { return false }, []string{"false"}, false},
		{"single byte", nfa.Equal('a'), []string{"c == "}, false},
		{"small set", nfa.OneOf("abz"), []string{"||"}, false},
		{"small complement", nfa.NoneOf("\n"), []string{"c != "}, false},
		{"lower range", nfa.InRange(0, 'm'), []string{"c <= "}, false},
		{"upper range", nfa.InRange('m', 0xff), []string{"c >= "}, false},
		{"bounded range", nfa.InRange('0', '9'), []string{"c >= ", "&&", "c <= "}, false},
		{"scattered set", nfa.OneOf("0123456789abcdef"), []string{"[32]byte"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := generateByteCheck(nfa.Tabulate(tt.pred))
			if tt.none {
				assert.Nil(t, check)
				return
			}
			got := render(t, check)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

// compileCheck parses a rendered byte check and returns a function that
// evaluates it for a given current byte. A nil check admits every byte.
// Only the expression forms generateByteCheck emits are understood.
func compileCheck(t *testing.T, check *jen.Statement) func(c byte) bool {
	t.Helper()
	if check == nil {
		return func(byte) bool { return true }
	}
	src := render(t, check)
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err, src)
	return func(c byte) bool {
		v, ok := eval(t, expr, c).(bool)
		require.True(t, ok, "check %s is not boolean", src)
		return v
	}
}

func eval(t *testing.T, e ast.Expr, c byte) any {
	t.Helper()
	switch e := e.(type) {
	case *ast.ParenExpr:
		return eval(t, e.X, c)
	case *ast.Ident:
		switch e.Name {
		case codegen.CharName:
			return int64(c)
		case "true":
			return true
		case "false":
			return false
		}
	case *ast.BasicLit:
		if e.Kind == token.INT {
			n, err := strconv.ParseInt(e.Value, 0, 64)
			require.NoError(t, err)
			return n
		}
	case *ast.CallExpr:
		// conversions such as uint8(0x61)
		if id, ok := e.Fun.(*ast.Ident); ok && len(e.Args) == 1 && (id.Name == "uint8" || id.Name == "byte") {
			return evalInt(t, e.Args[0], c) & 0xff
		}
	case *ast.UnaryExpr:
		if e.Op == token.NOT {
			return !evalBool(t, e.X, c)
		}
	case *ast.IndexExpr:
		if lit, ok := e.X.(*ast.CompositeLit); ok {
			i := evalInt(t, e.Index, c)
			require.Less(t, i, int64(len(lit.Elts)))
			return evalInt(t, lit.Elts[i], c)
		}
	case *ast.BinaryExpr:
		switch e.Op {
		case token.LAND:
			return evalBool(t, e.X, c) && evalBool(t, e.Y, c)
		case token.LOR:
			return evalBool(t, e.X, c) || evalBool(t, e.Y, c)
		}
		x, y := evalInt(t, e.X, c), evalInt(t, e.Y, c)
		switch e.Op {
		case token.EQL:
			return x == y
		case token.NEQ:
			return x != y
		case token.LEQ:
			return x <= y
		case token.GEQ:
			return x >= y
		case token.LSS:
			return x < y
		case token.GTR:
			return x > y
		case token.AND:
			return x & y
		case token.SHL:
			return x << y
		case token.QUO:
			return x / y
		case token.REM:
			return x % y
		}
	}
	t.Fatalf("unexpected expression %T in byte check", e)
	return nil
}

func evalInt(t *testing.T, e ast.Expr, c byte) int64 {
	t.Helper()
	v, ok := eval(t, e, c).(int64)
	require.True(t, ok, "expected an integer, got %T", e)
	return v
}

func evalBool(t *testing.T, e ast.Expr, c byte) bool {
	t.Helper()
	v, ok := eval(t, e, c).(bool)
	require.True(t, ok, "expected a boolean, got %T", e)
	return v
}

func TestGenerateByteCheckAgreesWithSet(t *testing.T) {
	every := func(n int) nfa.Predicate {
		return func(c byte) bool { return int(c)%n == 0 }
	}

	tests := []struct {
		name string
		pred nfa.Predicate
	}{
		{"any byte", nfa.Any()},
		{"empty set", func(byte) bool { return false }},
		{"single byte", nfa.Equal('a')},
		{"nul byte", nfa.Equal(0)},
		{"top byte", nfa.Equal(0xff)},
		{"small set", nfa.OneOf("abz")},
		{"small set at the edges", nfa.OneOf("\x00\x7f\xff")},
		{"single complement", nfa.NoneOf("\n")},
		{"small complement", nfa.NoneOf("\x00a\xff")},
		{"lower range", nfa.InRange(0, 'm')},
		{"upper range", nfa.InRange('m', 0xff)},
		{"upper half", nfa.InRange(0x80, 0xff)},
		{"bounded range", nfa.InRange('0', '9')},
		{"four byte range", nfa.InRange('a', 'd')},
		{"scattered set", nfa.OneOf("0123456789abcdef")},
		{"two ranges", nfa.OneOf("abcdxyz")},
		{"every third byte", every(3)},
		{"every other byte", every(2)},
		{"negated class", nfa.NoneOf("0123456789")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := nfa.Tabulate(tt.pred)
			check := compileCheck(t, generateByteCheck(set))
			for c := 0; c < ByteValues; c++ {
				if got, want := check(byte(c)), set.Has(byte(c)); got != want {
					t.Errorf("byte %#02x: check = %v, want %v", c, got, want)
				}
			}
		})
	}
}

func TestGenerateBitmapCheckAgreesWithSet(t *testing.T) {
	// The bitmap form is the fallback, so exercise it on sets that would
	// otherwise take a shorter branch.
	for _, pred := range []nfa.Predicate{nfa.Equal('a'), nfa.InRange(0, 0x7f), nfa.NoneOf("\n"), nfa.Any()} {
		set := nfa.Tabulate(pred)
		check := compileCheck(t, generateBitmapCheck(set))
		for c := 0; c < ByteValues; c++ {
			assert.Equal(t, set.Has(byte(c)), check(byte(c)), "byte %#02x", c)
		}
	}
}
