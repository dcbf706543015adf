package ast

import (
	"testing"

	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/KromDaniel/regnfa/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trace feeds input and records Accepting() before the first byte and after
// every byte.
func trace(g *nfa.Graph, input string) []bool {
	s := sim.New(g)
	out := []bool{s.Accepting()}
	for i := 0; i < len(input); i++ {
		s.Step(input[i])
		out = append(out, s.Accepting())
	}
	return out
}

func matches(n Node, input string) bool {
	return sim.New(Build(n)).Run([]byte(input))
}

func TestBuildLeaf(t *testing.T) {
	digit := &Leaf{Cond: nfa.InRange('0', '9'), Desc: "[0-9]"}
	g := Build(digit)

	require.Equal(t, 2, g.Len())
	for c := 0; c < 256; c++ {
		want := c >= '0' && c <= '9'
		s := sim.New(g)
		s.Step(byte(c))
		assert.Equal(t, want, s.Accepting(), "byte %q", byte(c))
	}
}

func TestBuildStar(t *testing.T) {
	star := &Star{Child: SingleCharacter('a')}

	assert.Equal(t, []bool{true}, trace(Build(star), ""), "zero occurrences")
	assert.Equal(t, []bool{true, true, true, true}, trace(Build(star), "aaa"))

	s := sim.New(Build(star))
	s.Step('b')
	assert.True(t, s.Dead())
	assert.False(t, s.Accepting())
	for _, c := range []byte("aab") {
		s.Step(c)
		assert.False(t, s.Accepting())
		assert.True(t, s.Dead())
	}
}

func TestBuildPlus(t *testing.T) {
	plus := &Plus{Child: SingleCharacter('a')}

	assert.Equal(t, []bool{false, true, true, true}, trace(Build(plus), "aaa"))
	assert.Equal(t, []bool{false, false, false, false}, trace(Build(plus), "baa"))
}

func TestBuildChoice(t *testing.T) {
	choice := &Choice{Left: SingleCharacter('a'), Right: SingleCharacter('b')}

	for c := 0; c < 256; c++ {
		want := c == 'a' || c == 'b'
		assert.Equal(t, want, matches(choice, string([]byte{byte(c)})), "byte %q", byte(c))
	}
	assert.False(t, matches(choice, ""))
	assert.False(t, matches(choice, "ab"))
}

func TestBuildConcat(t *testing.T) {
	concat := &Concat{Left: SingleCharacter('a'), Right: SingleCharacter('b')}

	assert.Equal(t, []bool{false, false, true}, trace(Build(concat), "ab"))
	assert.Equal(t, []bool{false, false, false}, trace(Build(concat), "aa"))
	assert.Equal(t, 3, Build(concat).Len(), "merge fuses the inner entry")
}

func TestBuildOptional(t *testing.T) {
	opt := &Optional{Child: SingleCharacter('a')}
	g := Build(opt)

	assert.Equal(t, 2, g.Len(), "optional reuses the child graph")
	assert.True(t, matches(opt, ""))
	assert.True(t, matches(opt, "a"))
	assert.False(t, matches(opt, "aa"))
	assert.False(t, matches(opt, "b"))
}

func TestBuildGroupIsTransparent(t *testing.T) {
	inner := SingleCharacter('x')
	plain := Build(inner)
	grouped := Build(&Group{Child: inner})

	assert.Equal(t, plain.Len(), grouped.Len())
	assert.Equal(t, plain.Stats(), grouped.Stats())
	assert.True(t, matches(&Group{Child: inner}, "x"))
}

func TestBuildComposite(t *testing.T) {
	// (ab|c)*d?
	n := &Concat{
		Left: &Star{Child: &Group{Child: &Choice{
			Left:  &Concat{Left: SingleCharacter('a'), Right: SingleCharacter('b')},
			Right: SingleCharacter('c'),
		}}},
		Right: &Optional{Child: SingleCharacter('d')},
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"d", true},
		{"ab", true},
		{"c", true},
		{"abcabd", true},
		{"ccd", true},
		{"a", false},
		{"abd d", false},
		{"dd", false},
		{"ba", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(n, tt.input))
		})
	}
}

func TestBuildNestedRepetition(t *testing.T) {
	// ((a*)*)+ has epsilon cycles inside epsilon cycles.
	n := &Plus{Child: &Star{Child: &Star{Child: SingleCharacter('a')}}}

	assert.True(t, matches(n, ""))
	assert.True(t, matches(n, "aaaa"))
	assert.False(t, matches(n, "ab"))
}

func TestBuildAbsentChildren(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"nil", nil},
		{"choice", &Choice{}},
		{"concat missing right", &Concat{Left: SingleCharacter('a')}},
		{"concat missing left", &Concat{Right: SingleCharacter('a')}},
		{"star", &Star{}},
		{"plus", &Plus{}},
		{"optional", &Optional{}},
		{"group", &Group{}},
		{"typed nil leaf", (*Leaf)(nil)},
		{"typed nil star", (*Star)(nil)},
		{"typed nil plus", (*Plus)(nil)},
		{"typed nil choice", (*Choice)(nil)},
		{"typed nil concat", (*Concat)(nil)},
		{"typed nil optional", (*Optional)(nil)},
		{"typed nil group", (*Group)(nil)},
		{"group of typed nil star", &Group{Child: (*Star)(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.node)
			require.True(t, g.Contains(g.Input()))
			require.True(t, g.Contains(g.Output()))
			assert.Equal(t, 2, g.Len())
			assert.False(t, matches(tt.node, ""))
			assert.False(t, matches(tt.node, "a"))
		})
	}
}

func TestBuildTypedNilChildren(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"choice of typed nil star", &Choice{Left: (*Star)(nil)}},
		{"choice of typed nil plus", &Choice{Left: (*Plus)(nil), Right: (*Star)(nil)}},
		{"concat with typed nil plus", &Concat{Left: SingleCharacter('a'), Right: (*Plus)(nil)}},
		{"concat with typed nil star", &Concat{Left: (*Star)(nil), Right: SingleCharacter('a')}},
		{"plus of typed nil star", &Plus{Child: (*Star)(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g *nfa.Graph
			require.NotPanics(t, func() { g = Build(tt.node) })
			assert.True(t, g.Contains(g.Input()))
			assert.True(t, g.Contains(g.Output()))
			assert.False(t, matches(tt.node, ""))
			assert.False(t, matches(tt.node, "a"))
			assert.NotPanics(t, func() { String(tt.node) })
		})
	}
}

func TestBuildChoiceWithOneBranch(t *testing.T) {
	left := &Choice{Left: SingleCharacter('a')}
	right := &Choice{Right: SingleCharacter('b')}

	assert.True(t, matches(left, "a"))
	assert.False(t, matches(left, "b"))
	assert.True(t, matches(right, "b"))
	assert.False(t, matches(right, ""))
}

func TestString(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{nil, "∅"},
		{SingleCharacter('a'), "a"},
		{SingleCharacter('*'), `\*`},
		{SingleCharacter('\n'), `\x0a`},
		{AnyCharacter(), "."},
		{&Leaf{Cond: nfa.Any()}, "<pred>"},
		{&Choice{Left: SingleCharacter('a'), Right: SingleCharacter('b')}, "(a|b)"},
		{&Star{Child: &Concat{Left: SingleCharacter('a'), Right: SingleCharacter('b')}}, "(ab)*"},
		{&Plus{Child: SingleCharacter('a')}, "a+"},
		{&Optional{Child: &Group{Child: SingleCharacter('a')}}, "((a))?"},
		{&Concat{Left: SingleCharacter('a')}, "a∅"},
		{(*Star)(nil), "∅"},
		{&Choice{Left: (*Plus)(nil), Right: SingleCharacter('b')}, "(∅|b)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.node))
		})
	}
}
