// Package ast defines the regex syntax tree and its Thompson construction.
//
// The set of operators is closed: Node is implemented only by the types in
// this package, and Build switches over all of them. A nil Node stands for
// an absent subtree, which the parser may leave behind during error
// recovery; every operator degrades to a pass-through graph instead of
// failing on one.
package ast

import "github.com/KromDaniel/regnfa/internal/nfa"

// Node is a regex operator.
type Node interface {
	node()
}

// Choice matches Left or Right: /a|b/.
type Choice struct {
	Left, Right Node
}

// Concat matches Left followed by Right: /ab/.
type Concat struct {
	Left, Right Node
}

// Star matches zero or more repetitions of Child: /a*/.
type Star struct {
	Child Node
}

// Plus matches one or more repetitions of Child: /a+/.
type Plus struct {
	Child Node
}

// Optional matches Child zero or one time: /a?/.
//
// Unlike the other operators it does not allocate a fresh graph: Build takes
// the graph produced for Child, adds the bypass edge and returns that same
// graph.
type Optional struct {
	Child Node
}

// Group is a parenthesized subexpression: /(a)/. It has no runtime effect.
type Group struct {
	Child Node
}

// Leaf is a single conditioned transition. Desc is a human readable
// rendering of Cond used by String.
type Leaf struct {
	Cond nfa.Predicate
	Desc string
}

func (*Choice) node()   {}
func (*Concat) node()   {}
func (*Star) node()     {}
func (*Plus) node()     {}
func (*Optional) node() {}
func (*Group) node()    {}
func (*Leaf) node()     {}

// SingleCharacter returns a Leaf matching exactly c.
func SingleCharacter(c byte) *Leaf {
	return &Leaf{Cond: nfa.Equal(c), Desc: quoteByte(c)}
}

// AnyCharacter returns a Leaf matching every byte: /./.
func AnyCharacter() *Leaf {
	return &Leaf{Cond: nfa.Any(), Desc: "."}
}
