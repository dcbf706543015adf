package ast

import "github.com/KromDaniel/regnfa/internal/nfa"

// Build returns a fresh graph implementing n. The result always has an entry
// and an output; for a nil node it is a two-node graph with no path between
// them.
func Build(n Node) *nfa.Graph {
	switch n := n.(type) {
	case *Choice:
		return buildChoice(n)
	case *Concat:
		return buildConcat(n)
	case *Star:
		if n == nil {
			return nfa.New()
		}
		return buildRepeat(n.Child, true)
	case *Plus:
		if n == nil {
			return nfa.New()
		}
		return buildRepeat(n.Child, false)
	case *Optional:
		return buildOptional(n)
	case *Group:
		if n == nil {
			return nfa.New()
		}
		return Build(n.Child)
	case *Leaf:
		return buildLeaf(n)
	default:
		return nfa.New()
	}
}

func buildChoice(n *Choice) *nfa.Graph {
	g := nfa.New()
	if n == nil {
		return g
	}
	for _, branch := range []Node{n.Left, n.Right} {
		if branch == nil {
			continue
		}
		child := Build(branch)
		in, out := child.Input(), child.Output()
		t := g.AcquireNodes(child)
		g.AddEpsilon(g.Input(), t[in])
		g.AddEpsilon(t[out], g.Output())
	}
	return g
}

func buildConcat(n *Concat) *nfa.Graph {
	if n == nil || n.Left == nil || n.Right == nil {
		return nfa.New()
	}
	left := Build(n.Left)
	right := Build(n.Right)
	left.Merge(right)
	return left
}

// buildRepeat wires child in a loop. With bypass the loop may be skipped
// entirely (star); without it at least one pass is required (plus).
func buildRepeat(child Node, bypass bool) *nfa.Graph {
	g := nfa.New()
	if child == nil {
		return g
	}
	c := Build(child)
	in, out := c.Input(), c.Output()
	t := g.AcquireNodes(c)
	in, out = t[in], t[out]

	if bypass {
		g.AddEpsilon(g.Input(), g.Output())
	}
	g.AddEpsilon(g.Input(), in)
	g.AddEpsilon(out, in)
	g.AddEpsilon(out, g.Output())
	return g
}

func buildOptional(n *Optional) *nfa.Graph {
	if n == nil || n.Child == nil {
		return nfa.New()
	}
	g := Build(n.Child)
	g.AddEpsilon(g.Input(), g.Output())
	return g
}

func buildLeaf(n *Leaf) *nfa.Graph {
	g := nfa.New()
	if n == nil {
		return g
	}
	g.AddTransition(g.Input(), g.Output(), n.Cond)
	return g
}
