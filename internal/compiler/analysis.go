package compiler

import (
	"sort"

	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/KromDaniel/regnfa/internal/sim"
)

// edge is a conditioned transition between dense state indices. Closure is
// the epsilon closure of the target, so taking the edge activates every
// state in it.
type edge struct {
	From    int
	Set     nfa.Bitmap
	Closure []int
}

// GraphAnalysis is the dense, table-friendly view of a graph that the code
// generators work from.
type GraphAnalysis struct {
	States       int
	Start        []int // epsilon closure of the entry
	Accept       int   // -1 when the graph has no output
	Edges        []edge
	Epsilons     int
	DeadEdges    int  // conditioned edges whose predicate accepts no byte
	HasLoop      bool // some state can reach itself
	ReachesFinal bool // the output is reachable from the entry
}

// analyzeGraph numbers the live nodes of g in allocation order, tabulates
// every predicate and precomputes epsilon closures.
func analyzeGraph(g *nfa.Graph) GraphAnalysis {
	ids := g.Nodes()
	index := make(map[nfa.NodeID]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	dense := func(set sim.StateSet) []int {
		out := make([]int, 0, set.Len())
		for _, id := range set.IDs() {
			out = append(out, index[id])
		}
		sort.Ints(out)
		return out
	}

	a := GraphAnalysis{States: len(ids), Accept: -1}
	if i, ok := index[g.Output()]; ok {
		a.Accept = i
	}
	if g.Contains(g.Input()) {
		a.Start = dense(sim.Closure(g, g.Input()))
	}

	closures := make(map[nfa.NodeID][]int)
	for i, id := range ids {
		n, _ := g.Node(id)
		a.Epsilons += len(n.Epsilons())
		for _, t := range n.Transitions() {
			if !g.Contains(t.Target) {
				continue
			}
			set := nfa.Tabulate(t.Cond)
			if set.Count() == 0 {
				a.DeadEdges++
				continue
			}
			c, ok := closures[t.Target]
			if !ok {
				c = dense(sim.Closure(g, t.Target))
				closures[t.Target] = c
			}
			a.Edges = append(a.Edges, edge{From: i, Set: set, Closure: c})
		}
	}

	a.HasLoop, a.ReachesFinal = walk(g, index, a.Accept)
	return a
}

// walk does a depth-first search from the entry over both kinds of edges and
// reports whether a back edge exists and whether the accept state is reached.
func walk(g *nfa.Graph, index map[nfa.NodeID]int, accept int) (loop, final bool) {
	const (
		unseen = iota
		active
		done
	)
	color := make([]int, len(index))

	var visit func(id nfa.NodeID)
	visit = func(id nfa.NodeID) {
		i := index[id]
		color[i] = active
		if i == accept {
			final = true
		}
		n, _ := g.Node(id)
		next := n.Epsilons()
		for _, t := range n.Transitions() {
			next = append(next, t.Target)
		}
		for _, to := range next {
			j, ok := index[to]
			if !ok {
				continue
			}
			switch color[j] {
			case active:
				loop = true
			case unseen:
				visit(to)
			}
		}
		color[i] = done
	}

	if g.Contains(g.Input()) {
		visit(g.Input())
	}
	return loop, final
}
