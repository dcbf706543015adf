// Package sim executes an nfa.Graph against input one byte at a time.
//
// The simulator keeps the full set of active nodes instead of choosing a
// branch, so no determinization is needed: after every step the active set
// is exactly the set of nodes reachable by some path that consumed the
// input so far, closed under epsilon transitions.
package sim

import "github.com/KromDaniel/regnfa/internal/nfa"

// StateSet is an insertion-ordered set of node handles.
type StateSet struct {
	ids   []nfa.NodeID
	index map[nfa.NodeID]struct{}
}

func newStateSet(capacity int) StateSet {
	return StateSet{
		ids:   make([]nfa.NodeID, 0, capacity),
		index: make(map[nfa.NodeID]struct{}, capacity),
	}
}

// add inserts id and reports whether it was new.
func (s *StateSet) add(id nfa.NodeID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[nfa.NodeID]struct{})
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Contains reports whether id is in the set.
func (s StateSet) Contains(id nfa.NodeID) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of members.
func (s StateSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in insertion order.
func (s StateSet) IDs() []nfa.NodeID {
	return append([]nfa.NodeID(nil), s.ids...)
}

func (s StateSet) clone() StateSet {
	c := newStateSet(len(s.ids))
	for _, id := range s.ids {
		c.add(id)
	}
	return c
}

// Closure returns every node reachable from seed through epsilon transitions,
// the seeds included. Handles not owned by g are ignored. Cycles are fine:
// a node is expanded at most once.
func Closure(g *nfa.Graph, seed ...nfa.NodeID) StateSet {
	out := newStateSet(len(seed))
	queue := make([]nfa.NodeID, 0, len(seed))
	for _, id := range seed {
		if g.Contains(id) && out.add(id) {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n, _ := g.Node(id)
		for _, next := range n.Epsilons() {
			if g.Contains(next) && out.add(next) {
				queue = append(queue, next)
			}
		}
	}
	return out
}

// Simulator tracks the active state set of one run over a graph. The graph
// must not be mutated while a simulator uses it; several simulators may
// share one graph.
type Simulator struct {
	graph *nfa.Graph
	state StateSet
}

// New returns a simulator positioned before the first input byte.
func New(g *nfa.Graph) *Simulator {
	s := &Simulator{graph: g}
	s.Reset()
	return s
}

// Reset returns to the closure of the entry node.
func (s *Simulator) Reset() {
	s.state = Closure(s.graph, s.graph.Input())
}

// SetState replaces the active set with the closure of ids.
func (s *Simulator) SetState(ids ...nfa.NodeID) {
	s.state = Closure(s.graph, ids...)
}

// Step consumes c. Once the active set is empty it stays empty.
func (s *Simulator) Step(c byte) {
	next := newStateSet(s.state.Len())
	for _, id := range s.state.ids {
		n, ok := s.graph.Node(id)
		if !ok {
			continue
		}
		for _, target := range n.NextNodes(c) {
			next.add(target)
		}
	}
	s.state = Closure(s.graph, next.ids...)
}

// Accepting reports whether the output node is active.
func (s *Simulator) Accepting() bool {
	out := s.graph.Output()
	return out.Valid() && s.state.Contains(out)
}

// Dead reports whether no node is active; no further input can match.
func (s *Simulator) Dead() bool {
	return s.state.Len() == 0
}

// State returns a copy of the active set.
func (s *Simulator) State() StateSet {
	return s.state.clone()
}

// Run resets the simulator, consumes input and reports whether it ends in an
// accepting state.
func (s *Simulator) Run(input []byte) bool {
	s.Reset()
	for _, c := range input {
		if s.Dead() {
			return false
		}
		s.Step(c)
	}
	return s.Accepting()
}
