package nfa

import "fmt"

// NodeID is an opaque handle to a node. It is only meaningful for the graph
// that issued it: handles carry the graph serial, so a handle from one graph
// is never owned by another.
type NodeID struct {
	graph uint64
	slot  uint32
}

// NoNode is the absent handle.
var NoNode NodeID

// Valid reports whether id was issued by some graph.
func (id NodeID) Valid() bool {
	return id.graph != 0
}

func (id NodeID) String() string {
	if !id.Valid() {
		return "<none>"
	}
	return fmt.Sprintf("g%d/n%d", id.graph, id.slot)
}

// Transition is a conditioned edge: it is taken when Cond accepts the
// current input byte.
type Transition struct {
	Target NodeID
	Cond   Predicate
}

// Node is an automaton state. The zero value is a detached node with no
// transitions, ready to be passed to (*Graph).InsertNode.
type Node struct {
	id          NodeID
	graph       *Graph
	transitions []Transition
	epsilons    []NodeID
}

// ID returns the node handle, or NoNode when detached.
func (n *Node) ID() NodeID {
	return n.id
}

// Graph returns the owning graph, or nil when detached.
func (n *Node) Graph() *Graph {
	return n.graph
}

// Transitions returns a copy of the conditioned transitions in insertion order.
func (n *Node) Transitions() []Transition {
	return append([]Transition(nil), n.transitions...)
}

// Epsilons returns a copy of the epsilon targets in insertion order.
func (n *Node) Epsilons() []NodeID {
	return append([]NodeID(nil), n.epsilons...)
}

// NextNodes returns the targets reachable by consuming c, without following
// epsilon transitions. Each target appears once.
func (n *Node) NextNodes(c byte) []NodeID {
	var out []NodeID
	for _, t := range n.transitions {
		if !t.Cond(c) || containsID(out, t.Target) {
			continue
		}
		out = append(out, t.Target)
	}
	return out
}

func (n *Node) addEpsilon(target NodeID) {
	if !target.Valid() || containsID(n.epsilons, target) {
		return
	}
	n.epsilons = append(n.epsilons, target)
}

func (n *Node) addTransition(t Transition) {
	if !t.Target.Valid() || t.Cond == nil {
		return
	}
	n.transitions = append(n.transitions, t)
}

// absorb appends every transition of other onto n.
func (n *Node) absorb(other *Node) {
	for _, t := range other.transitions {
		n.addTransition(t)
	}
	for _, e := range other.epsilons {
		n.addEpsilon(e)
	}
}

// clone copies the edges of n. The copy is detached and still refers to the
// original targets until translated.
func (n *Node) clone() *Node {
	return &Node{
		transitions: append([]Transition(nil), n.transitions...),
		epsilons:    append([]NodeID(nil), n.epsilons...),
	}
}

// translate rewrites every target through t. Targets missing from t are dropped.
func (n *Node) translate(t Translation) {
	eps := n.epsilons
	n.epsilons = nil
	for _, e := range eps {
		if to, ok := t[e]; ok {
			n.addEpsilon(to)
		}
	}

	trans := n.transitions
	n.transitions = nil
	for _, tr := range trans {
		if to, ok := t[tr.Target]; ok {
			n.addTransition(Transition{Target: to, Cond: tr.Cond})
		}
	}
}

// retain drops every edge whose target keep rejects.
func (n *Node) retain(keep func(NodeID) bool) {
	eps := n.epsilons[:0]
	for _, e := range n.epsilons {
		if keep(e) {
			eps = append(eps, e)
		}
	}
	n.epsilons = eps

	trans := n.transitions[:0]
	for _, tr := range n.transitions {
		if keep(tr.Target) {
			trans = append(trans, tr)
		}
	}
	n.transitions = trans
}

func containsID(ids []NodeID, id NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
