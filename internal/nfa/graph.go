// Package nfa implements the automaton graph used by the regex engine.
//
// A Graph is an arena of nodes addressed by NodeID handles. Every graph
// exposes one entry (Input) and one exit (Output) node; fragments built by
// the ast package are composed by moving the nodes of one graph into
// another through a translation table, the same mechanism Duplicate uses.
//
// Freed arena slots are never reused, so a stale handle can only ever miss;
// it cannot alias a newer node.
package nfa

import "sync/atomic"

// graphSerial hands out graph identities. Zero is reserved for NoNode.
var graphSerial atomic.Uint64

// Translation maps handles of a source graph to handles of a destination graph.
type Translation map[NodeID]NodeID

// Graph owns a set of nodes plus the designated entry and output.
type Graph struct {
	serial uint64
	slots  []*Node
	live   int
	input  NodeID
	output NodeID
}

// Stats summarizes the size of a graph.
type Stats struct {
	Nodes       int
	Transitions int
	Epsilons    int
	FreedSlots  int
}

// New creates a graph with a fresh entry and output node and no transitions.
func New() *Graph {
	g := newEmpty()
	g.input = g.NewNode()
	g.output = g.NewNode()
	return g
}

func newEmpty() *Graph {
	return &Graph{serial: graphSerial.Add(1)}
}

// Serial returns the identity of the graph's handle space.
func (g *Graph) Serial() uint64 {
	return g.serial
}

// NewNode allocates a node owned by g and returns its handle.
func (g *Graph) NewNode() NodeID {
	return g.adopt(&Node{})
}

// InsertNode takes ownership of n. A node owned by another graph is detached
// from it first. Handles are graph-local, so edges whose targets are not
// owned by g are dropped on arrival. Inserting a node g already owns
// returns its current handle.
func (g *Graph) InsertNode(n *Node) NodeID {
	if n == nil {
		return NoNode
	}
	if n.graph == g {
		return n.id
	}
	if n.graph != nil {
		n.graph.RemoveNode(n.id)
	}
	n.retain(g.Contains)
	return g.adopt(n)
}

func (g *Graph) adopt(n *Node) NodeID {
	id := NodeID{graph: g.serial, slot: uint32(len(g.slots))}
	n.id = id
	n.graph = g
	g.slots = append(g.slots, n)
	g.live++
	return id
}

// RemoveNode detaches the node behind id and returns it, or nil if g does not
// own id. Removing the entry or output clears that designation; the caller
// must set a new one before using the graph again.
func (g *Graph) RemoveNode(id NodeID) *Node {
	if !g.Contains(id) {
		return nil
	}
	n := g.slots[id.slot]
	g.slots[id.slot] = nil
	g.live--
	if g.input == id {
		g.input = NoNode
	}
	if g.output == id {
		g.output = NoNode
	}
	n.graph = nil
	n.id = NoNode
	return n
}

// Clear detaches every node, including entry and output.
func (g *Graph) Clear() {
	for _, n := range g.slots {
		if n != nil {
			n.graph = nil
			n.id = NoNode
		}
	}
	g.reset()
}

func (g *Graph) reset() {
	g.slots = nil
	g.live = 0
	g.input = NoNode
	g.output = NoNode
}

// Contains reports whether id refers to a live node of g.
func (g *Graph) Contains(id NodeID) bool {
	return id.graph == g.serial && int(id.slot) < len(g.slots) && g.slots[id.slot] != nil
}

// Node returns the node behind id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	if !g.Contains(id) {
		return nil, false
	}
	return g.slots[id.slot], true
}

// Nodes returns the handles of every owned node in allocation order.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, 0, g.live)
	for _, n := range g.slots {
		if n != nil {
			ids = append(ids, n.id)
		}
	}
	return ids
}

// Len returns the number of owned nodes.
func (g *Graph) Len() int {
	return g.live
}

// Input returns the entry node, or NoNode.
func (g *Graph) Input() NodeID {
	return g.input
}

// SetInput designates id as the entry. It fails if g does not own id.
func (g *Graph) SetInput(id NodeID) bool {
	if !g.Contains(id) {
		return false
	}
	g.input = id
	return true
}

// Output returns the output node, or NoNode.
func (g *Graph) Output() NodeID {
	return g.output
}

// SetOutput designates id as the output. It fails if g does not own id.
func (g *Graph) SetOutput(id NodeID) bool {
	if !g.Contains(id) {
		return false
	}
	g.output = id
	return true
}

// AddEpsilon adds an epsilon transition between two owned nodes.
func (g *Graph) AddEpsilon(from, to NodeID) bool {
	if !g.Contains(from) || !g.Contains(to) {
		return false
	}
	g.slots[from.slot].addEpsilon(to)
	return true
}

// AddTransition adds a conditioned transition between two owned nodes.
func (g *Graph) AddTransition(from, to NodeID, cond Predicate) bool {
	if cond == nil || !g.Contains(from) || !g.Contains(to) {
		return false
	}
	g.slots[from.slot].addTransition(Transition{Target: to, Cond: cond})
	return true
}

// Merge appends other to g: the output of g is fused with the entry of
// other, which inherits every transition of that entry, and the output of
// other becomes the output of g. All nodes of other move into g and other
// is left empty.
//
// Merge fails without changing either graph when other is g or nil, when g
// has no output, or when other lacks an entry or an output.
func (g *Graph) Merge(other *Graph) bool {
	if other == nil || other == g || !g.Contains(g.output) ||
		!other.Contains(other.input) || !other.Contains(other.output) {
		return false
	}

	entry := other.slots[other.input.slot]
	t := Translation{other.input: g.output}
	g.transfer(other, t)

	entry.translate(t)
	g.slots[g.output.slot].absorb(entry)
	entry.graph = nil
	entry.id = NoNode

	g.output = t[other.output]
	other.reset()
	return true
}

// AcquireNodes moves every node of other into g and returns the handle
// translation. other loses its nodes, entry and output. Acquiring from g
// itself or from nil does nothing.
func (g *Graph) AcquireNodes(other *Graph) Translation {
	t := Translation{}
	if other == nil || other == g {
		return t
	}
	g.transfer(other, t)
	other.reset()
	return t
}

// transfer re-keys every node of other not already present in t into g and
// rewrites their targets. Pre-seeded entries of t redirect edges to existing
// nodes of g; the source nodes behind them are left behind in other.
func (g *Graph) transfer(other *Graph, t Translation) {
	moved := make([]*Node, 0, other.live)
	for _, n := range other.slots {
		if n == nil {
			continue
		}
		if _, seeded := t[n.id]; seeded {
			continue
		}
		t[n.id] = NodeID{graph: g.serial, slot: uint32(len(g.slots) + len(moved))}
		moved = append(moved, n)
	}

	for _, n := range moved {
		n.translate(t)
		n.id = t[n.id]
		n.graph = g
		g.slots = append(g.slots, n)
		g.live++
	}
}

// Duplicate returns an independent deep copy of g with a fresh handle space.
// Every owned node is copied exactly once, isolated nodes included.
func (g *Graph) Duplicate() *Graph {
	d := newEmpty()
	t := make(Translation, g.live)
	for _, n := range g.slots {
		if n == nil {
			continue
		}
		t[n.id] = d.adopt(n.clone())
	}
	for _, n := range d.slots {
		n.translate(t)
	}
	d.input = t[g.input]
	d.output = t[g.output]
	return d
}

// Stats counts nodes and edges.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: g.live, FreedSlots: len(g.slots) - g.live}
	for _, n := range g.slots {
		if n == nil {
			continue
		}
		s.Transitions += len(n.transitions)
		s.Epsilons += len(n.epsilons)
	}
	return s
}
