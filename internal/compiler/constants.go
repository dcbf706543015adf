package compiler

// Simulation strategy constants
const (
	// MaxBitsetStates is the largest automaton that fits the uint64 bitset
	// simulation. Larger automata use the []bool state-slice simulation.
	MaxBitsetStates = 64
)

// Byte classification constants
const (
	// ByteValues is the number of distinct input symbols.
	ByteValues = 256

	// SmallSetThreshold is the largest set rendered as a chain of
	// comparisons instead of a bitmap lookup. The same threshold applies to
	// complements of small sets.
	SmallSetThreshold = 3
)
