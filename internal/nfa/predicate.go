package nfa

// Predicate decides whether a transition accepts an input byte.
// Predicates are only ever invoked, never compared.
type Predicate func(c byte) bool

// Bitmap is a 256-bit membership table over byte values.
type Bitmap [32]byte

// Set marks c as a member.
func (b *Bitmap) Set(c byte) {
	b[c/8] |= 1 << (c % 8)
}

// Has reports whether c is a member.
func (b *Bitmap) Has(c byte) bool {
	return b[c/8]&(1<<(c%8)) != 0
}

// Count returns the number of members.
func (b *Bitmap) Count() int {
	n := 0
	for i := 0; i < 256; i++ {
		if b.Has(byte(i)) {
			n++
		}
	}
	return n
}

// Tabulate evaluates p on every byte value and records the accepted ones.
// A nil predicate accepts nothing.
func Tabulate(p Predicate) Bitmap {
	var b Bitmap
	if p == nil {
		return b
	}
	for i := 0; i < 256; i++ {
		if p(byte(i)) {
			b.Set(byte(i))
		}
	}
	return b
}

// Equal accepts exactly c.
func Equal(c byte) Predicate {
	return func(d byte) bool { return c == d }
}

// Any accepts every byte.
func Any() Predicate {
	return func(byte) bool { return true }
}

// InRange accepts bytes in [lo, hi].
func InRange(lo, hi byte) Predicate {
	return func(c byte) bool { return c >= lo && c <= hi }
}

// OneOf accepts the bytes contained in set.
func OneOf(set string) Predicate {
	var b Bitmap
	for i := 0; i < len(set); i++ {
		b.Set(set[i])
	}
	return b.Has
}

// NoneOf accepts every byte not contained in set.
func NoneOf(set string) Predicate {
	return Not(OneOf(set))
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(c byte) bool { return !p(c) }
}
