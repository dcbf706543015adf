package compiler

import (
	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// byteRange is an inclusive run of member bytes.
type byteRange struct {
	lo, hi byte
}

// ranges splits a bitmap into maximal runs of members.
func ranges(set nfa.Bitmap) []byteRange {
	var out []byteRange
	for c := 0; c < ByteValues; c++ {
		if !set.Has(byte(c)) {
			continue
		}
		if n := len(out); n > 0 && int(out[n-1].hi)+1 == c {
			out[n-1].hi = byte(c)
			continue
		}
		out = append(out, byteRange{lo: byte(c), hi: byte(c)})
	}
	return out
}

// members lists the member bytes of set, or the non-members when negated.
func members(set nfa.Bitmap, negated bool) []byte {
	var out []byte
	for c := 0; c < ByteValues; c++ {
		if set.Has(byte(c)) != negated {
			out = append(out, byte(c))
		}
	}
	return out
}

// generateByteCheck returns the condition for the current byte being a member
// of set, or nil when every byte is a member and no check is needed.
func generateByteCheck(set nfa.Bitmap) *jen.Statement {
	ch := func() *jen.Statement { return jen.Id(codegen.CharName) }
	count := set.Count()

	switch {
	case count == ByteValues:
		return nil

	case count == 0:
		return jen.False()

	case count <= SmallSetThreshold:
		// c == 'a' || c == 'b'
		var stmt *jen.Statement
		for _, b := range members(set, false) {
			cond := ch().Op("==").Lit(b)
			if stmt == nil {
				stmt = cond
			} else {
				stmt = stmt.Op("||").Add(cond)
			}
		}
		return jen.Parens(stmt)

	case ByteValues-count <= SmallSetThreshold:
		// c != 'a' && c != 'b'
		var stmt *jen.Statement
		for _, b := range members(set, true) {
			cond := ch().Op("!=").Lit(b)
			if stmt == nil {
				stmt = cond
			} else {
				stmt = stmt.Op("&&").Add(cond)
			}
		}
		return jen.Parens(stmt)
	}

	if rs := ranges(set); len(rs) == 1 {
		r := rs[0]
		switch {
		case r.lo == 0:
			return ch().Op("<=").Lit(r.hi)
		case r.hi == 0xff:
			return ch().Op(">=").Lit(r.lo)
		default:
			return jen.Parens(ch().Op(">=").Lit(r.lo).Op("&&").Add(ch()).Op("<=").Lit(r.hi))
		}
	}

	return generateBitmapCheck(set)
}

// generateBitmapCheck generates a bitmap lookup for the current byte:
// [32]byte{...}[c/8]&(1<<(c%8)) != 0
func generateBitmapCheck(set nfa.Bitmap) *jen.Statement {
	values := make([]jen.Code, 0, len(set))
	for _, b := range set {
		values = append(values, jen.Lit(b))
	}

	return jen.Index(jen.Lit(len(set))).Byte().Values(values...).Index(
		jen.Id(codegen.CharName).Op("/").Lit(8),
	).Op("&").Parens(
		jen.Lit(1).Op("<<").Parens(jen.Id(codegen.CharName).Op("%").Lit(8)),
	).Op("!=").Lit(0)
}
