package compiler

import (
	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/dave/jennifer/jen"
)

// ThompsonGenerator generates Thompson NFA simulation code.
// Thompson's algorithm simulates all possible NFA states simultaneously,
// guaranteeing O(n*m) time complexity where n = input length, m = states.
type ThompsonGenerator struct {
	compiler *Compiler
	analysis GraphAnalysis
}

// NewThompsonGenerator creates a new Thompson NFA generator.
func NewThompsonGenerator(c *Compiler) *ThompsonGenerator {
	if c.config.Graph == nil {
		return nil
	}
	return &ThompsonGenerator{
		compiler: c,
		analysis: c.analysis,
	}
}

// CanUseBitset returns true if the automaton fits the uint64 bitset
// simulation (at most MaxBitsetStates states).
func (g *ThompsonGenerator) CanUseBitset() bool {
	return g.analysis.States <= MaxBitsetStates
}

// GenerateMatchFunction generates the body of a full-match function.
func (g *ThompsonGenerator) GenerateMatchFunction(isBytes bool) ([]jen.Code, error) {
	g.compiler.logger.Section("Code Generation")
	g.compiler.logger.Attrs("match function", "bytes", isBytes, "states", g.analysis.States, "edges", len(g.analysis.Edges))

	// Without an accept state, or with no way to reach it, nothing matches.
	if g.analysis.Accept < 0 || !g.analysis.ReachesFinal {
		g.compiler.logger.Log("Accept state unreachable, generating constant matcher")
		return []jen.Code{jen.Return(jen.False())}, nil
	}

	if g.CanUseBitset() && !g.compiler.config.ForceStateSlice {
		g.compiler.logger.Log("Generating bitset Thompson NFA match function (states: %d)", g.analysis.States)
		return g.generateBitset(), nil
	}
	g.compiler.logger.Log("Generating state-slice Thompson NFA match function (states: %d)", g.analysis.States)
	return g.generateStateSlice(), nil
}

// readByte loads the current byte, unless no edge inspects it.
func (g *ThompsonGenerator) readByte() []jen.Code {
	for _, e := range g.analysis.Edges {
		if e.Set.Count() < ByteValues {
			return []jen.Code{
				jen.Id(codegen.CharName).Op(":=").Id(codegen.InputName).Index(jen.Id(codegen.OffsetName)),
			}
		}
	}
	return nil
}

func bitsetOf(states []int) uint64 {
	var mask uint64
	for _, s := range states {
		mask |= 1 << s
	}
	return mask
}

// generateBitset emits a simulation with the active set held in a uint64.
func (g *ThompsonGenerator) generateBitset() []jen.Code {
	code := []jen.Code{
		jen.Id(codegen.InputLenName).Op(":=").Len(jen.Id(codegen.InputName)),
		jen.Line(),
		jen.Comment("Thompson NFA state sets (bitset representation)"),
		jen.Var().Id(codegen.CurrentName).Uint64(),
		jen.Var().Id(codegen.NextName).Uint64(),
		jen.Line(),
		jen.Comment("Precomputed constants"),
		jen.Id(codegen.StartClosureName).Op(":=").Lit(bitsetOf(g.analysis.Start)),
		jen.Id(codegen.AcceptMaskName).Op(":=").Lit(uint64(1) << g.analysis.Accept),
		jen.Line(),
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.StartClosureName),
	}

	loop := append(g.readByte(),
		jen.Id(codegen.NextName).Op("=").Lit(0),
		jen.Line(),
	)
	for _, e := range g.analysis.Edges {
		stateBit := jen.Lit(uint64(1) << e.From)
		cond := jen.Id(codegen.CurrentName).Op("&").Add(stateBit).Op("!=").Lit(0)
		if check := generateByteCheck(e.Set); check != nil {
			cond = cond.Op("&&").Add(check)
		}
		loop = append(loop,
			jen.Comment(codegen.StateLabel(e.From)),
			jen.If(cond).Block(
				jen.Id(codegen.NextName).Op("|=").Lit(bitsetOf(e.Closure)),
			),
		)
	}
	loop = append(loop,
		jen.Line(),
		jen.Comment("Update current state set"),
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.NextName),
		jen.Line(),
		jen.Comment("Check for dead end"),
		jen.If(jen.Id(codegen.CurrentName).Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
	)

	return append(code,
		jen.For(
			jen.Id(codegen.OffsetName).Op(":=").Lit(0),
			jen.Id(codegen.OffsetName).Op("<").Id(codegen.InputLenName),
			jen.Id(codegen.OffsetName).Op("++"),
		).Block(loop...),
		jen.Line(),
		jen.Comment("Check if the accepting state is active"),
		jen.Return(jen.Id(codegen.CurrentName).Op("&").Id(codegen.AcceptMaskName).Op("!=").Lit(0)),
	)
}

// generateStateSlice emits a simulation with the active set held in two
// []bool slices that are swapped after every byte.
func (g *ThompsonGenerator) generateStateSlice() []jen.Code {
	n := g.analysis.States
	code := []jen.Code{
		jen.Id(codegen.InputLenName).Op(":=").Len(jen.Id(codegen.InputName)),
		jen.Line(),
		jen.Comment("Thompson NFA state sets (one flag per state)"),
		jen.Id(codegen.CurrentName).Op(":=").Make(jen.Index().Bool(), jen.Lit(n)),
		jen.Id(codegen.NextName).Op(":=").Make(jen.Index().Bool(), jen.Lit(n)),
		jen.Line(),
		jen.Comment("Epsilon closure of the start state"),
	}
	for _, s := range g.analysis.Start {
		code = append(code, jen.Id(codegen.CurrentName).Index(jen.Lit(s)).Op("=").True())
	}

	loop := append(g.readByte(),
		jen.Id("clear").Call(jen.Id(codegen.NextName)),
		jen.Id(codegen.AliveName).Op(":=").False(),
		jen.Line(),
	)
	for _, e := range g.analysis.Edges {
		cond := jen.Id(codegen.CurrentName).Index(jen.Lit(e.From))
		if check := generateByteCheck(e.Set); check != nil {
			cond = cond.Op("&&").Add(check)
		}
		body := make([]jen.Code, 0, len(e.Closure)+1)
		for _, s := range e.Closure {
			body = append(body, jen.Id(codegen.NextName).Index(jen.Lit(s)).Op("=").True())
		}
		body = append(body, jen.Id(codegen.AliveName).Op("=").True())
		loop = append(loop,
			jen.Comment(codegen.StateLabel(e.From)),
			jen.If(cond).Block(body...),
		)
	}
	loop = append(loop,
		jen.Line(),
		jen.Comment("Update current state set"),
		jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Op("=").List(jen.Id(codegen.NextName), jen.Id(codegen.CurrentName)),
		jen.Line(),
		jen.Comment("Check for dead end"),
		jen.If(jen.Op("!").Id(codegen.AliveName)).Block(
			jen.Return(jen.False()),
		),
	)

	return append(code,
		jen.For(
			jen.Id(codegen.OffsetName).Op(":=").Lit(0),
			jen.Id(codegen.OffsetName).Op("<").Id(codegen.InputLenName),
			jen.Id(codegen.OffsetName).Op("++"),
		).Block(loop...),
		jen.Line(),
		jen.Comment("Check if the accepting state is active"),
		jen.Return(jen.Id(codegen.CurrentName).Index(jen.Lit(g.analysis.Accept))),
	)
}
