package compiler

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/regnfa/internal/codegen"
	"github.com/KromDaniel/regnfa/internal/sim"
	"github.com/dave/jennifer/jen"
)

// TestFilePath returns the path of the test file generated next to output.
func TestFilePath(output string) string {
	return strings.TrimSuffix(output, ".go") + "_test.go"
}

// generateTestFile writes a table test and a benchmark for the generated
// matcher. Expected results are computed by simulating the automaton, so the
// generated code is checked against the graph it was built from.
func (c *Compiler) generateTestFile() error {
	name := codegen.UpperFirst(c.config.Name)
	compiled := fmt.Sprintf("Compiled%s", c.config.Name)
	s := sim.New(c.config.Graph)

	cases := make([]jen.Code, 0, len(c.config.TestFileInputs))
	inputs := make([]jen.Code, 0, len(c.config.TestFileInputs))
	for _, in := range c.config.TestFileInputs {
		want := s.Run([]byte(in))
		c.logger.Log("Test input %q: want %v", in, want)
		cases = append(cases, jen.Values(jen.Lit(in), jen.Lit(want)))
		inputs = append(inputs, jen.Lit(in))
	}

	f := jen.NewFile(c.config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by regnfa for pattern: %q", c.config.Pattern))
	f.HeaderComment("DO NOT EDIT.")

	f.Func().Id(fmt.Sprintf("Test%sMatch", name)).Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("input").String(),
			jen.Id("want").Bool(),
		).Values(cases...),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.If(
				jen.Id("got").Op(":=").Id(compiled).Dot("MatchString").Call(jen.Id("tt").Dot("input")),
				jen.Id("got").Op("!=").Id("tt").Dot("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchString(%q) = %v, want %v"), jen.Id("tt").Dot("input"), jen.Id("got"), jen.Id("tt").Dot("want")),
			),
			jen.If(
				jen.Id("got").Op(":=").Id(compiled).Dot("MatchBytes").Call(jen.Index().Byte().Parens(jen.Id("tt").Dot("input"))),
				jen.Id("got").Op("!=").Id("tt").Dot("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchBytes(%q) = %v, want %v"), jen.Id("tt").Dot("input"), jen.Id("got"), jen.Id("tt").Dot("want")),
			),
		),
	)
	f.Line()

	f.Func().Id(fmt.Sprintf("Benchmark%sMatchString", name)).Params(jen.Id("b").Op("*").Qual("testing", "B")).Block(
		jen.Id("inputs").Op(":=").Index().String().Values(inputs...),
		jen.Id("b").Dot("ReportAllocs").Call(),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("b").Dot("N"), jen.Id("i").Op("++")).Block(
			jen.For(jen.List(jen.Id("_"), jen.Id("in")).Op(":=").Range().Id("inputs")).Block(
				jen.Id(compiled).Dot("MatchString").Call(jen.Id("in")),
			),
		),
	)

	path := TestFilePath(c.config.OutputFile)
	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	return formatFile(path)
}
