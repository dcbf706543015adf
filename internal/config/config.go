// Package config loads batch pattern files written in HCL.
//
// A file names the output package and directory and lists one pattern block
// per matcher to generate:
//
//	package    = "patterns"
//	output_dir = "./generated"
//
//	pattern "Digits" {
//	  expr   = "${class.digit}+"
//	  inputs = ["123", "12a"]
//	}
//
// Expressions are evaluated with a class object in scope, so common
// character classes can be spliced into patterns by name.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/KromDaniel/regnfa/internal/parser"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// DefaultOutputDir is used when a file sets no output_dir.
const DefaultOutputDir = "."

// Classes are the character classes exposed to expressions as class.<name>.
var Classes = map[string]string{
	"digit": "[0-9]",
	"lower": "[a-z]",
	"upper": "[A-Z]",
	"alpha": "[A-Za-z]",
	"word":  "[0-9A-Za-z_]",
	"space": "[ \t\n\r\f\v]",
	"hex":   "[0-9A-Fa-f]",
}

// File is a decoded batch file.
type File struct {
	Package   string     `hcl:"package,optional"`
	OutputDir string     `hcl:"output_dir,optional"`
	Patterns  []*Pattern `hcl:"pattern,block"`
}

// Pattern is one matcher to generate.
type Pattern struct {
	Name       string   `hcl:"name,label"`
	Expr       string   `hcl:"expr"`
	Inputs     []string `hcl:"inputs,optional"`
	StateSlice bool     `hcl:"state_slice,optional"` // force the []bool simulation
}

// OutputFile returns where the matcher for p is written: the output
// directory joined with the lowercased pattern name.
func (f *File) OutputFile(p *Pattern) string {
	return filepath.Join(f.OutputDir, strings.ToLower(p.Name)+".go")
}

// EvalContext returns the context expressions are evaluated in.
func EvalContext() *hcl.EvalContext {
	classes := make(map[string]cty.Value, len(Classes))
	for name, class := range Classes {
		classes[name] = cty.StringVal(class)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"class": cty.ObjectVal(classes),
		},
	}
}

// Load reads and decodes the batch file at path. A relative output_dir is
// resolved against the directory holding the file.
func Load(path string) (*File, error) {
	hclFile, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	f, err := decode(hclFile, path)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(f.OutputDir) {
		f.OutputDir = filepath.Join(filepath.Dir(path), f.OutputDir)
	}
	return f, nil
}

// Parse decodes a batch file from src. filename is used in diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(hclFile, filename)
}

func decode(hclFile *hcl.File, filename string) (*File, error) {
	var f File
	if diags := gohcl.DecodeBody(hclFile.Body, EvalContext(), &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	if f.OutputDir == "" {
		f.OutputDir = DefaultOutputDir
	}
	return &f, nil
}

// Validate checks that every pattern can be generated.
func (f *File) Validate() error {
	if f.Package == "" {
		return errors.New("package cannot be empty")
	}
	if !token.IsIdentifier(f.Package) {
		return fmt.Errorf("package %q is not a valid identifier", f.Package)
	}
	if len(f.Patterns) == 0 {
		return errors.New("no pattern blocks")
	}

	seen := make(map[string]bool, len(f.Patterns))
	for _, p := range f.Patterns {
		if !token.IsIdentifier(p.Name) {
			return fmt.Errorf("pattern name %q is not a valid identifier", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate pattern %q", p.Name)
		}
		seen[p.Name] = true

		if p.Expr == "" {
			return fmt.Errorf("pattern %q: expression cannot be empty", p.Name)
		}
		if _, err := parser.Parse(p.Expr); err != nil {
			return fmt.Errorf("pattern %q: %w", p.Name, err)
		}
	}
	return nil
}
