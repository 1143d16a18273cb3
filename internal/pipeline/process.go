package pipeline

import (
	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/parser"
	"github.com/erhanbaris/timu-sub002/internal/resolver"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/tir"
)

// ProcessCode lexes and parses a single compilation unit.
func ProcessCode(path []string, code string) (*ast.File, []*diagnostics.Diagnostic) {
	file := source.New(path, code)
	return parser.ParseFile(file)
}

// ProcessAST runs the two-phase signature resolver over an already-parsed
// set of files, returning the populated TIR context and every diagnostic
// raised along the way.
func ProcessAST(files []*ast.File) (*tir.Context, []*diagnostics.Diagnostic) {
	ctx := tir.NewContext()
	diags := &diagnostics.List{}

	prelude := resolver.SeedPrelude(ctx)
	modules := []*tir.Module{prelude}

	for _, f := range files {
		name := ""
		if f.SourceFile != nil && len(f.SourceFile.Path) > 0 {
			name = f.SourceFile.Path[len(f.SourceFile.Path)-1]
		}
		path := ""
		if f.SourceFile != nil {
			path = f.SourceFile.PathString()
		}
		mod := tir.NewModule(name, path, f.SourceFile, f)
		if diag := ctx.RegisterModule(mod, f.Span()); diag != nil {
			diags.Add(diag)
			continue
		}
		modules = append(modules, mod)
	}

	resolver.New(ctx, diags).Run(modules)
	return ctx, diags.Items()
}
