package pipeline

import (
	"github.com/erhanbaris/timu-sub002/internal/parser"
	"github.com/erhanbaris/timu-sub002/internal/resolver"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/tir"
)

// LoadProcessor parses every ctx.Input into an *ast.File and registers a
// *tir.Module for it. Syntax errors are recorded as diagnostics and the
// statements that did parse are still registered; a module-path collision
// is recorded as a diagnostic and that input is skipped.
type LoadProcessor struct{}

func (LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, in := range ctx.Inputs {
		file := source.New(in.Path, in.Code)
		astFile, parseDiags := parser.ParseFile(file)
		ctx.Diags.AddAll(parseDiags)

		name := ""
		if len(in.Path) > 0 {
			name = in.Path[len(in.Path)-1]
		}
		mod := tir.NewModule(name, file.PathString(), file, astFile)
		if diag := ctx.Ctx.RegisterModule(mod, astFile.Span()); diag != nil {
			ctx.Diags.Add(diag)
			continue
		}
		ctx.Modules = append(ctx.Modules, mod)
	}
	return ctx
}

// ResolveProcessor seeds the primitive prelude and runs the two-phase
// resolver over every module LoadProcessor registered.
type ResolveProcessor struct{}

func (ResolveProcessor) Process(ctx *PipelineContext) *PipelineContext {
	prelude := resolver.SeedPrelude(ctx.Ctx)
	all := append([]*tir.Module{prelude}, ctx.Modules...)
	resolver.New(ctx.Ctx, ctx.Diags).Run(all)
	return ctx
}

// Default is the standard build pipeline: parse, then resolve.
func Default() *Pipeline {
	return New(LoadProcessor{}, ResolveProcessor{})
}
