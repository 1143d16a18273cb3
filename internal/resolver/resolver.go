// Package resolver implements the two-phase signature resolver: phase 1
// walks every module's top-level statements once to reserve a TypeLocation
// for each declaration (so mutual and self reference both see a handle
// before any field is resolved), then phase 2 finishes each reservation by
// resolving field/argument/return types, checking interface conformance,
// and walking function bodies.
//
// Grounded in the teacher's internal/analyzer four-pass walker
// (AnalyzeNaming / AnalyzeHeaders / AnalyzeInstances / AnalyzeBodies)
// collapsed to the two passes the TIR's handle registries actually need:
// reservation already gives self/mutual reference for free, so a separate
// naming pass is unnecessary.
package resolver

import (
	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/config"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/symbols"
	"github.com/erhanbaris/timu-sub002/internal/tir"
)

// pendingTypeName is a type-name use-site phase 1 could not resolve. Phase 2
// retries it once every module has finished reserving; apply patches the
// original field/argument/return slot in place rather than handing back a
// value the caller has to thread through again.
type pendingTypeName struct {
	name   *ast.TypeNameAst
	module *tir.Module
	apply  func(tir.TypeLocation)
}

// Resolver carries the cross-module state the two passes share: the TIR
// context they publish into, the accumulated diagnostics, and the deferred
// type-name use-sites left over from phase 1.
type Resolver struct {
	ctx     *tir.Context
	diags   *diagnostics.List
	pending []pendingTypeName

	// skip marks a top-level statement whose phase 1 reservation failed
	// badly enough that phase 2 must not attempt to finish it (its
	// TypeLocation, if any, belongs to an earlier, unrelated declaration).
	skip map[ast.Statement]bool

	// extendFields holds each extend block's own reserved field table,
	// produced in phase 1 and consumed once its target class is resolved
	// in phase 2.
	extendFields map[*ast.ExtendDefinitionAst]*symbols.Map[tir.FieldType]
}

// New creates a Resolver that publishes into ctx and records diagnostics
// into diags.
func New(ctx *tir.Context, diags *diagnostics.List) *Resolver {
	return &Resolver{
		ctx:          ctx,
		diags:        diags,
		skip:         make(map[ast.Statement]bool),
		extendFields: make(map[*ast.ExtendDefinitionAst]*symbols.Map[tir.FieldType]),
	}
}

// voidLocation returns the prelude's "void" TypeLocation, used as a
// function's implicit return type when none was written.
func (r *Resolver) voidLocation() tir.TypeLocation {
	loc, _ := r.ctx.LookupTypeByPath(config.PreludeModulePath + ".void")
	return loc
}

// Run reserves and finishes signatures for every module, in the order
// given. The caller is responsible for having already registered each
// module (and the primitive prelude) into the Resolver's Context via
// RegisterModule/SeedPrelude before calling Run.
//
// retryPending runs between the reserve and finish loops, not after: a
// class/interface field whose declared type forward-referenced a
// not-yet-reserved class is only patched to its real TypeLocation there,
// and phase 2's interface-conformance check reads that same field's
// Location directly (not through resolveTypeName) — it must already be
// correct by the time finishModule runs.
func (r *Resolver) Run(modules []*tir.Module) {
	for _, m := range modules {
		if !m.IsPhantom() {
			r.registerAstSignatures(m)
		}
	}
	for _, m := range modules {
		if m.IsPhantom() {
			continue
		}
		r.reserveModule(m)
	}
	r.retryPending()
	for _, m := range modules {
		if m.IsPhantom() {
			continue
		}
		r.finishModule(m)
	}
}

// SeedPrelude registers the phantom prelude module and publishes one
// Primitive TypeSignature per entry in config.PrimitiveTypeNames, so that
// bare references to "i32", "string", etc. resolve without ever touching
// type_not_found.
func SeedPrelude(ctx *tir.Context) *tir.Module {
	prelude := tir.NewModule(config.PreludeModulePath, config.PreludeModulePath, nil, nil)
	ctx.RegisterModule(prelude, source.Span{})
	for i, name := range config.PrimitiveTypeNames {
		loc, diag := ctx.ReserveObjectLocation(prelude, name, tir.BuildFullName(prelude.Path, name), source.Span{})
		if diag != nil {
			continue
		}
		ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindPrimitive, Primitive: tir.PrimitiveKind(i)})
	}
	return prelude
}

// retryPending re-attempts every type name phase 1 deferred. Anything still
// unresolved is now a genuine type_not_found — every module has finished
// reserving, so there is nothing left to wait for. The same unresolved name
// can appear any number of times in one module (an argument type and a
// return type both spelling the same missing name, say), so reporting is
// deduped per (module, dotted path): one type_not_found per distinct miss,
// raised at the first use-site encountered.
func (r *Resolver) retryPending() {
	reported := make(map[*tir.Module]map[string]bool)
	for _, p := range r.pending {
		loc, ok := r.lookupTypeName(p.module, p.name)
		if !ok {
			path := p.name.Path.String()
			seen := reported[p.module]
			if seen == nil {
				seen = make(map[string]bool)
				reported[p.module] = seen
			}
			if !seen[path] {
				seen[path] = true
				r.diags.Add(diagnostics.TypeNotFound(path, p.name.Span()))
			}
			continue
		}
		p.apply(loc)
	}
}

// resolveTypeName implements get_object_location_or_resolve. It tries, in
// order: a primitive name, a local import alias, the current module's own
// (already reserved) types, and the global module table. If none match it
// registers a deferred placeholder and returns Undefined — the caller must
// supply apply so the eventual resolution can reach the right slot. If the
// retry still fails, type_not_found is reported, apply is not called, and
// the slot keeps Undefined.
func (r *Resolver) resolveTypeName(module *tir.Module, name *ast.TypeNameAst, apply func(tir.TypeLocation)) tir.TypeLocation {
	if loc, ok := r.lookupTypeName(module, name); ok {
		return loc
	}
	r.pending = append(r.pending, pendingTypeName{name: name, module: module, apply: apply})
	return tir.Undefined
}

func (r *Resolver) lookupTypeName(module *tir.Module, name *ast.TypeNameAst) (tir.TypeLocation, bool) {
	dotted := name.Path.String()
	head := name.Path.Segments[0]

	// 0. primitive catalogue, regardless of import state.
	if len(name.Path.Segments) == 1 {
		if loc, ok := r.ctx.LookupTypeByPath(config.PreludeModulePath + "." + dotted); ok {
			return loc, true
		}
	}

	// 1a. the head segment names a whole-module import alias
	// (`use app.models as M;` then `M.User`).
	if ref, ok := module.Modules.Get(head); ok {
		if rest := joinDots(name.Path.Segments[1:]); rest != "" {
			if loc, ok := r.ctx.LookupTypeByPath(ref.Path + "." + rest); ok {
				return loc, true
			}
		}
	}

	// 1b. the whole path names a single imported declaration alias
	// (`use app.models.User as Model;` then bare `Model`).
	if astLoc, ok := module.AstImportedModules.Get(dotted); ok {
		impModPath, impName, _ := r.ctx.AstSignature(astLoc)
		if loc, ok := r.ctx.LookupTypeByPath(tir.BuildFullName(impModPath, impName)); ok {
			return loc, true
		}
	}

	// 2. current module's own (already reserved) local types.
	if loc, ok := module.Types.Get(dotted); ok {
		return loc, true
	}

	// 3. global module table search, first scoped to this module's own
	// package, then as an absolute dotted path.
	if loc, ok := r.ctx.LookupTypeByPath(tir.BuildFullName(module.Path, dotted)); ok {
		return loc, true
	}
	if loc, ok := r.ctx.LookupTypeByPath(dotted); ok {
		return loc, true
	}

	return tir.Undefined, false
}

func joinDots(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}

func fieldType(loc tir.TypeLocation, name *ast.TypeNameAst) tir.FieldType {
	return tir.FieldType{Location: loc, Nullable: name.Nullable, Ref: name.Ref}
}
