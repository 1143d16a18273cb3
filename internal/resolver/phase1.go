package resolver

import (
	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/symbols"
	"github.com/erhanbaris/timu-sub002/internal/tir"
)

// registerAstSignatures records every top-level declared name in module
// into the global ast-signature table, before any module's `use` statements
// are resolved. This makes import resolution independent of module
// processing order: a module earlier in the build order can `use` a name
// declared in a module that hasn't been reserved yet.
func (r *Resolver) registerAstSignatures(module *tir.Module) {
	for _, stmt := range module.File.Statements {
		var name string
		switch s := stmt.(type) {
		case *ast.ClassDefinitionAst:
			name = s.Name
		case *ast.InterfaceDefinitionAst:
			name = s.Name
		case *ast.FunctionDefinitionAst:
			name = s.Name
		default:
			continue
		}
		loc := r.ctx.RegisterAstSignature(module.Path, name, stmt.Span())
		if diag := module.AstSignatures.ValidateInsert(name, loc, stmt.Span()); diag != nil {
			r.diags.Add(diag)
		}
	}
}

// reserveModule is phase 1 for one module: walk its top-level statements in
// source order, resolving `use` statements and reserving a TypeLocation for
// every class, interface, and top-level function. Reservation publishes
// immediately (classes and interfaces have no forward-declared body of
// their own to wait on), which is what lets a class's own fields refer back
// to itself and lets two classes in the same module refer to each other
// regardless of declaration order.
func (r *Resolver) reserveModule(module *tir.Module) {
	for _, stmt := range module.File.Statements {
		switch s := stmt.(type) {
		case *ast.UseAst:
			r.resolveUse(module, s)
		case *ast.ClassDefinitionAst:
			r.reserveClass(module, s)
		case *ast.InterfaceDefinitionAst:
			r.reserveInterface(module, s)
		case *ast.ExtendDefinitionAst:
			r.reserveExtend(module, s)
		case *ast.FunctionDefinitionAst:
			r.reserveTopLevelFunction(module, s)
		}
	}
}

// resolveUse handles one `use` statement. A path that names a registered
// module in full is a whole-module import, aliased through module.Modules;
// otherwise its last segment is treated as a single declared name inside
// the module named by the remaining segments, aliased through
// module.AstImportedModules.
func (r *Resolver) resolveUse(module *tir.Module, use *ast.UseAst) {
	path := use.Path.String()
	alias := use.Path.Last()
	if use.Alias != nil {
		alias = *use.Alias
	}

	if _, ok := r.ctx.Module(path); ok {
		if span, hasSpan := module.Modules.Span(alias); hasSpan {
			r.diags.Add(diagnostics.ModuleAlreadyImported(alias, use.SpanVal, span))
			return
		}
		module.Modules.Insert(alias, tir.ModuleRef{Path: path}, use.SpanVal)
		return
	}

	segs := use.Path.Segments
	if len(segs) >= 2 {
		modPath := joinDots(segs[:len(segs)-1])
		declName := segs[len(segs)-1]
		if _, ok := r.ctx.Module(modPath); ok {
			if loc, ok := r.ctx.GetAstLocation(modPath + "." + declName); ok {
				if span, hasSpan := module.AstImportedModules.Span(alias); hasSpan {
					r.diags.Add(diagnostics.ModuleAlreadyImported(alias, use.SpanVal, span))
					return
				}
				module.AstImportedModules.Insert(alias, loc, use.SpanVal)
				return
			}
		}
	}

	r.diags.Add(diagnostics.ImportNotFound(path, use.SpanVal))
}

// reserveClass reserves a TypeLocation for the class itself, publishes a
// ClassType immediately, then reserves each field in turn.
func (r *Resolver) reserveClass(module *tir.Module, class *ast.ClassDefinitionAst) {
	path := tir.BuildFullName(module.Path, class.Name)
	loc, diag := r.ctx.ReserveObjectLocation(module, class.Name, path, class.SpanVal)
	if diag != nil {
		r.diags.Add(diag)
		r.skip[class] = true
		return
	}

	classType := &tir.ClassType{Name: class.Name, Fields: &symbols.Map[tir.FieldType]{}}
	r.ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindClass, Class: classType})

	for _, field := range class.Fields {
		r.reserveClassField(module, path, classType.Fields, field)
	}
}

// reserveInterface mirrors reserveClass for `interface` declarations: its
// function fields carry a signature only, never a body.
func (r *Resolver) reserveInterface(module *tir.Module, iface *ast.InterfaceDefinitionAst) {
	path := tir.BuildFullName(module.Path, iface.Name)
	loc, diag := r.ctx.ReserveObjectLocation(module, iface.Name, path, iface.SpanVal)
	if diag != nil {
		r.diags.Add(diag)
		r.skip[iface] = true
		return
	}

	ifaceType := &tir.InterfaceType{Name: iface.Name, Fields: &symbols.Map[tir.FieldType]{}, Bases: iface.Bases}
	r.ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindInterface, Interface: ifaceType})

	for _, field := range iface.Fields {
		if field.Data != nil {
			r.reserveDataField(module, ifaceType.Fields, field.Data)
		} else {
			fnLoc := r.reserveFunctionAt(module, field.Function, path+"."+field.Function.Name, true)
			if diag := ifaceType.Fields.ValidateInsert(field.Function.Name, tir.FieldType{Location: fnLoc}, field.Function.SpanVal); diag != nil {
				r.diags.Add(diag)
			}
		}
	}
}

// reserveExtend does not reserve a TypeLocation of its own (an extend block
// attaches to a pre-existing class, resolved in phase 2 once every module
// has finished reserving); it reserves its own field signatures now, keyed
// under a synthetic path scoped to the unresolved target name so function
// locations are still globally unique and addressable.
func (r *Resolver) reserveExtend(module *tir.Module, ext *ast.ExtendDefinitionAst) {
	fields := &symbols.Map[tir.FieldType]{}
	r.extendFields[ext] = fields

	extPath := module.Path + "$extend$" + ext.Target.String()
	for _, field := range ext.Fields {
		if field.Data != nil {
			if field.Data.Public {
				r.diags.Add(diagnostics.ExtraAccessibilityModifier(field.Data.SpanVal))
			}
			r.reserveDataField(module, fields, field.Data)
			continue
		}
		if field.Function.Public {
			r.diags.Add(diagnostics.ExtraAccessibilityModifier(field.Function.SpanVal))
		}
		fnLoc := r.reserveFunctionAt(module, field.Function, extPath+"."+field.Function.Name, true)
		if diag := fields.ValidateInsert(field.Function.Name, tir.FieldType{Location: fnLoc}, field.Function.SpanVal); diag != nil {
			r.diags.Add(diag)
		}
	}
}

// reserveTopLevelFunction reserves a free function's signature under the
// module's own Types table, the same way a class or interface is reserved.
func (r *Resolver) reserveTopLevelFunction(module *tir.Module, fn *ast.FunctionDefinitionAst) {
	r.validateThisPlacement(fn, false)
	path := tir.BuildFullName(module.Path, fn.Name)
	loc, diag := r.ctx.ReserveLocation(path, fn.SpanVal)
	if diag != nil {
		r.diags.Add(diag)
		r.skip[fn] = true
		return
	}
	module.Types.Insert(fn.Name, loc, fn.SpanVal)
	ft := r.buildFunctionType(module, fn, false)
	r.ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindFunction, Function: ft})
}

// reserveFunctionAt reserves and publishes a method or interface-signature
// function at an already-qualified path, returning its TypeLocation
// (Undefined if the path collided with an existing declaration).
func (r *Resolver) reserveFunctionAt(module *tir.Module, fn *ast.FunctionDefinitionAst, path string, isMethod bool) tir.TypeLocation {
	r.validateThisPlacement(fn, isMethod)
	loc, diag := r.ctx.ReserveLocation(path, fn.SpanVal)
	if diag != nil {
		r.diags.Add(diag)
		return tir.Undefined
	}
	ft := r.buildFunctionType(module, fn, isMethod)
	r.ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindFunction, Function: ft})
	return loc
}

// reserveClassField dispatches one class field to the data or function
// reservation path.
func (r *Resolver) reserveClassField(module *tir.Module, classPath string, fields *symbols.Map[tir.FieldType], field *ast.ClassFieldAst) {
	if field.Data != nil {
		r.reserveDataField(module, fields, field.Data)
		return
	}
	fnLoc := r.reserveFunctionAt(module, field.Function, classPath+"."+field.Function.Name, true)
	if diag := fields.ValidateInsert(field.Function.Name, tir.FieldType{Location: fnLoc}, field.Function.SpanVal); diag != nil {
		r.diags.Add(diag)
	}
}

// reserveDataField resolves a data field's declared type (deferring to
// phase 2 on a miss) and inserts it into fields, rejecting a duplicate name.
func (r *Resolver) reserveDataField(module *tir.Module, fields *symbols.Map[tir.FieldType], field *ast.DataFieldAst) {
	captured := field
	loc := r.resolveTypeName(module, field.Type, func(loc tir.TypeLocation) {
		if existing, ok := fields.Get(captured.Name); ok {
			existing.Location = loc
			fields.Insert(captured.Name, existing, captured.SpanVal)
		}
	})
	if diag := fields.ValidateInsert(field.Name, fieldType(loc, field.Type), field.SpanVal); diag != nil {
		r.diags.Add(diag)
	}
}

// validateThisPlacement reports invalid_this_placement when `this` appears
// anywhere but the first argument, or appears at all in a non-method.
func (r *Resolver) validateThisPlacement(fn *ast.FunctionDefinitionAst, isMethod bool) {
	for i, arg := range fn.Arguments {
		if !arg.IsThis {
			continue
		}
		if !isMethod || i != 0 {
			r.diags.Add(diagnostics.InvalidThisPlacement(arg.SpanVal))
		}
	}
}

// buildFunctionType resolves a function's argument and return types (the
// implicit `this` receiver is tracked only as the HasThis flag, never as an
// Argument — its type is always the enclosing class, never a thing a caller
// names).
func (r *Resolver) buildFunctionType(module *tir.Module, fn *ast.FunctionDefinitionAst, isMethod bool) *tir.FunctionType {
	hasThis := isMethod && len(fn.Arguments) > 0 && fn.Arguments[0].IsThis
	ft := &tir.FunctionType{Name: fn.Name, Body: fn.Body, HasThis: hasThis}

	seenNames := &symbols.Map[source.Span]{}
	for _, a := range fn.Arguments {
		if a.IsThis {
			continue
		}
		if diag := seenNames.ValidateInsert(a.Name, a.SpanVal, a.SpanVal); diag != nil {
			r.diags.Add(diag)
			continue
		}
		idx := len(ft.Arguments)
		ft.Arguments = append(ft.Arguments, tir.NamedArgument{Name: a.Name})
		captured := a
		loc := r.resolveTypeName(module, captured.Type, func(loc tir.TypeLocation) {
			ft.Arguments[idx].Type = fieldType(loc, captured.Type)
		})
		ft.Arguments[idx].Type = fieldType(loc, captured.Type)
	}

	if fn.ReturnType == nil {
		ft.ReturnType = tir.FieldType{Location: r.voidLocation()}
	} else {
		rt := fn.ReturnType
		loc := r.resolveTypeName(module, rt, func(loc tir.TypeLocation) {
			ft.ReturnType = fieldType(loc, rt)
		})
		ft.ReturnType = fieldType(loc, rt)
	}

	return ft
}
