package resolver

import (
	"fmt"

	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/symbols"
	"github.com/erhanbaris/timu-sub002/internal/tir"
)

// finishModule is phase 2 for one module. Every module has already
// finished phase 1 by the time this runs (Resolver.Run reserves every
// module before finishing any of them), so every type name this pass
// resolves either succeeds outright or is a genuine type_not_found — there
// is nothing left to defer.
func (r *Resolver) finishModule(module *tir.Module) {
	// extend blocks are finished first and in their entirety (target
	// resolution, field merge, conformance check, and their own method
	// bodies) so that every class's Fields table already carries its
	// extensions by the time any class body below is walked — a class can
	// be declared before or after the extend that augments it.
	for _, stmt := range module.File.Statements {
		if r.skip[stmt] {
			continue
		}
		if ext, ok := stmt.(*ast.ExtendDefinitionAst); ok {
			r.finishExtend(module, ext)
		}
	}

	for _, stmt := range module.File.Statements {
		if r.skip[stmt] {
			continue
		}
		switch s := stmt.(type) {
		case *ast.ClassDefinitionAst:
			r.finishClass(module, s)
		case *ast.InterfaceDefinitionAst:
			r.finishInterface(module, s)
		case *ast.FunctionDefinitionAst:
			r.finishTopLevelFunction(module, s)
		}
	}
}

// finishClass walks every method field's body, seeded with a scope whose
// CurrentType resolves `this`.
func (r *Resolver) finishClass(module *tir.Module, class *ast.ClassDefinitionAst) {
	loc, ok := module.Types.Get(class.Name)
	if !ok {
		return
	}
	sig := r.ctx.TypeSignature(loc)
	if sig == nil || sig.Value.Kind != tir.KindClass {
		return
	}
	classType := sig.Value.Class
	for _, field := range class.Fields {
		if field.Function != nil {
			r.finishMethod(module, classType.Fields, loc, field.Function)
		}
	}
}

// finishInterface validates that every base the interface declares resolves
// to another interface. Interfaces carry no bodies, so there is nothing
// else to finish.
func (r *Resolver) finishInterface(module *tir.Module, iface *ast.InterfaceDefinitionAst) {
	for _, base := range iface.Bases {
		name := &ast.TypeNameAst{Path: base, SpanVal: base.Span()}
		loc, ok := r.lookupTypeName(module, name)
		if !ok {
			r.diags.Add(diagnostics.TypeNotFound(base.String(), base.Span()))
			continue
		}
		sig := r.ctx.TypeSignature(loc)
		if sig == nil || sig.Value.Kind != tir.KindInterface {
			r.diags.Add(diagnostics.InvalidType(fmt.Sprintf("'%s' is not an interface", base.String()), base.Span()))
		}
	}
}

// finishExtend resolves the extend's target class and declared interfaces,
// checks that every declared interface is satisfied by the union of the
// class's own fields and the extend block's fields, and finishes the
// extend's own method bodies.
func (r *Resolver) finishExtend(module *tir.Module, ext *ast.ExtendDefinitionAst) {
	fields := r.extendFields[ext]

	targetName := &ast.TypeNameAst{Path: ext.Target, SpanVal: ext.Target.Span()}
	loc, ok := r.lookupTypeName(module, targetName)
	if !ok {
		r.diags.Add(diagnostics.TypeNotFound(ext.Target.String(), ext.SpanVal))
		return
	}
	sig := r.ctx.TypeSignature(loc)
	if sig == nil || sig.Value.Kind != tir.KindClass {
		r.diags.Add(diagnostics.InvalidType(fmt.Sprintf("'%s' is not a class", ext.Target.String()), ext.SpanVal))
		return
	}
	classType := sig.Value.Class

	fields.Iter(func(name string, ft tir.FieldType) {
		span, _ := fields.Span(name)
		if diag := classType.Fields.ValidateInsert(name, ft, span); diag != nil {
			r.diags.Add(diag)
		}
	})

	for _, ifacePath := range ext.Interfaces {
		ifaceName := &ast.TypeNameAst{Path: ifacePath, SpanVal: ifacePath.Span()}
		ifaceLoc, ok := r.lookupTypeName(module, ifaceName)
		if !ok {
			r.diags.Add(diagnostics.TypeNotFound(ifacePath.String(), ifacePath.Span()))
			continue
		}
		ifaceSig := r.ctx.TypeSignature(ifaceLoc)
		if ifaceSig == nil || ifaceSig.Value.Kind != tir.KindInterface {
			r.diags.Add(diagnostics.InvalidType(fmt.Sprintf("'%s' is not an interface", ifacePath.String()), ifacePath.Span()))
			continue
		}
		classType.Extends = append(classType.Extends, ifaceName)
		r.checkConformance(ifaceSig.Value.Interface, ifacePath.String(), ifacePath.Span(), classType, fields, ext.SpanVal)
	}

	for _, field := range ext.Fields {
		if field.Function != nil {
			r.finishMethod(module, fields, loc, field.Function)
		}
	}
}

// checkConformance reports interface_not_satisfied for every interface
// member with no matching name (checked on the extend block first, then
// the class itself) or a mismatched resolved type.
func (r *Resolver) checkConformance(iface *tir.InterfaceType, ifaceName string, ifaceSpan source.Span, classType *tir.ClassType, extendFields *symbols.Map[tir.FieldType], fallbackSpan source.Span) {
	iface.Fields.Iter(func(name string, want tir.FieldType) {
		got, ok := extendFields.Get(name)
		memberSpan := fallbackSpan
		if ok {
			if s, has := extendFields.Span(name); has {
				memberSpan = s
			}
		} else if got2, ok2 := classType.Fields.Get(name); ok2 {
			got, ok = got2, true
			if s, has := classType.Fields.Span(name); has {
				memberSpan = s
			}
		}
		if !ok || !r.fieldSatisfies(want, got) {
			r.diags.Add(diagnostics.InterfaceNotSatisfied(ifaceName, name, ifaceSpan, memberSpan))
		}
	})
}

// fieldSatisfies reports whether got can stand in for want. A function
// field compares argument-wise and by return type, ignoring argument
// names; any other field compares its resolved location and modifiers
// directly.
func (r *Resolver) fieldSatisfies(want, got tir.FieldType) bool {
	wantSig := r.ctx.TypeSignature(want.Location)
	if wantSig != nil && wantSig.Value.Kind == tir.KindFunction {
		gotSig := r.ctx.TypeSignature(got.Location)
		if gotSig == nil || gotSig.Value.Kind != tir.KindFunction {
			return false
		}
		wf, gf := wantSig.Value.Function, gotSig.Value.Function
		if len(wf.Arguments) != len(gf.Arguments) || wf.HasThis != gf.HasThis {
			return false
		}
		for i := range wf.Arguments {
			if !sameField(wf.Arguments[i].Type, gf.Arguments[i].Type) {
				return false
			}
		}
		return sameField(wf.ReturnType, gf.ReturnType)
	}
	return sameField(want, got)
}

func sameField(a, b tir.FieldType) bool {
	return a.Location == b.Location && a.Nullable == b.Nullable && a.Ref == b.Ref
}

// finishMethod resolves fn's body in a scope seeded with enclosing as the
// `this` type. fn.Body is nil for an interface's bodiless signature, in
// which case there is nothing to walk.
func (r *Resolver) finishMethod(module *tir.Module, fields *symbols.Map[tir.FieldType], enclosing tir.TypeLocation, fn *ast.FunctionDefinitionAst) {
	if fn.Body == nil {
		return
	}
	ft, ok := fields.Get(fn.Name)
	if !ok {
		return
	}
	sig := r.ctx.TypeSignature(ft.Location)
	if sig == nil || sig.Value.Kind != tir.KindFunction {
		return
	}
	root := r.ctx.CreateRootScope(module.Ref())
	scope := r.ctx.CreateChildScope(root, enclosing)
	r.bindArguments(scope, fn, sig.Value.Function)
	r.finishBody(scope, module, fn.Body)
}

// finishTopLevelFunction resolves a free function's body in a scope with no
// `this` type.
func (r *Resolver) finishTopLevelFunction(module *tir.Module, fn *ast.FunctionDefinitionAst) {
	if fn.Body == nil {
		return
	}
	loc, ok := module.Types.Get(fn.Name)
	if !ok {
		return
	}
	sig := r.ctx.TypeSignature(loc)
	if sig == nil || sig.Value.Kind != tir.KindFunction {
		return
	}
	root := r.ctx.CreateRootScope(module.Ref())
	scope := r.ctx.CreateChildScope(root, tir.Undefined)
	r.bindArguments(scope, fn, sig.Value.Function)
	r.finishBody(scope, module, fn.Body)
}

// bindArguments defines every non-`this` argument as a local in scope,
// using the already-resolved types recorded on the published FunctionType.
func (r *Resolver) bindArguments(scope tir.ScopeLocation, fn *ast.FunctionDefinitionAst, ft *tir.FunctionType) {
	scopeObj := r.ctx.GetScope(scope)
	idx := 0
	for _, a := range fn.Arguments {
		if a.IsThis {
			continue
		}
		if idx >= len(ft.Arguments) {
			break
		}
		if diag := scopeObj.DefineLocal(a.Name, ft.Arguments[idx].Type, a.SpanVal); diag != nil {
			r.diags.Add(diag)
		}
		idx++
	}
}

// finishBody walks every statement in body.
func (r *Resolver) finishBody(scope tir.ScopeLocation, module *tir.Module, body *ast.BodyAst) {
	for _, stmt := range body.Statements {
		r.finishBodyStatement(scope, module, stmt)
	}
}

func (r *Resolver) finishBodyStatement(scope tir.ScopeLocation, module *tir.Module, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDefinitionAst:
		var declared tir.FieldType
		haveDeclared := false
		if s.Type != nil {
			if loc, ok := r.lookupTypeName(module, s.Type); ok {
				declared = fieldType(loc, s.Type)
				haveDeclared = true
			} else {
				r.diags.Add(diagnostics.TypeNotFound(s.Type.Path.String(), s.Type.Span()))
			}
		}
		if s.Value != nil {
			if vt, ok := r.resolveExpression(scope, module, s.Value); ok && !haveDeclared {
				declared, haveDeclared = vt, true
			}
		}
		if !haveDeclared {
			declared = tir.FieldType{Location: tir.Undefined}
		}
		scopeObj := r.ctx.GetScope(scope)
		if diag := scopeObj.DefineLocal(s.Name, declared, s.SpanVal); diag != nil {
			r.diags.Add(diag)
		}
	case *ast.VariableAssignAst:
		r.resolveExpression(scope, module, s.Target)
		r.resolveExpression(scope, module, s.Value)
	case *ast.FunctionCallAst:
		r.resolveExpression(scope, module, s)
	case *ast.IfConditionAst:
		r.resolveExpression(scope, module, s.Condition)
		current := r.ctx.GetScope(scope).CurrentType
		thenScope := r.ctx.CreateChildScope(scope, current)
		r.finishBody(thenScope, module, s.Then)
		if s.Else != nil {
			elseScope := r.ctx.CreateChildScope(scope, current)
			r.finishBody(elseScope, module, s.Else)
		}
	}
}
