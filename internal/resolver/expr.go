package resolver

import (
	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/config"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/tir"
	"github.com/erhanbaris/timu-sub002/internal/token"
)

// resolveExpression walks expr looking for undefined_variable uses and
// returns its best-effort resolved FieldType. This is not a full type
// checker: arithmetic and comparison operators fall back to a plausible
// result type rather than rejecting mismatched operands, since nothing in
// this front end consumes operator-level type errors yet.
func (r *Resolver) resolveExpression(scope tir.ScopeLocation, module *tir.Module, expr ast.Expression) (tir.FieldType, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return r.resolveIdentifier(scope, module, e)
	case *ast.MemberAccessAst:
		return r.resolveMemberAccess(scope, module, e)
	case *ast.FunctionCallAst:
		return r.resolveCall(scope, module, e)
	case *ast.IntegerLiteral:
		return tir.FieldType{Location: r.primitiveLocation("i8")}, true
	case *ast.StringLiteral:
		return tir.FieldType{Location: r.primitiveLocation("string")}, true
	case *ast.BoolLiteral:
		return tir.FieldType{Location: r.primitiveLocation("bool")}, true
	case *ast.ReferenceExpr:
		inner, ok := r.resolveExpression(scope, module, e.Operand)
		inner.Ref = true
		return inner, ok
	case *ast.ParenExpr:
		return r.resolveExpression(scope, module, e.Inner)
	case *ast.BinaryExpr:
		return r.resolveBinary(scope, module, e)
	}
	return tir.FieldType{}, false
}

func (r *Resolver) resolveIdentifier(scope tir.ScopeLocation, module *tir.Module, id *ast.Identifier) (tir.FieldType, bool) {
	if id.Name == config.ThisIdentifier {
		current := r.ctx.GetScope(scope).CurrentType
		if current == tir.Undefined {
			r.diags.Add(diagnostics.UndefinedVariable(id.Name, id.SpanVal))
			return tir.FieldType{}, false
		}
		return tir.FieldType{Location: current}, true
	}

	for cur := scope; cur != tir.NoScope; {
		s := r.ctx.GetScope(cur)
		if ft, ok := s.LookupLocal(id.Name); ok {
			return ft, true
		}
		cur = s.Parent
	}

	if loc, ok := module.Types.Get(id.Name); ok {
		return tir.FieldType{Location: loc}, true
	}

	r.diags.Add(diagnostics.UndefinedVariable(id.Name, id.SpanVal))
	return tir.FieldType{}, false
}

func (r *Resolver) resolveMemberAccess(scope tir.ScopeLocation, module *tir.Module, m *ast.MemberAccessAst) (tir.FieldType, bool) {
	targetType, ok := r.resolveExpression(scope, module, m.Target)
	if !ok {
		return tir.FieldType{}, false
	}

	sig := r.ctx.TypeSignature(targetType.Location)
	if sig == nil {
		return tir.FieldType{}, false
	}

	switch sig.Value.Kind {
	case tir.KindClass:
		if ft, ok := sig.Value.Class.Fields.Get(m.Field); ok {
			return ft, true
		}
	case tir.KindInterface:
		if ft, ok := sig.Value.Interface.Fields.Get(m.Field); ok {
			return ft, true
		}
	case tir.KindModule:
		if loc, ok := r.ctx.LookupTypeByPath(sig.Value.Module.Ref.Path + "." + m.Field); ok {
			return tir.FieldType{Location: loc}, true
		}
	}

	r.diags.Add(diagnostics.UndefinedVariable(m.Field, m.SpanVal))
	return tir.FieldType{}, false
}

func (r *Resolver) resolveCall(scope tir.ScopeLocation, module *tir.Module, call *ast.FunctionCallAst) (tir.FieldType, bool) {
	calleeType, ok := r.resolveExpression(scope, module, call.Callee)
	for _, arg := range call.Arguments {
		r.resolveExpression(scope, module, arg)
	}
	if !ok {
		return tir.FieldType{}, false
	}

	sig := r.ctx.TypeSignature(calleeType.Location)
	if sig == nil {
		return tir.FieldType{}, false
	}
	switch sig.Value.Kind {
	case tir.KindFunction:
		return sig.Value.Function.ReturnType, true
	case tir.KindClass:
		// a bare class name called as a function constructs an instance.
		return tir.FieldType{Location: calleeType.Location}, true
	}
	return tir.FieldType{}, false
}

// resolveBinary resolves both operands for undefined-variable detection.
// Comparison operators always produce bool; arithmetic operators propagate
// the left operand's type.
func (r *Resolver) resolveBinary(scope tir.ScopeLocation, module *tir.Module, b *ast.BinaryExpr) (tir.FieldType, bool) {
	left, leftOk := r.resolveExpression(scope, module, b.Left)
	_, rightOk := r.resolveExpression(scope, module, b.Right)
	ok := leftOk && rightOk

	switch b.Op {
	case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		return tir.FieldType{Location: r.primitiveLocation("bool")}, ok
	default:
		return left, ok
	}
}

func (r *Resolver) primitiveLocation(name string) tir.TypeLocation {
	loc, _ := r.ctx.LookupTypeByPath(config.PreludeModulePath + "." + name)
	return loc
}
