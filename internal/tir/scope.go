package tir

import (
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
)

// ScopeLocation is an opaque handle into Context.scopes.
type ScopeLocation int

const NoScope ScopeLocation = -1

// Scope is one node in the lexical scope tree. Parent is NoScope for a
// module's root scope. CurrentType resolves the `this` identifier inside a
// method scope; it is Undefined outside a class/interface/extend body.
type Scope struct {
	Parent      ScopeLocation
	Module      ModuleRef
	CurrentType TypeLocation
	locals      *symbolFieldMap // reused as a name -> FieldType table; Location doubles as the local's type
}

func newScope(parent ScopeLocation, module ModuleRef, currentType TypeLocation) *Scope {
	return &Scope{Parent: parent, Module: module, CurrentType: currentType, locals: newFieldMap()}
}

// DefineLocal binds name to typ in this scope only. Returns an
// already_defined diagnostic instead of storing it if name is already bound
// here (redefinition within the same block, as opposed to shadowing an
// outer scope, which is allowed).
func (s *Scope) DefineLocal(name string, typ FieldType, span source.Span) *diagnostics.Diagnostic {
	return s.locals.ValidateInsert(name, typ, span)
}

// LookupLocal returns the binding for name in this scope, without walking
// to parents.
func (s *Scope) LookupLocal(name string) (FieldType, bool) {
	return s.locals.Get(name)
}
