// Package tir holds the Typed Intermediate Representation: the append-only,
// handle-indexed registries (modules, AST signature locations, type
// signatures, scopes) that the resolver publishes into and the finish pass
// reads back from. Every cross-component reference is an integer handle —
// TypeLocation, ScopeLocation, AstSignatureLocation — so no two parts of the
// TIR ever hold a live pointer into each other; the registries in Context
// are the sole owners.
package tir

import (
	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/source"
)

// TypeLocation is an opaque handle into Context.types. Undefined is the
// distinguished "not known" value: it is the CurrentType of a scope with
// no `this` type, and it stays on a field, argument, or local whose type
// never resolved (after the matching diagnostic has been reported).
type TypeLocation int

const Undefined TypeLocation = -1

// PrimitiveKind enumerates Timu's built-in scalar types.
type PrimitiveKind int

const (
	PrimVoid PrimitiveKind = iota
	PrimBool
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimString
)

var primitiveNames = map[PrimitiveKind]string{
	PrimVoid: "void", PrimBool: "bool",
	PrimI8: "i8", PrimI16: "i16", PrimI32: "i32", PrimI64: "i64",
	PrimU8: "u8", PrimU16: "u16", PrimU32: "u32", PrimU64: "u64",
	PrimString: "string",
}

func (k PrimitiveKind) String() string { return primitiveNames[k] }

// FieldType pairs a field's resolved location with the nullable/ref
// modifiers carried by its TypeNameAst use-site. nullable and ref are not
// distinct types; they are flags on a reference to one.
type FieldType struct {
	Location TypeLocation
	Nullable bool
	Ref      bool
}

// Kind tags which TypeValue variant a TypeSignature holds.
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindFunction
	KindModule
	KindPrimitive
)

// ClassType is the resolved form of a ClassDefinitionAst or the class side
// of an ExtendDefinitionAst's target.
type ClassType struct {
	Name    string
	Fields  *symbolFieldMap
	Extends []*ast.TypeNameAst // base interfaces implemented via extend blocks
}

// InterfaceType is the resolved form of an InterfaceDefinitionAst. Function
// fields carry a signature but never a body.
type InterfaceType struct {
	Name   string
	Fields *symbolFieldMap
	Bases  []ast.DottedPath
}

// FunctionType is the resolved form of a FunctionDefinitionAst.
type FunctionType struct {
	Name       string
	Arguments  []NamedArgument
	ReturnType FieldType
	Body       *ast.BodyAst // nil for an interface signature
	HasThis    bool
}

// NamedArgument is one resolved function parameter.
type NamedArgument struct {
	Name string
	Type FieldType
}

// ModuleType wraps a ModuleRef so a module itself can be published as a
// type value (used when a qualified path's prefix resolves to a module
// rather than a type).
type ModuleType struct {
	Ref ModuleRef
}

// TypeValue is the tagged variant every published signature holds. Exactly
// one of the pointer fields is non-nil.
type TypeValue struct {
	Kind      Kind
	Class     *ClassType
	Interface *InterfaceType
	Function  *FunctionType
	Module    *ModuleType
	Primitive PrimitiveKind
}

// TypeSignature is a TypeValue plus the span and source file it was
// declared in, published into Context.types under a SignaturePath.
type TypeSignature struct {
	Path   string
	Value  *TypeValue
	Span   source.Span
	Source *source.File

	// published is false between reserve_object_location and
	// publish_object_location: the handle exists and is visible to other
	// resolvers (enabling mutual/self reference) but its Value is not yet
	// structurally valid to read.
	published bool
}

// Published reports whether publish_object_location has been called for
// this signature yet. Reading Value before this is true is a resolver
// ordering bug.
func (s *TypeSignature) Published() bool { return s.published }
