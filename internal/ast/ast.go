// Package ast is a data-only tree of statements, declarations, and
// expressions produced by internal/parser. Nodes never mutate themselves
// and never resolve anything — they are pure syntax, borrowing their spans
// (and, transitively, their source text) from the internal/source.File that
// produced them.
package ast

import (
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Span() source.Span
}

// Statement is a top-level or body statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is anything that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// File is the root node of a single parsed compilation unit.
type File struct {
	SourceFile *source.File
	Statements []Statement
}

func (f *File) Span() source.Span {
	if len(f.Statements) == 0 {
		return source.Span{File: f.SourceFile}
	}
	return source.Merge(f.Statements[0].Span(), f.Statements[len(f.Statements)-1].Span())
}

// DottedPath is a sequence of identifier segments joined by '.', e.g.
// `app.models.User`.
type DottedPath struct {
	Segments []string
	SpanVal  source.Span
}

func (p DottedPath) Span() source.Span { return p.SpanVal }

// String renders the path back to its dotted form.
func (p DottedPath) String() string {
	out := ""
	for i, s := range p.Segments {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}

// Last returns the final path segment, or "" for an empty path.
func (p DottedPath) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// UseAst is a `use app.models.User as Model;` import statement.
type UseAst struct {
	Token   token.Token
	Path    DottedPath
	Alias   *string // nil when no `as` clause was given
	SpanVal source.Span
}

func (u *UseAst) Span() source.Span { return u.SpanVal }
func (u *UseAst) statementNode()    {}

// TypeNameAst is a type reference: a dotted path plus the nullable (`?`)
// and reference (`ref`) modifiers.
type TypeNameAst struct {
	Token    token.Token
	Path     DottedPath
	Nullable bool
	Ref      bool
	SpanVal  source.Span
}

func (t *TypeNameAst) Span() source.Span { return t.SpanVal }

// DataFieldAst is `name: Type;` inside a class/interface/extend body.
type DataFieldAst struct {
	Token   token.Token
	Name    string
	Type    *TypeNameAst
	Public  bool
	SpanVal source.Span
}

func (d *DataFieldAst) Span() source.Span { return d.SpanVal }

// ArgumentAst is one function argument: either the `this` sentinel or a
// plain `name: Type`.
type ArgumentAst struct {
	Token   token.Token
	IsThis  bool
	Name    string
	Type    *TypeNameAst // nil when IsThis
	SpanVal source.Span
}

func (a *ArgumentAst) Span() source.Span { return a.SpanVal }

// FunctionDefinitionAst is a function/method declaration. Body is nil for
// an interface's bodiless signature.
type FunctionDefinitionAst struct {
	Token      token.Token
	Name       string
	Public     bool
	Arguments  []*ArgumentAst
	ReturnType *TypeNameAst
	Body       *BodyAst // nil when this is a signature only
	SpanVal    source.Span
}

func (f *FunctionDefinitionAst) Span() source.Span { return f.SpanVal }
func (f *FunctionDefinitionAst) statementNode()    {}

// ClassFieldAst is one member of a class or extend body: either a data
// field or a nested function definition.
type ClassFieldAst struct {
	Data     *DataFieldAst         // mutually exclusive with Function
	Function *FunctionDefinitionAst
}

func (c *ClassFieldAst) Span() source.Span {
	if c.Data != nil {
		return c.Data.Span()
	}
	return c.Function.Span()
}

// Name returns the field's declared name regardless of which variant it is.
func (c *ClassFieldAst) Name() string {
	if c.Data != nil {
		return c.Data.Name
	}
	return c.Function.Name
}

// ClassDefinitionAst is a `class Name { ... }` declaration.
type ClassDefinitionAst struct {
	Token   token.Token
	Name    string
	Fields  []*ClassFieldAst
	SpanVal source.Span
}

func (c *ClassDefinitionAst) Span() source.Span { return c.SpanVal }
func (c *ClassDefinitionAst) statementNode()    {}

// InterfaceFieldAst is one member of an interface body: a data field or a
// bodiless function signature.
type InterfaceFieldAst struct {
	Data     *DataFieldAst
	Function *FunctionDefinitionAst
}

func (i *InterfaceFieldAst) Span() source.Span {
	if i.Data != nil {
		return i.Data.Span()
	}
	return i.Function.Span()
}

// Name returns the field's declared name regardless of which variant it is.
func (i *InterfaceFieldAst) Name() string {
	if i.Data != nil {
		return i.Data.Name
	}
	return i.Function.Name
}

// InterfaceDefinitionAst is an `interface Name : Base1, Base2 { ... }`
// declaration.
type InterfaceDefinitionAst struct {
	Token   token.Token
	Name    string
	Bases   []DottedPath
	Fields  []*InterfaceFieldAst
	SpanVal source.Span
}

func (i *InterfaceDefinitionAst) Span() source.Span { return i.SpanVal }
func (i *InterfaceDefinitionAst) statementNode()    {}

// ExtendDefinitionAst attaches one or more interface implementations to a
// pre-existing class: `extend Target : I1, I2 { ... }`.
type ExtendDefinitionAst struct {
	Token      token.Token
	Target     DottedPath
	Interfaces []DottedPath
	Fields     []*ClassFieldAst
	SpanVal    source.Span
}

func (e *ExtendDefinitionAst) Span() source.Span { return e.SpanVal }
func (e *ExtendDefinitionAst) statementNode()    {}

// --- Body statements -------------------------------------------------------

// BodyAst is an ordered list of statements inside a function body or an
// if-branch.
type BodyAst struct {
	Statements []Statement
	SpanVal    source.Span
}

func (b *BodyAst) Span() source.Span { return b.SpanVal }

// VariableDefinitionAst is `var x: Type := expr;` or `const x := expr;`.
type VariableDefinitionAst struct {
	Token      token.Token
	Name       string
	IsConstant bool
	Type       *TypeNameAst // nil when the annotation was omitted
	Value      Expression
	SpanVal    source.Span
}

func (v *VariableDefinitionAst) Span() source.Span { return v.SpanVal }
func (v *VariableDefinitionAst) statementNode()    {}

// VariableAssignAst is `target = expr;` where target is a (possibly
// dotted, possibly `this`-rooted) access path.
type VariableAssignAst struct {
	Token   token.Token
	Target  Expression // an Identifier or MemberAccessAst chain
	Value   Expression
	SpanVal source.Span
}

func (v *VariableAssignAst) Span() source.Span { return v.SpanVal }
func (v *VariableAssignAst) statementNode()    {}

// FunctionCallAst is both an expression (its result can be used inline)
// and, bare with a trailing `;`, a statement.
type FunctionCallAst struct {
	Token     token.Token
	Callee    Expression // Identifier or MemberAccessAst
	Arguments []Expression
	SpanVal   source.Span
}

func (f *FunctionCallAst) Span() source.Span { return f.SpanVal }
func (f *FunctionCallAst) statementNode()    {}
func (f *FunctionCallAst) expressionNode()   {}

// IfConditionAst is `if (cond) { ... } else { ... }`; Else is nil when no
// else-branch was written.
type IfConditionAst struct {
	Token     token.Token
	Condition Expression
	Then      *BodyAst
	Else      *BodyAst
	SpanVal   source.Span
}

func (i *IfConditionAst) Span() source.Span { return i.SpanVal }
func (i *IfConditionAst) statementNode()    {}

// --- Expressions ------------------------------------------------------------

// Identifier is a bare name reference, e.g. `x` or `this`.
type Identifier struct {
	Token   token.Token
	Name    string
	SpanVal source.Span
}

func (i *Identifier) Span() source.Span { return i.SpanVal }
func (i *Identifier) expressionNode()   {}

// MemberAccessAst is `target.field`, used for `this.x` and qualified
// module/function access.
type MemberAccessAst struct {
	Token   token.Token
	Target  Expression
	Field   string
	SpanVal source.Span
}

func (m *MemberAccessAst) Span() source.Span { return m.SpanVal }
func (m *MemberAccessAst) expressionNode()   {}

// IntegerLiteral is an `i8` literal.
type IntegerLiteral struct {
	Token   token.Token
	Value   int64
	SpanVal source.Span
}

func (l *IntegerLiteral) Span() source.Span { return l.SpanVal }
func (l *IntegerLiteral) expressionNode()   {}

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Token   token.Token
	Value   string
	SpanVal source.Span
}

func (l *StringLiteral) Span() source.Span { return l.SpanVal }
func (l *StringLiteral) expressionNode()   {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token   token.Token
	Value   bool
	SpanVal source.Span
}

func (l *BoolLiteral) Span() source.Span { return l.SpanVal }
func (l *BoolLiteral) expressionNode()   {}

// ReferenceExpr is `&expr`, producing a ref-flagged reference to the
// operand.
type ReferenceExpr struct {
	Token   token.Token
	Operand Expression
	SpanVal source.Span
}

func (r *ReferenceExpr) Span() source.Span { return r.SpanVal }
func (r *ReferenceExpr) expressionNode()   {}

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Token   token.Token
	Op      token.Type
	Left    Expression
	Right   Expression
	SpanVal source.Span
}

func (b *BinaryExpr) Span() source.Span { return b.SpanVal }
func (b *BinaryExpr) expressionNode()   {}

// ParenExpr is `(expr)`, kept in the tree so spans and round-tripped
// printing stay faithful to the source.
type ParenExpr struct {
	Token   token.Token
	Inner   Expression
	SpanVal source.Span
}

func (p *ParenExpr) Span() source.Span { return p.SpanVal }
func (p *ParenExpr) expressionNode()   {}
