// Package diagnostics defines the single tagged-variant error type produced
// by every stage of the compiler front-end, and the plumbing an external
// renderer needs to turn one into a labeled source listing.
package diagnostics

import (
	"fmt"

	"github.com/erhanbaris/timu-sub002/internal/source"
)

// ErrorCode is a stable identifier for a diagnostic kind, independent of its
// rendered message. Tooling (editors, test harnesses) matches on this
// instead of parsing prose.
type ErrorCode string

const (
	ErrSyntax                     ErrorCode = "E0001" // syntax_error
	ErrAlreadyDefined             ErrorCode = "E0002" // already_defined
	ErrImportNotFound             ErrorCode = "E0003" // import_not_found
	ErrModuleAlreadyImported      ErrorCode = "E0004" // module_already_imported
	ErrTypeNotFound               ErrorCode = "E0005" // type_not_found
	ErrInvalidType                ErrorCode = "E0006" // invalid_type
	ErrExtraAccessibilityModifier ErrorCode = "E0007" // extra_accessibility_identifier
	ErrInvalidThisPlacement       ErrorCode = "E0008" // invalid_this_placement
	ErrInterfaceNotSatisfied      ErrorCode = "E0009" // interface_not_satisfied
	ErrUndefinedVariable          ErrorCode = "E0010" // undefined_variable
)

// Label is a secondary annotation pointing into a (possibly different)
// source file, rendered alongside the primary span.
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is the single error value every component in this module
// returns. It carries enough structure for an external renderer to produce
// a labeled code frame without re-deriving anything from the AST.
type Diagnostic struct {
	Code    ErrorCode
	Span    source.Span
	Message string
	Labels  []Label
	Help    string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// WithLabel appends a secondary label and returns the same diagnostic, for
// fluent construction at call sites that build up context incrementally.
func (d *Diagnostic) WithLabel(span source.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

// WithHelp attaches a help string.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// New builds a bare diagnostic with just a primary span and message.
func New(code ErrorCode, span source.Span, message string) *Diagnostic {
	return &Diagnostic{Code: code, Span: span, Message: message}
}

// AlreadyDefined reports a duplicate name, carrying both the existing
// definition's span and the span of the rejected redefinition.
func AlreadyDefined(name string, existing, redefinition source.Span) *Diagnostic {
	return New(ErrAlreadyDefined, redefinition, fmt.Sprintf("'%s' is already defined", name)).
		WithLabel(existing, fmt.Sprintf("'%s' first defined here", name)).
		WithLabel(redefinition, "redefined here")
}

// ImportNotFound reports a `use` path that matches no known module.
func ImportNotFound(path string, span source.Span) *Diagnostic {
	return New(ErrImportNotFound, span, fmt.Sprintf("module '%s' not found", path))
}

// ModuleAlreadyImported reports an alias collision between two `use`
// statements in the same module.
func ModuleAlreadyImported(alias string, newSpan, oldSpan source.Span) *Diagnostic {
	return New(ErrModuleAlreadyImported, newSpan, fmt.Sprintf("alias '%s' is already imported", alias)).
		WithLabel(oldSpan, fmt.Sprintf("'%s' first imported here", alias)).
		WithLabel(newSpan, "re-imported here")
}

// TypeNotFound reports a type reference that failed to resolve in phase 2.
func TypeNotFound(name string, span source.Span) *Diagnostic {
	return New(ErrTypeNotFound, span, fmt.Sprintf("type '%s' not found", name))
}

// InvalidType reports a signature of the wrong variant used where another
// was required (e.g. extending an interface instead of a class).
func InvalidType(message string, span source.Span) *Diagnostic {
	return New(ErrInvalidType, span, message)
}

// ExtraAccessibilityModifier reports `pub` used inside an extend block.
func ExtraAccessibilityModifier(span source.Span) *Diagnostic {
	return New(ErrExtraAccessibilityModifier, span, "'pub' cannot be used inside an extend block")
}

// InvalidThisPlacement reports `this` used anywhere but the first argument
// of a method.
func InvalidThisPlacement(span source.Span) *Diagnostic {
	return New(ErrInvalidThisPlacement, span, "'this' must be the first argument of a method")
}

// InterfaceNotSatisfied reports a missing or mismatched extend-block member
// required by one of the extend's declared interfaces.
func InterfaceNotSatisfied(interfaceName, memberName string, interfaceSpan, memberSpan source.Span) *Diagnostic {
	return New(ErrInterfaceNotSatisfied, memberSpan,
		fmt.Sprintf("extend block does not satisfy interface '%s': missing or mismatched member '%s'", interfaceName, memberName)).
		WithLabel(interfaceSpan, fmt.Sprintf("required by interface '%s'", interfaceName))
}

// UndefinedVariable reports a body referencing an identifier with no
// binding in any enclosing scope.
func UndefinedVariable(name string, span source.Span) *Diagnostic {
	return New(ErrUndefinedVariable, span, fmt.Sprintf("undefined variable '%s'", name))
}

// Syntax wraps a parser-level error.
func Syntax(message string, span source.Span) *Diagnostic {
	return New(ErrSyntax, span, message)
}

// List collects diagnostics in the order they were emitted and
// deduplicates by (span start, code, message) so a cascading failure does
// not print the same complaint twice. Mirrors the teacher's
// errorSet-keyed-by-position deduplication in its semantic walker.
type List struct {
	seen  map[string]bool
	items []*Diagnostic
}

// Add appends d unless an equivalent diagnostic (same start offset, same
// code, same message) was already recorded.
func (l *List) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	key := fmt.Sprintf("%d:%s:%s", d.Span.Start, d.Code, d.Message)
	if l.seen[key] {
		return
	}
	l.seen[key] = true
	l.items = append(l.items, d)
}

// AddAll appends every diagnostic in ds.
func (l *List) AddAll(ds []*Diagnostic) {
	for _, d := range ds {
		l.Add(d)
	}
}

// Items returns the diagnostics in emission order.
func (l *List) Items() []*Diagnostic {
	return l.items
}

// Len reports how many diagnostics have been recorded.
func (l *List) Len() int {
	return len(l.items)
}
