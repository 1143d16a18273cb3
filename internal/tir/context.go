package tir

import (
	"fmt"
	"strings"

	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
)

// Context is the single mutable owner of every module, signature, and
// scope discovered during a build. All four registries are append-only:
// modules is keyed by dotted path, and the other three are slices indexed
// by integer handles — the only cross-component references — so nothing
// here ever needs a second owner or a lock: the whole
// pipeline runs on one logical actor (internal/pipeline's driver).
type Context struct {
	modules     map[string]*Module // dotted path -> Module
	moduleOrder []string           // insertion order, for deterministic diagnostics

	astSignatures []astSignatureEntry
	astByPath     map[string]AstSignatureLocation

	types []*TypeSignature

	scopes []*Scope
}

// NewContext creates an empty TIR context.
func NewContext() *Context {
	return &Context{
		modules:   make(map[string]*Module),
		astByPath: make(map[string]AstSignatureLocation),
	}
}

// RegisterModule adds m to the context, keyed by its dotted path. Returns
// an already_defined diagnostic if the path collides with a previously
// registered module — module paths are globally unique within a Context.
func (c *Context) RegisterModule(m *Module, span source.Span) *diagnostics.Diagnostic {
	if existing, ok := c.modules[m.Path]; ok {
		existingSpan := source.Span{File: existing.Source}
		return diagnostics.AlreadyDefined(m.Path, existingSpan, span)
	}
	c.modules[m.Path] = m
	c.moduleOrder = append(c.moduleOrder, m.Path)
	return nil
}

// Module resolves a ModuleRef (or a bare dotted path) back to the live
// *Module. Holding a ModuleRef never kept the module alive on its own —
// Context.modules is the sole owner for the whole build.
func (c *Context) Module(path string) (*Module, bool) {
	m, ok := c.modules[path]
	return m, ok
}

// Modules returns every registered module in registration order.
func (c *Context) Modules() []*Module {
	out := make([]*Module, 0, len(c.moduleOrder))
	for _, p := range c.moduleOrder {
		out = append(out, c.modules[p])
	}
	return out
}

// RegisterAstSignature records that module declares a top-level name at
// span, returning the handle `use` resolution and phase 1 reservation can
// both refer to afterwards.
func (c *Context) RegisterAstSignature(modulePath, name string, span source.Span) AstSignatureLocation {
	loc := AstSignatureLocation(len(c.astSignatures))
	c.astSignatures = append(c.astSignatures, astSignatureEntry{ModulePath: modulePath, Name: name, Span: span})
	c.astByPath[modulePath+"."+name] = loc
	return loc
}

// GetAstLocation performs the global lookup `use` resolution needs:
// does dottedPath name a known top-level declaration in some registered
// module?
func (c *Context) GetAstLocation(dottedPath string) (AstSignatureLocation, bool) {
	loc, ok := c.astByPath[dottedPath]
	return loc, ok
}

// AstSignature resolves a handle back to its (module, name, span) triple.
func (c *Context) AstSignature(loc AstSignatureLocation) (modulePath, name string, span source.Span) {
	e := c.astSignatures[loc]
	return e.ModulePath, e.Name, e.Span
}

// ReserveLocation allocates a fresh TypeLocation for path and inserts a
// placeholder into the global registry, without recording it under any
// module's local Types table — used for method and interface-signature
// function locations, which are addressed through their owning
// class/interface's Fields map rather than by bare name lookup. Fails with
// already_defined if path already has a non-placeholder (published) entry.
func (c *Context) ReserveLocation(path string, span source.Span) (TypeLocation, *diagnostics.Diagnostic) {
	for _, existing := range c.types {
		if existing.Path == path && existing.published {
			return Undefined, diagnostics.AlreadyDefined(path, existing.Span, span)
		}
	}
	loc := TypeLocation(len(c.types))
	c.types = append(c.types, &TypeSignature{Path: path, Span: span, Source: span.File})
	return loc, nil
}

// ReserveObjectLocation is ReserveLocation plus recording the handle under
// localName in module's Types table, for top-level declarations addressed
// by bare name within their module (classes, interfaces, free functions).
func (c *Context) ReserveObjectLocation(module *Module, localName, path string, span source.Span) (TypeLocation, *diagnostics.Diagnostic) {
	loc, diag := c.ReserveLocation(path, span)
	if diag != nil {
		return Undefined, diag
	}
	module.Types.Insert(localName, loc, span)
	return loc, nil
}

// PublishObjectLocation upgrades the placeholder at loc into sig. Calling
// this twice for the same loc, or publishing a loc that was never
// reserved, is a programmer error.
func (c *Context) PublishObjectLocation(loc TypeLocation, value *TypeValue) {
	sig := c.types[loc]
	if sig.published {
		panic(fmt.Sprintf("tir: publish called twice for %s", sig.Path))
	}
	sig.Value = value
	sig.published = true
}

// TypeSignature resolves loc to its signature. Returns nil if loc is out
// of range or Undefined.
func (c *Context) TypeSignature(loc TypeLocation) *TypeSignature {
	if loc == Undefined || int(loc) < 0 || int(loc) >= len(c.types) {
		return nil
	}
	return c.types[loc]
}

// IsPublished reports whether loc has had PublishObjectLocation called.
func (c *Context) IsPublished(loc TypeLocation) bool {
	sig := c.TypeSignature(loc)
	return sig != nil && sig.published
}

// LookupTypeByPath performs the global module-table search step of
// get_object_location_or_resolve: treat everything but the last path
// segment as a dotted module path, and the last segment as a local type
// name inside that module.
func (c *Context) LookupTypeByPath(dotted string) (TypeLocation, bool) {
	segs := strings.Split(dotted, ".")
	for split := len(segs) - 1; split >= 1; split-- {
		modPath := strings.Join(segs[:split], ".")
		typeName := strings.Join(segs[split:], ".")
		mod, ok := c.modules[modPath]
		if !ok {
			continue
		}
		if loc, ok := mod.Types.Get(typeName); ok {
			return loc, true
		}
	}
	return Undefined, false
}

// CreateChildScope allocates a new scope linked to parent, inheriting its
// module reference. parent must be an existing scope; a module's root
// scope, which has no parent, is created with CreateRootScope instead.
func (c *Context) CreateChildScope(parent ScopeLocation, seedType TypeLocation) ScopeLocation {
	p := c.scopes[parent]
	return c.newScopeLocation(p.Module, parent, seedType)
}

// CreateRootScope allocates a module's top-level scope, with no parent.
func (c *Context) CreateRootScope(module ModuleRef) ScopeLocation {
	return c.newScopeLocation(module, NoScope, Undefined)
}

func (c *Context) newScopeLocation(module ModuleRef, parent ScopeLocation, seedType TypeLocation) ScopeLocation {
	loc := ScopeLocation(len(c.scopes))
	c.scopes = append(c.scopes, newScope(parent, module, seedType))
	return loc
}

// GetScope resolves a handle to its Scope.
func (c *Context) GetScope(loc ScopeLocation) *Scope {
	if loc == NoScope {
		return nil
	}
	return c.scopes[loc]
}

// BuildFullName joins a module's path with a local name into a
// SignaturePath.
func BuildFullName(modulePath, name string) string {
	if modulePath == "" {
		return name
	}
	return modulePath + "." + name
}
