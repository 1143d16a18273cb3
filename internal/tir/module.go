package tir

import (
	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/symbols"
)

// symbolFieldMap is the ordered name -> resolved-field table shared by
// classes, interfaces, and extends.
type symbolFieldMap = symbols.Map[FieldType]

// newFieldMap allocates an empty, ready-to-use field map.
func newFieldMap() *symbolFieldMap { return &symbolFieldMap{} }

// AstSignatureLocation is an opaque handle into Context.astSignatures,
// identifying one top-level declaration (by module + local name) before or
// independent of whether that declaration has been reserved as a
// TypeLocation yet. `use` resolution walks these handles rather than
// TypeLocations so that import resolution never depends on reservation
// order between modules.
type AstSignatureLocation int

// astSignatureEntry is what an AstSignatureLocation handle points to.
type astSignatureEntry struct {
	ModulePath string
	Name       string
	Span       source.Span
}

// ModuleRef is a stable (path, SourceFile) pair, usable as a map key and
// re-upgradable to a *Module through Context.Module. Holding a ModuleRef
// never extends a module's lifetime — modules live in Context.modules for
// the whole build regardless.
type ModuleRef struct {
	Path   string
	Source *source.File
}

// Module is one compilation unit: an owning SourceFile, an optional AST
// (nil for a phantom/synthetic module such as the primitive-type root),
// and the four ordered local tables described by the spec.
type Module struct {
	Name       string
	Path       string
	Source     *source.File
	File       *ast.File // nil for a phantom module

	// AstSignatures maps a locally declared top-level name to its handle.
	AstSignatures *symbols.Map[AstSignatureLocation]
	// AstImportedModules maps a local alias (or last path segment) to the
	// handle of the imported entity.
	AstImportedModules *symbols.Map[AstSignatureLocation]
	// Types maps a local name to the TypeLocation it resolved to.
	Types *symbols.Map[TypeLocation]
	// Modules maps the alias of a whole-module `use` import to the
	// imported module's ModuleRef.
	Modules *symbols.Map[ModuleRef]
}

// NewModule creates an empty Module for path, owned by source, wrapping
// file (nil for a phantom module).
func NewModule(name, path string, src *source.File, file *ast.File) *Module {
	return &Module{
		Name:               name,
		Path:               path,
		Source:             src,
		File:               file,
		AstSignatures:      &symbols.Map[AstSignatureLocation]{},
		AstImportedModules: &symbols.Map[AstSignatureLocation]{},
		Types:              &symbols.Map[TypeLocation]{},
		Modules:            &symbols.Map[ModuleRef]{},
	}
}

// Ref returns the stable weak reference for this module.
func (m *Module) Ref() ModuleRef {
	return ModuleRef{Path: m.Path, Source: m.Source}
}

// IsPhantom reports whether this module has no backing AST (a synthetic
// root, e.g. the primitive-type prelude).
func (m *Module) IsPhantom() bool {
	return m.File == nil
}
