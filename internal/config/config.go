// Package config carries compiler-wide constants and the project manifest
// format, mirroring how the teacher's internal/config holds shared type
// names (ListTypeName, MapTypeName, ...) rather than scattering string
// literals across packages.
package config

// SourceFileExt is the canonical Timu source file extension.
const SourceFileExt = ".timu"

// SourceFileExtensions lists every extension the loader recognizes as a
// source file, main extension first.
var SourceFileExtensions = []string{SourceFileExt}

// ThisIdentifier is the reserved name for a method's implicit receiver
// argument.
const ThisIdentifier = "this"

// PrimitiveTypeNames is the fixed primitive catalogue pre-registered into
// the phantom prelude module so that TypeNameAst resolution for built-ins
// never falls through to type_not_found. Grounded in
// original_source/crates/libtimu's primitive set.
var PrimitiveTypeNames = []string{
	"void", "bool",
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"string",
}

// PreludeModulePath is the synthetic module path the primitive catalogue
// lives under.
const PreludeModulePath = "$prelude"

// MaxDiagnostics bounds how many diagnostics the driver will print per
// build before truncating, so a badly malformed file can't flood the
// terminal.
const MaxDiagnostics = 200
