package catalog

import (
	"bytes"
	"maps"
	"slices"
)

// Entry represents one named resource and all its metadata.
//
// Byte-slice and map-value fields are borrowed from the buffer the entry was
// decoded from; they are views, never copies, and must not outlive that
// buffer. A nil slice or map means the field was absent from the stream.
//
// Note: The Resources map is shared by reference between every holder of the
// entry. Consumers must treat it as read-only.
type Entry struct {
	// Name is the resource name. Required and unique within a catalog.
	Name string

	// IsPackage reports whether the resource is a package.
	IsPackage bool
	// IsNamespacePackage reports whether the resource is a namespace package.
	IsNamespacePackage bool
	// IsBuiltin reports whether the resource is a builtin extension module in
	// the host runtime.
	IsBuiltin bool
	// IsFrozen reports whether the resource is frozen into the host runtime.
	IsFrozen bool

	// Source is the in-memory module source text.
	Source []byte
	// Bytecode is precompiled code at optimization level 0.
	Bytecode []byte
	// BytecodeOpt1 is precompiled code at optimization level 1.
	BytecodeOpt1 []byte
	// BytecodeOpt2 is precompiled code at optimization level 2.
	BytecodeOpt2 []byte
	// ExtensionModuleSharedLibrary is a native extension binary loaded as this
	// module.
	ExtensionModuleSharedLibrary []byte
	// Resources maps package resource filenames to their contents.
	Resources map[string][]byte
	// PackageDistribution maps distribution metadata filenames to their
	// contents.
	PackageDistribution map[string][]byte
	// SharedLibrary is a native shared library that is not itself a module.
	SharedLibrary []byte
	// SharedLibraryDependencyNames lists shared libraries this entry depends
	// on, in declaration order.
	SharedLibraryDependencyNames []string
}

// UsesEmbeddedImporter reports whether the module is imported by the embedded
// importer rather than merely registered with the host runtime. Builtin and
// frozen modules without embedded payloads do not qualify.
func (e *Entry) UsesEmbeddedImporter() bool {
	return e.Bytecode != nil ||
		e.BytecodeOpt1 != nil ||
		e.BytecodeOpt2 != nil ||
		e.ExtensionModuleSharedLibrary != nil
}

// Equal reports whether two entries hold the same values field by field.
// Payload comparison is by content, not by backing buffer identity.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}

	return e.Name == other.Name &&
		e.IsPackage == other.IsPackage &&
		e.IsNamespacePackage == other.IsNamespacePackage &&
		e.IsBuiltin == other.IsBuiltin &&
		e.IsFrozen == other.IsFrozen &&
		bytes.Equal(e.Source, other.Source) &&
		bytes.Equal(e.Bytecode, other.Bytecode) &&
		bytes.Equal(e.BytecodeOpt1, other.BytecodeOpt1) &&
		bytes.Equal(e.BytecodeOpt2, other.BytecodeOpt2) &&
		bytes.Equal(e.ExtensionModuleSharedLibrary, other.ExtensionModuleSharedLibrary) &&
		maps.EqualFunc(e.Resources, other.Resources, bytes.Equal) &&
		maps.EqualFunc(e.PackageDistribution, other.PackageDistribution, bytes.Equal) &&
		bytes.Equal(e.SharedLibrary, other.SharedLibrary) &&
		slices.Equal(e.SharedLibraryDependencyNames, other.SharedLibraryDependencyNames)
}
