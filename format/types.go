package format

type (
	FieldType       uint8
	CompressionType uint8
)

// MagicV1 is the 8-byte prefix of a version 1 packed-resources stream:
// the ASCII bytes "pyembed" followed by the version tag 0x01.
const MagicV1 = "pyembed\x01"

// ContainerMagic is the 8-byte prefix of a compressed container frame
// wrapping a canonical packed-resources stream.
const ContainerMagic = "pyembedz"

const (
	FieldEndOfIndex                           FieldType = 0x00 // FieldEndOfIndex terminates an index.
	FieldStartOfEntry                         FieldType = 0x01 // FieldStartOfEntry opens a resource entry.
	FieldEndOfEntry                           FieldType = 0x02 // FieldEndOfEntry commits a resource entry.
	FieldModuleName                           FieldType = 0x03 // FieldModuleName carries the resource name.
	FieldIsPackage                            FieldType = 0x04 // FieldIsPackage flags a package.
	FieldIsNamespacePackage                   FieldType = 0x05 // FieldIsNamespacePackage flags a namespace package.
	FieldInMemorySource                       FieldType = 0x06 // FieldInMemorySource carries module source text.
	FieldInMemoryBytecode                     FieldType = 0x07 // FieldInMemoryBytecode carries bytecode at optimization level 0.
	FieldInMemoryBytecodeOpt1                 FieldType = 0x08 // FieldInMemoryBytecodeOpt1 carries bytecode at optimization level 1.
	FieldInMemoryBytecodeOpt2                 FieldType = 0x09 // FieldInMemoryBytecodeOpt2 carries bytecode at optimization level 2.
	FieldInMemoryExtensionModuleSharedLibrary FieldType = 0x0a // FieldInMemoryExtensionModuleSharedLibrary carries a native extension module.
	FieldInMemoryResourcesData                FieldType = 0x0b // FieldInMemoryResourcesData carries package resource files.
	FieldInMemoryPackageDistribution          FieldType = 0x0c // FieldInMemoryPackageDistribution carries distribution metadata files.
	FieldInMemorySharedLibrary                FieldType = 0x0d // FieldInMemorySharedLibrary carries a native shared library.
	FieldSharedLibraryDependencyNames         FieldType = 0x0e // FieldSharedLibraryDependencyNames carries shared library dependency names.

	// FieldCount is the size of a table indexed by FieldType.
	FieldCount = 0x0f
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

// IsBlobPayload reports whether t is one of the payload field types that may
// appear in the blob-section index and claim bytes from the blob region.
func (t FieldType) IsBlobPayload() bool {
	switch t {
	case FieldModuleName,
		FieldInMemorySource,
		FieldInMemoryBytecode,
		FieldInMemoryBytecodeOpt1,
		FieldInMemoryBytecodeOpt2,
		FieldInMemoryExtensionModuleSharedLibrary,
		FieldInMemoryResourcesData,
		FieldInMemoryPackageDistribution,
		FieldInMemorySharedLibrary,
		FieldSharedLibraryDependencyNames:
		return true
	default:
		return false
	}
}

func (t FieldType) String() string {
	switch t {
	case FieldEndOfIndex:
		return "EndOfIndex"
	case FieldStartOfEntry:
		return "StartOfEntry"
	case FieldEndOfEntry:
		return "EndOfEntry"
	case FieldModuleName:
		return "ModuleName"
	case FieldIsPackage:
		return "IsPackage"
	case FieldIsNamespacePackage:
		return "IsNamespacePackage"
	case FieldInMemorySource:
		return "InMemorySource"
	case FieldInMemoryBytecode:
		return "InMemoryBytecode"
	case FieldInMemoryBytecodeOpt1:
		return "InMemoryBytecodeOpt1"
	case FieldInMemoryBytecodeOpt2:
		return "InMemoryBytecodeOpt2"
	case FieldInMemoryExtensionModuleSharedLibrary:
		return "InMemoryExtensionModuleSharedLibrary"
	case FieldInMemoryResourcesData:
		return "InMemoryResourcesData"
	case FieldInMemoryPackageDistribution:
		return "InMemoryPackageDistribution"
	case FieldInMemorySharedLibrary:
		return "InMemorySharedLibrary"
	case FieldSharedLibraryDependencyNames:
		return "SharedLibraryDependencyNames"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
