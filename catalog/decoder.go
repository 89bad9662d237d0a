package catalog

import (
	"fmt"
	"unicode/utf8"

	"github.com/chrissimpkins/pyembed/endian"
	"github.com/chrissimpkins/pyembed/errs"
	"github.com/chrissimpkins/pyembed/format"
	"github.com/chrissimpkins/pyembed/section"
)

// Decoder parses a canonical packed-resources stream into resource entries.
//
// Decoding is a strict two-pass walk: the blob-section index fixes the base
// offset of each payload category inside the blob region, then the per-entry
// index claims slices from those categories through independently advancing
// cursors. Every slice handed to an Entry aliases the input buffer.
//
// Note: The Decoder is NOT reusable. After calling Decode, a new decoder must
// be created for further decoding.
type Decoder struct {
	data    []byte
	pos     int
	engine  endian.EndianEngine
	header  section.Header
	cursors *section.Cursors
}

// NewDecoder creates a Decoder for the given stream and parses its magic and
// fixed header.
//
// Returns:
//   - *Decoder: Decoder positioned at the blob-section index
//   - error: errs.ErrShortHeader, errs.ErrUnrecognizedFormat, or a truncated
//     fixed header
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		data:   data,
		pos:    section.IndexStartOffset,
		engine: endian.GetLittleEndianEngine(),
		header: header,
	}, nil
}

// Header returns the parsed fixed header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Decode walks both indices and inserts every decoded entry into dst.
//
// dst may already hold entries from a previous stream; names decoded here
// replace same-named entries, matching writer-then-runtime load ordering.
//
// Returns:
//   - error: Any blob-index or per-entry failure; dst is unspecified on error
//     and must be discarded
func (d *Decoder) Decode(dst map[string]Entry) error {
	if d.header.BlobIndexLength > 0 {
		blobIndex, pos, err := section.ParseBlobIndex(d.data, d.pos, d.header.BlobSectionCount)
		if err != nil {
			return err
		}
		d.pos = pos
		d.cursors = blobIndex.Cursors(d.data, d.header.BlobStart())
	} else {
		d.cursors = section.BlobIndex{}.Cursors(d.data, d.header.BlobStart())
	}

	// An absent or empty per-entry index decodes as an empty catalog even
	// when a count is advertised.
	if d.header.ResourcesIndexLength == 0 || d.header.ResourcesCount == 0 {
		return nil
	}

	return d.decodeEntries(dst)
}

func (d *Decoder) decodeEntries(dst map[string]Entry) error {
	var (
		scratch    Entry
		nameSet    bool
		inside     bool
		entryCount uint32
	)

	for {
		fieldType, err := d.readU8("field type")
		if err != nil {
			return err
		}

		tag := format.FieldType(fieldType)

		if tag == format.FieldEndOfIndex {
			break
		}

		switch tag {
		case format.FieldStartOfEntry:
			entryCount++
			scratch = Entry{}
			nameSet = false
			inside = true

			continue

		case format.FieldEndOfEntry:
			if !nameSet {
				return errs.ErrNameRequired
			}
			dst[scratch.Name] = scratch
			scratch = Entry{}
			nameSet = false
			inside = false

			continue
		}

		if !inside {
			return fmt.Errorf("%w: %s before start of entry", errs.ErrInvalidFieldType, tag)
		}

		switch tag {
		case format.FieldModuleName:
			name, err := d.takeString(format.FieldModuleName, "resource name")
			if err != nil {
				return err
			}
			scratch.Name = name
			nameSet = true

		case format.FieldIsPackage:
			scratch.IsPackage = true

		case format.FieldIsNamespacePackage:
			scratch.IsNamespacePackage = true

		case format.FieldInMemorySource:
			scratch.Source, err = d.takeSized32(tag, "source length")

		case format.FieldInMemoryBytecode:
			scratch.Bytecode, err = d.takeSized32(tag, "bytecode length")

		case format.FieldInMemoryBytecodeOpt1:
			scratch.BytecodeOpt1, err = d.takeSized32(tag, "bytecode length")

		case format.FieldInMemoryBytecodeOpt2:
			scratch.BytecodeOpt2, err = d.takeSized32(tag, "bytecode length")

		case format.FieldInMemoryExtensionModuleSharedLibrary:
			scratch.ExtensionModuleSharedLibrary, err = d.takeSized32(tag, "extension module length")

		case format.FieldInMemoryResourcesData:
			scratch.Resources, err = d.takeFileMap(tag, "resources")

		case format.FieldInMemoryPackageDistribution:
			scratch.PackageDistribution, err = d.takeFileMap(tag, "package distribution")

		case format.FieldInMemorySharedLibrary:
			scratch.SharedLibrary, err = d.takeSized64(tag, "shared library length")

		case format.FieldSharedLibraryDependencyNames:
			scratch.SharedLibraryDependencyNames, err = d.takeDependencyNames()

		default:
			return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidFieldType, fieldType)
		}

		if err != nil {
			return err
		}
	}

	if entryCount != d.header.ResourcesCount {
		return errs.ErrCountMismatch
	}

	return nil
}

// takeString claims a u16-length-prefixed name slice from the given category
// and validates it as UTF-8.
func (d *Decoder) takeString(tag format.FieldType, what string) (string, error) {
	length, err := d.readU16(what + " length")
	if err != nil {
		return "", err
	}

	raw, err := d.cursors.Take(tag, int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errs.ErrInvalidName
	}

	return unsafeString(raw), nil
}

// takeSized32 claims a u32-length-prefixed payload slice.
func (d *Decoder) takeSized32(tag format.FieldType, what string) ([]byte, error) {
	length, err := d.readU32(what)
	if err != nil {
		return nil, err
	}

	return d.cursors.Take(tag, int(length))
}

// takeSized64 claims a u64-length-prefixed payload slice.
func (d *Decoder) takeSized64(tag format.FieldType, what string) ([]byte, error) {
	length, err := d.readU64(what)
	if err != nil {
		return nil, err
	}

	n, err := lengthToInt(length)
	if err != nil {
		return nil, err
	}

	return d.cursors.Take(tag, n)
}

// takeFileMap decodes a u32-count sequence of (u16 name, u64 value) pairs, all
// drawn from the same category cursor: name bytes then value bytes, back to
// back, per pair.
func (d *Decoder) takeFileMap(tag format.FieldType, what string) (map[string][]byte, error) {
	count, err := d.readU32(what + " count")
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, count)
	for i := uint32(0); i < count; i++ {
		name, err := d.takeString(tag, what+" name")
		if err != nil {
			return nil, err
		}

		valueLength, err := d.readU64(what + " value length")
		if err != nil {
			return nil, err
		}
		n, err := lengthToInt(valueLength)
		if err != nil {
			return nil, err
		}

		value, err := d.cursors.Take(tag, n)
		if err != nil {
			return nil, err
		}

		files[name] = value
	}

	return files, nil
}

// takeDependencyNames decodes a u16-count sequence of u16-length-prefixed
// names from the dependency-names cursor.
func (d *Decoder) takeDependencyNames() ([]string, error) {
	count, err := d.readU16("dependency names count")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		name, err := d.takeString(format.FieldSharedLibraryDependencyNames, "dependency name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

func (d *Decoder) readU8(what string) (uint8, error) {
	if d.pos >= len(d.data) {
		return 0, fmt.Errorf("%w: %s", errs.ErrShortFieldRead, what)
	}
	v := d.data[d.pos]
	d.pos++

	return v, nil
}

func (d *Decoder) readU16(what string) (uint16, error) {
	if d.pos+2 > len(d.data) {
		return 0, fmt.Errorf("%w: %s", errs.ErrShortFieldRead, what)
	}
	v := d.engine.Uint16(d.data[d.pos : d.pos+2])
	d.pos += 2

	return v, nil
}

func (d *Decoder) readU32(what string) (uint32, error) {
	if d.pos+4 > len(d.data) {
		return 0, fmt.Errorf("%w: %s", errs.ErrShortFieldRead, what)
	}
	v := d.engine.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4

	return v, nil
}

func (d *Decoder) readU64(what string) (uint64, error) {
	if d.pos+8 > len(d.data) {
		return 0, fmt.Errorf("%w: %s", errs.ErrShortFieldRead, what)
	}
	v := d.engine.Uint64(d.data[d.pos : d.pos+8])
	d.pos += 8

	return v, nil
}
