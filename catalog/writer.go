package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/chrissimpkins/pyembed/endian"
	"github.com/chrissimpkins/pyembed/errs"
	"github.com/chrissimpkins/pyembed/format"
	"github.com/chrissimpkins/pyembed/internal/pool"
	"github.com/chrissimpkins/pyembed/section"
)

// Writer produces a canonical version 1 packed-resources stream from a set
// of entries. It is the companion to Decoder: decoding a writer's output
// yields the same entries, value for value.
//
// Blob sections are emitted in field-tag order for the categories any entry
// uses; per-entry records are emitted in field-tag order; map payloads are
// emitted in sorted key order so output bytes are deterministic.
//
// The builtin and frozen flags are runtime state, not stream state, and are
// not serialized.
type Writer struct {
	entries []Entry
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Add appends entries to the stream in the order given.
func (w *Writer) Add(entries ...Entry) {
	w.entries = append(w.entries, entries...)
}

// Bytes assembles and returns the packed-resources stream.
//
// Returns:
//   - []byte: Complete stream, magic through blob region
//   - error: errs.ErrNameRequired for an unnamed entry, or a payload that
//     overflows its wire width
func (w *Writer) Bytes() ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	var blobs [format.FieldCount][]byte
	present := [format.FieldCount]bool{}

	index := pool.GetWriterBuffer()
	defer pool.PutWriterBuffer(index)

	appendBlob := func(tag format.FieldType, payload []byte) {
		present[tag] = true
		blobs[tag] = append(blobs[tag], payload...)
	}

	for i := range w.entries {
		entry := &w.entries[i]
		if entry.Name == "" {
			return nil, errs.ErrNameRequired
		}
		if len(entry.Name) > math.MaxUint16 {
			return nil, fmt.Errorf("resource name too long: %d bytes", len(entry.Name))
		}

		index.B = append(index.B, byte(format.FieldStartOfEntry))

		index.B = append(index.B, byte(format.FieldModuleName))
		index.B = engine.AppendUint16(index.B, uint16(len(entry.Name)))
		appendBlob(format.FieldModuleName, []byte(entry.Name))

		if entry.IsPackage {
			index.B = append(index.B, byte(format.FieldIsPackage))
		}
		if entry.IsNamespacePackage {
			index.B = append(index.B, byte(format.FieldIsNamespacePackage))
		}

		sized32 := []struct {
			tag     format.FieldType
			payload []byte
		}{
			{format.FieldInMemorySource, entry.Source},
			{format.FieldInMemoryBytecode, entry.Bytecode},
			{format.FieldInMemoryBytecodeOpt1, entry.BytecodeOpt1},
			{format.FieldInMemoryBytecodeOpt2, entry.BytecodeOpt2},
			{format.FieldInMemoryExtensionModuleSharedLibrary, entry.ExtensionModuleSharedLibrary},
		}
		for _, field := range sized32 {
			if field.payload == nil {
				continue
			}
			if uint64(len(field.payload)) > math.MaxUint32 {
				return nil, fmt.Errorf("%s payload too large: %d bytes", field.tag, len(field.payload))
			}
			index.B = append(index.B, byte(field.tag))
			index.B = engine.AppendUint32(index.B, uint32(len(field.payload)))
			appendBlob(field.tag, field.payload)
		}

		if entry.Resources != nil {
			if err := w.appendFileMap(engine, index, appendBlob, format.FieldInMemoryResourcesData, entry.Resources); err != nil {
				return nil, err
			}
		}
		if entry.PackageDistribution != nil {
			if err := w.appendFileMap(engine, index, appendBlob, format.FieldInMemoryPackageDistribution, entry.PackageDistribution); err != nil {
				return nil, err
			}
		}

		if entry.SharedLibrary != nil {
			index.B = append(index.B, byte(format.FieldInMemorySharedLibrary))
			index.B = engine.AppendUint64(index.B, uint64(len(entry.SharedLibrary)))
			appendBlob(format.FieldInMemorySharedLibrary, entry.SharedLibrary)
		}

		if entry.SharedLibraryDependencyNames != nil {
			if len(entry.SharedLibraryDependencyNames) > math.MaxUint16 {
				return nil, fmt.Errorf("too many dependency names: %d", len(entry.SharedLibraryDependencyNames))
			}
			index.B = append(index.B, byte(format.FieldSharedLibraryDependencyNames))
			index.B = engine.AppendUint16(index.B, uint16(len(entry.SharedLibraryDependencyNames)))
			for _, name := range entry.SharedLibraryDependencyNames {
				if len(name) > math.MaxUint16 {
					return nil, fmt.Errorf("dependency name too long: %d bytes", len(name))
				}
				index.B = engine.AppendUint16(index.B, uint16(len(name)))
				appendBlob(format.FieldSharedLibraryDependencyNames, []byte(name))
			}
		}

		index.B = append(index.B, byte(format.FieldEndOfEntry))
	}

	index.B = append(index.B, byte(format.FieldEndOfIndex))

	var sectionCount uint8
	blobIndexLength := 1 // terminator
	blobTotal := 0
	for tag := format.FieldType(0); tag < format.FieldCount; tag++ {
		if present[tag] {
			sectionCount++
			blobIndexLength += section.BlobIndexRecordSize
			blobTotal += len(blobs[tag])
		}
	}

	header := section.Header{
		BlobSectionCount:     sectionCount,
		BlobIndexLength:      uint32(blobIndexLength),
		ResourcesCount:       uint32(len(w.entries)),
		ResourcesIndexLength: uint32(index.Len()),
	}

	out := make([]byte, 0, section.IndexStartOffset+blobIndexLength+index.Len()+blobTotal)
	out = append(out, header.Bytes()...)

	for tag := format.FieldType(0); tag < format.FieldCount; tag++ {
		if !present[tag] {
			continue
		}
		out = append(out, byte(tag))
		out = engine.AppendUint64(out, uint64(len(blobs[tag])))
	}
	out = append(out, byte(format.FieldEndOfIndex))

	out = append(out, index.B...)

	for tag := format.FieldType(0); tag < format.FieldCount; tag++ {
		if present[tag] {
			out = append(out, blobs[tag]...)
		}
	}

	return out, nil
}

// appendFileMap emits a (u32 count, then u16 name length + u64 value length
// per file) index record and pushes name and value bytes onto the category
// blob, names sorted for deterministic output.
func (w *Writer) appendFileMap(
	engine endian.EndianEngine,
	index *pool.ByteBuffer,
	appendBlob func(format.FieldType, []byte),
	tag format.FieldType,
	files map[string][]byte,
) error {
	if uint64(len(files)) > math.MaxUint32 {
		return fmt.Errorf("too many files in %s: %d", tag, len(files))
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	index.B = append(index.B, byte(tag))
	index.B = engine.AppendUint32(index.B, uint32(len(files)))

	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return fmt.Errorf("file name too long in %s: %d bytes", tag, len(name))
		}
		index.B = engine.AppendUint16(index.B, uint16(len(name)))
		appendBlob(tag, []byte(name))

		index.B = engine.AppendUint64(index.B, uint64(len(files[name])))
		appendBlob(tag, files[name])
	}

	return nil
}
