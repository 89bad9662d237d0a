package section

import (
	"fmt"

	"github.com/chrissimpkins/pyembed/endian"
	"github.com/chrissimpkins/pyembed/errs"
	"github.com/chrissimpkins/pyembed/format"
)

// Header represents the fixed-size header at the start of a packed-resources
// stream, immediately after the 8-byte magic.
type Header struct {
	// BlobSectionCount is the number of blob-index records that follow the
	// fixed header, not counting the EndOfIndex terminator.
	BlobSectionCount uint8 // byte offset 8
	// BlobIndexLength is the total byte length of the blob-section index,
	// including its EndOfIndex terminator. Zero means no index and no
	// terminator.
	BlobIndexLength uint32 // byte offset 9-12
	// ResourcesCount is the number of resource entries advertised by the
	// per-entry index.
	ResourcesCount uint32 // byte offset 13-16
	// ResourcesIndexLength is the total byte length of the per-entry index,
	// including its EndOfIndex terminator.
	ResourcesIndexLength uint32 // byte offset 17-20
}

// ParseHeader parses the magic and fixed header from the start of data.
//
// Returns:
//   - Header: Parsed header values
//   - error: errs.ErrShortHeader on a short magic read, errs.ErrUnrecognizedFormat
//     on a magic or version mismatch, errs.ErrShortHeaderFields on a truncated
//     fixed header
func ParseHeader(data []byte) (Header, error) {
	if len(data) < MagicSize {
		return Header{}, errs.ErrShortHeader
	}
	if string(data[:MagicSize]) != format.MagicV1 {
		return Header{}, errs.ErrUnrecognizedFormat
	}
	if len(data) < IndexStartOffset {
		return Header{}, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrShortHeaderFields, IndexStartOffset, len(data))
	}

	engine := endian.GetLittleEndianEngine()

	return Header{
		BlobSectionCount:     data[MagicSize],
		BlobIndexLength:      engine.Uint32(data[9:13]),
		ResourcesCount:       engine.Uint32(data[13:17]),
		ResourcesIndexLength: engine.Uint32(data[17:21]),
	}, nil
}

// Bytes serializes the magic and fixed header.
func (h Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, IndexStartOffset)
	b = append(b, format.MagicV1...)
	b = append(b, h.BlobSectionCount)
	b = engine.AppendUint32(b, h.BlobIndexLength)
	b = engine.AppendUint32(b, h.ResourcesCount)
	b = engine.AppendUint32(b, h.ResourcesIndexLength)

	return b
}

// BlobStart returns the absolute byte offset of the concatenated blob region:
// everything past the magic, the fixed header and both indices.
func (h Header) BlobStart() int {
	return IndexStartOffset + int(h.BlobIndexLength) + int(h.ResourcesIndexLength)
}
