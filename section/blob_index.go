package section

import (
	"fmt"
	"math"

	"github.com/chrissimpkins/pyembed/endian"
	"github.com/chrissimpkins/pyembed/errs"
	"github.com/chrissimpkins/pyembed/format"
)

// BlobIndex holds the per-category starting offsets declared by the
// blob-section index. Offsets are relative to the start of the concatenated
// blob region; a category absent from the index keeps offset zero, which is
// irrelevant because no entry will reference it.
type BlobIndex struct {
	offsets [format.FieldCount]int
	total   int
}

// ParseBlobIndex walks count (u8 tag, u64 length) records starting at
// data[pos], maintaining a running total offset per category, and then
// consumes the EndOfIndex terminator.
//
// Returns:
//   - BlobIndex: Per-category base offsets
//   - int: Position just past the terminator
//   - error: Premature EndOfIndex, unrecognized tag, missing terminator,
//     truncated record, or a length that overflows int
func ParseBlobIndex(data []byte, pos int, count uint8) (BlobIndex, int, error) {
	var idx BlobIndex

	engine := endian.GetLittleEndianEngine()

	for i := 0; i < int(count); i++ {
		if pos >= len(data) {
			return idx, pos, fmt.Errorf("%w: blob section field type", errs.ErrShortFieldRead)
		}
		tag := format.FieldType(data[pos])
		pos++

		if tag == format.FieldEndOfIndex {
			return idx, pos, errs.ErrUnexpectedBlobIndexEnd
		}
		if !tag.IsBlobPayload() {
			return idx, pos, fmt.Errorf("%w: 0x%02x", errs.ErrUnhandledBlobField, uint8(tag))
		}

		if pos+8 > len(data) {
			return idx, pos, fmt.Errorf("%w: blob section length", errs.ErrShortFieldRead)
		}
		length := engine.Uint64(data[pos : pos+8])
		pos += 8

		if length > math.MaxInt-uint64(idx.total) {
			return idx, pos, fmt.Errorf("%w: %s", errs.ErrLengthOverflow, tag)
		}

		idx.offsets[tag] = idx.total
		idx.total += int(length)
	}

	if pos >= len(data) {
		return idx, pos, fmt.Errorf("%w: blob index terminator", errs.ErrShortFieldRead)
	}
	if format.FieldType(data[pos]) != format.FieldEndOfIndex {
		return idx, pos, errs.ErrBlobIndexTerminator
	}
	pos++

	return idx, pos, nil
}

// Cursors tracks one read position per payload category inside the blob
// region. Each position starts at the category's declared base offset and
// advances only when an entry claims a slice of that category.
type Cursors struct {
	data []byte
	pos  [format.FieldCount]int
}

// Cursors materializes the cursor table for a blob region beginning at
// absolute offset blobStart in data.
func (b BlobIndex) Cursors(data []byte, blobStart int) *Cursors {
	c := &Cursors{data: data}
	for tag := range c.pos {
		c.pos[tag] = blobStart + b.offsets[tag]
	}

	return c
}

// Take claims the next n bytes of the given payload category and advances its
// cursor. The returned slice aliases data; it is never a copy.
//
// Returns:
//   - []byte: Borrowed slice of length n
//   - error: errs.ErrBlobOutOfRange if the claim overruns the buffer
func (c *Cursors) Take(tag format.FieldType, n int) ([]byte, error) {
	pos := c.pos[tag]
	if n < 0 || pos+n > len(c.data) || pos+n < pos {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, buffer is %d",
			errs.ErrBlobOutOfRange, tag, n, pos, len(c.data))
	}

	c.pos[tag] = pos + n

	return c.data[pos : pos+n], nil
}
