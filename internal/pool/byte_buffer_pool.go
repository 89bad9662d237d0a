package pool

import "sync"

const (
	// WriterBufferDefaultSize is the default capacity of a ByteBuffer obtained
	// from the pool.
	WriterBufferDefaultSize = 1024 * 16 // 16KiB
	// WriterBufferMaxThreshold is the capacity above which a returned buffer
	// is discarded instead of pooled.
	WriterBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a reusable byte slice wrapper handed out by the pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

var writerBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, WriterBufferDefaultSize)}
	},
}

// GetWriterBuffer obtains an empty ByteBuffer from the pool.
func GetWriterBuffer() *ByteBuffer {
	bb, _ := writerBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutWriterBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped so the pool does not pin large allocations.
func PutWriterBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > WriterBufferMaxThreshold {
		return
	}

	writerBufferPool.Put(bb)
}
