//go:build cgo

package compress

import "github.com/valyala/gozstd"

// Compress compresses the stream as a single zstd frame. Level 9 leans
// toward ratio; frames are written once at build time.
func (ZstdCodec) Compress(stream []byte) ([]byte, error) {
	if len(stream) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, stream, 9), nil
}

// Decompress decodes the frame, appending into a buffer pre-sized from the
// recorded stream length.
func (ZstdCodec) Decompress(payload []byte, streamLen int) ([]byte, error) {
	if streamLen == 0 {
		return nil, nil
	}

	return gozstd.Decompress(make([]byte, 0, streamLen), payload)
}
