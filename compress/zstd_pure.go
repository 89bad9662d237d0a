//go:build !cgo

package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compress compresses the stream as a single zstd frame. The encoder is
// created per call and closed; a container is wrapped once at build time, so
// there is no warm state worth keeping.
func (ZstdCodec) Compress(stream []byte) ([]byte, error) {
	if len(stream) == 0 {
		return nil, nil
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	return encoder.EncodeAll(stream, nil), nil
}

// Decompress decodes the frame, appending into a buffer pre-sized from the
// recorded stream length.
func (ZstdCodec) Decompress(payload []byte, streamLen int) ([]byte, error) {
	if streamLen == 0 {
		return nil, nil
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(payload, make([]byte, 0, streamLen))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
