// Package compress provides the codecs behind the compressed container frame
// that may wrap a packed-resources stream.
//
// Container compression has a narrower shape than general-purpose payload
// compression: a frame is compressed once at build time, decompressed at most
// once per process start, and the frame header records the uncompressed
// stream length. The Codec interface reflects that: Decompress receives the
// recorded length and allocates its output exactly, and no codec keeps warm
// encoder state between calls.
package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"

	"github.com/chrissimpkins/pyembed/format"
)

// Codec compresses and restores a complete packed-resources stream.
type Codec interface {
	// Compress compresses the stream. The input is not modified. The returned
	// slice may alias the input: NoOpCodec returns the stream itself.
	Compress(stream []byte) ([]byte, error)

	// Decompress restores a stream of streamLen bytes from a frame payload.
	// streamLen is the length recorded in the container header; a payload
	// that decodes to any other length is corrupt, which the caller detects
	// by comparing the result against streamLen.
	Decompress(payload []byte, streamLen int) ([]byte, error)
}

// NoOpCodec stores the stream uncompressed. Frames built with it still carry
// the length and digest, so hosts get integrity checking without paying for
// decompression.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// Compress returns the stream as-is, without copying.
func (NoOpCodec) Compress(stream []byte) ([]byte, error) {
	return stream, nil
}

// Decompress returns the payload as-is, without copying. The caller's length
// comparison against streamLen is the only validation a stored stream needs.
func (NoOpCodec) Decompress(payload []byte, _ int) ([]byte, error) {
	return payload, nil
}

// S2Codec compresses with S2. EncodeBetter trades build-time encode speed for
// ratio, the right side of the trade for a frame written once and shipped.
type S2Codec struct{}

var _ Codec = S2Codec{}

// Compress compresses the stream as a single S2 block.
func (S2Codec) Compress(stream []byte) ([]byte, error) {
	if len(stream) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, stream), nil
}

// Decompress decodes the payload into a buffer sized from the recorded
// stream length.
func (S2Codec) Decompress(payload []byte, streamLen int) ([]byte, error) {
	if streamLen == 0 {
		return nil, nil
	}

	return s2.Decode(make([]byte, streamLen), payload)
}

// LZ4Codec compresses with the LZ4 block format.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// Compress compresses the stream as a single LZ4 block.
func (LZ4Codec) Compress(stream []byte) ([]byte, error) {
	if len(stream) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(stream)))

	var c lz4.Compressor
	n, err := c.CompressBlock(stream, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes the block into a buffer of exactly streamLen bytes.
//
// The block format does not record its decoded length, so a blind decode
// would have to guess a buffer size and grow on failure; the container
// header's recorded length makes one allocation and one decode sufficient.
func (LZ4Codec) Decompress(payload []byte, streamLen int) ([]byte, error) {
	if streamLen == 0 {
		return nil, nil
	}

	buf := make([]byte, streamLen)
	n, err := lz4.UncompressBlock(payload, buf)
	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}

// ZstdCodec compresses with Zstandard, for hosts that favor ratio over
// unwrap speed.
//
// The implementation is selected at build time: gozstd (cgo bindings to
// libzstd) when cgo is available, the pure-Go klauspost/compress encoder
// otherwise. Both produce standard zstd frames and interoperate freely.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

var codecs = map[format.CompressionType]Codec{
	format.CompressionNone: NoOpCodec{},
	format.CompressionZstd: ZstdCodec{},
	format.CompressionS2:   S2Codec{},
	format.CompressionLZ4:  LZ4Codec{},
}

// GetCodec retrieves the Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := codecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
