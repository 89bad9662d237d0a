package pyembed

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/chrissimpkins/pyembed/compress"
	"github.com/chrissimpkins/pyembed/endian"
	"github.com/chrissimpkins/pyembed/errs"
	"github.com/chrissimpkins/pyembed/format"
	"github.com/chrissimpkins/pyembed/internal/hash"
)

// container frame header size, including the 8-byte "pyembedz" magic
const (
	containerHeaderSize = 8 + 1 + 8 + 8 // magic, compression type, uncompressed length, digest
)

// Wrap encloses a canonical packed-resources stream in a compressed container
// frame: magic, compression-type byte, u64 uncompressed length, u64 xxHash64
// digest of the stream, then the compressed payload.
//
// Hosts that embed large resource sets use the frame to keep the binary
// small; Unwrap restores the canonical stream at load time.
func Wrap(stream []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCompression, uint8(compressionType))
	}

	payload, err := codec.Compress(stream)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()

	out := make([]byte, 0, containerHeaderSize+len(payload))
	out = append(out, format.ContainerMagic...)
	out = append(out, byte(compressionType))
	out = engine.AppendUint64(out, uint64(len(stream)))
	out = engine.AppendUint64(out, hash.Sum(stream))
	out = append(out, payload...)

	return out, nil
}

// Unwrap returns the canonical packed-resources stream for data.
//
// A canonical stream passes through untouched, preserving zero-copy. A
// "pyembedz" container frame is decompressed with the codec its type byte
// names and verified against the recorded length and digest.
func Unwrap(data []byte) ([]byte, error) {
	if len(data) < len(format.ContainerMagic) || string(data[:len(format.ContainerMagic)]) != format.ContainerMagic {
		return data, nil
	}
	if len(data) < containerHeaderSize {
		return nil, fmt.Errorf("%w: truncated header", errs.ErrInvalidContainer)
	}

	engine := endian.GetLittleEndianEngine()

	compressionType := format.CompressionType(data[8])
	uncompressedLen := engine.Uint64(data[9:17])
	digest := engine.Uint64(data[17:25])

	if uncompressedLen > uint64(math.MaxInt) {
		return nil, fmt.Errorf("%w: unreasonable stream length %d", errs.ErrInvalidContainer, uncompressedLen)
	}
	streamLen := int(uncompressedLen)

	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCompression, uint8(compressionType))
	}

	stream, err := codec.Decompress(data[containerHeaderSize:], streamLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidContainer, err)
	}

	if len(stream) != streamLen {
		return nil, fmt.Errorf("%w: length %d, recorded %d", errs.ErrInvalidContainer, len(stream), streamLen)
	}
	if hash.Sum(stream) != digest {
		return nil, errs.ErrDigestMismatch
	}

	log.Debugf("unwrapped %s container: %d -> %d bytes", compressionType, len(data), len(stream))

	return stream, nil
}
