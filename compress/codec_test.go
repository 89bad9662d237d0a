package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chrissimpkins/pyembed/format"
)

func testPayload() []byte {
	// Repetitive enough that every real codec shrinks it.
	return bytes.Repeat([]byte("packed resources payload "), 64)
}

func TestCodec_RoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			stream := testPayload()
			compressed, err := codec.Compress(stream)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed, len(stream))
			require.NoError(t, err)
			require.Equal(t, stream, restored)
		})
	}
}

func TestCodec_EmptyStream(t *testing.T) {
	for ct := range codecs {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed, 0)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestCodec_CompressionShrinksPayload(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			stream := testPayload()
			compressed, err := codec.Compress(stream)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(stream))
		})
	}
}

func TestCodec_NoOpSharesBuffer(t *testing.T) {
	codec := NoOpCodec{}

	stream := testPayload()
	compressed, err := codec.Compress(stream)
	require.NoError(t, err)
	require.Same(t, &stream[0], &compressed[0])

	restored, err := codec.Decompress(compressed, len(stream))
	require.NoError(t, err)
	require.Same(t, &stream[0], &restored[0])
}

func TestCodec_LZ4LengthHintTooSmall(t *testing.T) {
	codec := LZ4Codec{}

	stream := testPayload()
	compressed, err := codec.Compress(stream)
	require.NoError(t, err)

	// A recorded length shorter than the real stream cannot hold the block.
	_, err = codec.Decompress(compressed, 1)
	require.Error(t, err)
}

func TestCodec_CorruptInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress([]byte("definitely not a compressed frame"), 64)
			require.Error(t, err)
		})
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))

	require.Error(t, err)
}
