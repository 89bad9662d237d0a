package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	b := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
	require.Equal(t, uint32(0x01020304), engine.Uint32(b))

	b = engine.AppendUint16(nil, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), engine.Uint16(b))

	b = engine.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), engine.Uint64(b))
}
