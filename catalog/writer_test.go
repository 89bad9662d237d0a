package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chrissimpkins/pyembed/errs"
)

func TestWriter_Empty(t *testing.T) {
	data, err := NewWriter().Bytes()

	require.NoError(t, err)
	// Magic, empty-but-terminated blob index, terminated per-entry index.
	require.Equal(t, []byte("pyembed\x01\x00\x01\x00\x00\x00\x00\x00\x00\x00\x01\x00\x00\x00\x00\x00"), data)
}

func TestWriter_SingleEntryLayout(t *testing.T) {
	w := NewWriter()
	w.Add(Entry{Name: "foo", Source: []byte("source")})

	data, err := w.Bytes()
	require.NoError(t, err)

	expected := []byte("pyembed\x01" + // magic
		"\x02" + // two blob sections
		"\x13\x00\x00\x00" + // blob index length: 2 records + terminator
		"\x01\x00\x00\x00" + // one resource
		"\x0b\x00\x00\x00" + // per-entry index length
		"\x03\x03\x00\x00\x00\x00\x00\x00\x00" + // module name blob: 3 bytes
		"\x06\x06\x00\x00\x00\x00\x00\x00\x00" + // source blob: 6 bytes
		"\x00" + // end of blob index
		"\x01" + // start of entry
		"\x03\x03\x00" + // module name, length 3
		"\x06\x06\x00\x00\x00" + // source, length 6
		"\x02" + // end of entry
		"\x00" + // end of index
		"foo" +
		"source")
	require.Equal(t, expected, data)
}

func TestWriter_MissingName(t *testing.T) {
	w := NewWriter()
	w.Add(Entry{Source: []byte("source")})

	_, err := w.Bytes()

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNameRequired)
}

func TestWriter_DeterministicMapOrder(t *testing.T) {
	entry := Entry{
		Name: "foo",
		Resources: map[string][]byte{
			"b": []byte("bb"),
			"a": []byte("aa"),
			"c": []byte("cc"),
		},
	}

	w1 := NewWriter()
	w1.Add(entry)
	first, err := w1.Bytes()
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		w2 := NewWriter()
		w2.Add(entry)
		again, err := w2.Bytes()
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestWriter_EntryOrderPreserved(t *testing.T) {
	w := NewWriter()
	w.Add(
		Entry{Name: "a", Source: []byte("one")},
		Entry{Name: "b", Source: []byte("two")},
		Entry{Name: "c", Source: []byte("three")},
	)

	data, err := w.Bytes()
	require.NoError(t, err)

	// Same-category payloads appear back to back in decode order.
	require.Contains(t, string(data), "onetwothree")

	decoded, err := decodeInto(t, data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	require.Equal(t, []byte("three"), decoded["c"].Source)
}
