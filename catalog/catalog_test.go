package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildStream(t *testing.T, entries ...Entry) []byte {
	t.Helper()

	w := NewWriter()
	w.Add(entries...)

	data, err := w.Bytes()
	require.NoError(t, err)

	return data
}

func TestCatalog_LoadResourcesOnly(t *testing.T) {
	data := buildStream(t, Entry{Name: "foo", IsPackage: true}, Entry{Name: "bar"})

	c := New()
	require.NoError(t, c.Load(data, nil, nil))

	require.Equal(t, 2, c.Len())
	require.True(t, c.Has("foo"))
	require.True(t, c.Has("bar"))
	require.ElementsMatch(t, []string{"foo", "bar"}, c.Names())

	entry, ok := c.Get("foo")
	require.True(t, ok)
	require.True(t, entry.IsPackage)
	require.Equal(t, "foo", entry.Name)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestCatalog_BuiltinsMergeOntoDecodedEntries(t *testing.T) {
	data := buildStream(t, Entry{Name: "sys", Source: []byte("pretend")})

	c := New()
	builtins := StaticTable([]byte("sys"), []byte("marshal"))
	require.NoError(t, c.Load(data, builtins, nil))

	require.Equal(t, 2, c.Len())

	// Existing entry keeps its payloads and gains the flag.
	sys, _ := c.Get("sys")
	require.True(t, sys.IsBuiltin)
	require.Equal(t, []byte("pretend"), sys.Source)

	// Unknown name gets a minimal entry.
	marshal, _ := c.Get("marshal")
	require.True(t, marshal.IsBuiltin)
	require.False(t, marshal.IsFrozen)
	require.Nil(t, marshal.Source)
	require.False(t, marshal.UsesEmbeddedImporter())
}

func TestCatalog_FrozenMergeAndBuiltinOverlap(t *testing.T) {
	data := buildStream(t, Entry{Name: "mod"})

	c := New()
	builtins := StaticTable([]byte("mod"))
	frozen := StaticTable([]byte("mod"), []byte("_frozen_importlib"))
	require.NoError(t, c.Load(data, builtins, frozen))

	mod, _ := c.Get("mod")
	require.True(t, mod.IsBuiltin)
	require.True(t, mod.IsFrozen)

	fi, _ := c.Get("_frozen_importlib")
	require.True(t, fi.IsFrozen)
	require.False(t, fi.IsBuiltin)
}

func TestCatalog_TableMergeIdempotent(t *testing.T) {
	data := buildStream(t, Entry{Name: "mod", Bytecode: []byte("bc")})

	c := New()
	require.NoError(t, c.LoadResources(data))

	for i := 0; i < 3; i++ {
		require.NoError(t, c.LoadBuiltins(StaticTable([]byte("mod"), []byte("other"))))
	}

	require.Equal(t, 2, c.Len())
	mod, _ := c.Get("mod")
	require.True(t, mod.IsBuiltin)
	require.Equal(t, []byte("bc"), mod.Bytecode)
}

func TestCatalog_NilTables(t *testing.T) {
	c := New()
	require.NoError(t, c.Load(buildStream(t), nil, nil))
	require.Equal(t, 0, c.Len())
}

func TestCatalog_Packages(t *testing.T) {
	c := New()

	require.False(t, c.HasPackage("pkg"))
	c.AddPackage("pkg")
	c.AddPackage("pkg")
	c.AddPackage("other.pkg")

	require.True(t, c.HasPackage("pkg"))
	require.ElementsMatch(t, []string{"pkg", "other.pkg"}, c.Packages())
}

func TestCatalog_Fingerprint(t *testing.T) {
	data1 := buildStream(t, Entry{Name: "a"})
	data2 := buildStream(t, Entry{Name: "b"})

	c1 := New()
	require.NoError(t, c1.LoadResources(data1))
	c2 := New()
	require.NoError(t, c2.LoadResources(data2))

	require.NotZero(t, c1.Fingerprint())
	require.NotEqual(t, c1.Fingerprint(), c2.Fingerprint())

	again := New()
	require.NoError(t, again.LoadResources(data1))
	require.Equal(t, c1.Fingerprint(), again.Fingerprint())
}

func TestCatalog_LoadFailureSurfacesReason(t *testing.T) {
	c := New()
	err := c.Load([]byte("foo"), nil, nil)

	require.Error(t, err)
	require.EqualError(t, err, "error reading 8 byte header")
}

func TestCatalog_SharedResourcesMap(t *testing.T) {
	data := buildStream(t, Entry{
		Name:      "pkg",
		Resources: map[string][]byte{"data.txt": []byte("payload")},
	})

	c := New()
	require.NoError(t, c.LoadResources(data))

	first, _ := c.Get("pkg")
	second, _ := c.Get("pkg")

	// Both handles observe the same underlying map, not clones.
	require.NotNil(t, first.Resources)
	require.Equal(t, first.Resources["data.txt"], second.Resources["data.txt"])
	require.Same(t, &first.Resources["data.txt"][0], &second.Resources["data.txt"][0])
}
