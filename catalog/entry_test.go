package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntry_UsesEmbeddedImporter(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{"default", Entry{Name: "m"}, false},
		{"source only", Entry{Name: "m", Source: []byte("s")}, false},
		{"builtin only", Entry{Name: "m", IsBuiltin: true}, false},
		{"frozen only", Entry{Name: "m", IsFrozen: true}, false},
		{"shared library only", Entry{Name: "m", SharedLibrary: []byte("l")}, false},
		{"bytecode", Entry{Name: "m", Bytecode: []byte("b")}, true},
		{"bytecode opt1", Entry{Name: "m", BytecodeOpt1: []byte("b")}, true},
		{"bytecode opt2", Entry{Name: "m", BytecodeOpt2: []byte("b")}, true},
		{"extension module", Entry{Name: "m", ExtensionModuleSharedLibrary: []byte("e")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.entry.UsesEmbeddedImporter())
		})
	}
}

func TestEntry_Equal(t *testing.T) {
	base := func() Entry {
		return Entry{
			Name:      "m",
			IsPackage: true,
			Source:    []byte("source"),
			Resources: map[string][]byte{"f": []byte("v")},
		}
	}

	a, b := base(), base()
	require.True(t, a.Equal(&b))

	b = base()
	b.Name = "other"
	require.False(t, a.Equal(&b))

	b = base()
	b.Source = []byte("changed")
	require.False(t, a.Equal(&b))

	b = base()
	b.Resources["f"] = []byte("changed")
	require.False(t, a.Equal(&b))

	b = base()
	b.IsFrozen = true
	require.False(t, a.Equal(&b))

	// Content equality, not buffer identity.
	b = base()
	b.Source = append([]byte(nil), a.Source...)
	require.True(t, a.Equal(&b))
}
