package pyembed

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	log "github.com/sirupsen/logrus"

	"github.com/chrissimpkins/pyembed/catalog"
)

// File is a catalog backed by a memory-mapped packed-resources file. The
// catalog's entries alias the mapping, so the File must stay open for as long
// as the catalog is in use.
type File struct {
	// Catalog is the loaded resource catalog.
	Catalog *catalog.Catalog

	data mmap.MMap
	f    *os.File
}

// LoadFile memory-maps the packed-resources file at path read-only and loads
// a catalog from the mapping in place. For canonical streams no byte of the
// file is copied; container frames decompress into a private buffer.
//
// The host runtime's builtin and frozen module tables merge as in Load;
// either may be nil.
func LoadFile(path string, builtins, frozen catalog.ModuleTable) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// Memory map the file instead of reading it into the heap.
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	log.Debugf("mapped %s: %d bytes", path, len(data))

	c, err := Load(data, builtins, frozen)
	if err != nil {
		data.Unmap()
		f.Close()

		return nil, err
	}

	return &File{Catalog: c, data: data, f: f}, nil
}

// Close unmaps the file and releases the descriptor. The catalog and every
// entry in it are invalid after Close.
func (pf *File) Close() error {
	var firstErr error
	if pf.data != nil {
		firstErr = pf.data.Unmap()
		pf.data = nil
	}
	if pf.f != nil {
		if err := pf.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		pf.f = nil
	}

	return firstErr
}
