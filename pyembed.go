// Package pyembed reads the packed-resources binary format an embedded
// code-loader imports modules from.
//
// A packed-resources stream is a single contiguous buffer with a split
// index/blob layout: a blob-section index declares the length of each payload
// category, a per-entry index describes every resource and claims slices out
// of the concatenated blob region, and the catalog built from it holds those
// slices zero-copy for the host runtime's importer.
//
// # Basic Usage
//
// Loading a catalog from an in-memory buffer:
//
//	import "github.com/chrissimpkins/pyembed"
//
//	cat, err := pyembed.Load(data, nil, nil)
//	if err != nil {
//	    return err
//	}
//	entry, ok := cat.Get("mypackage.mymodule")
//
// Merging the host runtime's builtin and frozen module tables:
//
//	cat, err := pyembed.Load(data, hostBuiltins, hostFrozen)
//
// Loading straight from a file without reading it into memory:
//
//	f, err := pyembed.LoadFile("packed-resources.bin", nil, nil)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	entry, ok := f.Catalog.Get("mypackage.mymodule")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the catalog
// package. For fine-grained control over decoding, writing, and table
// ingestion, use the catalog package directly.
package pyembed

import (
	"github.com/chrissimpkins/pyembed/catalog"
)

// Load builds a catalog from a packed-resources buffer, then merges the host
// runtime's builtin and frozen module tables (either may be nil).
//
// The buffer may be a canonical "pyembed" stream or a compressed "pyembedz"
// container frame; frames are unwrapped transparently.
//
// The returned catalog borrows from data (or from the decompressed stream for
// a container frame); data must stay immutable while the catalog is in use.
func Load(data []byte, builtins, frozen catalog.ModuleTable) (*catalog.Catalog, error) {
	stream, err := Unwrap(data)
	if err != nil {
		return nil, err
	}

	c := catalog.New()
	if err := c.Load(stream, builtins, frozen); err != nil {
		return nil, err
	}

	return c, nil
}
