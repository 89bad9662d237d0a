// Package catalog builds and serves the in-memory index of packed resources
// an embedded code-loader imports from.
//
// A Catalog is produced in one shot by Load: the packed-resources buffer is
// decoded into borrowed-slice entries, then the host runtime's builtin and
// frozen module tables are merged on top. After Load returns the catalog is
// read-only and safe for concurrent readers for as long as the backing buffer
// stays alive.
package catalog

import (
	log "github.com/sirupsen/logrus"

	"github.com/chrissimpkins/pyembed/internal/hash"
)

// Catalog maps resource names to entries and carries the set of package names
// registered by the importer.
type Catalog struct {
	entries     map[string]Entry
	packages    map[string]struct{}
	fingerprint uint64
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries:  make(map[string]Entry),
		packages: make(map[string]struct{}),
	}
}

// Load populates the catalog from a canonical packed-resources stream and the
// host runtime's module tables, in that order. Table loading runs last so
// builtin/frozen flags merge onto decoded entries instead of replacing them.
//
// Either table may be nil when the host has no such enumeration.
//
// The catalog state after a failed Load is unspecified and must be discarded.
func (c *Catalog) Load(data []byte, builtins, frozen ModuleTable) error {
	if err := c.LoadResources(data); err != nil {
		return err
	}
	if err := c.LoadBuiltins(builtins); err != nil {
		return err
	}
	if err := c.LoadFrozen(frozen); err != nil {
		return err
	}

	log.Debugf("catalog loaded: %d resources, fingerprint %016x", len(c.entries), c.fingerprint)

	return nil
}

// LoadResources decodes a canonical packed-resources stream into the catalog.
// Every slice inside the decoded entries aliases data, so data must stay
// immutable and alive for the catalog's lifetime.
func (c *Catalog) LoadResources(data []byte) error {
	decoder, err := NewDecoder(data)
	if err != nil {
		return err
	}

	if err := decoder.Decode(c.entries); err != nil {
		return err
	}

	c.fingerprint = hash.Sum(data)

	return nil
}

// Get returns the entry for name.
func (c *Catalog) Get(name string) (Entry, bool) {
	e, ok := c.entries[name]

	return e, ok
}

// Has reports whether an entry exists for name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries[name]

	return ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Names returns the resource names in unspecified order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}

	return names
}

// Entries returns the name→entry mapping. The map is the catalog's own;
// callers must treat it as read-only.
func (c *Catalog) Entries() map[string]Entry {
	return c.entries
}

// Fingerprint returns the xxHash64 of the most recently loaded resources
// buffer, for cache keying by the host. Zero before any LoadResources.
func (c *Catalog) Fingerprint() uint64 {
	return c.fingerprint
}

// AddPackage records a package name. Package names come from the host
// runtime's static tables and the importer's own bookkeeping, not from the
// resources buffer, so registration stays open after Load.
func (c *Catalog) AddPackage(name string) {
	c.packages[name] = struct{}{}
}

// HasPackage reports whether name is a registered package.
func (c *Catalog) HasPackage(name string) bool {
	_, ok := c.packages[name]

	return ok
}

// Packages returns the registered package names in unspecified order.
func (c *Catalog) Packages() []string {
	names := make([]string, 0, len(c.packages))
	for name := range c.packages {
		names = append(names, name)
	}

	return names
}
