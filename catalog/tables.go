package catalog

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/chrissimpkins/pyembed/errs"
)

// ModuleTable enumerates C-style module names from one of the host runtime's
// static tables. Next returns the next name record and true, or false once
// the table's null-name sentinel is reached. Names may carry a trailing NUL;
// anything from the first NUL on is ignored.
//
// The catalog performs a single transient, read-only walk per load; the table
// must not change while Load runs.
type ModuleTable interface {
	Next() ([]byte, bool)
}

// TableFunc adapts a plain function to the ModuleTable interface.
type TableFunc func() ([]byte, bool)

// Next implements ModuleTable.
func (f TableFunc) Next() ([]byte, bool) {
	return f()
}

// StaticTable is a ModuleTable over a fixed list of name records, used for
// hosts that expose their tables as assembled slices and throughout the
// tests.
func StaticTable(names ...[]byte) ModuleTable {
	i := 0

	return TableFunc(func() ([]byte, bool) {
		if i >= len(names) {
			return nil, false
		}
		name := names[i]
		i++

		return name, true
	})
}

// LoadBuiltins walks the host runtime's builtin module table, setting the
// builtin flag on existing entries and inserting minimal entries for names
// the resources buffer did not declare. A nil table is an empty table.
func (c *Catalog) LoadBuiltins(table ModuleTable) error {
	n, err := c.mergeTable(table, func(e *Entry) { e.IsBuiltin = true })
	if err != nil {
		return fmt.Errorf("%w: builtin module table", err)
	}

	log.Debugf("merged %d builtin modules", n)

	return nil
}

// LoadFrozen walks the host runtime's frozen module table, setting the frozen
// flag on existing entries and inserting minimal entries for names the
// resources buffer did not declare. A nil table is an empty table.
func (c *Catalog) LoadFrozen(table ModuleTable) error {
	n, err := c.mergeTable(table, func(e *Entry) { e.IsFrozen = true })
	if err != nil {
		return fmt.Errorf("%w: frozen module table", err)
	}

	log.Debugf("merged %d frozen modules", n)

	return nil
}

// mergeTable applies mark to the catalog entry for every name in the table,
// inserting a fresh entry when none exists. Marking is a set operation, so
// repeated walks of the same table are idempotent.
func (c *Catalog) mergeTable(table ModuleTable, mark func(*Entry)) (int, error) {
	if table == nil {
		return 0, nil
	}

	count := 0
	for {
		raw, ok := table.Next()
		if !ok {
			break
		}

		if i := bytes.IndexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		if !utf8.Valid(raw) {
			return count, errs.ErrInvalidTableName
		}
		name := string(raw)

		entry, ok := c.entries[name]
		if !ok {
			entry = Entry{Name: name}
		}
		mark(&entry)
		c.entries[name] = entry
		count++
	}

	return count, nil
}
