// Package lookup answers address queries against a parsed register table.
package lookup

import (
	"fmt"

	"regmap/internal"
)

type Table struct {
	entries []internal.RegisterEntry
}

// New keeps entries in the given order; callers pass the canonical,
// decimal-ordered table.
func New(entries []internal.RegisterEntry) *Table {
	return &Table{entries: append([]internal.RegisterEntry(nil), entries...)}
}

func (t *Table) Entries() []internal.RegisterEntry {
	return append([]internal.RegisterEntry(nil), t.entries...)
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Name returns the name of the first entry with the given address. It scans
// linearly, like the generated C++ lookup.
func (t *Table) Name(address uint16) (string, bool) {
	for _, e := range t.entries {
		if e.Address == address {
			return e.Name, true
		}
	}
	return "", false
}

// Label describes a 32-bit register pair starting at upper, e.g.
// "0x0080/0x0081 (Present alarm (upper) / Present alarm (lower))".
func (t *Table) Label(upper uint16) string {
	lower := upper + 1
	upperName, hasUpper := t.Name(upper)
	lowerName, hasLower := t.Name(lower)

	switch {
	case hasUpper && hasLower:
		return fmt.Sprintf("0x%04X/0x%04X (%s / %s)", upper, lower, upperName, lowerName)
	case hasUpper:
		return fmt.Sprintf("0x%04X (%s)", upper, upperName)
	default:
		return fmt.Sprintf("0x%04X", upper)
	}
}
