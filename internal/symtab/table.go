// Package symtab keeps the storage slots of one compilation: source
// identifiers, literal constants and compiler temporaries, in the order they
// were first seen.
package symtab

import (
	"fmt"
	"strings"
)

// DefaultInit is the initial value of identifiers and temporaries.
const DefaultInit = "0"

// Entry is a single storage slot.
type Entry struct {
	Name      string
	Init      string
	NeedsDecl bool
}

// Table is an append-only interning table. First registration of a name wins.
type Table struct {
	entries []Entry
	index   map[string]int
}

// New builds an empty table; capHint pre-sizes the backing storage.
func New(capHint int) *Table {
	if capHint < 0 {
		capHint = 0
	}
	return &Table{
		entries: make([]Entry, 0, capHint),
		index:   make(map[string]int, capHint),
	}
}

// Intern returns the slot for name, appending a new entry on first sight.
// init and needsDecl are ignored when name is already present.
func (t *Table) Intern(name, init string, needsDecl bool) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Init: init, NeedsDecl: needsDecl})
	t.index[name] = i
	return i
}

// Lookup finds an existing slot without registering it.
func (t *Table) Lookup(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len reports the number of slots.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns slot i. Panics on an index that Intern never handed out.
func (t *Table) Entry(i int) Entry {
	if i < 0 || i >= len(t.entries) {
		panic(fmt.Sprintf("symtab: slot %d out of range [0,%d)", i, len(t.entries)))
	}
	return t.entries[i]
}

// Name is a shorthand for Entry(i).Name.
func (t *Table) Name(i int) string { return t.Entry(i).Name }

// Entries returns a copy of all slots in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Declared returns the slots that need a declaration, in insertion order.
func (t *Table) Declared() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.NeedsDecl {
			out = append(out, e)
		}
	}
	return out
}

// Имена ключей. Литералы и временные начинаются с '@', которого нет в
// идентификаторах, поэтому с исходными именами они не пересекаются.

// LiteralName is the key of an unsigned (or unary plus) literal.
func LiteralName(digits string) string { return "@" + digits }

// NegLiteralName is the key of a negated literal; its initial value is "-" + digits.
func NegLiteralName(digits string) string { return "@_" + digits }

// TempName is the key of the n-th temporary.
func TempName(n int) string { return fmt.Sprintf("@t%d", n) }

// IsGenerated reports whether name is a literal or temporary key.
func IsGenerated(name string) bool { return strings.HasPrefix(name, "@") }
