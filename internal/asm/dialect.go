// Package asm writes accumulator-machine assembly text.
package asm

import (
	"sort"
	"strings"
)

// Dialect maps the abstract instruction set onto concrete mnemonics.
type Dialect struct {
	Name      string
	Load      string
	Store     string
	Add       string
	Multiply  string
	DecOut    string // печать аккумулятора как десятичного числа
	PrintChar string
	AsciiOut  string // печать аккумулятора как символа
	Halt      string
	Declare   string
}

// DefaultDialect is used when nothing else is configured.
const DefaultDialect = "lcc"

var dialects = map[string]Dialect{
	"lcc": {
		Name:      "lcc",
		Load:      "ld",
		Store:     "st",
		Add:       "add",
		Multiply:  "mult",
		DecOut:    "dout",
		PrintChar: "pc",
		AsciiOut:  "aout",
		Halt:      "halt",
		Declare:   "dw",
	},
	"verbose": {
		Name:      "verbose",
		Load:      "load",
		Store:     "store",
		Add:       "add",
		Multiply:  "multiply",
		DecOut:    "decimal-output",
		PrintChar: "print-char",
		AsciiOut:  "ascii-output",
		Halt:      "halt",
		Declare:   "declare",
	},
}

// LookupDialect finds a dialect by case-insensitive name. Empty name means DefaultDialect.
func LookupDialect(name string) (Dialect, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultDialect
	}
	d, ok := dialects[name]
	return d, ok
}

// DialectNames returns the known dialect names, sorted.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for n := range dialects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (d Dialect) mnemonics() []string {
	return []string{d.Load, d.Store, d.Add, d.Multiply, d.DecOut, d.PrintChar, d.AsciiOut, d.Halt, d.Declare}
}
