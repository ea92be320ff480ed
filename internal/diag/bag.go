package diag

import (
	"cmp"
	"math"
	"slices"
)

// Bag collects diagnostics up to a limit; extra reports are dropped.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag clamps limit into [1, 65535]; a non-positive limit means the maximum.
func NewBag(limit int) *Bag {
	if limit <= 0 || limit > math.MaxUint16 {
		limit = math.MaxUint16
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 16)), limit: limit}
}

// Add reports false when the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool { return b.any(SevError) }

func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) any(atLeast Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= atLeast })
}

func (b *Bag) Len() int { return len(b.items) }

// Items shares the backing array; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends everything from other, growing the limit to fit.
func (b *Bag) Merge(other *Bag) {
	if other == nil || len(other.items) == 0 {
		return
	}
	b.limit = min(max(b.limit, len(b.items)+len(other.items)), math.MaxUint16)
	room := b.limit - len(b.items)
	b.items = append(b.items, other.items[:min(room, len(other.items))]...)
}

// Sort orders by file, span, then severity (worst first) and code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for every (code, span) pair.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span [3]uint32
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, [3]uint32{uint32(d.Primary.File), d.Primary.Start, d.Primary.End}}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
