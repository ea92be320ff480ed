package lexer

import (
	"testing"

	"accumc/internal/source"
)

func newCursor(t *testing.T, input string) Cursor {
	t.Helper()
	fs := source.NewFileSet()
	return NewCursor(fs.Get(fs.AddVirtual("cursor.s", []byte(input))))
}

func TestCursorPosTracksLinesAndColumns(t *testing.T) {
	c := newCursor(t, "ab\nc")

	steps := []struct {
		before source.LineCol
		r      rune
	}{
		{source.LineCol{Line: 1, Col: 1}, 'a'},
		{source.LineCol{Line: 1, Col: 2}, 'b'},
		{source.LineCol{Line: 1, Col: 3}, '\n'},
		{source.LineCol{Line: 2, Col: 1}, 'c'},
	}
	for i, st := range steps {
		if got := c.Pos(); got != st.before {
			t.Fatalf("step %d: Pos() = %+v, want %+v", i, got, st.before)
		}
		if r := c.Bump(); r != st.r {
			t.Fatalf("step %d: Bump() = %q, want %q", i, r, st.r)
		}
	}
	if !c.EOF() {
		t.Fatal("expected EOF")
	}
	// без завершающего '\n' EOF остаётся на последней строке
	if got := c.Pos(); got != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("EOF Pos() = %+v", got)
	}
}

func TestCursorEOFAfterTrailingNewline(t *testing.T) {
	c := newCursor(t, "x\n")
	c.Bump()
	c.Bump()
	if got := c.Pos(); got != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("EOF Pos() = %+v, want line 2 col 1", got)
	}
	// Bump на EOF ничего не меняет
	c.Bump()
	if got := c.Pos(); got != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("EOF Pos() after extra Bump = %+v", got)
	}
}

func TestCursorEmptyInput(t *testing.T) {
	c := newCursor(t, "")
	if got := c.Pos(); got != (source.LineCol{Line: 1, Col: 1}) {
		t.Fatalf("Pos() = %+v", got)
	}
}

func TestCursorMultibyteCountsAsOneColumn(t *testing.T) {
	c := newCursor(t, "éx")
	m := c.Mark()
	c.Bump()
	if got := c.Pos(); got != (source.LineCol{Line: 1, Col: 2}) {
		t.Fatalf("Pos() = %+v", got)
	}
	if sp := c.SpanFrom(m); sp.Len() != 2 {
		t.Fatalf("span len = %d, want 2 bytes", sp.Len())
	}
}
