package lexer

import (
	"unicode/utf8"

	"accumc/internal/source"
)

// Cursor walks a file rune by rune and knows where the next rune sits.
// Columns count runes; '\n' belongs to the line it ends. At end of input
// the position is column 1 of the current line.
type Cursor struct {
	src  []byte
	file source.FileID
	Off  uint32

	line, col uint32 // позиция следующей руны, с единицы
}

func NewCursor(f *source.File) Cursor {
	return Cursor{src: f.Content, file: f.ID, line: 1, col: 1}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// Peek returns the next rune without consuming it; size is 0 at EOF.
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.src[c.Off:])
}

// Bump consumes one rune; at EOF it is a no-op.
func (c *Cursor) Bump() rune {
	r, size := c.Peek()
	if size == 0 {
		return r
	}
	c.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	if r == '\n' {
		c.line, c.col = c.line+1, 1
	} else {
		c.col++
	}
	return r
}

func (c *Cursor) Pos() source.LineCol {
	if c.EOF() {
		return source.LineCol{Line: c.line, Col: 1}
	}
	return source.LineCol{Line: c.line, Col: c.col}
}

// Mark remembers an offset for SpanFrom.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers everything consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
