package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"accumc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Line uint32 // 1-based
	Col  uint32 // 1-based, column of the first character
	Text string
	Span source.Span
}

// IsOperator reports whether the token is an arithmetic operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a one-character punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Assign, Semicolon, LParen, RParen, Plus, Minus, Star:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind == KwPrintln }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Image returns Text the way diagnostics quote the offending token:
// printable runes as is, control characters as C escapes and bytes that
// are not UTF-8 as \xNN.
func (t Token) Image() string {
	var b strings.Builder
	for s := t.Text; s != ""; {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[0])
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case strconv.IsPrint(r):
			b.WriteRune(r)
		default:
			q := strconv.QuoteRuneToASCII(r)
			b.WriteString(q[1 : len(q)-1])
		}
		s = s[size:]
	}
	return b.String()
}
