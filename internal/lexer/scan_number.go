package lexer

import (
	"accumc/internal/token"
)

// scanNumber сканирует беззнаковое целое: [0-9]+.
// Знак никогда не входит в литерал — унарные +/- разбирает парсер.
func (lx *Lexer) scanNumber(tok token.Token) token.Token {
	start := lx.cursor.Mark()
	for {
		r, sz := lx.cursor.Peek()
		if sz == 0 || !isDec(r) {
			break
		}
		lx.cursor.Bump()
	}
	tok.Kind = token.Unsigned
	tok.Span = lx.cursor.SpanFrom(start)
	tok.Text = lx.text(tok.Span)
	return tok
}
