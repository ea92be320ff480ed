package lexer

import (
	"accumc/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword(tok token.Token) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		r, sz := lx.cursor.Peek()
		if sz == 0 || !isIdentContinue(r) {
			break
		}
		lx.cursor.Bump()
	}

	tok.Span = lx.cursor.SpanFrom(start)
	tok.Text = lx.text(tok.Span)
	tok.Kind = token.Ident
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}
