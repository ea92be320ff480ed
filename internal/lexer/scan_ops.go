package lexer

import (
	"accumc/internal/diag"
	"accumc/internal/token"
)

// scanOperatorOrPunct читает один символ: либо односимвольный токен,
// либо Invalid с этим символом в Text.
func (lx *Lexer) scanOperatorOrPunct(tok token.Token) (token.Token, error) {
	start := lx.cursor.Mark()
	r := lx.cursor.Bump()
	tok.Span = lx.cursor.SpanFrom(start)
	tok.Text = lx.text(tok.Span)

	if r < 0x80 {
		if k, ok := token.LookupPunct(byte(r)); ok {
			tok.Kind = k
			return tok, nil
		}
	}

	tok.Kind = token.Invalid
	err := diag.InvalidToken(tok)
	lx.report(err)
	return tok, err
}
