package lexer

import (
	"accumc/internal/diag"
)

type Options struct {
	// Reporter получает копию ошибки лексера; может быть nil.
	// Ошибка в любом случае возвращается из Next.
	Reporter diag.Reporter
}

func (lx *Lexer) report(err *diag.Error) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(err.Code, diag.SevError, err.Tok.Span, err.Msg, nil)
	}
}
