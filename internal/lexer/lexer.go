package lexer

import (
	"accumc/internal/source"
	"accumc/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	err    error        // первая ошибка; после неё лексер больше не двигается
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен и сдвигается за него.
// После EOF всегда возвращает EOF. Если встретился символ, не подходящий ни
// под один класс токенов, возвращается токен Invalid и *diag.Error; все
// последующие вызовы возвращают ту же ошибку.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}
	if lx.err != nil {
		return token.Token{Kind: token.Invalid}, lx.err
	}

	lx.skipSpace()

	pos := lx.cursor.Pos()
	tok := token.Token{Line: pos.Line, Col: pos.Col}

	r, sz := lx.cursor.Peek()
	switch {
	case sz == 0:
		tok.Kind = token.EOF
		tok.Span = lx.emptySpan()
		return tok, nil
	case isDec(r):
		return lx.scanNumber(tok), nil
	case isIdentStart(r):
		return lx.scanIdentOrKeyword(tok), nil
	default:
		tok, err := lx.scanOperatorOrPunct(tok)
		if err != nil {
			lx.err = err
		}
		return tok, err
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() (token.Token, error) {
	t, err := lx.Next()
	if err != nil {
		return t, err
	}
	lx.look = &t
	return t, nil
}

// Tokenize собирает все токены файла. Результат заканчивается ровно одним EOF.
// При ошибке возвращаются токены, прочитанные до неё (без Invalid и без EOF).
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func (lx *Lexer) skipSpace() {
	for {
		r, sz := lx.cursor.Peek()
		if sz == 0 || !isSpace(r) {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
