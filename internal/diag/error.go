package diag

import (
	"fmt"

	"accumc/internal/source"
	"accumc/internal/token"
)

// Error is a fatal lexing or parsing failure. It carries the token on which
// the failure was detected so the top level can render the diagnostic
// without re-deriving the position.
type Error struct {
	Code     Code
	Tok      token.Token
	Expected token.Kind // only meaningful for SynExpectedToken
	Msg      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s line %d column %d: %s", e.Code.ID(), e.Tok.Line, e.Tok.Col, e.Msg)
}

// InvalidToken reports a character that matches no token class.
func InvalidToken(tok token.Token) *Error {
	return &Error{Code: LexInvalidToken, Tok: tok, Msg: "Invalid token"}
}

// UnexpectedEOF reports an attempt to advance past the final token.
func UnexpectedEOF(tok token.Token) *Error {
	return &Error{Code: SynUnexpectedEOF, Tok: tok, Msg: "Unexpected end of file"}
}

// ExpectedToken reports a consume() mismatch.
func ExpectedToken(tok token.Token, want token.Kind) *Error {
	return &Error{Code: SynExpectedToken, Tok: tok, Expected: want, Msg: "Expecting " + want.String()}
}

// ExpectedConstruct reports a lookahead that matches none of a rule's alternatives.
// what is the full message, e.g. "Expecting factor".
func ExpectedConstruct(tok token.Token, what string) *Error {
	return &Error{Code: SynExpectedConstruct, Tok: tok, Msg: what}
}

// ExpectedEOF reports trailing input after a complete program.
func ExpectedEOF(tok token.Token) *Error {
	return &Error{Code: SynExpectedEOF, Tok: tok, Msg: "Expecting end of file"}
}

// Diagnostic converts the error into the shared diagnostic model.
func (e *Error) Diagnostic() Diagnostic {
	d := NewError(e.Code, e.Tok.Span, e.Msg)
	d.Pos = source.LineCol{Line: e.Tok.Line, Col: e.Tok.Col}
	d.Image = e.Tok.Image()
	return d
}

// Listing renders the error the way it is appended to the instruction stream:
//
//	<blank line>
//	Error on '<image>' line <L> column <C>
//	<message>
func (e *Error) Listing() string {
	return fmt.Sprintf("\nError on '%s' line %d column %d\n%s\n", e.Tok.Image(), e.Tok.Line, e.Tok.Col, e.Msg)
}
