package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// EOF marks the end of the source input.
	EOF Kind = iota
	// KwPrintln represents the 'println' keyword.
	KwPrintln // println
	// Unsigned represents an unsigned integer literal.
	Unsigned
	// Ident represents an identifier that is not a keyword.
	Ident
	// Assign represents the assign operator token.
	Assign // =
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star (times) operator token.
	Star // *
	// Invalid indicates a character that matches no token class.
	Invalid
)

var kindNames = [...]string{
	EOF:       "EOF",
	KwPrintln: "PRINTLN",
	Unsigned:  "UNSIGNED",
	Ident:     "ID",
	Assign:    "ASSIGN",
	Semicolon: "SEMICOLON",
	LParen:    "LEFTPAREN",
	RParen:    "RIGHTPAREN",
	Plus:      "PLUS",
	Minus:     "MINUS",
	Star:      "TIMES",
	Invalid:   "ERROR",
}

// String returns the display name used in diagnostics ("Expecting SEMICOLON").
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsEOF reports whether the kind marks end of input.
func (k Kind) IsEOF() bool { return k == EOF }

var smallTokens = map[byte]Kind{
	'=': Assign,
	'(': LParen,
	')': RParen,
	'+': Plus,
	'-': Minus,
	'*': Star,
	';': Semicolon,
}

// LookupPunct returns the kind of a one-character token.
func LookupPunct(ch byte) (Kind, bool) {
	k, ok := smallTokens[ch]
	return k, ok
}
