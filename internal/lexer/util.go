package lexer

import (
	"unicode"
)

// ===== Классификаторы =====

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Литералы только ASCII: "@" + digits должно оставаться валидным именем для ассемблера.
func isDec(r rune) bool { return r >= '0' && r <= '9' }

func isSpace(r rune) bool { return unicode.IsSpace(r) }
