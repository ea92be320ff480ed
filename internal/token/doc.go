// Package token defines lexical token kinds for the accumc compiler.
// Invariants:
//   - Token.Text is the exact source text of the token; for Invalid it is the
//     single offending character, for EOF it is empty.
//   - Token.Line/Token.Col point at the first character of the token (1-based).
//   - Keywords are case-sensitive; only "println" exists today.
package token
