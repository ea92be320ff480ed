// Package diag defines the diagnostic model shared by the lexer, the
// compiler and the driver.
//
// # Errors
//
// Compilation is single-shot: the first lexical or syntax error aborts the
// translation. Such failures travel as *Error values (explicit returns, no
// panics). Each carries the offending token, so the top level can render
//
//	Error on '<image>' line <L> column <C>
//	<message>
//
// without re-deriving the position. Error.Diagnostic converts the value into a
// Diagnostic for the CLI renderers in internal/diagfmt.
//
// # Codes
//
// Code is a compact numeric identifier with a stable string form (LEX1001,
// SYN2002, ...). Ranges: 1xxx lexer, 2xxx parser, 4xxx I/O, 5xxx project.
//
// # Storage
//
// Bag collects diagnostics from several files (directory builds) with a
// limit, deterministic Sort and Dedup. BagReporter adapts a Bag to Reporter.
//
// Package diag does not perform any IO or terminal formatting.
package diag
