// Package testkit holds invariant checks shared by unit and fuzz tests.
package testkit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"accumc/internal/asm"
	"accumc/internal/compiler"
	"accumc/internal/source"
	"accumc/internal/token"
)

// CheckTokenInvariants validates a complete token stream for sf:
// 1) the stream ends with exactly one EOF token
// 2) every other token has a non-empty span inside the content, in order,
//    and its Text equals the bytes under the span
// 3) Line/Col of every token match its span (columns count characters)
func CheckTokenInvariants(fs *source.FileSet, sf *source.File, toks []token.Token) error {
	if fs == nil || sf == nil {
		return fmt.Errorf("nil file set or file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	if last := toks[len(toks)-1]; last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %v, not EOF", last.Kind)
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content too large: %w", err)
	}

	var prevEnd uint32
	for i, tok := range toks[:len(toks)-1] {
		if tok.Kind == token.EOF {
			return fmt.Errorf("token %d: EOF before the end of the stream", i)
		}
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span points to file %d, want %d", i, sp.File, sf.ID)
		}
		if sp.Start >= sp.End || sp.End > size {
			return fmt.Errorf("token %d: bad span %v (content %d bytes)", i, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous token", i, sp)
		}
		prevEnd = sp.End
		if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d: text %q, content under span %q", i, tok.Text, got)
		}

		start, _ := fs.Resolve(sp)
		lineStart := sp.Start - (start.Col - 1)
		col, err := safecast.Conv[uint32](utf8.RuneCount(sf.Content[lineStart:sp.Start]) + 1)
		if err != nil {
			return err
		}
		if tok.Line != start.Line || tok.Col != col {
			return fmt.Errorf("token %d (%q): at %d:%d, span says %d:%d", i, tok.Text, tok.Line, tok.Col, start.Line, col)
		}
	}
	return nil
}

// CheckListing validates the text written by compiler.Compile:
// every instruction line is indented, a complete translation ends with
// halt followed only by declarations, and a failed one carries the error
// listing and no halt.
func CheckListing(out string, res *compiler.Result, d asm.Dialect) error {
	if res == nil {
		return fmt.Errorf("nil result")
	}
	const indent = "          "
	halt := indent + d.Halt
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	haltAt := -1
	instrs := 0
	for i, line := range lines {
		if line == halt {
			if haltAt >= 0 {
				return fmt.Errorf("line %d: second halt", i+1)
			}
			haltAt = i
		}
		if strings.HasPrefix(line, indent) {
			instrs++
		}
	}

	if !res.OK() {
		if haltAt >= 0 {
			return fmt.Errorf("failed translation must not emit halt")
		}
		if !strings.Contains(out, "\nError on '") {
			return fmt.Errorf("failed translation lacks the error listing")
		}
		return nil
	}

	if haltAt < 0 {
		return fmt.Errorf("complete translation lacks halt")
	}
	if instrs != res.Instructions {
		return fmt.Errorf("%d instruction lines, result says %d", instrs, res.Instructions)
	}
	decls := lines[haltAt+1:]
	if len(decls) != res.Declarations {
		return fmt.Errorf("%d declaration lines, result says %d", len(decls), res.Declarations)
	}
	for _, line := range decls {
		label, rest, ok := strings.Cut(line, ":")
		if !ok || label == "" || !strings.HasPrefix(strings.TrimLeft(rest, " "), d.Declare+" ") {
			return fmt.Errorf("malformed declaration %q", line)
		}
	}
	return nil
}
