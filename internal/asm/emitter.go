package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	indent    = "          " // 10 пробелов перед каждой инструкцией
	labelCols = 9           // "<name>:" выравнивается так, чтобы мнемоника встала под инструкции
)

// Emitter writes one instruction per line to w. The first write error is
// kept and every later call becomes a no-op; check Err once at the end.
type Emitter struct {
	w       io.Writer
	dialect Dialect
	err     error
	instrs  int
	decls   int
	written int64
}

// NewEmitter creates an emitter for the given dialect.
func NewEmitter(w io.Writer, d Dialect) *Emitter {
	return &Emitter{w: w, dialect: d}
}

// Dialect returns the dialect the emitter writes.
func (e *Emitter) Dialect() Dialect { return e.dialect }

// Err returns the first write error, if any.
func (e *Emitter) Err() error { return e.err }

// Instructions is the number of instructions written so far (declarations excluded).
func (e *Emitter) Instructions() int { return e.instrs }

// Declarations is the number of storage declarations written so far.
func (e *Emitter) Declarations() int { return e.decls }

// Written is the number of bytes written to the sink.
func (e *Emitter) Written() int64 { return e.written }

func (e *Emitter) Load(operand string)     { e.instr(e.dialect.Load, operand) }
func (e *Emitter) Store(operand string)    { e.instr(e.dialect.Store, operand) }
func (e *Emitter) Add(operand string)      { e.instr(e.dialect.Add, operand) }
func (e *Emitter) Multiply(operand string) { e.instr(e.dialect.Multiply, operand) }
func (e *Emitter) DecOut()                 { e.instr(e.dialect.DecOut, "") }
func (e *Emitter) AsciiOut()               { e.instr(e.dialect.AsciiOut, "") }

// PrintChar emits the print-char instruction with r as a quoted character literal.
func (e *Emitter) PrintChar(r rune) { e.instr(e.dialect.PrintChar, CharLiteral(r)) }

// Halt emits a blank separator line followed by the halt instruction.
func (e *Emitter) Halt() {
	e.Blank()
	e.instr(e.dialect.Halt, "")
}

// Declare emits a storage declaration: "<name>:" then the declare mnemonic and value.
func (e *Emitter) Declare(name, value string) {
	label := name + ":"
	e.line(fmt.Sprintf("%-*s %s %s", labelCols, label, e.dialect.Declare, value))
	if e.err == nil {
		e.decls++
	}
}

// Comment emits "; " + text. Line breaks in text are escaped so the comment stays on one line.
func (e *Emitter) Comment(text string) {
	e.line("; " + commentEscaper.Replace(text))
}

var commentEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`)

// Blank emits an empty line.
func (e *Emitter) Blank() { e.line("") }

// Raw writes s verbatim, without a trailing newline.
func (e *Emitter) Raw(s string) { e.write(s) }

func (e *Emitter) instr(mnemonic, operand string) {
	if operand == "" {
		e.line(indent + mnemonic)
	} else {
		e.line(fmt.Sprintf("%s%-4s %s", indent, mnemonic, operand))
	}
	if e.err == nil {
		e.instrs++
	}
}

func (e *Emitter) line(s string) { e.write(s + "\n") }

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	n, err := io.WriteString(e.w, s)
	e.written += int64(n)
	if err != nil {
		e.err = fmt.Errorf("write instruction: %w", err)
	}
}

// CharLiteral renders r in single quotes with C-style escapes for control characters.
func CharLiteral(r rune) string {
	switch r {
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	case '\r':
		return `'\r'`
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	}
	if strconv.IsPrint(r) {
		return "'" + string(r) + "'"
	}
	q := strconv.QuoteRuneToASCII(r)
	return "'" + q[1:len(q)-1] + "'"
}
