package compiler

import (
	"accumc/internal/asm"
	"accumc/internal/diag"
	"accumc/internal/source"
	"accumc/internal/symtab"
	"accumc/internal/token"
	"accumc/internal/trace"
)

// Context is the whole mutable state of one compilation. Compile builds a
// fresh one per call and drops it afterwards; nothing survives between runs.
type Context struct {
	file   *source.File
	toks   []token.Token
	pos    int // индекс tok в toks; -1 до первого advance
	tok    token.Token
	syms   *symtab.Table
	em     *asm.Emitter
	temps  int // счётчик временных, первый получает @t1
	tracer trace.Tracer
	span   uint64 // родительский span для statement-событий
}

func newContext(file *source.File, toks []token.Token, em *asm.Emitter, tracer trace.Tracer, parent uint64) *Context {
	return &Context{
		file:   file,
		toks:   toks,
		pos:    -1,
		syms:   symtab.New(len(toks) / 2),
		em:     em,
		tracer: tracer,
		span:   parent,
	}
}

// advance moves the lookahead to the next token. Moving past the final EOF
// is an error reported on the current token.
func (c *Context) advance() error {
	if c.pos+1 >= len(c.toks) {
		return diag.UnexpectedEOF(c.tok)
	}
	c.pos++
	c.tok = c.toks[c.pos]
	return nil
}

// consume advances over a token of the expected kind.
func (c *Context) consume(want token.Kind) error {
	if c.tok.Kind != want {
		return diag.ExpectedToken(c.tok, want)
	}
	return c.advance()
}

func (c *Context) is(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if c.tok.Kind == k {
			return true
		}
	}
	return false
}

// newTemp interns the next "@t<n>" slot.
func (c *Context) newTemp() int {
	c.temps++
	return c.syms.Intern(symtab.TempName(c.temps), symtab.DefaultInit, true)
}

func (c *Context) name(slot int) string { return c.syms.Name(slot) }
