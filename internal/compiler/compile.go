package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"accumc/internal/asm"
	"accumc/internal/diag"
	"accumc/internal/lexer"
	"accumc/internal/observ"
	"accumc/internal/source"
	"accumc/internal/symtab"
	"accumc/internal/trace"
)

// Separator is written between the banner and the first statement when
// Options.Header is set.
const Separator = ";------------------------------------------- Assembler code"

// Options configure a single compilation.
type Options struct {
	// Dialect selects the mnemonics; the zero value means asm.DefaultDialect.
	Dialect asm.Dialect
	// Header writes Separator once the source has been tokenized.
	Header bool
	// Reporter receives the diagnostic of a failed compilation; may be nil.
	Reporter diag.Reporter
	// Timer receives "lex" and "parse" phases; may be nil.
	Timer *observ.Timer
}

// Result describes a finished compilation.
type Result struct {
	Tokens       int
	Instructions int
	Declarations int
	Temps        int
	Bytes        int64
	Symbols      []symtab.Entry
	// Diagnostic is the error that stopped translation, nil on success.
	// Its listing has already been written to the sink.
	Diagnostic *diag.Error
}

// OK reports whether the program was translated completely.
func (r *Result) OK() bool { return r != nil && r.Diagnostic == nil }

// Compile translates file into w.
//
// A lexing or parsing failure is not an error of Compile: the listing of the
// failure is appended to whatever was already written, and the returned
// Result carries it in Diagnostic. The error return is reserved for failures
// of the sink itself and for a cancelled ctx.
func Compile(ctx context.Context, file *source.File, w io.Writer, opts Options) (*Result, error) {
	if file == nil {
		return nil, errors.New("compile: nil file")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dialect := opts.Dialect
	if dialect.Name == "" {
		dialect, _ = asm.LookupDialect(asm.DefaultDialect)
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	em := asm.NewEmitter(w, dialect)
	res := &Result{}

	// lex
	lexSpan := trace.Begin(tracer, trace.ScopePass, "lex", parent)
	lexIdx := opts.Timer.Begin("lex")
	toks, err := lexer.Tokenize(file, lexer.Options{})
	res.Tokens = len(toks)
	opts.Timer.End(lexIdx, strconv.Itoa(len(toks))+" tokens")
	lexSpan.WithExtraInt("tokens", len(toks)).End("")

	var cctx *Context
	if err == nil {
		if opts.Header {
			em.Raw(Separator + "\n")
		}

		parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", parent)
		parseIdx := opts.Timer.Begin("parse")
		cctx = newContext(file, toks, em, tracer, parseSpan.ID())
		err = cctx.parse()
		opts.Timer.End(parseIdx, strconv.Itoa(em.Instructions())+" instructions")
		parseSpan.
			WithExtraInt("instructions", em.Instructions()).
			WithExtraInt("symbols", cctx.syms.Len()).
			End("")

		res.Temps = cctx.temps
		res.Symbols = cctx.syms.Entries()
	}

	if err != nil {
		var de *diag.Error
		if !errors.As(err, &de) {
			return nil, fmt.Errorf("compile %s: %w", file.Path, err)
		}
		res.Diagnostic = de
		em.Raw(de.Listing())
		if opts.Reporter != nil {
			d := de.Diagnostic()
			opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
		trace.Point(tracer, trace.ScopePass, "diagnostic", de.Error())
	}

	res.Instructions = em.Instructions()
	res.Declarations = em.Declarations()
	res.Bytes = em.Written()
	if err := em.Err(); err != nil {
		return res, fmt.Errorf("compile %s: %w", file.Path, err)
	}
	return res, nil
}
