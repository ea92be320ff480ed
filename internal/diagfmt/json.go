package diagfmt

import (
	"encoding/json"
	"io"

	"accumc/internal/diag"
	"accumc/internal/source"
)

// LocationJSON: File is empty when the span's file is unknown; Line and Col
// are filled only with JSONOpts.IncludePositions.
type LocationJSON struct {
	File      string `json:"file,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Col       uint32 `json:"col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Image    string       `json:"image,omitempty"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the JSON document; Count is the size of the bag
// even when Diagnostics was cut by JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span, pos source.LineCol) LocationJSON {
	loc := LocationJSON{File: displayPath(b.fs, span, b.opts.PathMode), StartByte: span.Start, EndByte: span.End}
	if b.opts.IncludePositions {
		at := position(b.fs, pos, span)
		loc.Line, loc.Col = at.Line, at.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Image:    d.Image,
		Location: b.location(d.Primary, d.Pos),
	}
	if !b.opts.IncludeNotes {
		return out
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span, source.LineCol{})})
	}
	return out
}

// BuildDiagnosticsOutput is JSON without the encoding step.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	shown := items
	if opts.Max > 0 && opts.Max < len(items) {
		shown = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, len(shown)), Count: len(items)}
	for i := range shown {
		out.Diagnostics[i] = b.diagnostic(&shown[i])
	}
	return out
}

// JSON writes an indented DiagnosticsOutput.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
