package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"accumc/internal/diag"
	"accumc/internal/source"
)

type palette struct {
	path, err, warn, info, code, caret, gutter func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		path:   mk(color.Bold),
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan),
		code:   mk(color.Faint),
		caret:  mk(color.FgGreen, color.Bold),
		gutter: mk(color.FgBlue),
	}
}

func (p palette) severity(sev diag.Severity) string {
	label := sev.Label()
	switch sev {
	case diag.SevError:
		return p.err(label)
	case diag.SevWarning:
		return p.warn(label)
	default:
		return p.info(label)
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
//
//	<path>:<line>:<col>: <sev> <CODE>: <Message> (found '<image>')
//
// затем, если включено, строку исходника с ^ под токеном, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var sb strings.Builder
	for _, d := range bag.Items() {
		pos := position(fs, d.Pos, d.Primary)
		path := displayPath(fs, d.Primary, opts.PathMode)
		switch {
		case path != "" && pos.Line != 0:
			sb.WriteString(p.path(fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)))
			sb.WriteString(": ")
		case path != "":
			sb.WriteString(p.path(path))
			sb.WriteString(": ")
		}
		fmt.Fprintf(&sb, "%s %s: %s", p.severity(d.Severity), p.code(d.Code.ID()), d.Message)
		if d.Image != "" {
			fmt.Fprintf(&sb, " (found '%s')", d.Image)
		}
		sb.WriteString("\n")

		if opts.ShowSource && path != "" && pos.Line != 0 {
			writeExcerpt(&sb, p, fs.Get(d.Primary.File), pos, d.Primary)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&sb, "  %s %s\n", p.info("note:"), n.Msg)
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeExcerpt prints the source line and a caret run under the span.
func writeExcerpt(sb *strings.Builder, p palette, f *source.File, pos source.LineCol, span source.Span) {
	line := f.GetLine(pos.Line)
	num := fmt.Sprintf("%4d", pos.Line)
	fmt.Fprintf(sb, "%s %s %s\n", p.gutter(num), p.gutter("|"), line)

	// табы сохраняем, чтобы ^ встал под нужный символ
	var pad strings.Builder
	col := uint32(1)
	for _, r := range line {
		if col >= pos.Col {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
		col++
	}
	width := 1
	if int(span.End) <= len(f.Content) && span.Start < span.End {
		if n := len([]rune(string(f.Content[span.Start:span.End]))); n > 1 {
			width = n
		}
	}
	fmt.Fprintf(sb, "%s %s %s%s\n", strings.Repeat(" ", len(num)), p.gutter("|"), pad.String(), p.caret(strings.Repeat("^", width)))
}

// Short renders diagnostics one per line: "<sev> <CODE> <path>:<line>:<col> <message>".
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
