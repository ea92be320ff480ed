package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"accumc/internal/source"
)

type shortEntry struct {
	sev, code, path, msg string
	line, col            uint32
}

func (e shortEntry) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", e.sev, e.code, e.path, e.line, e.col, e.msg)
}

// FormatShortDiagnostics renders one line per diagnostic,
//
//	<severity> <CODE> <path>:<line>:<col> <message>
//
// sorted by location so the output is stable enough for golden files.
// Diagnostics whose file is not in fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil {
		return ""
	}
	entries := make([]shortEntry, 0, len(diags))
	for _, d := range diags {
		if !fs.Has(d.Primary.File) {
			continue
		}
		entries = append(entries, toShortEntry(fs, d))
	}
	slices.SortStableFunc(entries, func(a, b shortEntry) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			strings.Compare(a.sev, b.sev),
			strings.Compare(a.code, b.code),
			strings.Compare(a.msg, b.msg),
		)
	})

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

func toShortEntry(fs *source.FileSet, d Diagnostic) shortEntry {
	pos, _ := fs.Resolve(d.Primary)
	if d.Pos.Line != 0 {
		pos = source.LineCol{Line: d.Pos.Line, Col: d.Pos.Col}
	}
	path := filepath.ToSlash(fs.Get(d.Primary.File).FormatPath("relative", fs.BaseDir()))
	return shortEntry{
		sev:  d.Severity.Label(),
		code: d.Code.ID(),
		path: trimDotSlash(path),
		msg:  strings.ReplaceAll(d.Message, "\n", " "),
		line: pos.Line,
		col:  pos.Col,
	}
}

func trimDotSlash(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
