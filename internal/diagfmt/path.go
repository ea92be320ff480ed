package diagfmt

import (
	"accumc/internal/source"
)

// displayPath returns the path of the span's file, or "" for spans that do
// not belong to fs (I/O failures before the file was loaded).
func displayPath(fs *source.FileSet, span source.Span, mode PathMode) string {
	if fs == nil || !fs.Has(span.File) {
		return ""
	}
	f := fs.Get(span.File)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.Path
	}
}

// position prefers the token position recorded in the diagnostic and falls
// back to resolving the span.
func position(fs *source.FileSet, pos source.LineCol, span source.Span) source.LineCol {
	if pos.Line != 0 {
		return pos
	}
	if fs == nil || !fs.Has(span.File) {
		return source.LineCol{}
	}
	start, _ := fs.Resolve(span)
	return start
}
