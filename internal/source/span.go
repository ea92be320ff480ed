package source

import "fmt"

// FileID is a dense index into a FileSet, starting at 0.
type FileID uint32

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.End <= s.Start }

func (s Span) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("#%d[%d,%d)", s.File, s.Start, s.End)
}

// LineCol is a 1-based position; Col counts bytes from the line start.
type LineCol struct {
	Line uint32
	Col  uint32
}
