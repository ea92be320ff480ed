package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileFlags records what happened to the bytes on their way into a FileSet.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // не с диска: stdin, тесты
	FileHadBOM                               // срезан UTF-8 BOM
	FileNormalizedCRLF                       // \r\n -> \n
	FileNormalizedNFC                        // приведено к NFC
)

// File is one normalized compilation unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the byte offset of every '\n' in Content.
	LineIdx []uint32
	// Hash is sha256(Content); the build cache keys on it.
	Hash  [32]byte
	Flags FileFlags
}

// Position maps a byte offset to line/column. The '\n' itself belongs
// to the line it terminates.
func (f *File) Position(off uint32) LineCol {
	// количество переводов строк строго до off
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	lineStart := uint32(0)
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} // #nosec G115 -- line <= len(LineIdx)
}

// lineBounds returns [start, end) of line n (1-based) without the '\n'.
func (f *File) lineBounds(n uint32) (start, end int, ok bool) {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return 0, 0, false
	}
	i := int(n) - 1
	if i > 0 {
		start = int(f.LineIdx[i-1]) + 1
	}
	end = len(f.Content)
	if i < len(f.LineIdx) {
		end = int(f.LineIdx[i])
	}
	return start, end, start <= end
}

// GetLine returns line n (1-based) without its terminator, or "" when
// the line does not exist.
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders f.Path for diagnostics. mode is one of "absolute",
// "relative" or "basename"; anything else keeps the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "basename":
		return filepath.Base(f.Path)
	case "absolute":
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(abs)
	case "relative":
		if rel, ok := relativeTo(f.Path, baseDir); ok {
			return rel
		}
	}
	return f.Path
}

// relativeTo fails for paths that escape base.
func relativeTo(path, base string) (string, bool) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		base = wd
	}
	absPath, err1 := filepath.Abs(path)
	absBase, err2 := filepath.Abs(base)
	if err1 != nil || err2 != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
