package source

import (
	"crypto/sha256"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every file of a compilation and resolves spans into
// positions. IDs are never reused: adding the same path twice yields two
// files.
type FileSet struct {
	files   []*File
	baseDir string
}

func NewFileSet() *FileSet { return &FileSet{} }

// NewFileSetWithBase sets the directory relative paths are shown against.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// BaseDir falls back to the working directory when no base was set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add stores already normalized content under path.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if len(content) > math.MaxUint32 {
		panic(fmt.Errorf("source: %s is larger than 4GiB", path))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	f := &File{
		ID:      FileID(n),
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: content,
		LineIdx: indexLines(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
	fs.files = append(fs.files, f)
	return f.ID
}

// Load reads path from disk and normalizes it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the command line or project config
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalize(raw)
	return fs.Add(path, content, flags), nil
}

// AddVirtual is Load for in-memory text (stdin, tests).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

// Get panics on a foreign id; check with Has first when unsure.
func (fs *FileSet) Get(id FileID) *File { return fs.files[id] }

func (fs *FileSet) Has(id FileID) bool { return int(id) < len(fs.files) }

func (fs *FileSet) Len() int { return len(fs.files) }

// Resolve converts both ends of span into line/column pairs.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}
