package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"accumc/internal/compiler"
	"accumc/internal/diag"
	"accumc/internal/project"
	"accumc/internal/source"
	"accumc/internal/token"
)

// diskCacheSchemaVersion is bumped whenever DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 2

// DiskCache maps CacheKey digests to msgpack files under dir/units.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one compilation leaves in the cache. Body excludes
// the banner, which carries a timestamp.
type DiskPayload struct {
	Schema      uint16         `msgpack:"v"`
	ContentHash project.Digest `msgpack:"src"`
	Dialect     string         `msgpack:"dialect"`
	Body        []byte         `msgpack:"body"`

	Tokens       int `msgpack:"tokens"`
	Instructions int `msgpack:"instrs"`
	Declarations int `msgpack:"decls"`
	Temps        int `msgpack:"temps"`

	Failure *CachedFailure `msgpack:"failure"`
}

// CachedFailure is a flattened *diag.Error; the file id is restored on load.
type CachedFailure struct {
	Code     uint16     `msgpack:"code"`
	Msg      string     `msgpack:"msg"`
	Expected token.Kind `msgpack:"want"`
	Kind     token.Kind `msgpack:"kind"`
	Text     string     `msgpack:"text"`
	Line     uint32     `msgpack:"line"`
	Col      uint32     `msgpack:"col"`
	Start    uint32     `msgpack:"start"`
	End      uint32     `msgpack:"end"`
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		base, err = xdg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt creates dir when missing.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey mixes the source hash with every input that changes the output text.
func CacheKey(contentHash project.Digest, dialect string, header bool) project.Digest {
	return project.Combine(contentHash,
		project.DigestString(dialect),
		project.DigestString(fmt.Sprintf("schema=%d header=%t", diskCacheSchemaVersion, header)),
	)
}

func (c *DiskCache) unitsDir() string { return filepath.Join(c.dir, "units") }

// entryPath shards entries by the first hex byte of the key.
func (c *DiskCache) entryPath(key project.Digest) string {
	hex := key.String()
	return filepath.Join(c.unitsDir(), hex[:2], hex+".mp")
}

// Put writes payload through a temp file and a rename, so readers never
// see a half-written entry. A nil cache drops the write.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	dst := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name()) //nolint:errcheck
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name()) //nolint:errcheck
		return err
	}
	return nil
}

// Get fills out and reports a hit. Missing entries and entries of another
// schema are misses, not errors.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}

	*out = DiskPayload{}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll forgets every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(c.unitsDir())
}

func resultToPayload(hash project.Digest, dialect string, body []byte, res *compiler.Result) *DiskPayload {
	p := &DiskPayload{
		Schema:       diskCacheSchemaVersion,
		ContentHash:  hash,
		Dialect:      dialect,
		Body:         body,
		Tokens:       res.Tokens,
		Instructions: res.Instructions,
		Declarations: res.Declarations,
		Temps:        res.Temps,
	}
	if d := res.Diagnostic; d != nil {
		p.Failure = &CachedFailure{
			Code:     uint16(d.Code),
			Msg:      d.Msg,
			Expected: d.Expected,
			Kind:     d.Tok.Kind,
			Text:     d.Tok.Text,
			Line:     d.Tok.Line,
			Col:      d.Tok.Col,
			Start:    d.Tok.Span.Start,
			End:      d.Tok.Span.End,
		}
	}
	return p
}

// payloadToResult rebuilds the result for file; the symbol table is not cached.
func payloadToResult(p *DiskPayload, file source.FileID) *compiler.Result {
	res := &compiler.Result{
		Tokens:       p.Tokens,
		Instructions: p.Instructions,
		Declarations: p.Declarations,
		Temps:        p.Temps,
		Bytes:        int64(len(p.Body)),
	}
	if f := p.Failure; f != nil {
		res.Diagnostic = &diag.Error{
			Code:     diag.Code(f.Code),
			Msg:      f.Msg,
			Expected: f.Expected,
			Tok: token.Token{
				Kind: f.Kind,
				Text: f.Text,
				Line: f.Line,
				Col:  f.Col,
				Span: source.Span{File: file, Start: f.Start, End: f.End},
			},
		}
	}
	return res
}
