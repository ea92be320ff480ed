package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tracer receives events. Implementations must be safe for concurrent Emit.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	// Level is the level the tracer was configured with.
	Level() Level
	Enabled() bool
	// Accepts is checked by Begin and Point before an event is built.
	Accepts(scope Scope) bool
}

// gate answers the level questions of Tracer. level is reported to callers,
// keep decides which scopes are recorded; only the error-level ring sets
// them apart.
type gate struct {
	level Level
	keep  Level
}

func (g gate) Level() Level          { return g.level }
func (g gate) Enabled() bool         { return g.level > LevelOff }
func (g gate) Accepts(sc Scope) bool { return g.keep.ShouldEmit(sc) }

type Config struct {
	Level  Level
	Format Format
	// Output wins over OutputPath; "" and "-" for OutputPath mean stderr.
	Output     io.Writer
	OutputPath string
	// RingSize bounds the failure dump, 1024 when zero.
	RingSize int
}

// New builds the tracer for cfg.
//
// At LevelError nothing is streamed: detail-level events go to a ring that
// the caller dumps via RingOf after a failure. Higher levels stream and keep
// a ring of the same scopes.
func New(cfg Config) (Tracer, error) {
	size := cfg.RingSize
	if size <= 0 {
		size = 1024
	}
	switch cfg.Level {
	case LevelOff:
		return Nop, nil
	case LevelError:
		return newRing(size, gate{level: LevelError, keep: LevelDetail}), nil
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewMultiTracer(cfg.Level,
		NewStreamTracer(w, cfg.Level, formatFor(cfg)),
		NewRingTracer(size, cfg.Level),
	), nil
}

func formatFor(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch filepath.Ext(cfg.OutputPath) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	}
	return FormatText
}

// RingOf digs the ring buffer out of t; nil when t has none.
func RingOf(t Tracer) *RingTracer {
	switch tt := t.(type) {
	case *RingTracer:
		return tt
	case *MultiTracer:
		return tt.Ring()
	}
	return nil
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// isStdStream keeps Close away from the process streams.
func isStdStream(w io.Writer) bool {
	return w == os.Stderr || w == os.Stdout
}
