package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last events in memory. The CLI dumps it to stderr
// when a compilation fails at --trace-level error.
type RingTracer struct {
	gate
	mu   sync.Mutex
	buf  []Event
	next int // куда писать следующее событие
	n    int // сколько событий хранится
}

// NewRingTracer keeps up to capacity events of the scopes level accepts.
func NewRingTracer(capacity int, level Level) *RingTracer {
	return newRing(capacity, gate{level: level, keep: level})
}

func newRing(capacity int, g gate) *RingTracer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &RingTracer{gate: g, buf: make([]Event, capacity)}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.Accepts(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	if t.n < len(t.buf) {
		t.n++
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.n)
	start := (t.next - t.n + len(t.buf)) % len(t.buf)
	for i := range t.n {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Dump writes the stored events to w, oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// Len reports how many events are stored.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
