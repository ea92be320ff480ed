// Package observ collects phase timings for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one named stretch of work. Count > 1 means several runs were
// folded into it by Add or Merge.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Count int
}

func millis(d time.Duration) float64 { return d.Seconds() * 1e3 }

// Timer is safe for concurrent use; a nil *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	byName map[string]int
}

func NewTimer() *Timer {
	return &Timer{byName: make(map[string]int)}
}

func (t *Timer) locked(fn func()) {
	t.mu.Lock()
	fn()
	t.mu.Unlock()
}

// Begin opens a phase; pass the returned handle to End.
func (t *Timer) Begin(name string) (idx int) {
	if t == nil {
		return -1
	}
	t.locked(func() {
		idx = t.push(Phase{Name: name, Start: time.Now(), Count: 1})
	})
	return idx
}

// End ignores handles it did not hand out.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.locked(func() {
		if idx >= 0 && idx < len(t.phases) {
			t.phases[idx].Dur = time.Since(t.phases[idx].Start)
			t.phases[idx].Note = note
		}
	})
}

// Add folds dur into the phase called name.
func (t *Timer) Add(name string, dur time.Duration) {
	t.fold(name, dur, 1)
}

func (t *Timer) fold(name string, dur time.Duration, count int) {
	if t == nil {
		return
	}
	t.locked(func() {
		if i, ok := t.byName[name]; ok {
			t.phases[i].Dur += dur
			t.phases[i].Count += count
			return
		}
		t.push(Phase{Name: name, Dur: dur, Count: count})
	})
}

func (t *Timer) push(p Phase) int {
	t.phases = append(t.phases, p)
	t.byName[p.Name] = len(t.phases) - 1
	return len(t.phases) - 1
}

// Merge adds every phase of other to t by name.
func (t *Timer) Merge(other *Timer) {
	for _, p := range other.Phases() {
		t.fold(p.Name, p.Dur, max(p.Count, 1))
	}
}

// Phases returns a snapshot.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	var out []Phase
	t.locked(func() { out = append([]Phase(nil), t.phases...) })
	return out
}

// PhaseReport — фаза в виде, пригодном для JSON.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
	Count      int     `json:"count,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.Phases() {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note, Count: p.Count})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary is the --timings table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, extra string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms%s\n", name, ms, extra)
	}
	for _, p := range r.Phases {
		var extra string
		if p.Count > 1 {
			extra += fmt.Sprintf("  x%d", p.Count)
		}
		if p.Note != "" {
			extra += "  // " + p.Note
		}
		row(p.Name, p.DurationMS, extra)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}
