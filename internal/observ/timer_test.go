package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("lex")
	tm.End(i, "12 tokens")
	tm.End(99, "ignored")

	ph := tm.Phases()
	if len(ph) != 1 || ph[0].Name != "lex" || ph[0].Note != "12 tokens" {
		t.Fatalf("phases = %+v", ph)
	}
	if s := tm.Summary(); !strings.Contains(s, "lex") || !strings.Contains(s, "// 12 tokens") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestTimerAddAggregates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Count != 8 {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < 7.99 || r.TotalMS > 8.01 {
		t.Fatalf("total = %v", r.TotalMS)
	}
}

func TestTimerMerge(t *testing.T) {
	a, b := NewTimer(), NewTimer()
	a.Add("lex", 2*time.Millisecond)
	b.Add("lex", 3*time.Millisecond)
	b.Add("parse", time.Millisecond)
	a.Merge(b)

	ph := a.Phases()
	if len(ph) != 2 || ph[0].Dur != 5*time.Millisecond || ph[1].Name != "parse" {
		t.Fatalf("merged = %+v", ph)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("x", time.Second)
	if tm.Report().Phases != nil {
		t.Fatal("nil timer must report nothing")
	}
}
