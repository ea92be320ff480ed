package trace

import (
	"strconv"
	"time"
)

// Span tracks one logical operation between Begin and End. A span whose
// scope the tracer rejects is inert: ID is 0 and End reports zero.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

// Begin starts a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Accepts(scope) {
		return &Span{}
	}
	s := &Span{
		tracer: t,
		begin: Event{
			Time:     time.Now(),
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   nextSpanID(),
			ParentID: parent,
			Name:     name,
		},
	}
	ev := s.begin
	t.Emit(&ev)
	return s
}

// End emits the end event with detail and the collected extras, adding
// "dur", and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	dur := time.Since(s.begin.Time)
	s.WithExtra("dur", dur.Round(time.Microsecond).String())

	ev := s.begin
	ev.Time = time.Now()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	s.tracer = nil // повторный End ничего не пишет
	return dur
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// WithExtraInt is WithExtra for counters.
func (s *Span) WithExtraInt(key string, value int) *Span {
	return s.WithExtra(key, strconv.Itoa(value))
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}
