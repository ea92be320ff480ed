package trace

import (
	"sync/atomic"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Scope indicates the granularity of the event; coarser scopes are smaller.
type Scope uint8

const (
	ScopeDriver    Scope = iota + 1 // CLI command, directory build
	ScopeFile                       // one compilation unit
	ScopePass                       // lex, parse
	ScopeStatement                  // one translated statement
)

var scopeNames = [...]string{
	ScopeDriver:    "driver",
	ScopeFile:      "file",
	ScopePass:      "pass",
	ScopeStatement: "stmt",
}

func (s Scope) String() string {
	if s == 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // порядковый номер, ставит принимающий трейсер
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 для точечных событий
	ParentID uint64
	Name     string // "build", "file", "lex", "parse", "stmt"
	Detail   string // путь файла, текст оператора, ...
	Extra    map[string]string
}

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a process-wide increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }

// Point emits an instant event if the tracer accepts the scope.
func Point(t Tracer, scope Scope, name, detail string) {
	if t == nil || !t.Accepts(scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		Detail: detail,
	})
}
