package trace

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Format selects how events are serialized.
type Format uint8

const (
	FormatAuto   Format = iota // by output extension, text otherwise
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

// FormatEvent serializes ev with a trailing newline.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return eventJSON(ev)
	}
	return eventText(ev)
}

type wireEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

const ndjsonTime = "2006-01-02T15:04:05.000000Z07:00"

func eventJSON(ev *Event) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// поля только строковые и числовые, Encode не падает
	_ = enc.Encode(wireEvent{ //nolint:errcheck
		Time:     ev.Time.Format(ndjsonTime),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	return buf.Bytes()
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "→",
	KindSpanEnd:   "←",
	KindPoint:     "•",
}

// eventText: 15:04:05.000000 <indent><mark> name (detail) {k=v, ...}
func eventText(ev *Event) []byte {
	var b bytes.Buffer
	b.WriteString(ev.Time.Format("15:04:05.000000"))
	b.WriteByte(' ')
	if ev.Scope > ScopeDriver {
		b.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeDriver)))
	}
	if mark, ok := kindMarks[ev.Kind]; ok {
		b.WriteString(mark + " ")
	}
	b.WriteString(ev.Name)
	if ev.Detail != "" {
		b.WriteString(" (" + ev.Detail + ")")
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			pairs = append(pairs, k+"="+ev.Extra[k])
		}
		b.WriteString(" {" + strings.Join(pairs, ", ") + "}")
	}
	b.WriteByte('\n')
	return b.Bytes()
}
