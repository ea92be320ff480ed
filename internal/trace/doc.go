// Package trace provides the tracing and logging layer of accumc.
//
// Every command can stream structured events about what the compiler is
// doing: which files are being compiled, how long lexing and parsing took,
// which statements were translated.
//
// # Usage
//
//	accumc compile --trace=- --trace-level=detail prog.s
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or ndjson)
//   - RingTracer: keeps the last N events in memory for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Scopes order events from coarse to fine: ScopeDriver (CLI command),
// ScopeFile (one compilation unit), ScopePass (lex, parse) and
// ScopeStatement (one translated statement). The level picks how deep
// the output goes:
//
//   - LevelOff: nothing
//   - LevelError: nothing streamed, the ring is dumped on failure
//   - LevelPhase: driver and file events
//   - LevelDetail: plus passes
//   - LevelDebug: everything
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopeFile, "file")
//	defer span.End(path)
//
// Spans started from the returned context become children of span.
package trace
