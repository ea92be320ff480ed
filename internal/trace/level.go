package trace

import (
	"fmt"
	"strings"
)

// Level controls how much of the scope hierarchy is recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring only, dumped on failure
	LevelPhase        // driver and file
	LevelDetail       // + passes
	LevelDebug        // + statements
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest scope each level lets through; 0 means nothing is streamed
var levelDepth = [...]Scope{LevelPhase: ScopeFile, LevelDetail: ScopePass, LevelDebug: ScopeStatement}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (want one of %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass the level filter.
// LevelError streams nothing.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelDepth) && scope <= levelDepth[l]
}
