package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"accumc/internal/driver"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.s", 20, "short.s"},
		{"very/long/path/prog.s", 10, "very..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
	if got := truncate("файл_с_длинным_именем.s", 12); runewidth.StringWidth(got) > 12 {
		t.Errorf("truncate wide: %q exceeds width", got)
	}
}

func TestApplyEvent(t *testing.T) {
	m := newProgressModel("build", []string{"a.s", "b.s"}, nil)

	m.applyEvent(driver.Event{File: "a.s", Stage: driver.StageCompile, Status: driver.StatusWorking})
	if m.items[0].status != "compiling" {
		t.Fatalf("status = %q, want compiling", m.items[0].status)
	}
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}

	m.applyEvent(driver.Event{File: "a.s", Stage: driver.StageWrite, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.s", Stage: driver.StageCompile, Status: driver.StatusCached})
	if m.finished() != 2 || m.percent() != 1.0 {
		t.Fatalf("finished = %d, percent = %v", m.finished(), m.percent())
	}

	// события для неизвестных файлов игнорируются
	if cmd := m.applyEvent(driver.Event{File: "zzz.s", Status: driver.StatusError}); cmd != nil {
		t.Fatalf("expected nil cmd for unknown file")
	}
}

func TestUpdateQuitsOnDone(t *testing.T) {
	m := newProgressModel("build", []string{"a.s"}, nil)
	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatalf("model should be done and return quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "done: build (0/1)") {
		t.Fatalf("view: %q", m.View())
	}
}

func TestListenForEventClosedChannel(t *testing.T) {
	ch := make(chan driver.Event, 1)
	ch <- driver.Event{File: "a.s", Status: driver.StatusQueued}
	close(ch)
	m := newProgressModel("build", []string{"a.s"}, ch)

	if _, ok := m.listenForEvent()().(eventMsg); !ok {
		t.Fatalf("expected eventMsg")
	}
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatalf("expected doneMsg after close")
	}
}
