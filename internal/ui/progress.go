package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"accumc/internal/driver"
)

// stageInfo: подпись для StatusWorking и доля готовности файла.
var stageInfo = map[driver.Stage]struct {
	label string
	frac  float64
}{
	driver.StageLoad:    {"loading", 0.1},
	driver.StageCompile: {"compiling", 0.5},
	driver.StageWrite:   {"writing", 0.9},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyles = map[string]lipgloss.Style{
		"done":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached":    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"error":     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"loading":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"compiling": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"writing":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
)

const statusWidth = 12

type fileRow struct {
	path   string
	status string
	stage  driver.Stage
}

func (r fileRow) final() bool {
	switch driver.Status(r.status) {
	case driver.StatusDone, driver.StatusCached, driver.StatusError:
		return true
	}
	return false
}

func (r fileRow) fraction() float64 {
	if r.final() {
		return 1
	}
	return stageInfo[r.stage].frac
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileRow
	byPath  map[string]int
	width   int
	done    bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

// NewProgressModel renders per-file build progress fed by events and
// quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	return newProgressModel(title, files, events)
}

func newProgressModel(title string, files []string, events <-chan driver.Event) *progressModel {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyles["loading"])),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.items[i] = fileRow{path: f, status: string(driver.StatusQueued)}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width, m.bar.Width = msg.Width, msg.Width-4
		}
	case progress.FrameMsg:
		var next tea.Model
		next, cmd = m.bar.Update(msg)
		m.bar = next.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	prefix := m.spinner.View()
	if m.done {
		prefix = "done:"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("%s %s (%d/%d)", prefix, m.title, m.finished(), len(m.items))))

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, row := range m.items {
		style, ok := statusStyles[row.status]
		if !ok {
			style = idleStyle
		}
		fmt.Fprintf(&b, "  %s %s\n", style.Render(fmt.Sprintf("%*s", statusWidth, row.status)), truncate(row.path, nameWidth))
	}

	bar := m.bar.View()
	if m.done {
		bar = m.bar.ViewAs(1)
	}
	fmt.Fprintf(&b, "\n%s\n", bar)
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

// applyEvent ignores files the model was not created with.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	status := string(ev.Status)
	if ev.Status == driver.StatusWorking {
		status = stageInfo[ev.Stage].label
	}
	if status != "" {
		m.items[i].status, m.items[i].stage = status, ev.Stage
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.items {
		sum += row.fraction()
	}
	return sum / float64(len(m.items))
}

func (m *progressModel) finished() int {
	n := 0
	for _, row := range m.items {
		if row.final() {
			n++
		}
	}
	return n
}

// truncate cuts value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
