package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/engine"
	"github.com/san-kum/gridperm/internal/grid"
	"github.com/san-kum/gridperm/internal/script"
)

const (
	dotsPerCell = 16
	maxFrame    = 0.1
	barWidth    = 20
	descWidth   = 26
)

type TickMsg time.Time

// Tracker follows the animation for the status panel. Register it with
// engine.WithObserver before building the model.
type Tracker struct {
	eased   float64
	commits int
}

func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) OnStep(s anim.Sample) { t.eased = s.Eased }

func (t *Tracker) OnCommit(axis grid.Axis, pairs []grid.Coord) { t.commits++ }

// Model is the Bubble Tea model driving one engine.
type Model struct {
	eng     *engine.Engine
	tracker *Tracker
	canvas  *Canvas
	fps     int
	theme   Theme
	st      styles

	input   string
	running string
	exec    *script.Execution
	last    time.Time
	frames  int
	status  string
	err     error
}

func NewModel(eng *engine.Engine, tracker *Tracker, fps int) Model {
	if tracker == nil {
		tracker = NewTracker()
	}
	if fps <= 0 {
		fps = 60
	}
	side := eng.Size() * dotsPerCell
	theme := Themes[0]
	return Model{
		eng:     eng,
		tracker: tracker,
		canvas:  NewCanvas(side/2, side/4),
		fps:     fps,
		theme:   theme,
		st:      stylesFor(theme),
		status:  "ready",
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Busy reports whether a script is running.
func (m Model) Busy() bool { return m.exec != nil }

func (m Model) Input() string { return m.input }

func (m Model) Err() error { return m.err }

// Update handles input events and steps the running script.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.exec != nil {
			return m, nil
		}
		m.handleKey(msg)
	case TickMsg:
		now := time.Time(msg)
		dt := 0.0
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now
		if dt > maxFrame {
			dt = maxFrame
		}
		if m.exec != nil {
			m.step(dt)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.start(m.input)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyEsc:
		m.input = ""
	case tea.KeyCtrlT:
		m.theme = nextTheme(m.theme.Name)
		m.st = stylesFor(m.theme)
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	default:
		if m.input != "" {
			return
		}
		if tok, ok := shortcut(msg.String(), m.eng.Tokens()); ok {
			m.start(tok)
		}
	}
}

// shortcut maps f1..f12 onto tokens in order.
func shortcut(key string, tokens []string) (string, bool) {
	var n int
	if _, err := fmt.Sscanf(key, "f%d", &n); err != nil || n < 1 || n > 12 || n > len(tokens) {
		return "", false
	}
	return tokens[n-1], true
}

func (m *Model) start(text string) {
	x, err := m.eng.Start(text)
	if err != nil {
		m.err = err
		m.status = "rejected"
		return
	}
	m.exec, m.running, m.err = x, text, nil
	m.frames = 0
	m.status = "running"
}

func (m *Model) step(dt float64) {
	done, err := m.eng.Step(m.exec, dt)
	m.frames++
	if !done {
		return
	}
	m.exec = nil
	m.err = err
	if err != nil {
		m.status = "failed"
		return
	}
	m.status = fmt.Sprintf("done in %d frames", m.frames)
	m.input = ""
}

// View renders the board and the status panel.
func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawBoard(m.eng.Cells(), m.eng.Pitch(), dotsPerCell)
	board := m.st.panel.Render(m.st.ones.Render(strings.TrimRight(m.canvas.String(), "\n")))

	var s strings.Builder
	s.WriteString(m.st.header.Render("GRIDPERM") + "\n")
	if m.exec != nil {
		s.WriteString(m.st.busy.Render("● BUSY") + "\n\n")
	} else {
		s.WriteString(m.st.idle.Render("● IDLE") + "\n\n")
	}

	s.WriteString(m.st.label.Render("Script") + m.scriptLine() + "\n")
	s.WriteString(m.st.label.Render("Step") + m.st.value.Render(progressBar(m.tracker.eased, barWidth)) + "\n")
	s.WriteString(m.st.label.Render("Commits") + m.st.value.Render(fmt.Sprintf("%d", m.tracker.commits)) + "\n")
	s.WriteString(m.st.label.Render("Status") + m.st.value.Render(m.status) + "\n")
	if m.err != nil {
		s.WriteString(m.st.failed.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\nTOKENS\n")
	for i, tok := range m.eng.Tokens() {
		key := "   "
		if i < 12 {
			key = fmt.Sprintf("F%-2d", i+1)
		}
		desc, _ := m.eng.Registry().Describe(tok)
		if len(desc) > descWidth {
			desc = desc[:descWidth-1] + "…"
		}
		s.WriteString(m.st.zeros.Render(key) + " " + m.st.value.Render(fmt.Sprintf("%-3s", tok)) + " " + m.st.zeros.Render(desc) + "\n")
	}
	s.WriteString(m.st.hint.Render("Enter:Run  Esc:Clear  Ctrl+T:Theme  Ctrl+C:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, board, m.st.stats.Render(s.String()))
}

// scriptLine shows the input, or the running script with the current token
// highlighted.
func (m Model) scriptLine() string {
	if m.exec == nil {
		return m.st.value.Render(m.input + "▏")
	}
	tok, ok := m.exec.Current()
	if !ok || tok.End() > len(m.running) {
		return m.st.value.Render(m.running)
	}
	return m.st.value.Render(m.running[:tok.Offset]) +
		m.st.current.Render(m.running[tok.Offset:tok.End()]) +
		m.st.value.Render(m.running[tok.End():])
}
