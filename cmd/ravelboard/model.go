package main

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RavelOrg/ravel"
	"github.com/RavelOrg/ravel/bind"
	"github.com/RavelOrg/ravel/changelog"
	"github.com/RavelOrg/ravel/route"
)

const historyLimit = 50

// stateMsg delivers a committed board snapshot to the UI loop.
type stateMsg struct {
	state board
}

// navMsg delivers a committed navigation snapshot.
type navMsg struct {
	nav nav
}

type model struct {
	store  *ravel.Store[board]
	handle route.Handle
	note   *bind.Field[board, string]
	ring   *changelog.Ring
	keys   keyMap

	state  board
	nav    nav
	width  int
	height int

	promptOpen  bool
	prompt      textinput.Model
	editingNote bool
	noteInput   textinput.Model
	status      string
}

func newModel(store *ravel.Store[board], router *route.Router[nav], handle route.Handle, note *bind.Field[board, string], ring *changelog.Ring) model {
	prompt := textinput.New()
	prompt.Prompt = ":"
	prompt.PromptStyle = promptStyle
	prompt.TextStyle = promptStyle

	noteInput := textinput.New()
	noteInput.Prompt = "note> "
	noteInput.Placeholder = "shared note"
	noteInput.PromptStyle = noteStyle
	noteInput.TextStyle = noteStyle

	return model{
		store:     store,
		handle:    handle,
		note:      note,
		ring:      ring,
		keys:      newKeyMap(),
		state:     store.Current(),
		nav:       router.Current(),
		prompt:    prompt,
		noteInput: noteInput,
		status:    "connecting to feed...",
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		// Leave the loading screen once the first quote lands.
		if m.nav.View == viewLoading && len(m.state.Quotes) > 0 {
			m.navigate(boardRoute{})
		}
		return m, nil
	case navMsg:
		m.nav = msg.nav
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.promptOpen {
			return m.updatePrompt(msg)
		}
		if m.editingNote {
			return m.updateNote(msg)
		}
		return m.updateKeys(msg)
	}
	// Cursor blink ticks go to whichever editor is open.
	var cmd tea.Cmd
	switch {
	case m.promptOpen:
		m.prompt, cmd = m.prompt.Update(msg)
	case m.editingNote:
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Board):
		m.navigate(boardRoute{})
	case key.Matches(msg, m.keys.History):
		m.openHistory()
	case key.Matches(msg, m.keys.Tools):
		m.navigate(toolsRoute{Show: !m.nav.ShowTools})
	case key.Matches(msg, m.keys.Note):
		m.editingNote = true
		m.noteInput.SetValue(m.note.Get())
		return m, m.noteInput.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.submit(alertsCleared{})
	case key.Matches(msg, m.keys.Command):
		m.promptOpen = true
		m.status = ""
		return m, m.prompt.Focus()
	}
	return m, nil
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptOpen = false
		m.prompt.Reset()
		m.prompt.Blur()
		return m, nil
	case "enter":
		m.promptOpen = false
		line := strings.TrimSpace(m.prompt.Value())
		m.prompt.Reset()
		m.prompt.Blur()
		return m.runCommand(line)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingNote = false
		m.noteInput.Reset()
		m.noteInput.Blur()
		return m, nil
	case "enter":
		m.editingNote = false
		if err := m.note.Set(m.noteInput.Value()); err != nil {
			m.status = err.Error()
		}
		m.noteInput.Reset()
		m.noteInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// commandNames lists everything the : prompt accepts.
var commandNames = []string{"board", "history", "tools", "clear", "note", "open", "quit"}

func (m model) runCommand(line string) (tea.Model, tea.Cmd) {
	if line == "" {
		return m, nil
	}
	name, rest, _ := strings.Cut(line, " ")
	switch name {
	case "quit":
		return m, tea.Quit
	case "board":
		m.navigate(boardRoute{})
	case "history":
		m.openHistory()
	case "tools":
		m.navigate(toolsRoute{Show: !m.nav.ShowTools})
	case "clear":
		m.submit(alertsCleared{})
	case "note":
		if err := m.note.Set(strings.TrimSpace(rest)); err != nil {
			m.status = err.Error()
		}
	case "open":
		if err := m.handle.Open(strings.TrimSpace(rest)); err != nil {
			m.status = err.Error()
		}
	default:
		m.status = unknownCommand(name)
	}
	return m, nil
}

// unknownCommand builds the error line, suggesting the closest command when
// one is within editing distance.
func unknownCommand(name string) string {
	best := ""
	bestDist := 1 << 30
	for _, candidate := range commandNames {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best != "" && bestDist <= 2 {
		return fmt.Sprintf("unknown command %q (did you mean %q?)", name, best)
	}
	return fmt.Sprintf("unknown command %q", name)
}

func (m *model) navigate(rt route.Route) {
	if err := m.handle.Go(rt); err != nil {
		m.status = err.Error()
	}
}

func (m *model) openHistory() {
	m.navigate(historyRoute{})
	m.submit(historyRequested{Limit: historyLimit})
}

func (m *model) submit(change ravel.Change) {
	if err := m.store.Submit(change); err != nil {
		m.status = err.Error()
	}
}
