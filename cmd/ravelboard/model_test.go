package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RavelOrg/ravel"
	"github.com/RavelOrg/ravel/bind"
	"github.com/RavelOrg/ravel/changelog"
	"github.com/RavelOrg/ravel/route"
)

func newTestModel(t *testing.T) (model, *ravel.Store[board]) {
	t.Helper()

	store := ravel.New(newBoard([]string{"BTCUSDT"}, time.Now()), reduceBoard)
	router := route.New(nav{View: viewBoard}, navTable{})
	note := bind.New(store,
		func(s board) string { return s.Note },
		func(v string) ravel.Change { return noteEdited{Note: v} },
	)
	return newModel(store, router, router, note, changelog.NewRing(8)), store
}

func press(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	next, _ := m.Update(msg)
	return next.(model)
}

func typeRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPromptBackspaceRemovesWholeRune(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, typeRunes(":"))
	if !m.promptOpen {
		t.Fatalf("Failed to open the command prompt")
	}

	m = press(t, m, typeRunes("é"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.prompt.Value(); got != "" {
		t.Errorf("prompt after backspace = %q, want empty", got)
	}

	m = press(t, m, typeRunes("日本"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.prompt.Value(); got != "日" {
		t.Errorf("prompt after backspace = %q, want %q", got, "日")
	}
}

func TestPromptEscCancels(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, typeRunes(":"))
	m = press(t, m, typeRunes("boar"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.promptOpen {
		t.Fatalf("prompt still open after esc")
	}
	if got := m.prompt.Value(); got != "" {
		t.Errorf("prompt not cleared after esc: %q", got)
	}
}

func TestPromptEnterRunsCommand(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, typeRunes(":"))
	m = press(t, m, typeRunes("qit"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.promptOpen {
		t.Fatalf("prompt still open after enter")
	}
	want := `unknown command "qit" (did you mean "quit"?)`
	if m.status != want {
		t.Errorf("status = %q, want %q", m.status, want)
	}
}

func TestNoteEditingCommitsThroughField(t *testing.T) {
	m, store := newTestModel(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Run(ctx)
	defer func() {
		store.Close()
		<-store.Done()
	}()

	m = press(t, m, typeRunes("n"))
	if !m.editingNote {
		t.Fatalf("Failed to open the note editor")
	}

	m = press(t, m, typeRunes("日記"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = press(t, m, typeRunes("記"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.editingNote {
		t.Fatalf("note editor still open after enter")
	}
	waitFor(t, time.Second, func() bool {
		return store.Current().Note == "日記"
	}, "note was not committed to the store")
}

func TestNoteEscKeepsStoredNote(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, typeRunes("n"))
	m = press(t, m, typeRunes("draft"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.editingNote {
		t.Fatalf("note editor still open after esc")
	}
	if got := m.noteInput.Value(); got != "" {
		t.Errorf("note input not cleared after esc: %q", got)
	}
	if got := store.Current().Note; got != "" {
		t.Errorf("note committed despite esc: %q", got)
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	cases := []struct {
		typo string
		want string
	}{
		{"boad", "board"},
		{"histry", "history"},
		{"tols", "tools"},
		{"qit", "quit"},
	}
	for _, tc := range cases {
		got := unknownCommand(tc.typo)
		want := `unknown command "` + tc.typo + `" (did you mean "` + tc.want + `"?)`
		if got != want {
			t.Errorf("unknownCommand(%q) = %q, want %q", tc.typo, got, want)
		}
	}
}

func TestUnknownCommandWithoutSuggestion(t *testing.T) {
	got := unknownCommand("zzzzzz")
	want := `unknown command "zzzzzz"`
	if got != want {
		t.Errorf("unknownCommand = %q, want %q", got, want)
	}
}

func TestTrimTo(t *testing.T) {
	if got := trimTo("short", 10); got != "short" {
		t.Errorf("trimTo = %q", got)
	}
	if got := trimTo("abcdefghij", 7); got != "abcd..." {
		t.Errorf("trimTo = %q", got)
	}
	if got := trimTo("abcdef", 3); got != "abc" {
		t.Errorf("trimTo = %q", got)
	}
}
