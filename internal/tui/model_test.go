package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tally/internal/engine"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysDriveLifeUpdates(t *testing.T) {
	m := NewModel(engine.New(engine.DefaultConfig()))

	cases := []struct {
		key    string
		player engine.Player
		want   int
	}{
		{"q", engine.PlayerOne, 21},
		{"Q", engine.PlayerOne, 26},
		{"a", engine.PlayerOne, 25},
		{"A", engine.PlayerOne, 20},
		{"p", engine.PlayerTwo, 21},
		{"l", engine.PlayerTwo, 20},
		{"L", engine.PlayerTwo, 15},
	}
	for _, tc := range cases {
		if _, _ = m.Update(keyMsg(tc.key)); m.session.CurrentLife(tc.player) != tc.want {
			t.Fatalf("after %q: expected player %d at %d, got %d",
				tc.key, tc.player, tc.want, m.session.CurrentLife(tc.player))
		}
	}
}

func TestFirstUpdateSchedulesTick(t *testing.T) {
	m := NewModel(engine.New(engine.DefaultConfig()))

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected a tick command after the first delta")
	}
	if !m.ticking {
		t.Fatalf("expected the model to record an active tick loop")
	}
	// A second delta must not stack another tick loop.
	if _, cmd := m.Update(keyMsg("q")); cmd != nil {
		t.Fatalf("expected no extra tick command while already ticking")
	}
}

func TestResetKeyRestoresSession(t *testing.T) {
	m := NewModel(engine.New(engine.DefaultConfig()))

	_, _ = m.Update(keyMsg("A"))
	_, _ = m.Update(keyMsg("p"))
	_, _ = m.Update(keyMsg("r"))

	for _, p := range engine.Players {
		if got := m.session.CurrentLife(p); got != engine.DefaultStartLife {
			t.Fatalf("player %d: expected %d after reset, got %d", p, engine.DefaultStartLife, got)
		}
	}
}

func TestSettingsApplyAndReject(t *testing.T) {
	m := NewModel(engine.New(engine.DefaultConfig()))

	_, _ = m.Update(keyMsg("s"))
	if !m.settingsMode {
		t.Fatalf("expected settings mode")
	}
	m.settingsInput[0].SetValue("40")
	m.settingsInput[1].SetValue("40")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.settingsMode {
		t.Fatalf("expected settings mode to close on valid input")
	}
	if got := m.session.CurrentLife(engine.PlayerOne); got != 40 {
		t.Fatalf("expected life 40, got %d", got)
	}

	_, _ = m.Update(keyMsg("s"))
	m.settingsInput[1].SetValue("abc")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.settingsMode {
		t.Fatalf("rejected input must keep the form open")
	}
	if m.settingsError == "" {
		t.Fatalf("expected an error message for malformed input")
	}
	if got := m.session.StartLife(engine.PlayerTwo); got != 40 {
		t.Fatalf("rejected input must retain start life, got %d", got)
	}
}

func TestRenderLogNewestFirst(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.HistoryWindow = time.Millisecond
	cfg.DisplayWindow = 2 * time.Millisecond
	m := NewModel(engine.New(cfg))

	if err := m.session.UpdateLife(engine.PlayerOne, -5); err != nil {
		t.Fatalf("UpdateLife: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	m.session.Tick()
	if err := m.session.UpdateLife(engine.PlayerTwo, 3); err != nil {
		t.Fatalf("UpdateLife: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	m.session.Tick()

	out := m.renderLog()
	first := strings.Index(out, "+3")
	second := strings.Index(out, "-5")
	if first == -1 || second == -1 {
		t.Fatalf("log missing expected deltas: %s", out)
	}
	if first > second {
		t.Fatalf("expected newest entry first: %s", out)
	}
	if !strings.Contains(out, "→ 15") || !strings.Contains(out, "→ 23") {
		t.Fatalf("log missing resulting totals: %s", out)
	}
}

func TestRenderFooterListsBindings(t *testing.T) {
	m := NewModel(engine.New(engine.DefaultConfig()))
	m.width = 120
	out := m.renderFooter()
	for _, segment := range []string{"P1", "P2", "Reset: r", "Settings: s", "Quit: esc"} {
		if !strings.Contains(out, segment) {
			t.Fatalf("footer missing %q: %s", segment, out)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := formatDelta(7); got != "+7" {
		t.Fatalf("expected +7, got %q", got)
	}
	if got := formatDelta(-3); got != "-3" {
		t.Fatalf("expected -3, got %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdef", 4); got != "abc…" {
		t.Fatalf("expected truncation with ellipsis, got %q", got)
	}
	if got := truncateLine("abc", 4); got != "abc" {
		t.Fatalf("expected untouched line, got %q", got)
	}
}
