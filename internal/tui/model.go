// Package tui provides the Bubble Tea tally interface.
package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tally/internal/engine"
)

// tickInterval is how often the UI polls the engine for expired
// coalescing windows while any are armed.
const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

// Model implements the Bubble Tea tally UI.
type Model struct {
	session *engine.Session

	width  int
	height int

	log      viewport.Model
	logDirty bool

	settingsMode  bool
	settingsInput []textinput.Model
	settingsIndex int
	settingsError string

	ticking bool
}

// NewModel constructs a tally UI model around a session.
func NewModel(session *engine.Session) *Model {
	m := &Model{
		session: session,
		log:     viewport.New(0, 0),
	}
	m.initSettingsInputs()
	// The session signals log growth; the viewport content is rebuilt
	// lazily, once per batch of changes, instead of on every keypress.
	session.OnHistoryChanged(func() { m.logDirty = true })
	m.logDirty = true
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.logDirty = true
		m.syncLog()
		return m, nil
	case tickMsg:
		m.session.Tick()
		m.syncLog()
		if m.session.TimersActive() {
			return m, m.tickCmd()
		}
		m.ticking = false
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.settingsMode {
			return m.updateSettings(msg)
		}
		return m.updateKeys(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "q":
		return m, m.applyDelta(engine.PlayerOne, 1)
	case "a":
		return m, m.applyDelta(engine.PlayerOne, -1)
	case "Q":
		return m, m.applyDelta(engine.PlayerOne, 5)
	case "A":
		return m, m.applyDelta(engine.PlayerOne, -5)
	case "p":
		return m, m.applyDelta(engine.PlayerTwo, 1)
	case "l":
		return m, m.applyDelta(engine.PlayerTwo, -1)
	case "P":
		return m, m.applyDelta(engine.PlayerTwo, 5)
	case "L":
		return m, m.applyDelta(engine.PlayerTwo, -5)
	case "r":
		m.session.Reset()
		m.syncLog()
		return m, nil
	case "s":
		return m.startSettings()
	case "g", "home":
		m.log.GotoTop()
		return m, nil
	case "G", "end":
		m.log.GotoBottom()
		return m, nil
	default:
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
}

// applyDelta feeds one input event into the engine. Holding a key relies
// on terminal auto-repeat, so a sustained press becomes a burst of calls
// that the engine coalesces.
func (m *Model) applyDelta(p engine.Player, amount int) tea.Cmd {
	if err := m.session.UpdateLife(p, amount); err != nil {
		logErrf("failed to update life: %v\n", err)
		return nil
	}
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) syncLog() {
	if !m.logDirty {
		return
	}
	m.log.SetContent(m.renderLog())
	m.log.GotoTop()
	m.logDirty = false
}

func (m *Model) initSettingsInputs() {
	m.settingsInput = []textinput.Model{
		newSettingsInput("Player 1 start life: "),
		newSettingsInput("Player 2 start life: "),
	}
}

func newSettingsInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) startSettings() (tea.Model, tea.Cmd) {
	m.settingsMode = true
	m.settingsIndex = 0
	m.settingsError = ""
	m.settingsInput[0].SetValue(strconv.Itoa(m.session.StartLife(engine.PlayerOne)))
	m.settingsInput[1].SetValue(strconv.Itoa(m.session.StartLife(engine.PlayerTwo)))
	for i := range m.settingsInput {
		m.settingsInput[i].Blur()
	}
	return m, m.settingsInput[0].Focus()
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.settingsMode = false
		m.settingsError = ""
		return m, nil
	case "enter":
		return m.applySettings()
	case "tab", "down":
		return m, m.focusSettingsInput(m.settingsIndex + 1)
	case "shift+tab", "up":
		return m, m.focusSettingsInput(m.settingsIndex - 1)
	default:
		var cmd tea.Cmd
		m.settingsInput[m.settingsIndex], cmd = m.settingsInput[m.settingsIndex].Update(msg)
		return m, cmd
	}
}

func (m *Model) focusSettingsInput(index int) tea.Cmd {
	count := len(m.settingsInput)
	if index < 0 {
		index = count - 1
	}
	if index >= count {
		index = 0
	}
	m.settingsInput[m.settingsIndex].Blur()
	m.settingsIndex = index
	return m.settingsInput[m.settingsIndex].Focus()
}

// applySettings feeds each field through SetStartLife. A rejected value
// keeps the previous configuration for that player and leaves the form
// open with the error shown.
func (m *Model) applySettings() (tea.Model, tea.Cmd) {
	fields := []struct {
		player engine.Player
		value  string
	}{
		{engine.PlayerOne, m.settingsInput[0].Value()},
		{engine.PlayerTwo, m.settingsInput[1].Value()},
	}
	for _, field := range fields {
		if err := m.session.SetStartLife(field.player, field.value); err != nil {
			m.settingsError = err.Error()
			return m, nil
		}
	}
	m.settingsMode = false
	m.settingsError = ""
	m.syncLog()
	return m, nil
}
