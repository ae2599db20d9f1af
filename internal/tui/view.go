package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tally/internal/engine"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder(), true)
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	lifeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	captionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	logTimeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.settingsMode {
		return fitLines(m.renderSettings(), m.width, m.height)
	}
	cardsHeight, logHeight, footerHeight := m.layoutHeights()
	cards := fitLines(m.renderCards(), m.width, cardsHeight)
	log := fitLines(m.log.View(), m.width, logHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{cards, log, footer}, "\n")
}

func (m *Model) layoutHeights() (cardsHeight, logHeight, footerHeight int) {
	cardsHeight = lipgloss.Height(m.renderCards())
	footerHeight = 1
	logHeight = m.height - cardsHeight - footerHeight - 2
	if logHeight < 1 {
		logHeight = 1
	}
	return cardsHeight, logHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, logHeight, _ := m.layoutHeights()
	m.log.Width = m.width
	m.log.Height = logHeight
}

func (m *Model) renderCards() string {
	cards := make([]string, 0, len(engine.Players))
	for i, p := range engine.Players {
		cards = append(cards, m.renderCard(p, fmt.Sprintf("Player %d", i+1)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, row)
}

func (m *Model) renderCard(p engine.Player, title string) string {
	color := lipgloss.Color(m.session.Color(p))
	lines := []string{
		cardTitleStyle.Foreground(color).Render(title),
		lifeStyle.Render(fmt.Sprintf("%4d", m.session.CurrentLife(p))),
		m.renderBadge(p, color),
		captionStyle.Render(fmt.Sprintf("start %d", m.session.StartLife(p))),
	}
	return cardStyle.BorderForeground(color).Render(strings.Join(lines, "\n"))
}

// renderBadge shows the in-flight delta while its display window is
// open; the line stays blank otherwise so the card never changes height.
func (m *Model) renderBadge(p engine.Player, color lipgloss.Color) string {
	delta := m.session.PendingDelta(p)
	if delta == 0 {
		return " "
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(formatDelta(delta))
}

func (m *Model) renderLog() string {
	entries := m.session.History()
	if len(entries) == 0 {
		return captionStyle.Render("No changes yet.")
	}
	lines := make([]string, 0, len(entries))
	// Newest first for display; the engine stores oldest first.
	for i := len(entries) - 1; i >= 0; i-- {
		lines = append(lines, m.renderLogLine(entries[i]))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderLogLine(entry engine.HistoryEntry) string {
	color := lipgloss.Color(m.session.Color(entry.Player))
	return fmt.Sprintf("%s  %s  %s → %d",
		logTimeStyle.Render(entry.At.Format("15:04:05")),
		lipgloss.NewStyle().Foreground(color).Render(playerLabel(entry.Player)),
		formatDelta(entry.Amount),
		entry.ResultingLife,
	)
}

func (m *Model) renderSettings() string {
	lines := []string{"Starting life (enter to apply, esc to cancel)"}
	for _, input := range m.settingsInput {
		lines = append(lines, input.View())
	}
	if m.settingsError != "" {
		lines = append(lines, errorStyle.Render(m.settingsError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	help := "P1: q/a ±1 Q/A ±5  P2: p/l ±1 P/L ±5  Reset: r  Settings: s  Quit: esc"
	return footerStyle.Render(truncateLine(help, m.width))
}

func playerLabel(p engine.Player) string {
	if p == engine.PlayerTwo {
		return "Player 2"
	}
	return "Player 1"
}

func formatDelta(amount int) string {
	if amount > 0 {
		return fmt.Sprintf("+%d", amount)
	}
	return fmt.Sprintf("%d", amount)
}

// truncateLine fits a plain (unstyled) line into width terminal cells.
func truncateLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	if runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
