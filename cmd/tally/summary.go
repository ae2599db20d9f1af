package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/tally/internal/engine"
)

const terminalWidthBackup = 80

// printSummary writes the final totals and the full change log to w
// after the TUI exits, so the result of a match survives the alt screen.
func printSummary(w io.Writer, session *engine.Session) {
	width := terminalWidth()

	writeLine(w, strings.Repeat("─", width))
	for i, p := range engine.Players {
		writeLine(w, fmt.Sprintf("Player %d: %d life (started at %d)",
			i+1, session.CurrentLife(p), session.StartLife(p)))
	}

	entries := session.History()
	if len(entries) == 0 {
		writeLine(w, "No changes logged.")
		return
	}
	writeLine(w, "")
	for _, entry := range entries {
		amount := fmt.Sprintf("%+d", entry.Amount)
		writeLine(w, fmt.Sprintf("%s  Player %d  %4s → %d",
			entry.At.Format("15:04:05"), entry.Player, amount, entry.ResultingLife))
	}
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func writeLine(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		// Best-effort summary output.
		_ = err
	}
}
