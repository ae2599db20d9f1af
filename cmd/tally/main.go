// Package main provides the CLI entrypoint for tally.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tally/internal/config"
	"github.com/verte-zerg/tally/internal/engine"
	"github.com/verte-zerg/tally/internal/tui"
)

const (
	defaultLife            = engine.DefaultStartLife
	defaultDisplayWindowMs = 3000
	defaultHistoryWindowMs = 2000
)

var (
	gameLife            int
	gameLifeP1          int
	gameLifeP2          int
	gameDisplayWindowMs int
	gameHistoryWindowMs int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tally",
		Short:         "Two-player life tracker for tabletop card games",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrackerCmd,
	}

	rootCmd.Flags().IntVar(&gameLife, "life", defaultLife, "starting life for both players")
	rootCmd.Flags().IntVar(&gameLifeP1, "life-p1", 0, "starting life for player 1 (overrides --life)")
	rootCmd.Flags().IntVar(&gameLifeP2, "life-p2", 0, "starting life for player 2 (overrides --life)")
	rootCmd.Flags().IntVar(&gameDisplayWindowMs, "display-window", defaultDisplayWindowMs, "delta badge window in milliseconds")
	rootCmd.Flags().IntVar(&gameHistoryWindowMs, "history-window", defaultHistoryWindowMs, "change-log debounce window in milliseconds")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTrackerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "life", &gameLife, fileCfg.Game.Life)
	applyIntConfig(cmd, "life-p1", &gameLifeP1, fileCfg.Game.LifeP1)
	applyIntConfig(cmd, "life-p2", &gameLifeP2, fileCfg.Game.LifeP2)
	applyIntConfig(cmd, "display-window", &gameDisplayWindowMs, fileCfg.Game.DisplayWindowMs)
	applyIntConfig(cmd, "history-window", &gameHistoryWindowMs, fileCfg.Game.HistoryWindowMs)

	cfg, err := buildEngineConfig()
	if err != nil {
		return err
	}

	session := engine.New(cfg)
	model := tui.NewModel(session)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	printSummary(os.Stdout, session)
	return nil
}

func buildEngineConfig() (engine.Config, error) {
	if gameDisplayWindowMs <= 0 {
		return engine.Config{}, fmt.Errorf("--display-window must be > 0")
	}
	if gameHistoryWindowMs <= 0 {
		return engine.Config{}, fmt.Errorf("--history-window must be > 0")
	}
	cfg := engine.Config{
		StartLifeP1:   gameLife,
		StartLifeP2:   gameLife,
		DisplayWindow: time.Duration(gameDisplayWindowMs) * time.Millisecond,
		HistoryWindow: time.Duration(gameHistoryWindowMs) * time.Millisecond,
	}
	if gameLifeP1 != 0 {
		cfg.StartLifeP1 = gameLifeP1
	}
	if gameLifeP2 != 0 {
		cfg.StartLifeP2 = gameLifeP2
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tally configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# life = %d                 # Starting life for both players
# life-p1 = %d              # Starting life for player 1 (overrides life)
# life-p2 = %d              # Starting life for player 2 (overrides life)
# display-window-ms = %d  # Delta badge window
# history-window-ms = %d  # Change-log debounce window
`,
		defaultLife,
		defaultLife,
		defaultLife,
		defaultDisplayWindowMs,
		defaultHistoryWindowMs,
	)
}
