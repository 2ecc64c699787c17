package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/1broseidon/boringwm/internal/config"
	"github.com/1broseidon/boringwm/internal/keys"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	keyStyle    = cellStyle.Foreground(lipgloss.Color("39"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func runKeys(args []string, stdout, stderr io.Writer) int {
	cfg, code := parseConfigFlags("keys", args, stderr, nil)
	if cfg == nil {
		return code
	}
	rendered, err := renderBindings(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, rendered)
	return 0
}

// renderBindings renders the key bindings of cfg as a table.
func renderBindings(cfg *config.Config) (string, error) {
	mod, err := cfg.ModMask()
	if err != nil {
		return "", err
	}

	var rows [][]string
	for _, b := range keys.DefaultBindings(keys.ModifierString(mod)) {
		rows = append(rows, []string{b.String(), b.Command.String(), describe(cfg, b.Command)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("KEY", "COMMAND", "ACTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
	return t.String(), nil
}

func describe(cfg *config.Config, cmd keys.Command) string {
	switch cmd {
	case keys.CommandTerminal:
		return "run " + strings.Join(cfg.ResolveTerminal(), " ")
	case keys.CommandClose:
		return "close focused window"
	case keys.CommandFocusNext:
		return "focus next window"
	case keys.CommandFocusPrev:
		return "focus previous window"
	case keys.CommandFileManager:
		return "run " + strings.Join(cfg.FileManager, " ")
	case keys.CommandBrowser:
		return "run " + strings.Join(cfg.Browser, " ")
	case keys.CommandLauncher:
		return "run " + cfg.Launcher[0]
	case keys.CommandVolumeUp:
		return fmt.Sprintf("raise %s by %d%%", cfg.Volume.Sink, cfg.Volume.StepPercent)
	case keys.CommandVolumeDown:
		return fmt.Sprintf("lower %s by %d%%", cfg.Volume.Sink, cfg.Volume.StepPercent)
	case keys.CommandVolumeMute:
		return "toggle mute on " + cfg.Volume.Sink
	default:
		return ""
	}
}
