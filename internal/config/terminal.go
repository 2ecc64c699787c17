package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	execLookPath = exec.LookPath
	evalSymlinks = filepath.EvalSymlinks
)

// fallbackTerminals are tried in order when neither the configured terminal
// nor $TERMINAL is installed.
var fallbackTerminals = []string{"kitty", "alacritty", "wezterm", "ghostty", "foot", "gnome-terminal", "konsole", "xterm"}

// ResolveTerminal returns the argv used for the terminal binding. Priority:
// 1) the configured command, if its executable is on PATH
// 2) $TERMINAL
// 3) x-terminal-emulator
// 4) the first installed entry of a fixed list
// If nothing is installed the configured command is returned unchanged and
// the spawn failure is left to the launcher.
func (c *Config) ResolveTerminal() []string {
	if c == nil {
		return nil
	}

	if len(c.Terminal) > 0 && installed(c.Terminal[0]) {
		return c.Terminal
	}

	if env := strings.TrimSpace(os.Getenv("TERMINAL")); env != "" {
		if argv, err := SplitCommand(env); err == nil && len(argv) > 0 && installed(argv[0]) {
			return argv
		}
	}

	if resolved := resolveXTerminalEmulator(); resolved != "" {
		return []string{"x-terminal-emulator"}
	}

	for _, exe := range fallbackTerminals {
		if installed(exe) {
			return []string{exe}
		}
	}

	return c.Terminal
}

func installed(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	_, err := execLookPath(name)
	return err == nil
}

func resolveXTerminalEmulator() string {
	path, err := execLookPath("x-terminal-emulator")
	if err != nil {
		return ""
	}
	resolved, err := evalSymlinks(path)
	if err == nil && resolved != "" {
		return filepath.Base(resolved)
	}
	return filepath.Base(path)
}

// SplitCommand splits a shell-like command line into argv. Single and double
// quotes group words and a backslash escapes the next rune outside single
// quotes. No expansion is performed.
func SplitCommand(s string) ([]string, error) {
	var out []string
	var buf strings.Builder
	inSingle := false
	inDouble := false
	escaped := false
	quoted := false

	flush := func() {
		if buf.Len() == 0 && !quoted {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
		quoted = false
	}

	for _, r := range s {
		if escaped {
			buf.WriteRune(r)
			escaped = false
			continue
		}
		if !inSingle && r == '\\' {
			escaped = true
			continue
		}
		if !inDouble && r == '\'' {
			inSingle = !inSingle
			quoted = true
			continue
		}
		if !inSingle && r == '"' {
			inDouble = !inDouble
			quoted = true
			continue
		}
		if !inSingle && !inDouble {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				flush()
				continue
			}
		}
		buf.WriteRune(r)
	}

	if escaped {
		return nil, fmt.Errorf("unfinished escape in command %q", s)
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quote in command %q", s)
	}

	flush()
	return out, nil
}
