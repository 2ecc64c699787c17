package keys

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgbutil/keybind"
)

// Command is a logical action a key binding triggers.
type Command int

const (
	CommandNone Command = iota
	CommandTerminal
	CommandClose
	CommandFocusNext
	CommandFocusPrev
	CommandFileManager
	CommandBrowser
	CommandLauncher
	CommandVolumeUp
	CommandVolumeDown
	CommandVolumeMute
)

// String returns the string representation of the command
func (c Command) String() string {
	switch c {
	case CommandTerminal:
		return "terminal"
	case CommandClose:
		return "close"
	case CommandFocusNext:
		return "focus-next"
	case CommandFocusPrev:
		return "focus-prev"
	case CommandFileManager:
		return "file-manager"
	case CommandBrowser:
		return "browser"
	case CommandLauncher:
		return "launcher"
	case CommandVolumeUp:
		return "volume-up"
	case CommandVolumeDown:
		return "volume-down"
	case CommandVolumeMute:
		return "volume-mute"
	default:
		return "none"
	}
}

// Binding ties a key string in keybind notation, e.g. "mod4-Return", to a
// Command.
type Binding struct {
	Command Command
	Keys    string
}

func (b Binding) String() string {
	return b.Keys
}

// DefaultBindings returns the built-in binding table. Application and focus
// commands use the modifier named mod; the multimedia keys work without one.
func DefaultBindings(mod string) []Binding {
	with := func(key string) string {
		if mod == "" {
			return key
		}
		return mod + "-" + key
	}
	return []Binding{
		{Command: CommandTerminal, Keys: with("Return")},
		{Command: CommandClose, Keys: with("q")},
		{Command: CommandFocusNext, Keys: with("j")},
		{Command: CommandFocusPrev, Keys: with("k")},
		{Command: CommandFileManager, Keys: with("t")},
		{Command: CommandBrowser, Keys: with("b")},
		{Command: CommandLauncher, Keys: with("d")},
		{Command: CommandVolumeUp, Keys: "XF86AudioRaiseVolume"},
		{Command: CommandVolumeDown, Keys: "XF86AudioLowerVolume"},
		{Command: CommandVolumeMute, Keys: "XF86AudioMute"},
	}
}

// ModifierString renders a modifier mask as "control-mod4".
func ModifierString(mask uint16) string {
	return keybind.ModifierString(mask)
}

// ParseModifier converts a single modifier name such as "mod4" or "control"
// to its mask.
func ParseModifier(name string) (uint16, error) {
	name = strings.TrimSpace(name)
	for i, nice := range keybind.NiceModifiers {
		if nice != "" && strings.EqualFold(nice, name) {
			return keybind.Modifiers[i], nil
		}
	}
	return 0, fmt.Errorf("unknown modifier %q", name)
}
