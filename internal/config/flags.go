package config

import (
	"flag"
	"strconv"
	"strings"
)

// commandValue adapts a []string command to flag.Value, parsing with SplitCommand.
type commandValue struct {
	argv *[]string
}

func (v commandValue) String() string {
	if v.argv == nil {
		return ""
	}
	parts := make([]string, 0, len(*v.argv))
	for _, a := range *v.argv {
		if a == "" || strings.ContainsAny(a, " \t\"'\\") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

func (v commandValue) Set(s string) error {
	argv, err := SplitCommand(s)
	if err != nil {
		return err
	}
	*v.argv = argv
	return nil
}

// RegisterFlags binds c's fields to fs so command-line values override the
// defaults already stored in c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ModKey, "mod", c.ModKey, "Modifier for window manager bindings (mod1..mod5, control, shift)")
	fs.IntVar(&c.BorderWidth, "border", c.BorderWidth, "Border width in pixels")
	fs.IntVar(&c.Gap, "gap", c.Gap, "Gap between tiles and around the screen edge in pixels")
	fs.Float64Var(&c.MasterRatio, "ratio", c.MasterRatio, "Fraction of the width given to the master window")
	fs.StringVar(&c.FocusedBorder, "focused-border", c.FocusedBorder, "Border color of the focused window (#rrggbb)")
	fs.StringVar(&c.NormalBorder, "normal-border", c.NormalBorder, "Border color of unfocused windows (#rrggbb)")
	fs.Var(commandValue{&c.Terminal}, "terminal", "Terminal command")
	fs.Var(commandValue{&c.FileManager}, "file-manager", "File manager command")
	fs.Var(commandValue{&c.Browser}, "browser", "Browser command")
	fs.Var(commandValue{&c.Launcher}, "launcher", "Application launcher command")
	fs.StringVar(&c.Volume.Sink, "sink", c.Volume.Sink, "pactl sink controlled by the volume keys")
	fs.IntVar(&c.Volume.StepPercent, "volume-step", c.Volume.StepPercent, "Volume change per key press in percent")
	fs.BoolVar(&c.Notify.Enabled, "notify", c.Notify.Enabled, "Show a notification after volume changes")
	fs.StringVar(&c.Autostart, "autostart", c.Autostart, "Script run once at startup")
	fs.BoolVar(&c.RebindOnMappingChange, "rebind", c.RebindOnMappingChange, "Re-grab bindings when the keyboard mapping changes")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
}
