package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/boringwm/internal/keys"
	"github.com/1broseidon/boringwm/internal/paths"
	"github.com/1broseidon/boringwm/internal/state"
	"github.com/1broseidon/boringwm/internal/tiling"
)

// VolumeConfig configures the pactl invocations behind the multimedia keys.
type VolumeConfig struct {
	// Sink is the pactl sink name (default: @DEFAULT_SINK@)
	Sink string `yaml:"sink"`
	// StepPercent is the volume change per key press
	StepPercent int `yaml:"step_percent"`
}

// NotifyConfig configures the on-screen volume notification.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"app_name"`
}

// Config is the effective window manager configuration.
type Config struct {
	ModKey        string  `yaml:"mod_key"`
	BorderWidth   int     `yaml:"border_width"`
	Gap           int     `yaml:"gap"`
	MasterRatio   float64 `yaml:"master_ratio"`
	FocusedBorder string  `yaml:"focused_border"`
	NormalBorder  string  `yaml:"normal_border"`

	Terminal    []string `yaml:"terminal"`
	FileManager []string `yaml:"file_manager"`
	Browser     []string `yaml:"browser"`
	Launcher    []string `yaml:"launcher"`

	Volume VolumeConfig `yaml:"volume"`
	Notify NotifyConfig `yaml:"notify"`

	// Autostart is run once at startup when it is an executable regular file.
	Autostart string `yaml:"autostart"`

	// RebindOnMappingChange re-resolves and re-grabs key bindings when the
	// server reports a keyboard mapping change.
	RebindOnMappingChange bool `yaml:"rebind_on_mapping_change"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	autostart, err := paths.AutostartPath()
	if err != nil {
		autostart = ""
	}
	return &Config{
		ModKey:        "mod4",
		BorderWidth:   2,
		Gap:           tiling.DefaultGap,
		MasterRatio:   state.DefaultMasterRatio,
		FocusedBorder: "#88ccff",
		NormalBorder:  "#333333",
		Terminal:      []string{"kitty"},
		FileManager:   []string{"thunar"},
		Browser:       []string{"firefox"},
		Launcher:      []string{"rofi", "-show", "drun", "-modi", "drun,wifi:nmcli rofi wifi-menu"},
		Volume: VolumeConfig{
			Sink:        "@DEFAULT_SINK@",
			StepPercent: 5,
		},
		Notify: NotifyConfig{
			Enabled: true,
			AppName: "BoringWM",
		},
		Autostart: autostart,
		LogLevel:  "info",
	}
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validate checks the configuration for values the window manager cannot run with.
func (c *Config) Validate() error {
	mod, err := c.ModMask()
	if err != nil {
		return &ValidationError{Path: "mod_key", Err: err}
	}
	if mod == xproto.ModMaskLock {
		return &ValidationError{Path: "mod_key", Err: fmt.Errorf("lock is a toggle and cannot be the window manager modifier")}
	}
	if c.BorderWidth < 0 {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	if c.Gap < 0 {
		return &ValidationError{Path: "gap", Err: fmt.Errorf("gap must be >= 0")}
	}
	if c.MasterRatio <= 0 || c.MasterRatio >= 1 {
		return &ValidationError{Path: "master_ratio", Err: fmt.Errorf("master_ratio must be between 0 and 1 (exclusive)")}
	}
	if _, err := ParseColor(c.FocusedBorder); err != nil {
		return &ValidationError{Path: "focused_border", Err: err}
	}
	if _, err := ParseColor(c.NormalBorder); err != nil {
		return &ValidationError{Path: "normal_border", Err: err}
	}
	for path, cmd := range map[string][]string{
		"terminal":     c.Terminal,
		"file_manager": c.FileManager,
		"browser":      c.Browser,
		"launcher":     c.Launcher,
	} {
		if len(cmd) == 0 || strings.TrimSpace(cmd[0]) == "" {
			return &ValidationError{Path: path, Err: fmt.Errorf("command must not be empty")}
		}
	}
	if strings.TrimSpace(c.Volume.Sink) == "" {
		return &ValidationError{Path: "volume.sink", Err: fmt.Errorf("sink must not be empty")}
	}
	if c.Volume.StepPercent <= 0 || c.Volume.StepPercent > 100 {
		return &ValidationError{Path: "volume.step_percent", Err: fmt.Errorf("step_percent must be between 1 and 100")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}

// ModMask returns the X modifier mask for ModKey.
func (c *Config) ModMask() (uint16, error) {
	return keys.ParseModifier(c.ModKey)
}

// BorderPixels returns the focused and normal border colors as pixel values.
func (c *Config) BorderPixels() (focused, normal uint32, err error) {
	if focused, err = ParseColor(c.FocusedBorder); err != nil {
		return 0, 0, fmt.Errorf("focused_border: %w", err)
	}
	if normal, err = ParseColor(c.NormalBorder); err != nil {
		return 0, 0, fmt.Errorf("normal_border: %w", err)
	}
	return focused, normal, nil
}

// ParseColor parses "#rrggbb" (the leading '#' is optional) into a 24-bit
// TrueColor pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must have the form #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
