package launch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VolumeAction is a change requested through a multimedia key.
type VolumeAction int

const (
	VolumeUp VolumeAction = iota
	VolumeDown
	VolumeToggleMute
)

// String returns the string representation of the action
func (a VolumeAction) String() string {
	switch a {
	case VolumeUp:
		return "up"
	case VolumeDown:
		return "down"
	case VolumeToggleMute:
		return "toggle-mute"
	default:
		return "unknown"
	}
}

const volumeTimeout = 5 * time.Second

// Volume drives pactl and reports the result through notify-send.
type Volume struct {
	Launcher *Launcher
	Sink     string
	Step     int
	Notify   bool
	AppName  string
}

// Apply performs action in the background and returns immediately.
func (v *Volume) Apply(action VolumeAction) {
	v.Launcher.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), volumeTimeout)
		defer cancel()
		if err := v.apply(ctx, action); err != nil {
			v.Launcher.logger.Warn("volume change failed", "action", action.String(), "error", err)
		}
	})
}

func (v *Volume) apply(ctx context.Context, action VolumeAction) error {
	if _, err := v.Launcher.output(ctx, v.setArgs(action)); err != nil {
		return fmt.Errorf("pactl: %w", err)
	}
	if !v.Notify {
		return nil
	}

	muted, muteKnown := v.muteState(ctx)
	level, levelKnown := 0, false
	if !(muteKnown && muted) {
		level, levelKnown = v.level(ctx)
	}
	return v.Launcher.Spawn(v.notifyArgs(muted, muteKnown, level, levelKnown))
}

func (v *Volume) setArgs(action VolumeAction) []string {
	switch action {
	case VolumeDown:
		return []string{"pactl", "set-sink-volume", v.Sink, fmt.Sprintf("-%d%%", v.Step)}
	case VolumeToggleMute:
		return []string{"pactl", "set-sink-mute", v.Sink, "toggle"}
	default:
		return []string{"pactl", "set-sink-volume", v.Sink, fmt.Sprintf("+%d%%", v.Step)}
	}
}

func (v *Volume) muteState(ctx context.Context) (muted, known bool) {
	out, err := v.Launcher.output(ctx, []string{"pactl", "get-sink-mute", v.Sink})
	if err != nil {
		return false, false
	}
	return ParseMute(string(out))
}

func (v *Volume) level(ctx context.Context) (int, bool) {
	out, err := v.Launcher.output(ctx, []string{"pactl", "get-sink-volume", v.Sink})
	if err != nil {
		return 0, false
	}
	return FirstPercentage(string(out))
}

func (v *Volume) notifyArgs(muted, muteKnown bool, level int, levelKnown bool) []string {
	argv := []string{
		"notify-send",
		"-a", v.AppName,
		"-u", "low",
		"-h", "string:x-canonical-private-synchronous:volume",
	}
	if levelKnown {
		argv = append(argv, "-h", fmt.Sprintf("int:value:%d", level))
	}

	body := "Changed"
	switch {
	case muteKnown && muted:
		body = "Muted"
	case levelKnown:
		body = fmt.Sprintf("%d%%", level)
	case muteKnown:
		body = "Active"
	}
	return append(argv, "Audio", body)
}

// ParseMute reads `pactl get-sink-mute` output ("Mute: yes").
func ParseMute(out string) (muted, known bool) {
	switch {
	case strings.Contains(out, "yes"):
		return true, true
	case strings.Contains(out, "no"):
		return false, true
	default:
		return false, false
	}
}

// FirstPercentage returns the first whitespace-separated token of the form
// "N%" with N in 0..255.
func FirstPercentage(out string) (int, bool) {
	for _, tok := range strings.Fields(out) {
		p, ok := strings.CutSuffix(tok, "%")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			continue
		}
		return int(n), true
	}
	return 0, false
}
