package wm

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

var (
	// ErrAnotherWM means the root window's substructure redirect is held by
	// another client.
	ErrAnotherWM = errors.New("another window manager is already running")
	// ErrDisconnected means the display connection was closed.
	ErrDisconnected = errors.New("display connection closed")
	// ErrLockModifier means the window manager modifier is the one Num_Lock
	// sits on, so every plain key press would carry it.
	ErrLockModifier = errors.New("modifier is held by Num_Lock")
)

// Severity classifies a failed display request.
type Severity int

const (
	// SeverityIgnorable failures leave visual state possibly stale; the
	// event loop keeps running.
	SeverityIgnorable Severity = iota
	// SeverityFatal failures stop the window manager.
	SeverityFatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityIgnorable:
		return "ignorable"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// RequestError is a failed request to the display server.
type RequestError struct {
	Op       string
	Window   xproto.Window
	Severity Severity
	Err      error
}

func (e *RequestError) Error() string {
	if e.Window != 0 {
		return fmt.Sprintf("%s (window 0x%x): %v", e.Op, uint32(e.Window), e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a fatal RequestError or one of the
// fatal sentinels.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAnotherWM) || errors.Is(err, ErrDisconnected) {
		return true
	}
	var re *RequestError
	return errors.As(err, &re) && re.Severity == SeverityFatal
}

// toleratedHistory is the number of ignorable failures kept for inspection.
const toleratedHistory = 64

type errorLog struct {
	total   int
	entries []RequestError
}

func (l *errorLog) add(e RequestError) {
	l.total++
	if len(l.entries) == toleratedHistory {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:toleratedHistory-1]
	}
	l.entries = append(l.entries, e)
}
