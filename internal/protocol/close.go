// Package protocol negotiates window termination with X clients.
//
// A close request first asks whether the window lists WM_DELETE_WINDOW in its
// WM_PROTOCOLS property. If it does, the window receives a WM_PROTOCOLS client
// message and is expected to close itself, which later shows up as a normal
// destroy/unmap notification. Otherwise the owning client connection is killed.
package protocol

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// DeleteWindow is the ICCCM protocol atom name for graceful close.
const DeleteWindow = "WM_DELETE_WINDOW"

// Client is the display-side surface the close negotiation needs.
type Client interface {
	// Protocols returns the atom names listed in the window's WM_PROTOCOLS.
	Protocols(win xproto.Window) ([]string, error)
	// SendDelete sends a WM_PROTOCOLS client message naming WM_DELETE_WINDOW.
	SendDelete(win xproto.Window, time xproto.Timestamp) error
	// Kill forcibly terminates the client owning win.
	Kill(win xproto.Window) error
}

// Outcome is the leaf a close request ended in.
type Outcome int

const (
	OutcomeGraceful Outcome = iota
	OutcomeForced
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeGraceful:
		return "graceful"
	case OutcomeForced:
		return "forced"
	default:
		return "unknown"
	}
}

// SupportsDelete reports whether win advertises WM_DELETE_WINDOW. A failed
// property query counts as unsupported.
func SupportsDelete(c Client, win xproto.Window) bool {
	protocols, err := c.Protocols(win)
	if err != nil {
		return false
	}
	for _, p := range protocols {
		if p == DeleteWindow {
			return true
		}
	}
	return false
}

// RequestClose asks win to close, gracefully when the client supports it and
// by killing its connection otherwise. The returned error belongs to the
// final request only and is safe to ignore.
func RequestClose(c Client, win xproto.Window, time xproto.Timestamp) (Outcome, error) {
	if SupportsDelete(c, win) {
		if err := c.SendDelete(win, time); err != nil {
			return OutcomeGraceful, fmt.Errorf("send %s to window %d: %w", DeleteWindow, win, err)
		}
		return OutcomeGraceful, nil
	}

	if err := c.Kill(win); err != nil {
		return OutcomeForced, fmt.Errorf("kill client of window %d: %w", win, err)
	}
	return OutcomeForced, nil
}
