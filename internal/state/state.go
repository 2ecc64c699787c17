package state

import (
	"github.com/BurntSushi/xgb/xproto"
)

// NoFocus is the focus index of an empty window list.
const NoFocus = -1

// DefaultMasterRatio is the fraction of usable width given to the master window.
const DefaultMasterRatio = 0.6

// WindowState holds the managed windows in tiling order, the focus index and
// the master/stack split ratio.
//
// Invariant: Focus is NoFocus when Windows is empty and 0 <= Focus < len(Windows)
// otherwise. Every mutating method re-derives Focus before returning.
type WindowState struct {
	windows     []xproto.Window
	focus       int
	MasterRatio float64
}

// New creates an empty state with the given master ratio.
func New(masterRatio float64) *WindowState {
	return &WindowState{
		focus:       NoFocus,
		MasterRatio: masterRatio,
	}
}

// Windows returns a copy of the managed windows in tiling order.
func (s *WindowState) Windows() []xproto.Window {
	out := make([]xproto.Window, len(s.windows))
	copy(out, s.windows)
	return out
}

// Len returns the number of managed windows.
func (s *WindowState) Len() int {
	return len(s.windows)
}

// Focus returns the focus index, or NoFocus when nothing is managed.
func (s *WindowState) Focus() int {
	return s.focus
}

// Focused returns the focused window, if any.
func (s *WindowState) Focused() (xproto.Window, bool) {
	if s.focus < 0 || s.focus >= len(s.windows) {
		return 0, false
	}
	return s.windows[s.focus], true
}

// IndexOf returns the position of win, or -1 if it is not managed.
func (s *WindowState) IndexOf(win xproto.Window) int {
	for i, w := range s.windows {
		if w == win {
			return i
		}
	}
	return -1
}

// Contains reports whether win is managed.
func (s *WindowState) Contains(win xproto.Window) bool {
	return s.IndexOf(win) >= 0
}

// Add appends win and focuses it. Adding a managed window is a no-op.
func (s *WindowState) Add(win xproto.Window) bool {
	if s.Contains(win) {
		return false
	}
	s.windows = append(s.windows, win)
	s.focus = len(s.windows) - 1
	return true
}

// Remove drops win from the list and re-derives focus:
//   - removing the focused window focuses its predecessor (or index 0 if it was first)
//   - removing a window before the focused one keeps focus on the same window
//   - an empty list has NoFocus
//
// It reports whether win was managed.
func (s *WindowState) Remove(win xproto.Window) bool {
	index := s.IndexOf(win)
	if index < 0 {
		return false
	}
	s.windows = append(s.windows[:index], s.windows[index+1:]...)

	if len(s.windows) == 0 {
		s.focus = NoFocus
		return true
	}

	switch {
	case s.focus == index:
		if index > 0 {
			s.focus = index - 1
		} else {
			s.focus = 0
		}
	case index < s.focus:
		s.focus--
	}

	if s.focus >= len(s.windows) {
		s.focus = len(s.windows) - 1
	}
	if s.focus < 0 {
		s.focus = 0
	}
	return true
}

// FocusNext moves focus forward, wrapping from the last window to the first.
func (s *WindowState) FocusNext() {
	if len(s.windows) == 0 {
		return
	}
	s.focus = (s.focus + 1) % len(s.windows)
}

// FocusPrev moves focus backward, wrapping from the first window to the last.
func (s *WindowState) FocusPrev() {
	if len(s.windows) == 0 {
		return
	}
	s.focus = (s.focus - 1 + len(s.windows)) % len(s.windows)
}

// FocusWindow focuses win if it is managed and reports whether focus changed.
func (s *WindowState) FocusWindow(win xproto.Window) bool {
	index := s.IndexOf(win)
	if index < 0 || index == s.focus {
		return false
	}
	s.focus = index
	return true
}
