package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/boringwm/internal/keys"
	"github.com/1broseidon/boringwm/internal/launch"
	"github.com/1broseidon/boringwm/internal/protocol"
	"github.com/1broseidon/boringwm/internal/tiling"
)

// Display is the display server surface the window manager drives.
type Display interface {
	keys.Parser
	keys.Grabber
	protocol.Client

	// ClaimRoot selects substructure redirect, substructure notify and key
	// press events on the root window. It returns ErrAnotherWM when the
	// redirect is already taken.
	ClaimRoot() error
	// ScreenSize returns the root window size in pixels.
	ScreenSize() (width, height int)

	// NumLockMask returns the modifier bit NumLock is mapped to, or 0.
	NumLockMask() uint16
	// RefreshKeyboard reloads cached keyboard and modifier maps.
	RefreshKeyboard() error
	// UngrabKeys releases every passive key grab on the root window.
	UngrabKeys() error

	IsOverrideRedirect(win xproto.Window) (bool, error)
	IsFullscreen(win xproto.Window) (bool, error)

	// PrepareClient sets the border of a newly adopted window and selects
	// focus change events on it.
	PrepareClient(win xproto.Window, borderWidth int, borderPixel uint32) error
	SetBorderColor(win xproto.Window, pixel uint32) error
	Map(win xproto.Window) error
	// Focus gives win input focus and raises it.
	Focus(win xproto.Window) error
	Configure(g tiling.Geometry) error
	// ConfigureUnmanaged grants a configure request unchanged.
	ConfigureUnmanaged(ev xproto.ConfigureRequestEvent) error

	// Advertise publishes EWMH support under the given window manager name.
	Advertise(name string) error
	SetClientList(wins []xproto.Window) error
	SetActiveWindow(win xproto.Window) error

	// Sync blocks until the server has processed every request sent so far.
	Sync() error
	// NextEvent blocks for the next event or asynchronous request error.
	// Both are nil once the connection is closed.
	NextEvent() (xgb.Event, xgb.Error)
}

// Launcher starts collaborator processes without waiting for them.
type Launcher interface {
	Spawn(argv []string) error
}

// VolumeControl changes the audio volume in the background.
type VolumeControl interface {
	Apply(action launch.VolumeAction)
}
