package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/boringwm/internal/wm"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// supporting is the _NET_SUPPORTING_WM_CHECK window, created by Advertise.
	supporting *xwindow.Window
}

var _ wm.Display = (*Connection)(nil)

// NewConnection establishes a connection to the X11 server named by display
// (empty means $DISPLAY).
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Loads the keyboard and modifier maps NumLockMask consults.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.supporting != nil {
		c.supporting.Destroy()
	}
	c.XUtil.Conn().Close()
}

// ClaimRoot selects the root window events a window manager needs. Only one
// client may hold substructure redirect; a BadAccess reply means another
// window manager is running.
func (c *Connection) ClaimRoot() error {
	root := xwindow.New(c.XUtil, c.Root)
	err := root.Listen(
		xproto.EventMaskSubstructureRedirect,
		xproto.EventMaskSubstructureNotify,
		xproto.EventMaskKeyPress,
	)
	if err == nil {
		return nil
	}
	var access xproto.AccessError
	if errors.As(err, &access) {
		return wm.ErrAnotherWM
	}
	return fmt.Errorf("select root events: %w", err)
}

// ScreenSize returns the size of the default screen.
func (c *Connection) ScreenSize() (int, int) {
	screen := c.XUtil.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

// Sync waits for the server to process every request sent so far.
func (c *Connection) Sync() error {
	_, err := xproto.GetInputFocus(c.XUtil.Conn()).Reply()
	return err
}

// NextEvent blocks for the next event or asynchronous error.
func (c *Connection) NextEvent() (xgb.Event, xgb.Error) {
	return c.XUtil.Conn().WaitForEvent()
}
