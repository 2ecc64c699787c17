package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// supportedAtoms are the EWMH hints this window manager maintains or reads.
var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_CLIENT_LIST",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_STATE",
	netWMStateFullscreen,
}

// Advertise creates the _NET_SUPPORTING_WM_CHECK window and publishes the
// window manager name and supported hints.
func (c *Connection) Advertise(name string) error {
	if c.supporting == nil {
		win, err := xwindow.Create(c.XUtil, c.Root)
		if err != nil {
			return fmt.Errorf("create supporting window: %w", err)
		}
		c.supporting = win
	}

	check := c.supporting.Id
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check, check); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(c.XUtil, check, name); err != nil {
		return err
	}
	return ewmh.SupportedSet(c.XUtil, supportedAtoms)
}

// SetClientList publishes the managed windows in layout order.
func (c *Connection) SetClientList(wins []xproto.Window) error {
	if wins == nil {
		wins = []xproto.Window{}
	}
	return ewmh.ClientListSet(c.XUtil, wins)
}

// SetActiveWindow publishes the focused window; 0 means none.
func (c *Connection) SetActiveWindow(win xproto.Window) error {
	return ewmh.ActiveWindowSet(c.XUtil, win)
}
