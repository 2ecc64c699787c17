package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/boringwm/internal/protocol"
)

// Protocols returns the atom names in win's WM_PROTOCOLS.
func (c *Connection) Protocols(win xproto.Window) ([]string, error) {
	return icccm.WmProtocolsGet(c.XUtil, win)
}

// SendDelete asks win to close itself with a WM_PROTOCOLS client message.
// The message is built by hand so the timestamp of the triggering key press
// is passed through.
func (c *Connection) SendDelete(win xproto.Window, time xproto.Timestamp) error {
	wmProtocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}
	wmDelete, err := xprop.Atm(c.XUtil, protocol.DeleteWindow)
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", protocol.DeleteWindow, err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   wmProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(wmDelete), uint32(time), 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// Kill terminates the client connection that owns win.
func (c *Connection) Kill(win xproto.Window) error {
	return xproto.KillClientChecked(c.XUtil.Conn(), uint32(win)).Check()
}
