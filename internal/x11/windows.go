package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/boringwm/internal/tiling"
)

const netWMStateFullscreen = "_NET_WM_STATE_FULLSCREEN"

// IsOverrideRedirect reports whether win asked to bypass the window manager.
func (c *Connection) IsOverrideRedirect(win xproto.Window) (bool, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return false, err
	}
	return attrs.OverrideRedirect, nil
}

// IsFullscreen reports whether win carries _NET_WM_STATE_FULLSCREEN. A
// window without the property is not fullscreen.
func (c *Connection) IsFullscreen(win xproto.Window) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		// xprop reports a missing property as an error.
		return false, nil
	}
	for _, state := range states {
		if state == netWMStateFullscreen {
			return true, nil
		}
	}
	return false, nil
}

// PrepareClient sets the border color and width of a newly managed window and
// subscribes to its focus changes.
func (c *Connection) PrepareClient(win xproto.Window, borderWidth int, borderPixel uint32) error {
	w := xwindow.New(c.XUtil, win)
	w.Change(xproto.CwBorderPixel|xproto.CwEventMask, borderPixel, xproto.EventMaskFocusChange)
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), win,
		xproto.ConfigWindowBorderWidth, []uint32{uint32(borderWidth)}).Check()
}

// SetBorderColor changes the border pixel of win.
func (c *Connection) SetBorderColor(win xproto.Window, pixel uint32) error {
	xwindow.New(c.XUtil, win).Change(xproto.CwBorderPixel, pixel)
	return nil
}

// Map maps win.
func (c *Connection) Map(win xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), win).Check()
}

// Focus gives win the input focus and raises it above its siblings.
func (c *Connection) Focus(win xproto.Window) error {
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
	xwindow.New(c.XUtil, win).Stack(xproto.StackModeAbove)
	return nil
}

// Configure moves and resizes a window to g.
func (c *Connection) Configure(g tiling.Geometry) error {
	mask, values := geometryValues(g)
	xproto.ConfigureWindow(c.XUtil.Conn(), g.Window, mask, values)
	return nil
}

// ConfigureUnmanaged grants a configure request exactly as asked.
func (c *Connection) ConfigureUnmanaged(ev xproto.ConfigureRequestEvent) error {
	mask, values := requestValues(ev)
	if mask == 0 {
		return nil
	}
	xproto.ConfigureWindow(c.XUtil.Conn(), ev.Window, mask, values)
	return nil
}

func geometryValues(g tiling.Geometry) (uint16, []uint32) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth)
	return mask, []uint32{
		uint32(int32(g.Rect.X)),
		uint32(int32(g.Rect.Y)),
		uint32(g.Rect.Width),
		uint32(g.Rect.Height),
		uint32(g.BorderWidth),
	}
}

// requestValues rebuilds the value list of a ConfigureRequest. Values must be
// listed in ascending order of their mask bits.
func requestValues(ev xproto.ConfigureRequestEvent) (uint16, []uint32) {
	var mask uint16
	var values []uint32
	add := func(bit uint16, v uint32) {
		if ev.ValueMask&bit == 0 {
			return
		}
		mask |= bit
		values = append(values, v)
	}

	add(xproto.ConfigWindowX, uint32(int32(ev.X)))
	add(xproto.ConfigWindowY, uint32(int32(ev.Y)))
	add(xproto.ConfigWindowWidth, uint32(ev.Width))
	add(xproto.ConfigWindowHeight, uint32(ev.Height))
	add(xproto.ConfigWindowBorderWidth, uint32(ev.BorderWidth))
	add(xproto.ConfigWindowSibling, uint32(ev.Sibling))
	add(xproto.ConfigWindowStackMode, uint32(ev.StackMode))
	return mask, values
}
