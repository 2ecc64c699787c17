package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
)

// ParseKeys resolves a key string such as "mod4-Return" against the
// keyboard mapping cached by keybind.
func (c *Connection) ParseKeys(keys string) (uint16, []xproto.Keycode, error) {
	return keybind.ParseString(c.XUtil, keys)
}

// GrabKey installs a passive grab for keycode with exactly mods on the root
// window.
func (c *Connection) GrabKey(mods uint16, keycode xproto.Keycode) error {
	return xproto.GrabKeyChecked(c.XUtil.Conn(), false, c.Root, mods, keycode,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
}

// UngrabKeys releases every key grab held on the root window.
func (c *Connection) UngrabKeys() error {
	return xproto.UngrabKeyChecked(c.XUtil.Conn(), xproto.GrabAny, c.Root, xproto.ModMaskAny).Check()
}

// RefreshKeyboard reloads the keyboard and modifier maps cached by keybind
// after a MappingNotify.
func (c *Connection) RefreshKeyboard() (err error) {
	// MapsGet panics when the server refuses either request.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh keyboard: %v", r)
		}
	}()
	keyMap, modMap := keybind.MapsGet(c.XUtil)
	keybind.KeyMapSet(c.XUtil, keyMap)
	keybind.ModMapSet(c.XUtil, modMap)
	return nil
}

// NumLockMask returns the modifier bit Num_Lock is assigned to, or 0.
func (c *Connection) NumLockMask() uint16 {
	return c.modMaskForKeysym("Num_Lock")
}

func (c *Connection) modMaskForKeysym(keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(c.XUtil, keysym) {
		if mask := keybind.ModGet(c.XUtil, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
