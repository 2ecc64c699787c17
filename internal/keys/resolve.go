package keys

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Parser resolves a key string such as "mod4-Return" against the current
// keyboard mapping. It returns the modifier mask and every keycode that
// carries the key in any column, or an error when no keycode does.
type Parser interface {
	ParseKeys(keys string) (uint16, []xproto.Keycode, error)
}

// Resolve returns the keycodes for keys. A key that is not on the keyboard
// yields an empty result: that binding simply does nothing.
func Resolve(p Parser, keys string) []xproto.Keycode {
	_, codes, err := p.ParseKeys(keys)
	if err != nil {
		return nil
	}
	return codes
}

// Entry is a binding resolved against a keyboard mapping.
type Entry struct {
	Binding
	Modifiers uint16
	Keycodes  []xproto.Keycode
}

// Table maps physical key presses to commands.
type Table struct {
	entries    []Entry
	ignoreMods uint16
}

// Build resolves every binding. ignoreMods are the lock modifiers that must
// not affect matching. Bindings that cannot be resolved stay in the table
// without keycodes and are reported in the returned errors.
func Build(p Parser, bindings []Binding, ignoreMods uint16) (Table, []error) {
	t := Table{ignoreMods: ignoreMods}
	var errs []error
	for _, b := range bindings {
		mods, codes, err := p.ParseKeys(b.Keys)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %s (%s): %w", b.Keys, b.Command, err))
			codes = nil
		}
		t.entries = append(t.entries, Entry{
			Binding:   b,
			Modifiers: mods,
			Keycodes:  codes,
		})
	}
	return t, errs
}

// Entries returns the resolved bindings.
func (t Table) Entries() []Entry {
	return t.entries
}

// Keycodes returns the keycodes bound to cmd.
func (t Table) Keycodes(cmd Command) []xproto.Keycode {
	var codes []xproto.Keycode
	for _, e := range t.entries {
		if e.Command == cmd {
			codes = append(codes, e.Keycodes...)
		}
	}
	return codes
}

// keyModMask covers Shift, Lock, Control and Mod1 through Mod5; pointer
// button bits in an event's state are not part of a binding.
const keyModMask = 0x00ff

// Lookup returns the command bound to keycode when pressed with state. Lock
// modifiers are ignored unless the binding itself requires them.
func (t Table) Lookup(keycode xproto.Keycode, state uint16) (Command, bool) {
	for _, e := range t.entries {
		mods := state & keyModMask &^ (t.ignoreMods &^ e.Modifiers)
		if e.Modifiers != mods {
			continue
		}
		for _, c := range e.Keycodes {
			if c == keycode {
				return e.Command, true
			}
		}
	}
	return CommandNone, false
}
