package keys

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// DefaultNumLockMask is the modifier NumLock sits on with stock X keymaps.
const DefaultNumLockMask = xproto.ModMask2

// Grabber issues passive key grabs on the root window.
type Grabber interface {
	GrabKey(modifiers uint16, keycode xproto.Keycode) error
}

// GrabError records a single grab the server refused.
type GrabError struct {
	Modifiers uint16
	Keycode   xproto.Keycode
	Err       error
}

func (e *GrabError) Error() string {
	return fmt.Sprintf("grab keycode %d with modifiers 0x%x: %v", e.Keycode, e.Modifiers, e.Err)
}

func (e *GrabError) Unwrap() error {
	return e.Err
}

// LockMask returns the lock modifiers that must not prevent a binding from
// firing: CapsLock always, plus the NumLock modifier when it is distinct.
func LockMask(numLock uint16) uint16 {
	return xproto.ModMaskLock | numLock
}

// ModifierVariants returns base combined with every subset of the lock
// modifiers: base, base|NumLock, base|CapsLock and base|NumLock|CapsLock.
func ModifierVariants(base, numLock uint16) []uint16 {
	locks := []uint16{uint16(xproto.ModMaskLock)}
	if numLock != 0 && numLock != xproto.ModMaskLock {
		locks = append(locks, numLock)
	}

	variants := []uint16{base}
	seen := map[uint16]struct{}{base: {}}
	for subset := 1; subset < (1 << len(locks)); subset++ {
		mask := base
		for bit := range locks {
			if subset&(1<<bit) != 0 {
				mask |= locks[bit]
			}
		}
		if _, ok := seen[mask]; ok {
			continue
		}
		seen[mask] = struct{}{}
		variants = append(variants, mask)
	}
	return variants
}

// Register grabs every (keycode, variant) pair. A refused grab (usually
// another client holding a conflicting one) is collected and the remaining
// grabs still go ahead. It returns how many grabs succeeded.
func Register(g Grabber, keycodes []xproto.Keycode, variants []uint16) (int, []error) {
	grabbed := 0
	var errs []error
	for _, mods := range variants {
		for _, code := range keycodes {
			if err := g.GrabKey(mods, code); err != nil {
				errs = append(errs, &GrabError{Modifiers: mods, Keycode: code, Err: err})
				continue
			}
			grabbed++
		}
	}
	return grabbed, errs
}

// RegisterTable grabs every entry of t with the lock variants of its modifiers.
func RegisterTable(g Grabber, t Table, numLock uint16) (int, []error) {
	total := 0
	var errs []error
	for _, e := range t.Entries() {
		n, grabErrs := Register(g, e.Keycodes, ModifierVariants(e.Modifiers, numLock))
		total += n
		errs = append(errs, grabErrs...)
	}
	return total, errs
}
