package wm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/boringwm/internal/config"
	"github.com/1broseidon/boringwm/internal/keys"
	"github.com/1broseidon/boringwm/internal/launch"
	"github.com/1broseidon/boringwm/internal/tiling"
)

const (
	keyQ      xproto.Keycode = 24
	keyT      xproto.Keycode = 28
	keyReturn xproto.Keycode = 36
	keyD      xproto.Keycode = 40
	keyJ      xproto.Keycode = 44
	keyK      xproto.Keycode = 45
	keyB      xproto.Keycode = 56
	keyMute   xproto.Keycode = 121
	keyLower  xproto.Keycode = 122
	keyRaise  xproto.Keycode = 123
)

func testKeycodes() map[string]xproto.Keycode {
	return map[string]xproto.Keycode{
		"q":                    keyQ,
		"t":                    keyT,
		"Return":               keyReturn,
		"d":                    keyD,
		"j":                    keyJ,
		"k":                    keyK,
		"b":                    keyB,
		"XF86AudioMute":        keyMute,
		"XF86AudioLowerVolume": keyLower,
		"XF86AudioRaiseVolume": keyRaise,
	}
}

type grab struct {
	mods uint16
	code xproto.Keycode
}

type fakeDisplay struct {
	width, height int

	claimErr   error
	keycodes   map[string]xproto.Keycode
	numLock    uint16
	refuseGrab map[xproto.Keycode]bool

	override   map[xproto.Window]bool
	fullscreen map[xproto.Window]bool
	protocols  map[xproto.Window][]string
	mapErr     error

	grabs       []grab
	ungrabs     int
	refreshes   int
	prepared    map[xproto.Window]uint32
	borders     map[xproto.Window]uint32
	mapped      []xproto.Window
	focusCalls  []xproto.Window
	configured  []tiling.Geometry
	passthrough []xproto.ConfigureRequestEvent
	deletes     []xproto.Window
	kills       []xproto.Window
	clientLists [][]xproto.Window
	active      []xproto.Window
	advertised  string
	syncs       int

	events []eventOrError
}

type eventOrError struct {
	ev   xgb.Event
	xerr xgb.Error
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		width:      1920,
		height:     1080,
		keycodes:   testKeycodes(),
		numLock:    xproto.ModMask2,
		override:   map[xproto.Window]bool{},
		fullscreen: map[xproto.Window]bool{},
		protocols:  map[xproto.Window][]string{},
		prepared:   map[xproto.Window]uint32{},
		borders:    map[xproto.Window]uint32{},
	}
}

// ParseKeys splits key strings like keybind.ParseString and looks the key
// up in d.keycodes.
func (d *fakeDisplay) ParseKeys(s string) (uint16, []xproto.Keycode, error) {
	var mods uint16
	var codes []xproto.Keycode
	for _, part := range strings.Split(s, "-") {
		if mask, err := keys.ParseModifier(part); err == nil {
			mods |= mask
			continue
		}
		if code, ok := d.keycodes[part]; ok && len(codes) == 0 {
			codes = []xproto.Keycode{code}
		}
	}
	if len(codes) == 0 {
		return 0, nil, fmt.Errorf("could not find a valid keycode in %q", s)
	}
	return mods, codes, nil
}

func (d *fakeDisplay) GrabKey(mods uint16, code xproto.Keycode) error {
	if d.refuseGrab[code] {
		return errors.New("BadAccess")
	}
	d.grabs = append(d.grabs, grab{mods, code})
	return nil
}

func (d *fakeDisplay) Protocols(win xproto.Window) ([]string, error) {
	return d.protocols[win], nil
}

func (d *fakeDisplay) SendDelete(win xproto.Window, _ xproto.Timestamp) error {
	d.deletes = append(d.deletes, win)
	return nil
}

func (d *fakeDisplay) Kill(win xproto.Window) error {
	d.kills = append(d.kills, win)
	return nil
}

func (d *fakeDisplay) ClaimRoot() error { return d.claimErr }
func (d *fakeDisplay) ScreenSize() (int, int) { return d.width, d.height }
func (d *fakeDisplay) NumLockMask() uint16 { return d.numLock }
func (d *fakeDisplay) RefreshKeyboard() error { d.refreshes++; return nil }
func (d *fakeDisplay) Advertise(name string) error { d.advertised = name; return nil }
func (d *fakeDisplay) Sync() error { d.syncs++; return nil }
func (d *fakeDisplay) SetActiveWindow(win xproto.Window) error {
	d.active = append(d.active, win)
	return nil
}

func (d *fakeDisplay) UngrabKeys() error {
	d.ungrabs++
	d.grabs = nil
	return nil
}

func (d *fakeDisplay) IsOverrideRedirect(win xproto.Window) (bool, error) {
	return d.override[win], nil
}

func (d *fakeDisplay) IsFullscreen(win xproto.Window) (bool, error) {
	return d.fullscreen[win], nil
}

func (d *fakeDisplay) PrepareClient(win xproto.Window, _ int, pixel uint32) error {
	d.prepared[win] = pixel
	return nil
}

func (d *fakeDisplay) SetBorderColor(win xproto.Window, pixel uint32) error {
	d.borders[win] = pixel
	return nil
}

func (d *fakeDisplay) Map(win xproto.Window) error {
	if d.mapErr != nil {
		return d.mapErr
	}
	d.mapped = append(d.mapped, win)
	return nil
}

func (d *fakeDisplay) Focus(win xproto.Window) error {
	d.focusCalls = append(d.focusCalls, win)
	return nil
}

func (d *fakeDisplay) Configure(g tiling.Geometry) error {
	d.configured = append(d.configured, g)
	return nil
}

func (d *fakeDisplay) ConfigureUnmanaged(ev xproto.ConfigureRequestEvent) error {
	d.passthrough = append(d.passthrough, ev)
	return nil
}

func (d *fakeDisplay) SetClientList(wins []xproto.Window) error {
	d.clientLists = append(d.clientLists, wins)
	return nil
}

func (d *fakeDisplay) NextEvent() (xgb.Event, xgb.Error) {
	if len(d.events) == 0 {
		return nil, nil
	}
	next := d.events[0]
	d.events = d.events[1:]
	return next.ev, next.xerr
}

// lastGeometry returns the most recent geometry sent for win.
func (d *fakeDisplay) lastGeometry(win xproto.Window) (tiling.Geometry, bool) {
	for i := len(d.configured) - 1; i >= 0; i-- {
		if d.configured[i].Window == win {
			return d.configured[i], true
		}
	}
	return tiling.Geometry{}, false
}

type fakeLauncher struct {
	spawned [][]string
	err     error
}

func (l *fakeLauncher) Spawn(argv []string) error {
	l.spawned = append(l.spawned, argv)
	return l.err
}

type fakeVolume struct {
	actions []launch.VolumeAction
}

func (v *fakeVolume) Apply(action launch.VolumeAction) {
	v.actions = append(v.actions, action)
}

var _ Display = (*fakeDisplay)(nil)

type harness struct {
	m        *Manager
	d        *fakeDisplay
	launcher *fakeLauncher
	volume   *fakeVolume
}

func newHarness(t *testing.T, mutate func(*config.Config, *fakeDisplay)) *harness {
	t.Helper()
	t.Setenv("PATH", t.TempDir())
	t.Setenv("TERMINAL", "")

	cfg := config.DefaultConfig()
	d := newFakeDisplay()
	if mutate != nil {
		mutate(cfg, d)
	}
	h := &harness{d: d, launcher: &fakeLauncher{}, volume: &fakeVolume{}}
	m, err := New(d, Options{
		Config:   cfg,
		Launcher: h.launcher,
		Volume:   h.volume,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	h.m = m
	return h
}

func (h *harness) mapWindow(wins ...xproto.Window) {
	for _, w := range wins {
		h.m.HandleEvent(xproto.MapRequestEvent{Window: w})
	}
}

func (h *harness) press(code xproto.Keycode, state uint16) {
	h.m.HandleEvent(xproto.KeyPressEvent{Detail: code, State: state, Root: 1, Event: 1})
}
