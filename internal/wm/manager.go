package wm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/boringwm/internal/config"
	"github.com/1broseidon/boringwm/internal/keys"
	"github.com/1broseidon/boringwm/internal/state"
	"github.com/1broseidon/boringwm/internal/tiling"
)

// Name is advertised through _NET_WM_NAME.
const Name = "boringwm"

// Options holds the collaborators and configuration of a Manager.
type Options struct {
	Config   *config.Config
	Launcher Launcher
	Volume   VolumeControl
	Logger   *slog.Logger
}

// Manager owns the managed window sequence and reacts to display events.
// All of its methods must be called from a single goroutine.
type Manager struct {
	display  Display
	launcher Launcher
	volume   VolumeControl
	logger   *slog.Logger

	state  *state.WindowState
	layout tiling.MasterStack
	table  keys.Table

	modMask      uint16
	borderWidth  int
	focusedPixel uint32
	normalPixel  uint32
	commands     map[keys.Command][]string
	rebind       bool

	screenWidth  int
	screenHeight int

	applied    map[xproto.Window]tiling.Geometry
	focused    xproto.Window
	published  bool
	clientList []xproto.Window
	active     xproto.Window
	tolerated  errorLog
}

// New validates opts.Config and returns a Manager bound to d.
func New(d Display, opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	mod, err := cfg.ModMask()
	if err != nil {
		return nil, err
	}
	focused, normal, err := cfg.BorderPixels()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		display:      d,
		launcher:     opts.Launcher,
		volume:       opts.Volume,
		logger:       logger,
		state:        state.New(cfg.MasterRatio),
		layout:       tiling.MasterStack{Gap: cfg.Gap},
		modMask:      mod,
		borderWidth:  cfg.BorderWidth,
		focusedPixel: focused,
		normalPixel:  normal,
		commands: map[keys.Command][]string{
			keys.CommandTerminal:    cfg.ResolveTerminal(),
			keys.CommandFileManager: cfg.FileManager,
			keys.CommandBrowser:     cfg.Browser,
			keys.CommandLauncher:    cfg.Launcher,
		},
		rebind:  cfg.RebindOnMappingChange,
		applied: make(map[xproto.Window]tiling.Geometry),
	}, nil
}

// Start claims the root window and registers the key bindings. Only a
// failed root claim or a modifier that collides with Num_Lock is returned;
// every other failure is tolerated.
func (m *Manager) Start() error {
	if numLock := m.display.NumLockMask(); numLock&m.modMask != 0 {
		return &RequestError{
			Op:       "bind keys",
			Severity: SeverityFatal,
			Err:      fmt.Errorf("%w: %s", ErrLockModifier, keys.ModifierString(m.modMask)),
		}
	}
	if err := m.display.ClaimRoot(); err != nil {
		return &RequestError{Op: "claim root", Severity: SeverityFatal, Err: err}
	}

	m.screenWidth, m.screenHeight = m.display.ScreenSize()
	m.tolerate("advertise ewmh", 0, m.display.Advertise(Name))
	m.bindKeys()
	m.publish()
	m.tolerate("sync", 0, m.display.Sync())

	m.logger.Info("window manager started",
		"screen", fmt.Sprintf("%dx%d", m.screenWidth, m.screenHeight),
		"mod", keys.ModifierString(m.modMask))
	return nil
}

// Run processes events until ctx is cancelled or the connection closes.
func (m *Manager) Run(ctx context.Context) error {
	type item struct {
		ev   xgb.Event
		xerr xgb.Error
	}

	items := make(chan item)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev, xerr := m.display.NextEvent()
			select {
			case items <- item{ev, xerr}:
			case <-done:
				return
			}
			if ev == nil && xerr == nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case it := <-items:
			switch {
			case it.xerr != nil:
				m.tolerate("request", 0, it.xerr)
			case it.ev == nil:
				return ErrDisconnected
			default:
				m.HandleEvent(it.ev)
			}
		}
	}
}

// Windows returns the managed windows in layout order.
func (m *Manager) Windows() []xproto.Window {
	return m.state.Windows()
}

// Focused returns the focused managed window.
func (m *Manager) Focused() (xproto.Window, bool) {
	return m.state.Focused()
}

// Tolerated returns the most recent ignorable request failures, oldest first.
func (m *Manager) Tolerated() []RequestError {
	return append([]RequestError(nil), m.tolerated.entries...)
}

// ToleratedCount returns how many ignorable failures occurred in total.
func (m *Manager) ToleratedCount() int {
	return m.tolerated.total
}

func (m *Manager) tolerate(op string, win xproto.Window, err error) {
	if err == nil {
		return
	}
	e := RequestError{Op: op, Window: win, Severity: SeverityIgnorable, Err: err}
	m.tolerated.add(e)
	m.logger.Debug("request failed", "op", op, "window", uint32(win), "error", err)
}

func (m *Manager) bindKeys() {
	numLock := m.display.NumLockMask()
	if numLock == 0 {
		numLock = keys.DefaultNumLockMask
	}

	bindings := keys.DefaultBindings(keys.ModifierString(m.modMask))
	table, unresolved := keys.Build(m.display, bindings, keys.LockMask(numLock))
	m.table = table
	for _, err := range unresolved {
		m.logger.Warn("key not on keyboard, binding disabled", "error", err)
	}

	grabbed, errs := keys.RegisterTable(m.display, m.table, numLock)
	for _, err := range errs {
		m.tolerate("grab key", 0, err)
	}
	m.logger.Debug("key bindings registered", "grabs", grabbed, "failed", len(errs))
}

func (m *Manager) rebindKeys() {
	m.tolerate("ungrab keys", 0, m.display.UngrabKeys())
	m.tolerate("refresh keyboard", 0, m.display.RefreshKeyboard())
	m.bindKeys()
}

// retile moves every managed window to its layout slot, skipping windows
// already in place.
func (m *Manager) retile() {
	windows := m.state.Windows()
	geoms := m.layout.Tile(m.screenWidth, m.screenHeight, windows, m.state.MasterRatio, m.borderWidth)
	for _, g := range geoms {
		if prev, ok := m.applied[g.Window]; ok && prev == g {
			continue
		}
		if err := m.display.Configure(g); err != nil {
			m.tolerate("configure", g.Window, err)
			continue
		}
		m.applied[g.Window] = g
	}
}

// applyFocus paints borders and hands input focus to the focused window.
func (m *Manager) applyFocus() {
	win, ok := m.state.Focused()
	if !ok {
		m.focused = 0
		return
	}
	for _, w := range m.state.Windows() {
		pixel := m.normalPixel
		if w == win {
			pixel = m.focusedPixel
		}
		m.tolerate("set border", w, m.display.SetBorderColor(w, pixel))
	}
	m.tolerate("focus", win, m.display.Focus(win))
	m.focused = win
}

// publish updates _NET_CLIENT_LIST and _NET_ACTIVE_WINDOW when they changed.
func (m *Manager) publish() {
	windows := m.state.Windows()
	active, _ := m.state.Focused()

	if !m.published || !sameWindows(windows, m.clientList) {
		m.tolerate("set client list", 0, m.display.SetClientList(windows))
		m.clientList = windows
	}
	if !m.published || active != m.active {
		m.tolerate("set active window", active, m.display.SetActiveWindow(active))
		m.active = active
	}
	m.published = true
}

func sameWindows(a, b []xproto.Window) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
