package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/boringwm/internal/keys"
	"github.com/1broseidon/boringwm/internal/launch"
	"github.com/1broseidon/boringwm/internal/protocol"
	"github.com/1broseidon/boringwm/internal/tiling"
)

// HandleEvent processes a single event to completion: it updates the window
// state, issues the resulting requests, retiles and syncs with the server.
// Event types not listed below are ignored.
func (m *Manager) HandleEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		m.onMapRequest(e)
	case xproto.DestroyNotifyEvent:
		m.forget(e.Window)
	case xproto.UnmapNotifyEvent:
		m.forget(e.Window)
	case xproto.ConfigureRequestEvent:
		m.onConfigureRequest(e)
	case xproto.KeyPressEvent:
		m.onKeyPress(e)
	case xproto.FocusInEvent:
		m.onFocusIn(e)
	case xproto.MappingNotifyEvent:
		m.onMappingNotify(e)
	default:
		// Everything else needs no reaction beyond the retile below.
	}

	if win, ok := m.state.Focused(); !ok {
		m.focused = 0
	} else if win != m.focused {
		m.applyFocus()
	}

	m.retile()
	m.publish()
	m.tolerate("sync", 0, m.display.Sync())
}

func (m *Manager) onMapRequest(e xproto.MapRequestEvent) {
	win := e.Window
	if m.state.Contains(win) {
		m.tolerate("map", win, m.display.Map(win))
		return
	}

	override, err := m.display.IsOverrideRedirect(win)
	m.tolerate("get window attributes", win, err)
	if override {
		m.tolerate("map", win, m.display.Map(win))
		return
	}

	fullscreen, err := m.display.IsFullscreen(win)
	m.tolerate("get wm state", win, err)
	if fullscreen {
		m.tolerate("configure", win, m.display.Configure(tiling.Fullscreen(win, m.screenWidth, m.screenHeight)))
		m.tolerate("map", win, m.display.Map(win))
		m.logger.Debug("fullscreen window left unmanaged", "window", uint32(win))
		return
	}

	m.tolerate("prepare client", win, m.display.PrepareClient(win, m.borderWidth, m.normalPixel))
	m.state.Add(win)
	m.tolerate("map", win, m.display.Map(win))
	m.logger.Debug("window managed", "window", uint32(win), "count", m.state.Len())
}

func (m *Manager) forget(win xproto.Window) {
	delete(m.applied, win)
	if m.state.Remove(win) {
		m.logger.Debug("window released", "window", uint32(win), "count", m.state.Len())
	}
}

func (m *Manager) onConfigureRequest(e xproto.ConfigureRequestEvent) {
	if m.state.Contains(e.Window) {
		// Managed windows keep their tile; forgetting the applied geometry
		// makes the retile that follows reassert it.
		delete(m.applied, e.Window)
		return
	}
	m.tolerate("configure unmanaged", e.Window, m.display.ConfigureUnmanaged(e))
}

func (m *Manager) onKeyPress(e xproto.KeyPressEvent) {
	cmd, ok := m.table.Lookup(e.Detail, e.State)
	if !ok {
		return
	}
	m.logger.Debug("key command", "command", cmd.String())

	switch cmd {
	case keys.CommandFocusNext:
		m.state.FocusNext()
	case keys.CommandFocusPrev:
		m.state.FocusPrev()
	case keys.CommandClose:
		win, ok := m.state.Focused()
		if !ok {
			return
		}
		outcome, err := protocol.RequestClose(m.display, win, e.Time)
		m.tolerate("close", win, err)
		m.logger.Debug("close requested", "window", uint32(win), "outcome", outcome.String())
	case keys.CommandVolumeUp:
		m.adjustVolume(launch.VolumeUp)
	case keys.CommandVolumeDown:
		m.adjustVolume(launch.VolumeDown)
	case keys.CommandVolumeMute:
		m.adjustVolume(launch.VolumeToggleMute)
	default:
		m.spawn(cmd)
	}
}

func (m *Manager) spawn(cmd keys.Command) {
	argv, ok := m.commands[cmd]
	if !ok || m.launcher == nil {
		return
	}
	if err := m.launcher.Spawn(argv); err != nil {
		m.logger.Warn("launch failed", "command", cmd.String(), "error", err)
	}
}

func (m *Manager) adjustVolume(action launch.VolumeAction) {
	if m.volume == nil {
		return
	}
	m.volume.Apply(action)
}

func (m *Manager) onFocusIn(e xproto.FocusInEvent) {
	// Focus moves caused by keyboard grabs and pointer-root transitions say
	// nothing about which client the user picked.
	if e.Mode == xproto.NotifyModeGrab || e.Mode == xproto.NotifyModeUngrab {
		return
	}
	if e.Detail == xproto.NotifyDetailPointer {
		return
	}
	if cur, ok := m.state.Focused(); ok && cur == e.Event {
		return
	}
	m.state.FocusWindow(e.Event)
}

func (m *Manager) onMappingNotify(e xproto.MappingNotifyEvent) {
	if e.Request != xproto.MappingKeyboard && e.Request != xproto.MappingModifier {
		return
	}
	if !m.rebind {
		m.logger.Debug("keyboard mapping changed, bindings kept")
		return
	}
	m.logger.Info("keyboard mapping changed, rebinding keys")
	m.rebindKeys()
}
