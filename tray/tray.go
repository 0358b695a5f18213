// Package tray runs the system tray icon and menu. The tray is the
// app's only always-available surface: the window starts hidden, so
// show/hide, autostart and quit all have to be reachable from here.
package tray

import (
	"sync"

	"github.com/energye/systray"
	"github.com/rs/zerolog"

	"github.com/3C0D/writing-assistant-pro/event"
)

const tooltip = "Writing Assistant Pro"

// Autostart is the slice of the autostart layer the menu needs for its
// "Run at startup" checkbox.
type Autostart interface {
	IsEnabled() bool
	SetEnabled(on bool) error
}

// Manager owns the tray loop. Menu state tracks the window through bus
// events, never by polling.
type Manager struct {
	log       zerolog.Logger
	bus       *event.Bus
	autostart Autostart
	iconPath  string

	onToggle func()
	onQuit   func()

	mToggle *systray.MenuItem
	mStart  *systray.MenuItem

	done     chan struct{}
	stopOnce sync.Once
}

// New builds the manager. autostart may be nil; the startup checkbox
// is omitted then.
func New(bus *event.Bus, autostart Autostart, iconPath string, logger zerolog.Logger) *Manager {
	return &Manager{
		log:       logger,
		bus:       bus,
		autostart: autostart,
		iconPath:  iconPath,
		done:      make(chan struct{}),
	}
}

// OnToggleWindow sets the callback for the Show/Hide menu item. Set
// before RunAsync.
func (m *Manager) OnToggleWindow(fn func()) { m.onToggle = fn }

// OnQuit sets the callback for the Quit item. The callback owns the
// teardown order; the tray itself only stops when Stop is called.
func (m *Manager) OnQuit(fn func()) { m.onQuit = fn }

// RunAsync starts the tray loop on its own goroutine and returns
// immediately. The returned channel closes when the loop exits.
func (m *Manager) RunAsync() <-chan struct{} {
	go systray.Run(m.onReady, m.onExit)
	return m.done
}

// Stop ends the tray loop. Idempotent.
func (m *Manager) Stop() {
	m.stopOnce.Do(systray.Quit)
}

func (m *Manager) onReady() {
	systray.SetIcon(m.loadIcon())
	systray.SetTooltip(tooltip)

	m.mToggle = systray.AddMenuItem("Show Window", "Show or hide the main window")
	m.mToggle.Click(func() {
		if m.onToggle != nil {
			m.onToggle()
		}
	})

	if m.autostart != nil {
		m.mStart = systray.AddMenuItemCheckbox("Run at startup", "Start hidden when you log in", m.autostart.IsEnabled())
		m.mStart.Click(m.toggleAutostart)
	}

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit "+tooltip)
	mQuit.Click(func() {
		if m.onQuit != nil {
			m.onQuit()
		}
	})

	// Menu items exist now, safe to let bus events mutate them. The
	// systray loop applies title changes from any goroutine.
	m.bus.On(event.WindowShown, func(event.Payload) {
		m.mToggle.SetTitle("Hide Window")
	})
	m.bus.On(event.WindowHidden, func(event.Payload) {
		m.mToggle.SetTitle("Show Window")
	})

	m.log.Info().Msg("tray ready")
}

func (m *Manager) onExit() {
	m.log.Debug().Msg("tray loop exited")
	close(m.done)
}

func (m *Manager) toggleAutostart() {
	target := !m.autostart.IsEnabled()
	if err := m.autostart.SetEnabled(target); err != nil {
		m.log.Error().Err(err).Bool("enable", target).Msg("cannot update autostart")
		// Keep the checkbox truthful.
		if m.autostart.IsEnabled() {
			m.mStart.Check()
		} else {
			m.mStart.Uncheck()
		}
		return
	}
	if target {
		m.mStart.Check()
	} else {
		m.mStart.Uncheck()
	}
	m.log.Info().Bool("enabled", target).Msg("autostart updated")
}
