// Package window owns the main window's visibility state. All state
// transitions funnel through one mutex, and every native mutation is
// marshalled onto the UI loop through the injected post primitive, so
// the hotkey and tray goroutines never touch the toolkit directly.
package window

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/3C0D/writing-assistant-pro/event"
)

// State is the window's visibility as this package tracks it; the
// native toolkit is only ever told to match it.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Native is the slice of the toolkit window the manager needs. Bound
// lazily because the tray and hotkey come up before the GUI does.
type Native interface {
	Show()
	Hide()
	RaiseToFront() error
}

// Manager toggles the window between Hidden and Visible. The initial
// state is Hidden; the process starts without presenting a window.
type Manager struct {
	log  zerolog.Logger
	bus  *event.Bus
	post func(func())

	mu     sync.Mutex
	state  State
	native Native
}

// NewManager builds a manager whose native mutations run through post.
// post must execute its argument on the UI loop (fyne.Do in
// production, synchronous in tests).
func NewManager(bus *event.Bus, post func(func()), logger zerolog.Logger) *Manager {
	return &Manager{
		log:  logger,
		bus:  bus,
		post: post,
	}
}

// Bind attaches the native window handle. Show/Hide before Bind only
// update tracked state; the toolkit catches up on the next transition
// after binding.
func (m *Manager) Bind(native Native) {
	m.mu.Lock()
	m.native = native
	m.mu.Unlock()
	m.log.Debug().Msg("native window bound")
}

// State reports the tracked visibility.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Toggle shows a hidden window and hides a visible one. The decision
// and the transition happen under the same lock acquisition, so
// concurrent toggles serialize rather than double-fire.
func (m *Manager) Toggle() {
	m.mu.Lock()
	target := Visible
	if m.state == Visible {
		target = Hidden
	}
	m.transitionLocked(target)
}

// Show makes the window visible. Idempotent: showing a visible window
// does nothing and emits nothing.
func (m *Manager) Show() {
	m.mu.Lock()
	m.transitionLocked(Visible)
}

// Hide makes the window invisible. Idempotent like Show.
func (m *Manager) Hide() {
	m.mu.Lock()
	m.transitionLocked(Hidden)
}

// transitionLocked is entered holding m.mu and releases it before the
// shown/hidden emit, so those bus callbacks may call back into the
// manager.
func (m *Manager) transitionLocked(target State) {
	if m.state == target {
		m.mu.Unlock()
		return
	}

	if target == Visible {
		// Pre-show runs before any native mutation so listeners can
		// snapshot focus-sensitive state (the clipboard, the foreground
		// app) while it is still untouched. Emitted under the lock to
		// keep the whole transition atomic; pre-show listeners observe,
		// they do not call back into the manager.
		m.bus.Emit(event.WindowPreShow, nil)
	}

	m.state = target
	native := m.native
	m.mu.Unlock()

	if native != nil {
		m.post(func() {
			if target == Visible {
				native.Show()
				if err := native.RaiseToFront(); err != nil {
					m.log.Warn().Err(err).Msg("cannot raise window to front")
				}
			} else {
				native.Hide()
			}
		})
	}

	m.log.Info().Str("state", target.String()).Msg("window state changed")
	if target == Visible {
		m.bus.Emit(event.WindowShown, nil)
	} else {
		m.bus.Emit(event.WindowHidden, nil)
	}
}

// OnClosing is the close-button intercept. It always cancels the real
// close and hides instead, off the caller's goroutine: fyne invokes the
// intercept on the UI loop, and hiding synchronously from there would
// re-enter post.
func (m *Manager) OnClosing() (cancel bool) {
	m.log.Debug().Msg("close intercepted, hiding instead")
	go m.Hide()
	return true
}
