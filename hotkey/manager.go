package hotkey

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/3C0D/writing-assistant-pro/event"
)

const (
	DefaultMinTriggerInterval = 500 * time.Millisecond
	DefaultSetupDelay         = 2 * time.Second
)

// Manager owns the single global shortcut registered with the OS and
// the debouncing applied to its triggers. At most one combination is
// registered at any time; re-registering replaces the previous hook.
type Manager struct {
	log         zerolog.Logger
	bus         *event.Bus
	newHook     func(Combination) (Hotkey, error)
	minInterval time.Duration

	mu         sync.Mutex
	hook       Hotkey
	stopCh     chan struct{}
	current    Combination
	generation uint64

	// Debounce state. The try-lock drops triggers while a previous
	// one is mid-flight; lastTrigger enforces the minimum interval.
	processing  sync.Mutex
	lastTrigger time.Time
}

func NewManager(bus *event.Bus, minInterval time.Duration, logger zerolog.Logger) *Manager {
	if minInterval <= 0 {
		minInterval = DefaultMinTriggerInterval
	}
	return &Manager{
		log:         logger,
		bus:         bus,
		newHook:     newOSHotkey,
		minInterval: minInterval,
	}
}

// Register replaces any previous hook with one for combo, invoking cb
// on each debounced trigger. A zero combo disables the hotkey without
// contacting the OS and reports success. Registration failures are
// logged and reported as false; the process keeps running with tray
// controls only.
func (m *Manager) Register(combo Combination, cb func()) bool {
	m.mu.Lock()
	m.generation++
	prev := m.current
	m.unregisterLocked()

	if combo.IsZero() {
		m.mu.Unlock()
		m.log.Info().Msg("hotkey disabled, skipping registration")
		if !prev.IsZero() {
			m.bus.Emit(event.HotkeyChanged, event.Payload{"combination": ""})
		}
		return true
	}

	hook, err := m.newHook(combo)
	if err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Str("combination", combo.String()).Msg("cannot bind hotkey")
		return false
	}
	if err := hook.Register(); err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Str("combination", combo.String()).Msg("hotkey registration failed")
		return false
	}

	m.hook = hook
	m.current = combo
	m.stopCh = make(chan struct{})
	stop := m.stopCh
	m.mu.Unlock()

	m.resetDebounce()
	go m.listen(hook, stop, cb)

	m.log.Info().Str("combination", combo.String()).Msg("global hotkey registered")
	m.bus.Emit(event.HotkeyRegistered, event.Payload{"combination": combo.String()})
	if prev.String() != combo.String() {
		m.bus.Emit(event.HotkeyChanged, event.Payload{"combination": combo.String()})
	}
	return true
}

// RegisterDelayed schedules Register on a background timer, avoiding a
// race with window-manager startup. Each call supersedes any pending
// delayed registration: the timer itself is not cancelled, but the
// generation captured here no-ops a stale firing.
func (m *Manager) RegisterDelayed(combo Combination, cb func(), delay time.Duration) {
	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	m.log.Debug().Dur("delay", delay).Str("combination", combo.String()).
		Msg("hotkey registration scheduled")

	time.AfterFunc(delay, func() {
		m.mu.Lock()
		superseded := m.generation != gen
		m.mu.Unlock()
		if superseded {
			m.log.Debug().Msg("delayed hotkey registration superseded, skipping")
			return
		}
		if !m.Register(combo, cb) {
			m.log.Error().Str("combination", combo.String()).
				Msg("delayed hotkey registration failed")
		}
	})
}

// UnregisterAll removes the OS hook if one is active. Idempotent;
// called on shutdown and before every combination change.
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	m.generation++
	had := m.hook != nil
	m.unregisterLocked()
	m.mu.Unlock()
	if had {
		m.log.Info().Msg("global hotkey unregistered")
	}
}

// Current returns the currently registered combination; zero when the
// hotkey is disabled or registration failed.
func (m *Manager) Current() Combination {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) unregisterLocked() {
	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
	if m.hook != nil {
		m.hook.Unregister()
		m.hook = nil
	}
	m.current = Combination{}
}

func (m *Manager) listen(hk Hotkey, stop <-chan struct{}, cb func()) {
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			m.trigger(cb)
		}
	}
}

func (m *Manager) trigger(cb func()) {
	// Non-blocking: if a previous trigger is still executing, this one
	// is dropped rather than queued. Under bursts of key-repeat only
	// the first trigger per window wins.
	if !m.processing.TryLock() {
		m.log.Debug().Msg("trigger already in flight, dropping")
		return
	}
	defer m.processing.Unlock()

	now := time.Now()
	if !m.lastTrigger.IsZero() && now.Sub(m.lastTrigger) < m.minInterval {
		m.log.Debug().Dur("since_last", now.Sub(m.lastTrigger)).
			Msg("trigger inside debounce window, dropping")
		return
	}
	m.lastTrigger = now

	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Any("panic", r).Msg("hotkey callback panicked")
		}
	}()
	m.log.Debug().Msg("hotkey triggered")
	cb()
}

func (m *Manager) resetDebounce() {
	m.processing.Lock()
	m.lastTrigger = time.Time{}
	m.processing.Unlock()
}
