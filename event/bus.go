// Package event provides the publish/subscribe bus that decouples the
// window, hotkey and tray managers. One Bus instance is constructed by
// the application shell and injected into every component.
package event

import (
	"sync"

	"github.com/rs/zerolog"
)

// Type identifies an event on the bus.
type Type string

const (
	// WindowPreShow fires before the window takes focus, giving
	// subscribers a chance to snapshot clipboard/selection state.
	WindowPreShow Type = "window_pre_show"
	WindowShown   Type = "window_shown"
	WindowHidden  Type = "window_hidden"

	HotkeyRegistered Type = "hotkey_registered"
	HotkeyChanged    Type = "hotkey_changed"

	InputSourceDetected Type = "input_source_detected"
)

// Payload carries optional event data. May be nil.
type Payload map[string]any

// Callback receives the payload on whichever goroutine called Emit.
// Callbacks that touch UI state must marshal onto the UI loop themselves.
type Callback func(Payload)

// Subscription is the removal handle returned by On.
type Subscription struct {
	typ Type
	id  uint64
}

type entry struct {
	id uint64
	cb Callback
}

// Bus delivers events synchronously to subscribers in subscription order.
// A panicking subscriber is logged and never blocks delivery to the rest.
type Bus struct {
	mu        sync.Mutex
	listeners map[Type][]entry
	nextID    uint64
	log       zerolog.Logger
}

func New(logger zerolog.Logger) *Bus {
	return &Bus{
		listeners: make(map[Type][]entry),
		log:       logger,
	}
}

// On subscribes cb to t and returns the handle needed to remove it.
func (b *Bus) On(t Type, cb Callback) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners[t] = append(b.listeners[t], entry{id: b.nextID, cb: cb})
	b.log.Debug().Str("event", string(t)).Uint64("sub", b.nextID).Msg("subscribed")
	return Subscription{typ: t, id: b.nextID}
}

// Off removes one subscription. Removing an already-removed subscription
// is a no-op.
func (b *Bus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.listeners[sub.typ]
	for i, e := range entries {
		if e.id == sub.id {
			b.listeners[sub.typ] = append(entries[:i:i], entries[i+1:]...)
			b.log.Debug().Str("event", string(sub.typ)).Uint64("sub", sub.id).Msg("unsubscribed")
			return
		}
	}
}

// Emit invokes every current subscriber of t, synchronously, on the
// caller's goroutine. Subscribers registered during delivery do not
// receive the in-flight event.
func (b *Bus) Emit(t Type, payload Payload) {
	b.mu.Lock()
	entries := b.listeners[t]
	snapshot := make([]entry, len(entries))
	copy(snapshot, entries)
	b.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}
	b.log.Debug().Str("event", string(t)).Int("listeners", len(snapshot)).Msg("emitting")

	for _, e := range snapshot {
		b.deliver(t, e, payload)
	}
}

func (b *Bus) deliver(t Type, e entry, payload Payload) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("event", string(t)).Uint64("sub", e.id).
				Any("panic", r).Msg("subscriber panicked")
		}
	}()
	e.cb(payload)
}

// Clear drops all listeners for the given types, or every listener when
// called with no arguments. Used on teardown.
func (b *Bus) Clear(types ...Type) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(types) == 0 {
		b.listeners = make(map[Type][]entry)
		return
	}
	for _, t := range types {
		delete(b.listeners, t)
	}
}
