package event

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestBus() *Bus {
	return New(zerolog.Nop())
}

func TestSubscribeEmitOff(t *testing.T) {
	bus := newTestBus()

	var got []Payload
	sub := bus.On(WindowShown, func(p Payload) {
		got = append(got, p)
	})

	bus.Emit(WindowShown, Payload{"source": "hotkey"})
	if len(got) != 1 {
		t.Fatalf("got %d deliveries, want 1", len(got))
	}
	if got[0]["source"] != "hotkey" {
		t.Errorf("payload = %v, want source=hotkey", got[0])
	}

	bus.Off(sub)
	bus.Emit(WindowShown, nil)
	if len(got) != 1 {
		t.Errorf("delivered after Off: got %d, want 1", len(got))
	}
}

func TestOffIdempotent(t *testing.T) {
	bus := newTestBus()
	sub := bus.On(WindowHidden, func(Payload) {})
	bus.Off(sub)
	bus.Off(sub) // no-op, must not panic or remove someone else
}

func TestMultipleListenersInOrder(t *testing.T) {
	bus := newTestBus()

	var order []string
	bus.On(HotkeyChanged, func(Payload) { order = append(order, "first") })
	bus.On(HotkeyChanged, func(Payload) { order = append(order, "second") })

	bus.Emit(HotkeyChanged, nil)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v, want [first second]", order)
	}
}

func TestPanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	bus := newTestBus()

	var delivered bool
	bus.On(WindowShown, func(Payload) { panic("bad subscriber") })
	bus.On(WindowShown, func(Payload) { delivered = true })

	bus.Emit(WindowShown, nil) // must not panic
	if !delivered {
		t.Error("later subscriber skipped after earlier panic")
	}
}

func TestEmitWithNoListeners(t *testing.T) {
	bus := newTestBus()
	bus.Emit(WindowPreShow, nil) // no-op
}

func TestLateSubscriberGetsNoPastEvents(t *testing.T) {
	bus := newTestBus()
	bus.Emit(WindowShown, Payload{"n": 1})

	var count int
	bus.On(WindowShown, func(Payload) { count++ })
	if count != 0 {
		t.Error("bus replayed a past event to a late subscriber")
	}
}

func TestClear(t *testing.T) {
	bus := newTestBus()

	var shown, hidden int
	bus.On(WindowShown, func(Payload) { shown++ })
	bus.On(WindowHidden, func(Payload) { hidden++ })

	bus.Clear(WindowShown)
	bus.Emit(WindowShown, nil)
	bus.Emit(WindowHidden, nil)
	if shown != 0 || hidden != 1 {
		t.Errorf("after Clear(WindowShown): shown=%d hidden=%d, want 0 and 1", shown, hidden)
	}

	bus.Clear()
	bus.Emit(WindowHidden, nil)
	if hidden != 1 {
		t.Errorf("after Clear(): hidden=%d, want 1", hidden)
	}
}

func TestSubscribeDuringDelivery(t *testing.T) {
	bus := newTestBus()

	var nested int
	bus.On(WindowShown, func(Payload) {
		bus.On(WindowShown, func(Payload) { nested++ })
	})

	bus.Emit(WindowShown, nil)
	if nested != 0 {
		t.Error("subscriber added during delivery received the in-flight event")
	}
	bus.Emit(WindowShown, nil)
	if nested != 1 {
		t.Errorf("nested subscriber not delivered on next emit: %d", nested)
	}
}
