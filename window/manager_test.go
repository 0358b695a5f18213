package window

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/3C0D/writing-assistant-pro/event"
)

type fakeNative struct {
	shows    int
	hides    int
	raises   int
	raiseErr error
}

func (f *fakeNative) Show()               { f.shows++ }
func (f *fakeNative) Hide()               { f.hides++ }
func (f *fakeNative) RaiseToFront() error { f.raises++; return f.raiseErr }

// syncPost runs the native mutation inline, standing in for the UI loop.
func syncPost(fn func()) { fn() }

func newTestManager() (*Manager, *fakeNative, *event.Bus) {
	bus := event.New(zerolog.Nop())
	m := NewManager(bus, syncPost, zerolog.Nop())
	native := &fakeNative{}
	m.Bind(native)
	return m, native, bus
}

func TestInitiallyHidden(t *testing.T) {
	m, _, _ := newTestManager()
	if m.State() != Hidden {
		t.Errorf("initial state = %v, want hidden", m.State())
	}
}

func TestShowTransitionsAndNotifies(t *testing.T) {
	m, native, bus := newTestManager()

	var order []string
	bus.On(event.WindowPreShow, func(event.Payload) {
		order = append(order, "pre_show")
		if native.shows != 0 {
			t.Error("native Show ran before the pre-show event")
		}
	})
	bus.On(event.WindowShown, func(event.Payload) {
		order = append(order, "shown")
		if m.State() != Visible {
			t.Error("state not visible when shown event fired")
		}
	})

	m.Show()

	if m.State() != Visible {
		t.Fatalf("state = %v, want visible", m.State())
	}
	if native.shows != 1 || native.raises != 1 {
		t.Errorf("native shows=%d raises=%d, want 1/1", native.shows, native.raises)
	}
	if len(order) != 2 || order[0] != "pre_show" || order[1] != "shown" {
		t.Errorf("event order = %v, want [pre_show shown]", order)
	}
}

func TestShowIdempotent(t *testing.T) {
	m, native, bus := newTestManager()

	var shown int
	bus.On(event.WindowShown, func(event.Payload) { shown++ })

	m.Show()
	m.Show()

	if native.shows != 1 {
		t.Errorf("native shows = %d, want 1", native.shows)
	}
	if shown != 1 {
		t.Errorf("shown events = %d, want 1", shown)
	}
}

func TestHideIdempotent(t *testing.T) {
	m, native, bus := newTestManager()

	var hidden int
	bus.On(event.WindowHidden, func(event.Payload) { hidden++ })

	m.Hide() // already hidden
	if native.hides != 0 || hidden != 0 {
		t.Fatal("hiding a hidden window should be a no-op")
	}

	m.Show()
	m.Hide()
	m.Hide()

	if native.hides != 1 || hidden != 1 {
		t.Errorf("hides=%d hidden events=%d, want 1/1", native.hides, hidden)
	}
}

func TestToggleParity(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		m, _, _ := newTestManager()
		for i := 0; i < n; i++ {
			m.Toggle()
		}
		want := Hidden
		if n%2 == 1 {
			want = Visible
		}
		if m.State() != want {
			t.Errorf("after %d toggles state = %v, want %v", n, m.State(), want)
		}
	}
}

func TestRaiseFailureDoesNotBlockShow(t *testing.T) {
	m, native, _ := newTestManager()
	native.raiseErr = errors.New("compositor refused")

	m.Show()

	if m.State() != Visible {
		t.Error("show should succeed despite raise failure")
	}
}

func TestShowBeforeBind(t *testing.T) {
	bus := event.New(zerolog.Nop())
	m := NewManager(bus, syncPost, zerolog.Nop())

	m.Show() // no native yet, state-only
	if m.State() != Visible {
		t.Fatalf("state = %v, want visible", m.State())
	}

	native := &fakeNative{}
	m.Bind(native)
	m.Hide()
	if native.hides != 1 {
		t.Errorf("native hides = %d, want 1 after binding", native.hides)
	}
}

func TestOnClosingHidesInsteadOfClosing(t *testing.T) {
	m, _, bus := newTestManager()
	m.Show()

	hidden := make(chan struct{})
	bus.On(event.WindowHidden, func(event.Payload) { close(hidden) })

	if !m.OnClosing() {
		t.Fatal("OnClosing should cancel the real close")
	}

	select {
	case <-hidden:
	case <-time.After(time.Second):
		t.Fatal("window not hidden after close intercept")
	}
	if m.State() != Hidden {
		t.Errorf("state = %v, want hidden", m.State())
	}
}

// End-to-end: hotkey press toggles the window through the bus-visible
// chain, mirroring the production wiring in main.
func TestHotkeyToggleChain(t *testing.T) {
	m, native, bus := newTestManager()

	var events []event.Type
	for _, typ := range []event.Type{event.WindowPreShow, event.WindowShown, event.WindowHidden} {
		typ := typ
		bus.On(typ, func(event.Payload) { events = append(events, typ) })
	}

	m.Toggle() // press 1
	m.Toggle() // press 2

	if m.State() != Hidden {
		t.Fatalf("state = %v after two presses, want hidden", m.State())
	}
	if native.shows != 1 || native.hides != 1 {
		t.Errorf("native shows=%d hides=%d, want 1/1", native.shows, native.hides)
	}
	want := []event.Type{event.WindowPreShow, event.WindowShown, event.WindowHidden}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}
