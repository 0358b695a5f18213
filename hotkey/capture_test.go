package hotkey

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestCapture() *Capture {
	return NewCapture(zerolog.Nop())
}

func TestCaptureSimpleCombination(t *testing.T) {
	c := newTestCapture()
	c.Start(nil)
	c.Feed(RawKey{Name: "ctrl", Scancode: 29, Down: true})
	c.Feed(RawKey{Name: ".", Scancode: 52, Down: true})

	got := c.Stop()
	if got.String() != "ctrl+." {
		t.Errorf("captured %q, want ctrl+.", got.String())
	}
}

func TestCapturePressOrderIrrelevant(t *testing.T) {
	first := newTestCapture()
	first.Start(nil)
	first.Feed(RawKey{Name: "shift", Down: true})
	first.Feed(RawKey{Name: "ctrl", Down: true})
	first.Feed(RawKey{Name: "a", Down: true})

	second := newTestCapture()
	second.Start(nil)
	second.Feed(RawKey{Name: "ctrl", Down: true})
	second.Feed(RawKey{Name: "shift", Down: true})
	second.Feed(RawKey{Name: "a", Down: true})

	a, b := first.Stop().String(), second.Stop().String()
	if a != b || a != "ctrl+shift+a" {
		t.Errorf("press order changed serialization: %q vs %q", a, b)
	}
}

func TestCaptureScancodeDisambiguatesNumpad(t *testing.T) {
	// With Shift held, the numpad decimal key reports "delete" as its
	// virtual-key name; the scancode must win.
	c := newTestCapture()
	c.Start(nil)
	c.Feed(RawKey{Name: "ctrl", Down: true})
	c.Feed(RawKey{Name: "delete", Scancode: 83, Down: true})

	got := c.Stop()
	if got.String() != "ctrl+decimal" {
		t.Errorf("captured %q, want ctrl+decimal", got.String())
	}
}

func TestCaptureLayoutModifierAliases(t *testing.T) {
	// French AZERTY reports shift as "maj".
	c := newTestCapture()
	c.Start(nil)
	c.Feed(RawKey{Name: "left maj", Down: true})
	c.Feed(RawKey{Name: "ctrl gauche", Down: true})
	c.Feed(RawKey{Name: "s", Down: true})

	got := c.Stop()
	if got.String() != "ctrl+shift+s" {
		t.Errorf("captured %q, want ctrl+shift+s", got.String())
	}
}

func TestCaptureModifierRelease(t *testing.T) {
	c := newTestCapture()
	c.Start(nil)
	c.Feed(RawKey{Name: "ctrl", Down: true})
	c.Feed(RawKey{Name: "shift", Down: true})
	c.Feed(RawKey{Name: "shift", Down: false})
	c.Feed(RawKey{Name: "b", Down: true})

	got := c.Stop()
	if got.String() != "ctrl+b" {
		t.Errorf("captured %q, want ctrl+b", got.String())
	}
}

func TestCaptureOnUpdateDisplayForm(t *testing.T) {
	var updates []string
	c := newTestCapture()
	c.Start(func(display string) { updates = append(updates, display) })
	c.Feed(RawKey{Name: "ctrl", Down: true})
	c.Feed(RawKey{Name: "a", Down: true})
	c.Stop()

	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}
	if updates[0] != "Ctrl" {
		t.Errorf("first update = %q, want Ctrl", updates[0])
	}
	if updates[1] != "Ctrl + A" {
		t.Errorf("second update = %q, want Ctrl + A", updates[1])
	}
}

func TestCaptureFeedIgnoredWhenStopped(t *testing.T) {
	c := newTestCapture()
	c.Feed(RawKey{Name: "ctrl", Down: true})
	c.Feed(RawKey{Name: "a", Down: true})
	if got := c.Current(); !got.IsZero() {
		t.Errorf("feed outside session recorded %q", got.String())
	}
}

func TestCaptureNothingPressed(t *testing.T) {
	c := newTestCapture()
	c.Start(nil)
	if got := c.Stop(); !got.IsZero() {
		t.Errorf("empty session captured %q", got.String())
	}
}
