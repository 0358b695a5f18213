// Package source detects what the user has available as input when
// the window comes up. The snapshot runs on the pre-show event, before
// the window takes focus and anything can disturb the clipboard.
package source

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/3C0D/writing-assistant-pro/event"
)

// Clipboard abstracts the system clipboard so tests can inject one.
type Clipboard interface {
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

// Detector snapshots the clipboard on every pre-show and publishes the
// result as an InputSourceDetected event.
type Detector struct {
	log zerolog.Logger
	bus *event.Bus
	cb  Clipboard
	sub event.Subscription
}

// NewDetector wires the detector to bus. A nil clip uses the system
// clipboard.
func NewDetector(bus *event.Bus, clip Clipboard, logger zerolog.Logger) *Detector {
	if clip == nil {
		clip = systemClipboard{}
	}
	d := &Detector{log: logger, bus: bus, cb: clip}
	d.sub = bus.On(event.WindowPreShow, func(event.Payload) { d.detect() })
	return d
}

// Close detaches the detector from the bus.
func (d *Detector) Close() {
	d.bus.Off(d.sub)
}

func (d *Detector) detect() {
	text, err := d.cb.ReadAll()
	if err != nil {
		// An unreadable clipboard is normal on some desktops; report
		// an empty snapshot instead of failing the show.
		d.log.Debug().Err(err).Msg("cannot read clipboard")
		text = ""
	}
	text = strings.TrimSpace(text)

	d.bus.Emit(event.InputSourceDetected, event.Payload{
		"clipboard_text": text,
		"has_clipboard":  text != "",
	})
}
