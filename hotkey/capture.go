package hotkey

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// RawKey is one key transition as reported by the OS input layer.
type RawKey struct {
	Name     string // virtual-key name, layout dependent
	Scancode uint16 // hardware scancode, layout independent
	Down     bool
}

// Capture decodes a stream of raw key events into a shortcut
// combination. It is used by the settings surface while the user records
// a new hotkey: feed it transitions, read back the canonical result.
type Capture struct {
	log zerolog.Logger

	mu        sync.Mutex
	capturing bool
	mods      map[string]bool
	mainKey   string
	onUpdate  func(display string)
}

func NewCapture(logger zerolog.Logger) *Capture {
	return &Capture{
		log:  logger,
		mods: make(map[string]bool),
	}
}

// Start begins a capture session. onUpdate, if non-nil, receives the
// display form of the combination after every key event.
func (c *Capture) Start(onUpdate func(display string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capturing {
		c.log.Warn().Msg("capture already running, restarting")
	}
	c.capturing = true
	c.mods = make(map[string]bool)
	c.mainKey = ""
	c.onUpdate = onUpdate
}

// Stop ends the session and returns the captured combination. The zero
// combination is returned when nothing was pressed.
func (c *Capture) Stop() Combination {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := c.currentLocked()
	c.capturing = false
	c.mods = make(map[string]bool)
	c.mainKey = ""
	c.onUpdate = nil
	c.log.Debug().Str("combination", result.String()).Msg("capture stopped")
	return result
}

// Feed processes one raw key transition. Ignored outside a session.
func (c *Capture) Feed(k RawKey) {
	c.mu.Lock()
	if !c.capturing {
		c.mu.Unlock()
		return
	}

	name := strings.ToLower(strings.TrimSpace(k.Name))
	if k.Down {
		if modifierNames[name] {
			c.mods[normalizeModifier(name)] = true
		} else {
			// Scancode first: numpad and function keys report
			// layout/shift-dependent virtual-key names.
			if tok, ok := scancodeNames[k.Scancode]; ok {
				c.mainKey = tok
			} else {
				c.mainKey = normalizeKeyName(name)
			}
		}
	} else if modifierNames[name] {
		delete(c.mods, normalizeModifier(name))
	}

	onUpdate := c.onUpdate
	display := c.currentLocked().Display()
	c.mu.Unlock()

	if onUpdate != nil {
		onUpdate(display)
	}
}

// Current returns the combination held so far in the session.
func (c *Capture) Current() Combination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Capture) currentLocked() Combination {
	if len(c.mods) == 0 && c.mainKey == "" {
		return Combination{}
	}
	mods := make([]string, 0, len(c.mods))
	for m := range c.mods {
		mods = append(mods, m)
	}
	return NewCombination(mods, c.mainKey)
}

func normalizeKeyName(name string) string {
	if tok, ok := keyNameTokens[name]; ok {
		return tok
	}
	return name
}
