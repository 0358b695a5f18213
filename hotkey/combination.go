// Package hotkey turns raw key events into canonical shortcut
// combinations and owns the single global hotkey registered with the OS.
package hotkey

import (
	"fmt"
	"strings"
)

// modifier tokens in canonical serialization order
var modifierOrder = []string{"ctrl", "alt", "shift", "win"}

// Combination is an ordered set of normalized key tokens, e.g.
// {"ctrl", "."}. The zero value means "hotkey disabled".
type Combination struct {
	mods []string
	key  string
}

// NewCombination builds a combination from already-normalized tokens.
// Modifiers are stored in canonical order regardless of input order.
func NewCombination(mods []string, key string) Combination {
	c := Combination{key: strings.ToLower(key)}
	present := make(map[string]bool, len(mods))
	for _, m := range mods {
		present[normalizeModifier(strings.ToLower(m))] = true
	}
	for _, m := range modifierOrder {
		if present[m] {
			c.mods = append(c.mods, m)
		}
	}
	return c
}

// Parse parses a stored combination string ("ctrl+shift+a"). An empty
// string yields the zero (disabled) combination and no error.
func Parse(s string) (Combination, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Combination{}, nil
	}

	var mods []string
	var key string
	for _, tok := range strings.Split(s, "+") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Combination{}, fmt.Errorf("empty token in combination %q", s)
		}
		if isModifierToken(tok) {
			mods = append(mods, tok)
			continue
		}
		if key != "" {
			return Combination{}, fmt.Errorf("combination %q has more than one non-modifier key", s)
		}
		key = tok
	}
	if key == "" {
		return Combination{}, fmt.Errorf("combination %q has no non-modifier key", s)
	}
	return NewCombination(mods, key), nil
}

// IsZero reports whether the combination is empty, i.e. disabled.
func (c Combination) IsZero() bool {
	return c.key == "" && len(c.mods) == 0
}

// Modifiers returns the modifier tokens in canonical order.
func (c Combination) Modifiers() []string {
	return c.mods
}

// Key returns the non-modifier token.
func (c Combination) Key() string {
	return c.key
}

// String serializes to storage form: lowercase tokens joined by "+",
// identical for the same physical combination regardless of press order.
func (c Combination) String() string {
	if c.IsZero() {
		return ""
	}
	tokens := append([]string{}, c.mods...)
	if c.key != "" {
		tokens = append(tokens, c.key)
	}
	return strings.Join(tokens, "+")
}

// Display renders the human-readable form, e.g. "Ctrl + Shift + A".
func (c Combination) Display() string {
	if c.IsZero() {
		return "None"
	}
	parts := make([]string, 0, len(c.mods)+1)
	for _, m := range c.mods {
		parts = append(parts, capitalize(m))
	}
	if c.key != "" {
		parts = append(parts, displayKeyName(c.key))
	}
	return strings.Join(parts, " + ")
}

func isModifierToken(tok string) bool {
	switch normalizeModifier(tok) {
	case "ctrl", "alt", "shift", "win":
		return true
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func displayKeyName(key string) string {
	if name, ok := keyDisplayNames[key]; ok {
		return name
	}
	if len(key) == 1 {
		return strings.ToUpper(key)
	}
	return capitalize(key)
}
