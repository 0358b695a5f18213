package hotkey

import "strings"

// Keys whose reported virtual-key name is ambiguous across layouts or
// shared with another physical key are resolved through their hardware
// scancode instead. Numpad keys are the main offenders: with Shift or
// NumLock their virtual-key name collapses into the top-row digit or a
// navigation key, while the scancode always names the physical key.
var scancodeNames = map[uint16]string{
	82: "num0",
	79: "num1",
	80: "num2",
	81: "num3",
	75: "num4",
	76: "num5",
	77: "num6",
	78: "numadd",
	71: "num7",
	72: "num8",
	73: "num9",
	83: "decimal",
	53: "numdivide",
	55: "nummultiply",
	74: "numsubtract",

	59: "f1",
	60: "f2",
	61: "f3",
	62: "f4",
	63: "f5",
	64: "f6",
	65: "f7",
	66: "f8",
	67: "f9",
	68: "f10",
	87: "f11",
	88: "f12",
}

// Raw modifier names reported by OS input layers, including
// layout-specific variants (French AZERTY reports shift as "maj").
var modifierNames = map[string]bool{
	"ctrl":          true,
	"shift":         true,
	"alt":           true,
	"windows":       true,
	"win":           true,
	"left ctrl":     true,
	"right ctrl":    true,
	"left shift":    true,
	"right shift":   true,
	"left alt":      true,
	"right alt":     true,
	"left windows":  true,
	"right windows": true,
	"maj":           true,
	"left maj":      true,
	"right maj":     true,
	"ctrl gauche":   true,
	"ctrl droite":   true,
	"alt gr":        true,
}

// normalizeModifier collapses left/right and layout variants into the
// four canonical modifier tokens.
func normalizeModifier(name string) string {
	for _, prefix := range []string{"left ", "right "} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			name = rest
			break
		}
	}
	switch name {
	case "maj":
		return "shift"
	case "alt gr":
		return "alt"
	case "ctrl gauche", "ctrl droite":
		return "ctrl"
	case "windows":
		return "win"
	}
	return name
}

// Display names for multi-character key tokens.
var keyDisplayNames = map[string]string{
	"decimal":     "Decimal",
	"numadd":      "NumAdd",
	"numsubtract": "NumSubtract",
	"nummultiply": "NumMultiply",
	"numdivide":   "NumDivide",
	"num0":        "Num0",
	"num1":        "Num1",
	"num2":        "Num2",
	"num3":        "Num3",
	"num4":        "Num4",
	"num5":        "Num5",
	"num6":        "Num6",
	"num7":        "Num7",
	"num8":        "Num8",
	"num9":        "Num9",
	"numlock":     "NumLock",
	"pageup":      "PageUp",
	"pagedown":    "PageDown",
	"capslock":    "CapsLock",
	"scrolllock":  "ScrollLock",
	"printscreen": "PrintScreen",
	"space":       "Space",
	"enter":       "Enter",
	"escape":      "Escape",
	"backspace":   "Backspace",
	"delete":      "Delete",
	"insert":      "Insert",
	"home":        "Home",
	"end":         "End",
	"tab":         "Tab",
	"left":        "Left",
	"right":       "Right",
	"up":          "Up",
	"down":        "Down",
}

// Virtual-key names normalized to stored tokens (raw OS name -> token).
var keyNameTokens = map[string]string{
	"page up":      "pageup",
	"page down":    "pagedown",
	"caps lock":    "capslock",
	"num lock":     "numlock",
	"scroll lock":  "scrolllock",
	"print screen": "printscreen",
	"numpad 0":     "num0",
	"numpad 1":     "num1",
	"numpad 2":     "num2",
	"numpad 3":     "num3",
	"numpad 4":     "num4",
	"numpad 5":     "num5",
	"numpad 6":     "num6",
	"numpad 7":     "num7",
	"numpad 8":     "num8",
	"numpad 9":     "num9",
	"add":          "numadd",
	"subtract":     "numsubtract",
	"multiply":     "nummultiply",
	"divide":       "numdivide",
}
