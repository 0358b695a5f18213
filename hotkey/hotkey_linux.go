//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0
)

const inputEventSize = 24

// evdev codes per modifier token; either side of the keyboard counts.
var evdevModifierCodes = map[string][]uint16{
	"ctrl":  {29, 97},
	"shift": {42, 54},
	"alt":   {56, 100},
	"win":   {125, 126},
}

// evdev code per main-key token. Numpad entries share the scancode
// table values: for this range evdev codes match set-1 scancodes.
var evdevKeyCodes = map[string]uint16{
	"escape": 1, "1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7,
	"7": 8, "8": 9, "9": 10, "0": 11, "-": 12, "=": 13,
	"backspace": 14, "tab": 15,
	"q": 16, "w": 17, "e": 18, "r": 19, "t": 20, "y": 21, "u": 22,
	"i": 23, "o": 24, "p": 25, "enter": 28,
	"a": 30, "s": 31, "d": 32, "f": 33, "g": 34, "h": 35, "j": 36,
	"k": 37, "l": 38, ";": 39, "'": 40,
	"z": 44, "x": 45, "c": 46, "v": 47, "b": 48, "n": 49, "m": 50,
	",": 51, ".": 52, "/": 53,
	"space": 57, "capslock": 58,
	"f1": 59, "f2": 60, "f3": 61, "f4": 62, "f5": 63, "f6": 64,
	"f7": 65, "f8": 66, "f9": 67, "f10": 68, "f11": 87, "f12": 88,
	"numlock": 69, "scrolllock": 70,
	"num7": 71, "num8": 72, "num9": 73, "numsubtract": 74,
	"num4": 75, "num5": 76, "num6": 77, "numadd": 78,
	"num1": 79, "num2": 80, "num3": 81, "num0": 82, "decimal": 83,
	"nummultiply": 55, "numdivide": 98,
	"home": 102, "up": 103, "pageup": 104, "left": 105, "right": 106,
	"end": 107, "down": 108, "pagedown": 109, "insert": 110, "delete": 111,
}

type linuxHotkey struct {
	modCodes [][]uint16 // one group per required modifier
	mainCode uint16
	keydown  chan struct{}
	files    []*os.File
	stop     chan struct{}
	once     sync.Once
}

// newOSHotkey binds a combination by reading evdev devices directly,
// which sees hardware keycodes and needs no X server.
func newOSHotkey(c Combination) (Hotkey, error) {
	h := &linuxHotkey{
		keydown: make(chan struct{}, 1),
	}
	for _, m := range c.Modifiers() {
		codes, ok := evdevModifierCodes[m]
		if !ok {
			return nil, fmt.Errorf("unsupported modifier %q", m)
		}
		h.modCodes = append(h.modCodes, codes)
	}
	code, ok := evdevKeyCodes[c.Key()]
	if !ok {
		return nil, fmt.Errorf("unsupported key %q", c.Key())
	}
	h.mainCode = code
	return h, nil
}

func (h *linuxHotkey) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	h.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		go h.readEvents(f)
	}

	if len(h.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (h *linuxHotkey) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)
	held := make(map[uint16]bool)
	var mainHeld bool

	for {
		select {
		case <-h.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}

			switch evValue {
			case keyPress:
				held[evCode] = true
			case keyRelease:
				delete(held, evCode)
			default:
				continue // key-repeat
			}

			if evCode == h.mainCode {
				if evValue == keyPress && !mainHeld && h.modifiersHeld(held) {
					mainHeld = true
					select {
					case h.keydown <- struct{}{}:
					default:
					}
				} else if evValue == keyRelease {
					mainHeld = false
				}
			}
		}
	}
}

func (h *linuxHotkey) modifiersHeld(held map[uint16]bool) bool {
	for _, group := range h.modCodes {
		satisfied := false
		for _, code := range group {
			if held[code] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

func (h *linuxHotkey) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, f := range h.files {
			f.Close()
		}
	})
}

func (h *linuxHotkey) Keydown() <-chan struct{} {
	return h.keydown
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(data))) > 10
}
