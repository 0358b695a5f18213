package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/3C0D/writing-assistant-pro/config"
	"github.com/3C0D/writing-assistant-pro/event"
	"github.com/3C0D/writing-assistant-pro/hotkey"
)

// buildHotkeyBar is the settings row at the bottom of the window:
// the current combination plus a record/save button driving a capture
// session fed by the window's raw key events.
func (a *App) buildHotkeyBar(cfg config.Config, bus *event.Bus) fyne.CanvasObject {
	a.capture = hotkey.NewCapture(a.log)

	current, err := hotkey.Parse(cfg.HotkeyCombination)
	if err != nil {
		a.log.Warn().Err(err).Str("combination", cfg.HotkeyCombination).Msg("unparseable hotkey in config")
	}
	a.hotkeyLabel = widget.NewLabel("Hotkey: " + current.Display())

	a.changeBtn = widget.NewButton("Change…", a.toggleCapture)

	// Keeps the label honest when registration happens elsewhere, like
	// the delayed registration at startup.
	bus.On(event.HotkeyChanged, func(p event.Payload) {
		s, _ := p["combination"].(string)
		combo, _ := hotkey.Parse(s)
		fyne.Do(func() {
			if !a.capturing {
				a.hotkeyLabel.SetText("Hotkey: " + combo.Display())
			}
		})
	})

	if deskCanvas, ok := a.window.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) { a.feedKey(ev, true) })
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) { a.feedKey(ev, false) })
	}

	return container.NewHBox(a.hotkeyLabel, a.changeBtn)
}

// toggleCapture runs on the UI loop (button tap).
func (a *App) toggleCapture() {
	if !a.capturing {
		a.capturing = true
		a.changeBtn.SetText("Save")
		a.hotkeyLabel.SetText("Hotkey: press keys…")
		a.capture.Start(func(display string) {
			// Feed happens on the UI loop too, labels are safe here.
			a.hotkeyLabel.SetText("Hotkey: " + display)
		})
		return
	}

	combo := a.capture.Stop()
	a.capturing = false
	a.changeBtn.SetText("Change…")
	a.hotkeyLabel.SetText("Hotkey: " + combo.Display())
	if a.onHotkey != nil {
		a.onHotkey(combo)
	}
}

func (a *App) feedKey(ev *fyne.KeyEvent, down bool) {
	if !a.capturing {
		return
	}
	a.capture.Feed(hotkey.RawKey{
		Name:     keyToken(ev.Name),
		Scancode: uint16(ev.Physical.ScanCode),
		Down:     down,
	})
}

// keyToken translates fyne key names into the token vocabulary the
// capture layer expects.
func keyToken(name fyne.KeyName) string {
	switch name {
	case desktop.KeyControlLeft:
		return "left ctrl"
	case desktop.KeyControlRight:
		return "right ctrl"
	case desktop.KeyShiftLeft:
		return "left shift"
	case desktop.KeyShiftRight:
		return "right shift"
	case desktop.KeyAltLeft:
		return "left alt"
	case desktop.KeyAltRight:
		return "right alt"
	case desktop.KeySuperLeft:
		return "left win"
	case desktop.KeySuperRight:
		return "right win"
	}
	return strings.ToLower(string(name))
}
