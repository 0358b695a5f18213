// Package gui is the fyne shell around the assistant window. It owns
// the toolkit objects; visibility decisions live in the window package
// and reach the toolkit through the Post primitive.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/3C0D/writing-assistant-pro/config"
	"github.com/3C0D/writing-assistant-pro/event"
	"github.com/3C0D/writing-assistant-pro/hotkey"
	"github.com/3C0D/writing-assistant-pro/window"
)

const appID = "com.3c0d.writing-assistant-pro"

type App struct {
	log     zerolog.Logger
	fyneApp fyne.App
	window  fyne.Window

	prompt *widget.Entry
	status *widget.Label

	capture     *hotkey.Capture
	capturing   bool
	hotkeyLabel *widget.Label
	changeBtn   *widget.Button
	onHotkey    func(hotkey.Combination)
}

// NewApp builds the fyne app and the main window, left hidden. The
// event loop does not start until Run.
func NewApp(cfg config.Config, bus *event.Bus, logger zerolog.Logger) *App {
	a := &App{log: logger}
	a.fyneApp = app.NewWithID(appID)
	if cfg.DarkMode {
		a.fyneApp.Settings().SetTheme(&darkTheme{})
	}

	a.window = a.fyneApp.NewWindow("Writing Assistant Pro")
	a.window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	a.prompt = widget.NewMultiLineEntry()
	a.prompt.SetPlaceHolder("What do you want to write?")
	a.status = widget.NewLabel("")
	bottom := container.NewVBox(a.buildHotkeyBar(cfg, bus), a.status)
	a.window.SetContent(container.NewBorder(nil, bottom, nil, nil, a.prompt))

	// The pre-show snapshot arrives before the window is visible;
	// the label update is marshalled back onto the UI loop.
	bus.On(event.InputSourceDetected, func(p event.Payload) {
		text, _ := p["clipboard_text"].(string)
		fyne.Do(func() { a.status.SetText(statusLine(text)) })
	})

	return a
}

// OnHotkeyChanged sets the callback invoked with the combination the
// user captured in the hotkey bar. Set before Run.
func (a *App) OnHotkeyChanged(fn func(hotkey.Combination)) { a.onHotkey = fn }

// Attach hands window control to wm: the close button hides instead
// of quitting, and wm drives visibility through the Native interface.
func (a *App) Attach(wm *window.Manager) {
	a.window.SetCloseIntercept(func() { wm.OnClosing() })
	wm.Bind(a)
}

// Post schedules fn on the fyne UI loop. This is the primitive the
// window manager runs every native mutation through.
func Post(fn func()) { fyne.Do(fn) }

// Run enters the toolkit event loop on the calling goroutine and
// blocks until Quit. onReady runs concurrently once the loop is up.
func (a *App) Run(onReady func()) {
	go onReady()
	a.fyneApp.Run()
}

// Quit ends the event loop, unblocking Run.
func (a *App) Quit() {
	a.fyneApp.Quit()
}

// Show, Hide and RaiseToFront implement window.Native. They are only
// ever called from the UI loop via Post.
func (a *App) Show() { a.window.Show() }
func (a *App) Hide() { a.window.Hide() }

func (a *App) RaiseToFront() error {
	a.window.RequestFocus()
	return nil
}

func statusLine(clipboard string) string {
	if clipboard == "" {
		return ""
	}
	const max = 60
	if r := []rune(clipboard); len(r) > max {
		clipboard = string(r[:max]) + "…"
	}
	return fmt.Sprintf("Clipboard: %s", clipboard)
}
