package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/3C0D/writing-assistant-pro/autostart"
	"github.com/3C0D/writing-assistant-pro/config"
	"github.com/3C0D/writing-assistant-pro/event"
	"github.com/3C0D/writing-assistant-pro/gui"
	"github.com/3C0D/writing-assistant-pro/hotkey"
	"github.com/3C0D/writing-assistant-pro/log"
	"github.com/3C0D/writing-assistant-pro/shutdown"
	"github.com/3C0D/writing-assistant-pro/source"
	"github.com/3C0D/writing-assistant-pro/tray"
	"github.com/3C0D/writing-assistant-pro/window"
)

var version = "dev"

var shutdownOnce sync.Once

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	configFlag := flag.String("config", "", "config file path (default: OS-specific location)")
	iconFlag := flag.String("icon", "", "tray icon PNG path (default: built-in icon)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	crashFlag := flag.Bool("crash", false, "Trigger synthetic panic for testing crash logging")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("writing-assistant-pro %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if err := log.Init(*debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
		os.Exit(1)
	}
	log.Info("session start, version " + version)

	configPath := *configFlag
	if configPath == "" {
		configPath, err = config.DefaultPath()
		if err != nil {
			log.Errorf("cannot resolve config path: %v", err)
			os.Exit(1)
		}
	}
	store := config.NewStore(configPath, log.For("config"))
	if err := store.Load(); err != nil {
		log.Errorf("config load failed, using defaults: %v", err)
	}
	cfg := store.Get()

	bus := event.New(log.For("events"))
	windows := window.NewManager(bus, gui.Post, log.For("window"))
	hotkeys := hotkey.NewManager(bus, cfg.TriggerInterval(), log.For("hotkey"))
	detector := source.NewDetector(bus, nil, log.For("source"))

	var auto tray.Autostart
	if a, err := autostart.New(log.For("autostart")); err != nil {
		log.Warnf("autostart unavailable: %v", err)
	} else {
		auto = a
	}

	trayMgr := tray.New(bus, auto, *iconFlag, log.For("tray"))
	trayMgr.OnToggleWindow(windows.Toggle)

	app := gui.NewApp(cfg, bus, log.For("gui"))
	app.Attach(windows)
	app.OnHotkeyChanged(func(combo hotkey.Combination) {
		if err := store.Update(func(c *config.Config) { c.HotkeyCombination = combo.String() }); err != nil {
			log.Errorf("cannot save hotkey: %v", err)
		}
		hotkeys.UnregisterAll()
		if !hotkeys.Register(combo, windows.Toggle) {
			log.Errorf("cannot register hotkey %q", combo.String())
		}
	})

	gracefulShutdown := func() {
		shutdownOnce.Do(func() {
			log.Info("shutting down")
			hotkeys.UnregisterAll()
			windows.Hide()
			detector.Close()
			trayMgr.Stop()
			log.Close()
			app.Quit()
		})
	}
	trayMgr.OnQuit(gracefulShutdown)

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		gracefulShutdown()
	}()

	app.Run(func() {
		trayDone := trayMgr.RunAsync()
		go func() {
			<-trayDone
			gracefulShutdown()
		}()

		combo, err := hotkey.Parse(cfg.HotkeyCombination)
		if err != nil {
			log.Errorf("invalid hotkey %q, running without one: %v", cfg.HotkeyCombination, err)
		}
		// The OS hook races window-manager startup on some desktops;
		// registration waits out the configured delay.
		hotkeys.RegisterDelayed(combo, windows.Toggle, cfg.SetupDelay())

		if !cfg.StartHidden {
			windows.Show()
		}
	})
}
