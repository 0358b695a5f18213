// Package config persists user settings as a JSON file. Missing keys
// keep their defaults, so adding a field never breaks an existing
// file on disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const fileName = "config.json"

// Config is the on-disk settings shape. Durations are stored in
// seconds to keep the file human-editable.
type Config struct {
	HotkeyCombination  string  `json:"hotkey_combination"`
	HotkeySetupDelay   float64 `json:"hotkey_setup_delay"`
	MinTriggerInterval float64 `json:"min_trigger_interval"`
	Language           string  `json:"language"`
	DarkMode           bool    `json:"dark_mode"`
	WindowWidth        int     `json:"window_width"`
	WindowHeight       int     `json:"window_height"`
	StartHidden        bool    `json:"start_hidden"`
}

// Default returns the settings used when no file exists yet.
func Default() Config {
	return Config{
		HotkeyCombination:  "ctrl+space",
		HotkeySetupDelay:   2.0,
		MinTriggerInterval: 0.5,
		Language:           "fr",
		DarkMode:           false,
		WindowWidth:        800,
		WindowHeight:       600,
		StartHidden:        true,
	}
}

// SetupDelay converts the stored seconds into a Duration.
func (c Config) SetupDelay() time.Duration {
	return time.Duration(c.HotkeySetupDelay * float64(time.Second))
}

// TriggerInterval converts the stored seconds into a Duration.
func (c Config) TriggerInterval() time.Duration {
	return time.Duration(c.MinTriggerInterval * float64(time.Second))
}

// Store guards a Config behind a mutex and keeps it in sync with the
// file at path.
type Store struct {
	log  zerolog.Logger
	path string

	mu  sync.Mutex
	cfg Config
}

// NewStore builds a store bound to path. Call Load before reading.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		log:  logger,
		path: path,
		cfg:  Default(),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "writing-assistant-pro", fileName), nil
}

// Load reads the file, overlaying saved values on the defaults. A
// missing file is not an error: defaults apply and the file is
// written so the user has something to edit.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info().Str("path", s.path).Msg("no config file, writing defaults")
		return s.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", s.path, err)
	}
	s.cfg = cfg
	s.log.Info().Str("path", s.path).Msg("configuration loaded")
	return nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Update applies fn to the settings and writes them out under the
// same lock acquisition, so concurrent updates cannot interleave.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
	return s.saveLocked()
}

// Save writes the current settings to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	s.log.Debug().Str("path", s.path).Msg("configuration saved")
	return nil
}
