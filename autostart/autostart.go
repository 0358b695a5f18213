// Package autostart registers the app to launch at login, using the
// native mechanism of each platform.
package autostart

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Manager toggles login-launch for the current executable.
type Manager struct {
	log      zerolog.Logger
	execPath string
}

// New resolves the running executable; autostart always points at it.
func New(logger zerolog.Logger) (*Manager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving executable path: %w", err)
	}
	return &Manager{log: logger, execPath: exe}, nil
}

// IsEnabled reports whether the login entry currently exists.
func (m *Manager) IsEnabled() bool {
	on, err := isEnabled()
	if err != nil {
		m.log.Warn().Err(err).Msg("cannot read autostart state")
		return false
	}
	return on
}

// SetEnabled creates or removes the login entry. Removal of an absent
// entry is a no-op.
func (m *Manager) SetEnabled(on bool) error {
	if on {
		return enable(m.execPath)
	}
	return disable()
}
