package hotkey

// Hotkey is one registered OS-level global shortcut. Implementations
// never invoke user code from the OS hook context; the hook only feeds
// the Keydown channel and a single consumer applies debouncing.
type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
}
