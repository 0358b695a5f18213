package hotkey

import "sync"

// FakeHotkey stands in for the OS hook in tests: triggers are simulated
// and registration bookkeeping can be inspected.
type FakeHotkey struct {
	keydown chan struct{}

	mu          sync.Mutex
	registered  bool
	registerErr error
	registers   int
	unregisters int
}

func NewFake() *FakeHotkey {
	return &FakeHotkey{
		keydown: make(chan struct{}, 1),
	}
}

// FailRegister makes the next Register calls return err.
func (f *FakeHotkey) FailRegister(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerErr = err
}

func (f *FakeHotkey) Register() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = true
	f.registers++
	return nil
}

func (f *FakeHotkey) Unregister() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registered {
		f.registered = false
		f.unregisters++
	}
}

func (f *FakeHotkey) Keydown() <-chan struct{} { return f.keydown }

// SimPress simulates one key-down delivery from the OS hook.
func (f *FakeHotkey) SimPress() { f.keydown <- struct{}{} }

// Registered reports whether the hook is currently active.
func (f *FakeHotkey) Registered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered
}
