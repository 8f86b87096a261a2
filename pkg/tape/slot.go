package tape

import (
	"sync"
	"time"

	"github.com/rzbill/tape/pkg/id"
)

// Appender is the capability collaborators use to emit entries. They resolve
// the active recorder at call time rather than caching a reference, so one
// collaborator can log into different recorders across windows.
type Appender interface {
	Append(text string) error
}

// CloseHook observes each window as it closes. Hooks run after the slot is
// released, in registration order.
type CloseHook interface {
	WindowClosed(w Window)
}

// CloseHookFunc adapts a function to the CloseHook interface.
type CloseHookFunc func(w Window)

// WindowClosed implements CloseHook.
func (f CloseHookFunc) WindowClosed(w Window) { f(w) }

// Slot is the reference-or-absent cell holding at most one open Recorder.
// The zero value is not usable; construct with NewSlot.
type Slot struct {
	mu     sync.Mutex
	active *Recorder
	hooks  []CloseHook
	gen    *id.Generator
	now    func() time.Time
}

// SlotOption configures a Slot.
type SlotOption func(*Slot)

// WithCloseHook registers a hook invoked with each closed window's snapshot.
func WithCloseHook(h CloseHook) SlotOption {
	return func(s *Slot) { s.hooks = append(s.hooks, h) }
}

// WithClock overrides the entry timestamp source (used in tests).
func WithClock(fn func() time.Time) SlotOption {
	return func(s *Slot) { s.now = fn }
}

// NewSlot creates an empty slot.
func NewSlot(opts ...SlotOption) *Slot {
	s := &Slot{
		gen: id.NewGenerator(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a new window: it creates an empty recorder, publishes it into
// the slot, and returns it. It fails with ErrWindowActive while another
// window is open; the active recorder is never replaced out from under it.
func (s *Slot) Open() (*Recorder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return nil, ErrWindowActive
	}
	r := &Recorder{
		slot:     s,
		id:       s.gen.Next(),
		openedAt: s.now(),
	}
	s.active = r
	return r, nil
}

// Active returns the currently open recorder, or (nil, false) when no window
// is open.
func (s *Slot) Active() (*Recorder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != nil
}

// Append resolves the active recorder and appends to it. It fails with
// ErrNoActiveWindow when the slot is empty, so collaborators cannot silently
// lose entries.
func (s *Slot) Append(text string) error {
	s.mu.Lock()
	r := s.active
	if r == nil {
		s.mu.Unlock()
		return ErrNoActiveWindow
	}
	r.entries = append(r.entries, Entry{
		Seq:  uint64(len(r.entries)) + 1,
		At:   s.now(),
		Text: text,
	})
	s.mu.Unlock()
	return nil
}

// With runs fn inside a freshly opened window and guarantees the slot is
// released on every exit path: normal return, error return, or panic unwind
// (the panic propagates unchanged after release).
func (s *Slot) With(fn func(r *Recorder) error) error {
	r, err := s.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

// defaultSlot is the process-wide slot described by the package docs.
var defaultSlot = NewSlot()

// Default returns the process-wide slot.
func Default() *Slot { return defaultSlot }

// Open starts a window on the process-wide slot.
func Open() (*Recorder, error) { return defaultSlot.Open() }

// Active returns the open recorder on the process-wide slot, if any.
func Active() (*Recorder, bool) { return defaultSlot.Active() }

// Append appends to the active recorder on the process-wide slot.
func Append(text string) error { return defaultSlot.Append(text) }

// With runs fn inside a window on the process-wide slot.
func With(fn func(r *Recorder) error) error { return defaultSlot.With(fn) }
