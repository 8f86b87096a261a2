// Package tape implements a scoped logging tape: an ordered, append-only
// recorder bound to a bounded activity window, published through a single
// well-known slot for the window's duration.
//
// # Overview
//
// A Slot is a reference-or-absent cell holding at most one open Recorder.
// Opening a window publishes a fresh recorder into the slot; closing it —
// on every exit path — empties the slot again. Collaborators that need to
// emit entries resolve the active recorder through the slot at call time
// (via the Appender capability), never through a cached reference, so the
// same collaborator logs into different recorders across windows.
//
// Usage
//
//	slot := tape.NewSlot()
//	rec, err := slot.Open()
//	if err != nil { /* a window is already active */ }
//	defer rec.Close()
//	_ = slot.Append("Hi!")
//	// after Close, rec remains readable:
//	rec.Dump() // prints "Hi!"
//
// Or in the scoped form, which releases the slot on normal return, error
// return, and panic unwind alike:
//
//	err := slot.With(func(rec *tape.Recorder) error {
//	    return doWork(slot)
//	})
//
// A process-wide default slot is available through the package-level
// Open/Active/Append/With functions.
//
// # Misuse policy
//
// Misuse fails loudly: opening a second window while one is active returns
// ErrWindowActive, appending with no window open returns ErrNoActiveWindow,
// and appending to a closed recorder returns ErrRecorderClosed. Entries are
// never silently dropped.
//
// The slot is safe for concurrent use, but the base contract is a single
// open window at a time; there is no per-goroutine slot isolation.
package tape
