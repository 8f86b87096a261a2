package tape

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rzbill/tape/pkg/id"
)

var (
	// ErrWindowActive is returned by Open when the slot already holds an open window.
	ErrWindowActive = errors.New("tape: window already active")
	// ErrNoActiveWindow is returned by Slot.Append when no window is open.
	ErrNoActiveWindow = errors.New("tape: log append outside of an active window")
	// ErrRecorderClosed is returned by Recorder.Append after the window closed.
	ErrRecorderClosed = errors.New("tape: recorder closed")
)

// Entry is one recorded line. Seq is 1-based and unique within its window.
type Entry struct {
	Seq  uint64
	At   time.Time
	Text string
}

// Window is an immutable snapshot of a closed recorder, handed to close hooks
// and returned by archive reads.
type Window struct {
	ID       id.ID
	OpenedAt time.Time
	ClosedAt time.Time
	Entries  []Entry
}

// Recorder owns the ordered entry sequence for one window. It is created by
// Slot.Open, accepts appends while the window is open, and stays readable
// after Close.
type Recorder struct {
	slot *Slot
	id   id.ID

	openedAt time.Time
	closedAt time.Time
	closed   bool
	entries  []Entry
}

// ID returns the window identifier assigned at Open.
func (r *Recorder) ID() id.ID { return r.id }

// OpenedAt returns the time the window opened.
func (r *Recorder) OpenedAt() time.Time { return r.openedAt }

// Append adds text to the end of the sequence. It does not print or flush.
func (r *Recorder) Append(text string) error {
	r.slot.mu.Lock()
	defer r.slot.mu.Unlock()
	if r.closed {
		return ErrRecorderClosed
	}
	r.entries = append(r.entries, Entry{
		Seq:  uint64(len(r.entries)) + 1,
		At:   r.slot.now(),
		Text: text,
	})
	return nil
}

// Close ends the window: the slot is emptied and close hooks observe the
// final snapshot. Entries remain queryable afterward. Close is idempotent so
// it can sit in a defer on every exit path.
func (r *Recorder) Close() error {
	r.slot.mu.Lock()
	if r.closed {
		r.slot.mu.Unlock()
		return nil
	}
	r.closed = true
	r.closedAt = r.slot.now()
	if r.slot.active == r {
		r.slot.active = nil
	}
	hooks := r.slot.hooks
	w := r.snapshotLocked()
	r.slot.mu.Unlock()

	// Hooks run outside the slot lock so they may open fresh windows or
	// resolve the slot themselves.
	for _, h := range hooks {
		h.WindowClosed(w)
	}
	return nil
}

// Closed reports whether the window has ended.
func (r *Recorder) Closed() bool {
	r.slot.mu.Lock()
	defer r.slot.mu.Unlock()
	return r.closed
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.slot.mu.Lock()
	defer r.slot.mu.Unlock()
	return len(r.entries)
}

// Entries returns a copy of the recorded entries in insertion order.
func (r *Recorder) Entries() []Entry {
	r.slot.mu.Lock()
	defer r.slot.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Snapshot returns an immutable view of the recorder at call time.
func (r *Recorder) Snapshot() Window {
	r.slot.mu.Lock()
	defer r.slot.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() Window {
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return Window{
		ID:       r.id,
		OpenedAt: r.openedAt,
		ClosedAt: r.closedAt,
		Entries:  entries,
	}
}

// WriteTo writes the entries in insertion order, one text per line with no
// decoration. It reflects whatever entries exist at call time and implements
// io.WriterTo.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range r.Entries() {
		n, err := fmt.Fprintln(w, e.Text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Dump writes the entries to standard output. An empty sequence produces no
// output lines. Callable before, during, or after the window.
func (r *Recorder) Dump() {
	_, _ = r.WriteTo(os.Stdout)
}
