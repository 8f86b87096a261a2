package archive

import (
	"context"
	"errors"
	"time"

	"github.com/cockroachdb/pebble"
	pebblestore "github.com/rzbill/tape/internal/storage/pebble"
	"github.com/rzbill/tape/pkg/id"
	"github.com/rzbill/tape/pkg/log"
	"github.com/rzbill/tape/pkg/tape"
)

// ErrNotFound is returned when a window ID has no archived metadata.
var ErrNotFound = errors.New("archive: window not found")

// Archive persists closed windows. It implements tape.CloseHook so it can be
// attached directly to a slot.
type Archive struct {
	db     *pebblestore.DB
	logger log.Logger
}

// Open wraps db as a window archive. A nil logger discards hook failures.
func Open(db *pebblestore.DB, logger log.Logger) *Archive {
	if logger == nil {
		logger = log.NewLogger(log.WithOutput(log.NewNullOutput()))
	}
	return &Archive{db: db, logger: logger.WithComponent("archive")}
}

// WindowClosed implements tape.CloseHook. Persistence is best-effort from the
// hook path; failures are logged, never propagated into the closing window.
func (a *Archive) WindowClosed(w tape.Window) {
	if err := a.Save(context.Background(), w); err != nil {
		a.logger.Error("failed to archive window", log.Str("window", w.ID.String()), log.Err(err))
		return
	}
	a.logger.Debug("window archived", log.Str("window", w.ID.String()), log.Int("entries", len(w.Entries)))
}

// Save writes the window's metadata and entries as a single atomic batch.
func (a *Archive) Save(ctx context.Context, w tape.Window) error {
	if w.ID.IsZero() {
		return errors.New("archive: window has no ID")
	}
	b := a.db.NewBatch()
	defer b.Close()

	for _, e := range w.Entries {
		val := EncodeEntry(e.At.UnixMilli(), e.Text)
		if err := b.Set(KeyWindowEntry(w.ID, e.Seq), val, nil); err != nil {
			return err
		}
	}
	meta := EncodeMeta(w.OpenedAt.UnixMilli(), w.ClosedAt.UnixMilli(), uint64(len(w.Entries)))
	if err := b.Set(KeyWindowMeta(w.ID), meta, nil); err != nil {
		return err
	}
	return a.db.CommitBatch(ctx, b)
}

// Meta describes one archived window.
type Meta struct {
	ID       id.ID
	OpenedAt time.Time
	ClosedAt time.Time
	Entries  uint64
}

// ListOptions bound a List scan.
type ListOptions struct {
	Limit   int
	Reverse bool // newest-first when set
}

// List returns archived window metadata, oldest-first unless Reverse.
func (a *Archive) List(opts ListOptions) ([]Meta, error) {
	low, high := MetaRange()
	iter, err := a.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	out := make([]Meta, 0, 16)
	advance := iter.Next
	ok := iter.First()
	if opts.Reverse {
		advance = iter.Prev
		ok = iter.Last()
	}
	for ; ok && (opts.Limit == 0 || len(out) < opts.Limit); ok = advance() {
		windowID, okKey := windowIDFromMetaKey(iter.Key())
		if !okKey {
			continue
		}
		openedMs, closedMs, count, okVal := DecodeMeta(iter.Value())
		if !okVal {
			continue
		}
		out = append(out, Meta{
			ID:       windowID,
			OpenedAt: time.UnixMilli(openedMs),
			ClosedAt: time.UnixMilli(closedMs),
			Entries:  count,
		})
	}
	return out, nil
}

// ReadOptions bound a Read scan.
type ReadOptions struct {
	Limit  int
	Filter Filter
}

// Read loads one archived window. Entries are returned in insertion order and
// may be narrowed by opts.Filter. ErrNotFound if the ID was never archived.
func (a *Archive) Read(windowID id.ID, opts ReadOptions) (tape.Window, error) {
	metaVal, err := a.db.Get(KeyWindowMeta(windowID))
	if err != nil {
		if pebblestore.IsNotFound(err) {
			return tape.Window{}, ErrNotFound
		}
		return tape.Window{}, err
	}
	openedMs, closedMs, _, okVal := DecodeMeta(metaVal)
	if !okVal {
		return tape.Window{}, errors.New("archive: corrupt window metadata")
	}

	low, high := EntryRange(windowID)
	iter, err := a.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return tape.Window{}, err
	}
	defer iter.Close()

	w := tape.Window{
		ID:       windowID,
		OpenedAt: time.UnixMilli(openedMs),
		ClosedAt: time.UnixMilli(closedMs),
	}
	for ok := iter.First(); ok && (opts.Limit == 0 || len(w.Entries) < opts.Limit); ok = iter.Next() {
		seq, okKey := seqFromEntryKey(iter.Key())
		if !okKey {
			continue
		}
		atMs, text, okDec := DecodeEntry(iter.Value())
		if !okDec {
			continue
		}
		if !opts.Filter.Eval(seq, atMs, text) {
			continue
		}
		w.Entries = append(w.Entries, tape.Entry{Seq: seq, At: time.UnixMilli(atMs), Text: text})
	}
	return w, nil
}

// Delete removes one window's metadata and entries atomically.
func (a *Archive) Delete(ctx context.Context, windowID id.ID) error {
	b := a.db.NewBatch()
	defer b.Close()
	low, high := EntryRange(windowID)
	if err := b.DeleteRange(low, high, nil); err != nil {
		return err
	}
	if err := b.Delete(KeyWindowMeta(windowID), nil); err != nil {
		return err
	}
	return a.db.CommitBatch(ctx, b)
}

// PurgeOlderThan deletes windows whose ID timestamp is before cutoff. Windows
// are removed in commit batches of up to batchLimit with an optional throttle
// between commits. Returns the number of windows deleted.
func (a *Archive) PurgeOlderThan(ctx context.Context, cutoff time.Time, batchLimit int, throttle time.Duration) (int, error) {
	if batchLimit <= 0 {
		batchLimit = 256
	}
	cutoffMs := cutoff.UnixMilli()

	deleted := 0
	for {
		metas, err := a.List(ListOptions{Limit: batchLimit})
		if err != nil {
			return deleted, err
		}
		b := a.db.NewBatch()
		n := 0
		for _, m := range metas {
			if m.ID.TimeMs() >= cutoffMs {
				break
			}
			low, high := EntryRange(m.ID)
			if err := b.DeleteRange(low, high, nil); err != nil {
				b.Close()
				return deleted, err
			}
			if err := b.Delete(KeyWindowMeta(m.ID), nil); err != nil {
				b.Close()
				return deleted, err
			}
			n++
		}
		if n == 0 {
			b.Close()
			return deleted, nil
		}
		if err := a.db.CommitBatch(ctx, b); err != nil {
			b.Close()
			return deleted, err
		}
		b.Close()
		deleted += n
		if n < batchLimit {
			return deleted, nil
		}
		if throttle > 0 {
			time.Sleep(throttle)
		}
	}
}
