package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	pebblestore "github.com/rzbill/tape/internal/storage/pebble"
	"github.com/rzbill/tape/pkg/tape"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	dir := t.TempDir()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return Open(db, nil)
}

func closeWindow(t *testing.T, slot *tape.Slot, texts ...string) tape.Window {
	t.Helper()
	r, err := slot.Open()
	if err != nil {
		t.Fatalf("open window: %v", err)
	}
	for _, s := range texts {
		if err := r.Append(s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return r.Snapshot()
}

func TestSaveReadRoundTrip(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot()
	w := closeWindow(t, slot, "e1", "e2", "e3")

	if err := a.Save(context.Background(), w); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := a.Read(w.ID, ReadOptions{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(got.Entries))
	}
	for i, want := range []string{"e1", "e2", "e3"} {
		e := got.Entries[i]
		if e.Text != want {
			t.Fatalf("entry %d: want %q got %q", i, want, e.Text)
		}
		if e.Seq != uint64(i)+1 {
			t.Fatalf("entry %d: seq %d", i, e.Seq)
		}
	}
	if got.OpenedAt.UnixMilli() != w.OpenedAt.UnixMilli() {
		t.Fatalf("opened time mismatch")
	}
}

func TestReadUnknownWindow(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot()
	w := closeWindow(t, slot, "x")
	if _, err := a.Read(w.ID, ReadOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCloseHookArchivesAutomatically(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot(tape.WithCloseHook(a))

	windowID := closeWindow(t, slot, "Hi!").ID
	got, err := a.Read(windowID, ReadOptions{})
	if err != nil {
		t.Fatalf("read archived window: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Text != "Hi!" {
		t.Fatalf("unexpected entries: %v", got.Entries)
	}
}

func TestListOrdering(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot(tape.WithCloseHook(a))
	w1 := closeWindow(t, slot, "first")
	w2 := closeWindow(t, slot, "second")
	w3 := closeWindow(t, slot, "third")

	metas, err := a.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("want 3 windows, got %d", len(metas))
	}
	if metas[0].ID != w1.ID || metas[2].ID != w3.ID {
		t.Fatalf("expected oldest-first ordering")
	}

	rev, err := a.List(ListOptions{Reverse: true, Limit: 2})
	if err != nil {
		t.Fatalf("list reverse: %v", err)
	}
	if len(rev) != 2 || rev[0].ID != w3.ID || rev[1].ID != w2.ID {
		t.Fatalf("expected newest-first with limit")
	}
}

func TestFilterNarrowsRead(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot(tape.WithCloseHook(a))
	w := closeWindow(t, slot, "Traveled Distance 5", "refueled", "Traveled Distance 7")

	f, err := NewFilter(`text.contains("Traveled")`)
	if err != nil {
		t.Fatalf("compile filter: %v", err)
	}
	got, err := a.Read(w.ID, ReadOptions{Filter: f})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("want 2 matching entries, got %d", len(got.Entries))
	}
	if got.Entries[0].Seq != 1 || got.Entries[1].Seq != 3 {
		t.Fatalf("unexpected sequences: %v", got.Entries)
	}
}

func TestFilterJSONPayload(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot(tape.WithCloseHook(a))
	w := closeWindow(t, slot, `{"event":"travel","km":5}`, "not json")

	f, err := NewFilter(`json != null && json.event == "travel"`)
	if err != nil {
		t.Fatalf("compile filter: %v", err)
	}
	got, err := a.Read(w.ID, ReadOptions{Filter: f})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Seq != 1 {
		t.Fatalf("unexpected entries: %v", got.Entries)
	}
}

func TestFilterRejectsBadExpression(t *testing.T) {
	if _, err := NewFilter(`text +`); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestDelete(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot(tape.WithCloseHook(a))
	w := closeWindow(t, slot, "a", "b")

	if err := a.Delete(context.Background(), w.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.Read(w.ID, ReadOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
	metas, err := a.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 0 {
		t.Fatalf("expected empty archive, got %d", len(metas))
	}
}

func TestPurgeOlderThan(t *testing.T) {
	a := newTestArchive(t)
	slot := tape.NewSlot(tape.WithCloseHook(a))
	closeWindow(t, slot, "old")
	closeWindow(t, slot, "old too")

	// Ensure the kept window lands on a later millisecond than the old ones.
	time.Sleep(2 * time.Millisecond)
	kept := closeWindow(t, slot, "recent")
	cutoff := time.UnixMilli(kept.ID.TimeMs())

	n, err := a.PurgeOlderThan(context.Background(), cutoff, 1, 0)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 purged, got %d", n)
	}
	metas, err := a.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != kept.ID {
		t.Fatalf("expected only the recent window to remain")
	}
}

func TestEntryEncodingRejectsCorruption(t *testing.T) {
	b := EncodeEntry(1234, "hello")
	if _, _, ok := DecodeEntry(b); !ok {
		t.Fatalf("decode of valid record failed")
	}
	b[len(b)-1] ^= 0xff // flip a crc bit
	if _, _, ok := DecodeEntry(b); ok {
		t.Fatalf("corrupt record should not decode")
	}
	if _, _, ok := DecodeEntry(b[:3]); ok {
		t.Fatalf("truncated record should not decode")
	}
}
