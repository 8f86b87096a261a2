package runtime

import (
	"context"
	"testing"

	"github.com/rzbill/tape/internal/archive"
	cfgpkg "github.com/rzbill/tape/internal/config"
	"github.com/rzbill/tape/pkg/tape"
)

func newTestRuntime(t *testing.T, cfg cfgpkg.Config) *Runtime {
	t.Helper()
	rt, err := Open(Options{DataDir: t.TempDir(), Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func TestOpenAndHealth(t *testing.T) {
	rt := newTestRuntime(t, cfgpkg.Default())
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestSlotArchivesWhenEnabled(t *testing.T) {
	rt := newTestRuntime(t, cfgpkg.Default())
	slot := rt.NewSlot()

	var rec *tape.Recorder
	err := slot.With(func(r *tape.Recorder) error {
		rec = r
		return slot.Append("Hi!")
	})
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	w, err := rt.Archive().Read(rec.ID(), archive.ReadOptions{})
	if err != nil {
		t.Fatalf("read archived window: %v", err)
	}
	if len(w.Entries) != 1 || w.Entries[0].Text != "Hi!" {
		t.Fatalf("unexpected entries: %v", w.Entries)
	}
}

func TestSlotSkipsArchiveWhenDisabled(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Archive.Enabled = false
	rt := newTestRuntime(t, cfg)
	slot := rt.NewSlot()

	var rec *tape.Recorder
	_ = slot.With(func(r *tape.Recorder) error {
		rec = r
		return slot.Append("ephemeral")
	})

	if _, err := rt.Archive().Read(rec.ID(), archive.ReadOptions{}); err != archive.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestOpenRejectsBadFsync(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Archive.Fsync = "sometimes"
	if _, err := Open(Options{DataDir: t.TempDir(), Config: cfg}); err == nil {
		t.Fatalf("expected error for invalid fsync mode")
	}
}
