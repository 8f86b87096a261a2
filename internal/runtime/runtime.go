package runtime

import (
	"context"
	"errors"

	"github.com/rzbill/tape/internal/archive"
	cfgpkg "github.com/rzbill/tape/internal/config"
	pebblestore "github.com/rzbill/tape/internal/storage/pebble"
	"github.com/rzbill/tape/pkg/log"
	"github.com/rzbill/tape/pkg/tape"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Config  cfgpkg.Config
	Logger  log.Logger
}

// Runtime wires storage, config, and the archive for a single instance.
type Runtime struct {
	db     *pebblestore.DB
	arch   *archive.Archive
	config cfgpkg.Config
	logger log.Logger
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	fsync, err := pebblestore.ParseFsyncMode(opts.Config.Archive.Fsync)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewLogger(log.WithOutput(log.NewNullOutput()))
	}
	db, err := pebblestore.Open(pebblestore.Options{DataDir: opts.DataDir, Fsync: fsync})
	if err != nil {
		return nil, err
	}
	return &Runtime{
		db:     db,
		arch:   archive.Open(db, logger),
		config: opts.Config,
		logger: logger,
	}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	it.Close()
	return nil
}

// Archive returns the window archive.
func (r *Runtime) Archive() *archive.Archive { return r.arch }

// NewSlot returns a tape slot. When archiving is enabled in config, the
// archive's close-hook is attached so every closed window is captured.
func (r *Runtime) NewSlot() *tape.Slot {
	if r.config.Archive.Enabled {
		return tape.NewSlot(tape.WithCloseHook(r.arch))
	}
	return tape.NewSlot()
}

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
