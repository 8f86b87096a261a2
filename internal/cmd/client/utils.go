package client

import (
	cfgpkg "github.com/rzbill/tape/internal/config"
	"github.com/rzbill/tape/internal/runtime"
	"github.com/rzbill/tape/pkg/log"
	"github.com/spf13/cobra"
)

// addCommonFlags registers the flags shared by all runtime-backed commands.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", "", "Data directory (default: TAPE_DATA_DIR or OS-specific application data directory)")
	cmd.Flags().String("config", "", "Config file path (JSON or YAML)")
}

// openRuntime resolves config and data dir from flags/env and opens the runtime.
func openRuntime(cmd *cobra.Command, logger log.Logger) (*runtime.Runtime, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	cfgpkg.FromEnv(&cfg)

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = cfgpkg.DefaultDataDir()
	}
	return runtime.Open(runtime.Options{DataDir: dataDir, Config: cfg, Logger: logger})
}
