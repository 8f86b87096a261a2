package main

import (
	"os"

	clientcmd "github.com/rzbill/tape/internal/cmd/client"
	logpkg "github.com/rzbill/tape/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	// Respect TAPE_LOG_LEVEL / TAPE_LOG_FORMAT for CLI output
	level := os.Getenv("TAPE_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if os.Getenv("TAPE_LOG_FORMAT") == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "tape",
		Short: "Scoped logging tape CLI",
		Long:  "tape records ordered log entries during bounded activity windows. This CLI runs sample windows and manages the local window archive.",
	}

	rootCmd.AddCommand(clientcmd.NewDemoCommand(logger))
	rootCmd.AddCommand(clientcmd.NewWindowCommand(logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
