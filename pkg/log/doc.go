// Package log provides tape's structured logging facade and utilities.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that routes records through a
// formatter/outputs pipeline, keeping output consistent across the codebase.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("archive"))
//	l.Info("window saved", log.Str("window", windowID), log.Int("entries", n))
//
// # Interop
//
// To integrate with libraries expecting *log.Logger (Pebble routes its event
// listener output through the standard library), use ToStdLogger or
// RedirectStdLog.
package log
