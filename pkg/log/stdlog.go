package log

import (
	stdlog "log"
	"strings"
)

// loggerWriter adapts a Logger to io.Writer so the standard library's *log.Logger
// can write through it. Each Write call is treated as one message.
type loggerWriter struct {
	logger Logger
	level  Level
}

func (w *loggerWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	switch w.level {
	case DebugLevel:
		w.logger.Debug(msg)
	case WarnLevel:
		w.logger.Warn(msg)
	case ErrorLevel:
		w.logger.Error(msg)
	default:
		w.logger.Info(msg)
	}
	return len(p), nil
}

// ToStdLogger returns a *log.Logger that forwards everything to logger at the
// given level. Useful for libraries that only accept the standard interface.
func ToStdLogger(logger Logger, level Level) *stdlog.Logger {
	return stdlog.New(&loggerWriter{logger: logger, level: level}, "", 0)
}

// RedirectStdLog routes the standard library's default logger (used by Pebble
// among others) through the provided Logger at info level.
func RedirectStdLog(logger Logger) {
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(&loggerWriter{logger: logger, level: InfoLevel})
}
