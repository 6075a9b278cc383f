// ABOUTME: Leveled stderr logger using slog levels; -verbose switches to debug
// ABOUTME: Never writes to stdout, which may carry the rendered palette

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log lines and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()

	prev := out
	out = w
	return prev
}

func emit(l slog.Level, format string, args []any) {
	if l < LevelError && slog.Level(level.Load()) > l {
		return
	}
	outMu.Lock()
	defer outMu.Unlock()

	fmt.Fprintf(out, "[%s] "+format+"\n", append([]any{l.String()}, args...)...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) { emit(LevelDebug, format, args) }

// Info logs an info message if the level allows it.
func Info(format string, args ...any) { emit(LevelInfo, format, args) }

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) { emit(LevelWarn, format, args) }

// Error logs an error message (always emitted).
func Error(format string, args ...any) { emit(LevelError, format, args) }
