// Package logger provides the leveled stderr logger used across Orbit.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes timestamped, level-tagged lines to a single writer.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{level: level, out: out}
}

// Default returns a stderr logger that stays quiet below Warn, so CLI output
// is not interleaved with request chatter unless verbosity is raised.
func Default() *Logger {
	return New(os.Stderr, LevelWarn)
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "%s [orbit]%s %s\n", timestamp, levelTag(level), message)
}

func levelTag(level Level) string {
	switch level {
	case LevelDebug:
		return " [DEBUG]"
	case LevelInfo:
		return " [INFO]"
	case LevelWarn:
		return " [WARN]"
	case LevelError:
		return " [ERROR]"
	default:
		return " [?]"
	}
}

func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}
