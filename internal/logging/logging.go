// Package logging provides file logging for the cascaler CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents the logging level.
type Level int

const (
	// LevelInfo is the default logging level.
	LevelInfo Level = iota
	// LevelDebug enables verbose debug logging.
	LevelDebug
	// LevelWarn is used for recoverable per-item problems.
	LevelWarn
	// LevelError is used for failures that abort an item or the run.
	LevelError
)

func (l Level) tag() string {
	switch l {
	case LevelDebug:
		return "[DEBUG] "
	case LevelWarn:
		return "[WARN] "
	case LevelError:
		return "[ERROR] "
	default:
		return "[INFO] "
	}
}

// Sink receives a formatted log line in addition to the file write.
// The Progress Tracker's display wires itself in here so that log
// output doesn't interleave with a live progress bar; there is no
// global mutable logger, each pipeline run owns its own Logger and
// wires its own Sink explicitly.
type Sink func(level Level, line string)

// Logger wraps the standard library logger with level filtering,
// timestamped daily file output, and an optional routed Sink.
type Logger struct {
	mu       sync.Mutex
	level    Level
	logger   *log.Logger
	file     *os.File
	filePath string
	sink     Sink
}

// Setup creates a new logger that writes to today's log file under
// logDir, named cascaler-YYYYMMDD.log. Returns nil if logging is
// disabled (disabled=true). Rotation/retention of old log files is an
// external collaborator (spec'd as 7-day retention) and is not
// performed here.
func Setup(logDir string, verbose, disabled bool) (*Logger, error) {
	if disabled {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	filename := fmt.Sprintf("cascaler-%s.log", time.Now().Format("20060102"))
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	l := &Logger{
		level:    level,
		logger:   log.New(file, "", log.LstdFlags),
		file:     file,
		filePath: filePath,
	}

	l.Info("cascaler starting")
	if verbose {
		l.Info("debug level logging enabled")
	}
	l.Info("log file: %s", filePath)

	return l, nil
}

// RouteThrough installs a Sink that receives every logged line
// alongside the file write. Passing nil clears the sink.
func (l *Logger) RouteThrough(sink Sink) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = sink
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

func (l *Logger) write(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	l.logger.Print(level.tag() + line)

	l.mu.Lock()
	sink := l.sink
	l.mu.Unlock()
	if sink != nil {
		sink(level, line)
	}
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	l.write(LevelInfo, format, args...)
}

// Debug logs a debug-level message, only if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || l.level < LevelDebug {
		return
	}
	l.write(LevelDebug, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.write(LevelError, format, args...)
}

// Writer returns an io.Writer that writes to the log file. Useful for
// redirecting subprocess stderr capture into the log.
func (l *Logger) Writer() io.Writer {
	if l == nil || l.file == nil {
		return io.Discard
	}
	return l.file
}
