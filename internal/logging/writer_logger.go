package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// WriterLogger writes leveled log lines to an io.Writer.
type WriterLogger struct {
	logger *log.Logger
	debug  bool
	closer io.Closer
}

// NewWriterLogger creates a logger writing to w. Debug messages are dropped
// unless debug is true.
func NewWriterLogger(w io.Writer, debug bool) *WriterLogger {
	return &WriterLogger{
		logger: log.New(w, "", log.Ldate|log.Ltime),
		debug:  debug,
	}
}

// NewFileLogger creates a logger appending to the file at path, creating
// parent directories as needed.
func NewFileLogger(path string, debug bool) (*WriterLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// #nosec G304 - path comes from the user's own configuration
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriterLogger(f, debug)
	l.closer = f

	return l, nil
}

// SetDebug toggles debug logging after construction. The CLI uses this once
// flag parsing has run.
func (l *WriterLogger) SetDebug(debug bool) {
	l.debug = debug
}

// Debugf logs a debug message when debug logging is enabled.
func (l *WriterLogger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}

	l.logger.Printf("DEBUG "+format, args...)
}

// Infof logs an informational message.
func (l *WriterLogger) Infof(format string, args ...any) {
	l.logger.Printf("INFO "+format, args...)
}

// Warnf logs a warning.
func (l *WriterLogger) Warnf(format string, args ...any) {
	l.logger.Printf("WARN "+format, args...)
}

// Errorf logs an error.
func (l *WriterLogger) Errorf(format string, args ...any) {
	l.logger.Printf("ERROR "+format, args...)
}

// Close closes the underlying file, if any.
func (l *WriterLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}

	return nil
}
