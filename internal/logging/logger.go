// Package logging provides the injected logger used across the tool.
//
// The logger is passed explicitly to every component that needs one; there
// is no package-level logger state.
package logging

// Logger is the diagnostics side channel of the signing pipeline.
type Logger interface {
	// Debugf logs a message that is only useful when tracing a run.
	Debugf(format string, args ...any)
	// Infof logs normal progress.
	Infof(format string, args ...any)
	// Warnf logs a recoverable condition the user should know about.
	Warnf(format string, args ...any)
	// Errorf logs a failure.
	Errorf(format string, args ...any)
	// Close releases any resources held by the logger (e.g. file handles).
	Close() error
}
