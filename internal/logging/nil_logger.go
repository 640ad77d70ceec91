package logging

// NilLogger discards all messages. Useful as a default and in tests.
type NilLogger struct{}

// NewNilLogger creates a logger that does nothing.
func NewNilLogger() *NilLogger {
	return &NilLogger{}
}

// Debugf does nothing.
func (l *NilLogger) Debugf(string, ...any) {}

// Infof does nothing.
func (l *NilLogger) Infof(string, ...any) {}

// Warnf does nothing.
func (l *NilLogger) Warnf(string, ...any) {}

// Errorf does nothing.
func (l *NilLogger) Errorf(string, ...any) {}

// Close does nothing.
func (l *NilLogger) Close() error { return nil }
