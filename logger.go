package gaggiuino

// Logger denotes a generic logging interface (matched e.g. by a logrus logger)
type Logger interface {

	// Debugf logs a debug level message
	Debugf(format string, args ...interface{})

	// Infof logs an info level message
	Infof(format string, args ...interface{})

	// Warnf logs a warning level message
	Warnf(format string, args ...interface{})

	// Errorf logs an error level message
	Errorf(format string, args ...interface{})
}

// nopLogger discards all messages (default unless a logger is provided)
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
