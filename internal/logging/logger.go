// Package logging provides the structured logging interface used across the
// compiler, so packages depend on Logger rather than on logrus directly.
package logging

// Logger is a structured, levelled logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry.
	WithError(err error) Logger
	// WithField returns a logger that attaches one field to every entry.
	WithField(key string, value interface{}) Logger
	// WithFields returns a logger that attaches fields to every entry.
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for constructing a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)                  {}
func (nopLogger) Info(string, ...Field)                   {}
func (nopLogger) Warn(string, ...Field)                   {}
func (nopLogger) Error(string, ...Field)                  {}
func (n nopLogger) WithError(error) Logger                { return n }
func (n nopLogger) WithField(string, interface{}) Logger { return n }
func (n nopLogger) WithFields(...Field) Logger            { return n }
