package log

// Kv is a helper type for structured logging fields.
type Kv = map[string]any

// Logger is the interface that the loggers used by the application need to implement.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	WithValues(values map[string]any) Logger
}

// Noop logger doesn't log anything.
var Noop = Logger(noop(0))

type noop int

func (n noop) Infof(format string, args ...any)     {}
func (n noop) Warningf(format string, args ...any)  {}
func (n noop) Errorf(format string, args ...any)    {}
func (n noop) Debugf(format string, args ...any)    {}
func (n noop) WithValues(values map[string]any) Logger { return n }
