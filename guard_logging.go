package variant

import "time"

// GuardLogEvent describes a guard evaluation attempt for logging.
type GuardLogEvent struct {
	Engine   string
	Expr     string
	Variant  string
	Duration time.Duration
	Err      error
}

// GuardLogger records guard evaluation events.
type GuardLogger interface {
	LogGuard(GuardLogEvent)
}

// GuardLoggerFunc adapts a function to GuardLogger.
type GuardLoggerFunc func(GuardLogEvent)

// LogGuard implements GuardLogger.
func (f GuardLoggerFunc) LogGuard(event GuardLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopGuardLogger struct{}

func (noopGuardLogger) LogGuard(GuardLogEvent) {}
