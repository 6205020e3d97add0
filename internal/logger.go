package internal

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// logger returns the current package logger.
// All logging in internal goes through this function.
func logger() *zap.Logger { return loggerPtr.Load() }

// SetLogger updates the package-level logger. Pass nil to silence it again.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

func Logger() *zap.Logger { return logger() }
