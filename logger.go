package seidel

import (
	"go.uber.org/zap"

	"github.com/osuushi/seidel/internal"
)

// SetLogger configures the logger for seidel. By default, seidel produces no
// log output. Pass nil to disable logging again.
//
// Everything is logged at debug level: the insertion phases of the
// trapezoidation, and table sizes and counts after each stage.
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	seidel.SetLogger(logger)
func SetLogger(l *zap.Logger) {
	internal.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return internal.Logger()
}
