package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger constructs a zap logger for human-readable console output on w.
// Warnings are always shown; debug enables debug tracing.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	config.TimeKey = ""
	config.NameKey = ""
	config.CallerKey = ""
	config.StacktraceKey = ""

	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), level)

	return zap.New(core)
}
