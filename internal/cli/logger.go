package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevel is shared by every logger NewConsoleLogger builds so SetDebugMode can
// raise verbosity after flags are parsed.
var logLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)

// NewConsoleLogger returns a human-friendly console logger with timestamps.
// It writes to stderr: stdout belongs to the wrapped command and to printed credentials.
func NewConsoleLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = logLevel
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
