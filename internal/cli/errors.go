package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for each failure category (CLI, Subprocess, Settings)
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"bctl-devtools/pkg/errx"
)

const exitCodeKey = errx.ExitCodeKey

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag and the console log level.
// When enabled, logStructuredError will output structured error logs to the terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
	if enabled {
		logLevel.SetLevel(zap.DebugLevel)
	} else {
		logLevel.SetLevel(zap.ErrorLevel)
	}
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

type errorSpec struct {
	code        string
	description string
}

// newSentinelError creates a sentinel error and registers it in errorSpecs in one step.
func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// errorSpecs maps sentinel errors to their error codes and descriptions.
// Populated by newSentinelError during variable initialization.
var errorSpecs = make(map[error]errorSpec)

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (code, description string) {
	spec := specFor(sentinel)
	return spec.code, spec.description
}

// newWithSentinel creates a new error in the category registered for base.
func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, nil)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

// wrapWithSentinel wraps cause in the category registered for base.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context
// such as the command, its arguments, or the exit code.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	// CLI errors.
	ErrUnknownConfigName      = newSentinelError("unknown config name", errx.CodeCLI, errx.DescCLI)
	ErrControlCharsNotAllowed = newSentinelError("value must not contain control characters", errx.CodeCLI, errx.DescCLI)
	ErrExecutableRequired     = newSentinelError("executable path is required", errx.CodeCLI, errx.DescCLI)

	// Subprocess errors.
	ErrSubprocessFailed = newSentinelError("external command failed", errx.CodeSubprocess, errx.DescSubprocess)
	ErrCommandNotFound  = newSentinelError("external command not found", errx.CodeSubprocess, errx.DescSubprocess)
	ErrChildExited      = newSentinelError("forwarded command exited non-zero", errx.CodeSubprocess, errx.DescSubprocess)
	ErrEmptyToken       = newSentinelError("credential issuer printed no token", errx.CodeSubprocess, errx.DescSubprocess)

	// Settings errors.
	ErrLoadSettingsFailed = newSentinelError("failed to load settings", errx.CodeSettings, errx.DescSettings)
	ErrInvalidSetting     = newSentinelError("invalid setting", errx.CodeSettings, errx.DescSettings)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeCLI, description: errx.DescCLI}
}

// logStructuredError logs an error with structured fields to the terminal.
// Only logs when debug mode is enabled.
//
// All context from errx.Error is emitted as fields:
// - error.code: "71000"
// - error.category: "Subprocess error"
// - error.context.command: "zli"
// - error.context.exitCode: 1
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if !errors.As(err, &errxErr) {
		logger.Error(msg, zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("error.code", errxErr.Code()),
		zap.String("error.category", errxErr.Description()),
		zap.String("error.message", errxErr.Message()),
		zap.Error(err),
	}
	for key, value := range errxErr.Context() {
		fields = append(fields, zap.Any("error.context."+key, value))
	}
	// distinct field name to avoid a duplicate "error" key
	if cause := errxErr.Cause(); cause != nil {
		fields = append(fields, zap.NamedError("error.cause", cause))
	}
	logger.Error(msg, fields...)
}
