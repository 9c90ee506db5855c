// Package errors provides structured error types and exit codes for bridgematrix.
//
// Only fatal conditions are represented here. A client invocation that exits
// nonzero is an outcome, not an error, and is carried by model.ExecutionResult.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the bridgematrix process.
const (
	ExitSuccess     = 0   // Every case passed
	ExitFailure     = 1   // At least one case failed, or the run aborted on a fatal error
	ExitUsageError  = 2   // Invalid command line
	ExitInterrupted = 130 // Run canceled by SIGINT/SIGTERM
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindMissingArtifact
	KindAmountResolution
	KindUsage
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindMissingArtifact:
		return "missing artifact"
	case KindAmountResolution:
		return "amount resolution error"
	case KindUsage:
		return "usage error"
	default:
		return "runtime error"
	}
}

// BridgeError is the base error type for bridgematrix.
type BridgeError struct {
	Kind    ErrorKind
	Message string
	Field   string // Configuration key if applicable
	Path    string // Filesystem path if applicable
	Cause   error  // Underlying error
}

func (e *BridgeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *BridgeError) ExitCode() int {
	if e.Kind == KindUsage {
		return ExitUsageError
	}
	return ExitFailure
}

// New creates a new runtime error.
func New(message string) *BridgeError {
	return &BridgeError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *BridgeError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a configuration error for a missing or invalid input.
func Config(field, message string) *BridgeError {
	return &BridgeError{
		Kind:    KindConfig,
		Field:   field,
		Message: message,
	}
}

// Configf creates a configuration error with formatting.
func Configf(field, format string, args ...interface{}) *BridgeError {
	return Config(field, fmt.Sprintf(format, args...))
}

// MissingArtifact creates an error for a required file that is absent on disk.
func MissingArtifact(what, path string) *BridgeError {
	return &BridgeError{
		Kind:    KindMissingArtifact,
		Path:    path,
		Message: fmt.Sprintf("%s not found: %s", what, path),
	}
}

// AmountResolution creates an error for matrix entries without a configured amount.
func AmountResolution(message string) *BridgeError {
	return &BridgeError{
		Kind:    KindAmountResolution,
		Message: message,
	}
}

// Usage creates a command line usage error.
func Usage(message string) *BridgeError {
	return &BridgeError{
		Kind:    KindUsage,
		Message: message,
	}
}

// Usagef creates a usage error with formatting.
func Usagef(format string, args ...interface{}) *BridgeError {
	return Usage(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *BridgeError {
	return &BridgeError{
		Kind:    KindRuntime,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   err,
	}
}

// WrapKind wraps an error keeping a specific kind.
func WrapKind(kind ErrorKind, err error, message string) *BridgeError {
	e := Wrap(err, message)
	e.Kind = kind
	return e
}

// IsKind reports whether err is or wraps a BridgeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BridgeError
	if stderrors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var be *BridgeError
	if stderrors.As(err, &be) {
		return be.ExitCode()
	}
	return ExitFailure
}
