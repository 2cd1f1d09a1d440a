// Package errors provides structured error handling for Hawala.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes for the CLI.
const (
	ExitSuccess   = 0 // Successful execution
	ExitGeneral   = 1 // General/unknown error
	ExitInput     = 2 // Invalid input
	ExitAuth      = 3 // Authentication failed
	ExitNotFound  = 4 // Resource not found
	ExitIntegrity = 5 // Data integrity failure
)

// HawalaError is the structured error type for Hawala.
type HawalaError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *HawalaError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *HawalaError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for HawalaError.
func (e *HawalaError) Is(target error) bool {
	var t *HawalaError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &HawalaError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &HawalaError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &HawalaError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Backup container format errors. These are user-actionable: the file
	// is not a Hawala backup, or it needs a newer version of the app.
	ErrInvalidMagicBytes = &HawalaError{
		Code:     "INVALID_MAGIC_BYTES",
		Message:  "not a Hawala backup file",
		ExitCode: ExitInput,
	}

	ErrUnsupportedVersion = &HawalaError{
		Code:     "UNSUPPORTED_VERSION",
		Message:  "backup was created by a newer version of Hawala",
		ExitCode: ExitInput,
	}

	ErrFileTooSmall = &HawalaError{
		Code:     "FILE_TOO_SMALL",
		Message:  "file is too small to be a Hawala backup",
		ExitCode: ExitInput,
	}

	ErrInvalidHeader = &HawalaError{
		Code:     "INVALID_HEADER",
		Message:  "backup header is malformed",
		ExitCode: ExitInput,
	}

	// ErrInvalidPassword covers both wrong-password and tampered-ciphertext.
	// The two are intentionally indistinguishable to the caller.
	ErrInvalidPassword = &HawalaError{
		Code:     "INVALID_PASSWORD",
		Message:  "incorrect password or corrupted backup",
		ExitCode: ExitAuth,
	}

	// ErrChecksumMismatch means the ciphertext authenticated but the
	// recovered content is inconsistent with its embedded checksum.
	ErrChecksumMismatch = &HawalaError{
		Code:     "CHECKSUM_MISMATCH",
		Message:  "backup content failed integrity check",
		ExitCode: ExitIntegrity,
	}

	ErrEncryptionFailed = &HawalaError{
		Code:     "ENCRYPTION_FAILED",
		Message:  "backup encryption failed",
		ExitCode: ExitGeneral,
	}

	ErrDecryptionFailed = &HawalaError{
		Code:     "DECRYPTION_FAILED",
		Message:  "backup decryption failed",
		ExitCode: ExitGeneral,
	}

	ErrKeyDerivationFailed = &HawalaError{
		Code:     "KEY_DERIVATION_FAILED",
		Message:  "key derivation failed",
		ExitCode: ExitGeneral,
	}

	// Payload errors.
	ErrInvalidMnemonic = &HawalaError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrInvalidFormat = &HawalaError{
		Code:     "INVALID_FORMAT",
		Message:  "invalid format",
		ExitCode: ExitInput,
	}

	// Backup service errors.
	ErrBackupNotFound = &HawalaError{
		Code:     "BACKUP_NOT_FOUND",
		Message:  "backup file not found",
		ExitCode: ExitNotFound,
	}

	// Config errors.
	ErrConfigInvalid = &HawalaError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &HawalaError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown config key",
		ExitCode: ExitInput,
	}
)

// New creates a new HawalaError with the given code and message.
func New(code, message string) *HawalaError {
	return &HawalaError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var he *HawalaError
	if errors.As(err, &he) {
		return &HawalaError{
			Code:       he.Code,
			Message:    fmt.Sprintf("%s: %s", msg, he.Message),
			Details:    he.Details,
			Suggestion: he.Suggestion,
			Cause:      err,
			ExitCode:   he.ExitCode,
		}
	}

	return &HawalaError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var he *HawalaError
	if errors.As(err, &he) {
		return &HawalaError{
			Code:       he.Code,
			Message:    he.Message,
			Details:    details,
			Suggestion: he.Suggestion,
			Cause:      he.Cause,
			ExitCode:   he.ExitCode,
		}
	}

	return &HawalaError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var he *HawalaError
	if errors.As(err, &he) {
		return &HawalaError{
			Code:       he.Code,
			Message:    he.Message,
			Details:    he.Details,
			Suggestion: suggestion,
			Cause:      he.Cause,
			ExitCode:   he.ExitCode,
		}
	}

	return &HawalaError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var he *HawalaError
	if errors.As(err, &he) {
		return he.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var he *HawalaError
	if errors.As(err, &he) {
		return he.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
