package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

var (
	errInner = errors.New("inner")
	errPlain = errors.New("plain error")
)

func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"success", nil, hawalaerr.ExitSuccess},
		{"general error", hawalaerr.ErrGeneral, hawalaerr.ExitGeneral},
		{"input error", hawalaerr.ErrInvalidInput, hawalaerr.ExitInput},
		{"invalid password", hawalaerr.ErrInvalidPassword, hawalaerr.ExitAuth},
		{"not found error", hawalaerr.ErrNotFound, hawalaerr.ExitNotFound},
		{"backup not found", hawalaerr.ErrBackupNotFound, hawalaerr.ExitNotFound},
		{"checksum mismatch", hawalaerr.ErrChecksumMismatch, hawalaerr.ExitIntegrity},
		{"invalid magic", hawalaerr.ErrInvalidMagicBytes, hawalaerr.ExitInput},
		{"unsupported version", hawalaerr.ErrUnsupportedVersion, hawalaerr.ExitInput},
		{"plain error", errPlain, hawalaerr.ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code := hawalaerr.ExitCode(tt.err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestExitCodeWrappedError(t *testing.T) {
	t.Parallel()
	wrapped := hawalaerr.Wrap(hawalaerr.ErrBackupNotFound, "backup wallet-main")
	code := hawalaerr.ExitCode(wrapped)
	assert.Equal(t, hawalaerr.ExitNotFound, code)
}

func TestSentinelErrors(t *testing.T) {
	t.Parallel()
	// Verify that wrapping preserves error identity
	wrapped := hawalaerr.Wrap(hawalaerr.ErrInvalidPassword, "wrapped")
	require.ErrorIs(t, wrapped, hawalaerr.ErrInvalidPassword)

	wrapped = hawalaerr.Wrap(hawalaerr.ErrChecksumMismatch, "wrapped")
	require.ErrorIs(t, wrapped, hawalaerr.ErrChecksumMismatch)

	wrapped = hawalaerr.Wrap(hawalaerr.ErrInvalidMagicBytes, "wrapped")
	require.ErrorIs(t, wrapped, hawalaerr.ErrInvalidMagicBytes)
}

func TestSentinelErrorsDistinct(t *testing.T) {
	t.Parallel()
	// Wrong password and checksum mismatch must remain distinguishable.
	require.NotErrorIs(t, hawalaerr.ErrInvalidPassword, hawalaerr.ErrChecksumMismatch)
	require.NotErrorIs(t, hawalaerr.ErrChecksumMismatch, hawalaerr.ErrInvalidPassword)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, hawalaerr.Wrap(nil, "context"))
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		wrapped := hawalaerr.Wrap(errInner, "loading backup %q", "wallet.hawala")
		require.Error(t, wrapped)
		assert.Contains(t, wrapped.Error(), `loading backup "wallet.hawala"`)
		assert.Contains(t, wrapped.Error(), "inner")
		require.ErrorIs(t, wrapped, errInner)
	})

	t.Run("hawala error keeps code and exit", func(t *testing.T) {
		t.Parallel()
		wrapped := hawalaerr.Wrap(hawalaerr.ErrInvalidPassword, "decrypting")
		assert.Equal(t, "INVALID_PASSWORD", hawalaerr.Code(wrapped))
		assert.Equal(t, hawalaerr.ExitAuth, hawalaerr.ExitCode(wrapped))
	})
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	err := hawalaerr.WithDetails(hawalaerr.ErrFileTooSmall, map[string]string{
		"size":    "10",
		"minimum": "72",
	})
	require.ErrorIs(t, err, hawalaerr.ErrFileTooSmall)
	assert.Contains(t, err.Error(), "size: 10")
	assert.Contains(t, err.Error(), "minimum: 72")

	var he *hawalaerr.HawalaError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "10", he.Details["size"])
}

func TestWithDetailsDeterministicOrder(t *testing.T) {
	t.Parallel()
	err := hawalaerr.WithDetails(hawalaerr.ErrGeneral, map[string]string{
		"b": "2",
		"a": "1",
		"c": "3",
	})
	// Details render sorted by key.
	assert.Equal(t, "an error occurred (a: 1) (b: 2) (c: 3)", err.Error())
}

func TestWithSuggestion(t *testing.T) {
	t.Parallel()

	t.Run("hawala error", func(t *testing.T) {
		t.Parallel()
		err := hawalaerr.WithSuggestion(hawalaerr.ErrInvalidPassword, "check the password and try again")
		var he *hawalaerr.HawalaError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, "check the password and try again", he.Suggestion)
		require.ErrorIs(t, err, hawalaerr.ErrInvalidPassword)
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		err := hawalaerr.WithSuggestion(errPlain, "try again")
		var he *hawalaerr.HawalaError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, "try again", he.Suggestion)
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, hawalaerr.WithSuggestion(nil, "noop"))
	})
}

func TestCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "INVALID_MAGIC_BYTES", hawalaerr.Code(hawalaerr.ErrInvalidMagicBytes))
	assert.Equal(t, "GENERAL_ERROR", hawalaerr.Code(errPlain))
}

func TestNew(t *testing.T) {
	t.Parallel()
	err := hawalaerr.New("CUSTOM_CODE", "custom message")
	assert.Equal(t, "CUSTOM_CODE", err.Code)
	assert.Equal(t, "custom message", err.Error())
	assert.Equal(t, hawalaerr.ExitGeneral, err.ExitCode)
}

func TestErrorWithCause(t *testing.T) {
	t.Parallel()
	err := &hawalaerr.HawalaError{
		Code:    "TEST",
		Message: "outer",
		Cause:   errInner,
	}
	assert.Equal(t, "outer: inner", err.Error())
	require.ErrorIs(t, err, errInner)
}
