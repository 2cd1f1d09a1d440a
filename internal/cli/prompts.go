package cli

import (
	"bytes"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/hawala-app/hawala/internal/hawalacrypto"
	"github.com/hawala-app/hawala/internal/output"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

// Prompt functions are variables so tests can inject passwords.
//
//nolint:gochecknoglobals // Swappable prompts are required for CLI tests
var (
	promptPasswordFn    = promptPassword
	promptNewPasswordFn = promptNewPassword
)

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// promptNewPassword prompts for a new backup password with
// confirmation, warning (but not blocking) on weak passwords.
// The caller is responsible for zeroing the returned bytes after use.
func promptNewPassword() ([]byte, error) {
	password, err := promptPasswordFn("Enter backup password: ")
	if err != nil {
		return nil, err
	}

	if len(password) == 0 {
		return nil, hawalaerr.WithSuggestion(
			hawalaerr.ErrInvalidInput,
			"password must not be empty",
		)
	}

	if strength := hawalacrypto.EvaluatePasswordStrength(string(password)); strength == hawalacrypto.StrengthWeak {
		output.Warn("this password is weak; anyone who obtains the backup file can try passwords offline")
	}

	confirm, err := promptPasswordFn("Confirm password: ")
	if err != nil {
		hawalacrypto.ZeroBytes(password)
		return nil, err
	}
	defer hawalacrypto.ZeroBytes(confirm)

	// Compare in place; string conversions would copy the password
	// beyond the reach of ZeroBytes.
	if !bytes.Equal(password, confirm) {
		hawalacrypto.ZeroBytes(password)
		return nil, hawalaerr.WithSuggestion(
			hawalaerr.ErrInvalidInput,
			"passwords do not match",
		)
	}

	return password, nil
}
