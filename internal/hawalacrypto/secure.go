// Package hawalacrypto provides the cryptographic primitives behind Hawala
// backups: secure memory containers, entropy, the key-derivation and
// authenticated-encryption provider, and password strength evaluation.
package hawalacrypto

import (
	"errors"
	"runtime"
	"sync"
	"unicode/utf8"
)

// ErrInvalidUTF8 indicates text input that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

// SecureBytes is a wrapper for sensitive byte slices that provides
// secure memory handling with mlock and explicit zeroing.
type SecureBytes struct {
	data    []byte
	locked  bool
	cleared bool
	mu      sync.Mutex
}

// NewSecureBytes creates a new SecureBytes with the given size.
// The memory is locked if the system supports it.
func NewSecureBytes(size int) (*SecureBytes, error) {
	data := make([]byte, size)

	sb := &SecureBytes{
		data:   data,
		locked: false,
	}

	// Try to lock memory - don't fail if not possible
	sb.locked = mlock(data)

	// Set finalizer to ensure memory is cleared even if Zero isn't called
	runtime.SetFinalizer(sb, func(s *SecureBytes) {
		s.Zero()
	})

	return sb, nil
}

// SecureBytesFromSlice creates a SecureBytes from an existing slice.
// The data is copied into secure memory; the caller still owns (and
// should zero) the original slice.
func SecureBytesFromSlice(data []byte) (*SecureBytes, error) {
	sb, err := NewSecureBytes(len(data))
	if err != nil {
		return nil, err
	}
	copy(sb.data, data)
	return sb, nil
}

// SecureBytesFromString creates a SecureBytes holding the UTF-8 bytes
// of the given text.
func SecureBytesFromString(text string) (*SecureBytes, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}
	return SecureBytesFromSlice([]byte(text))
}

// Bytes returns the underlying byte slice.
// Returns nil once the SecureBytes has been zeroed.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// IsLocked returns whether the memory is locked (mlocked).
func (s *SecureBytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// IsCleared reports whether Zero has been called.
func (s *SecureBytes) IsCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

// Zero overwrites every byte with zero, shrinks the logical length to
// zero, and marks the buffer cleared. Safe to call multiple times; it
// runs synchronously to completion.
func (s *SecureBytes) Zero() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleared = true

	if s.data == nil {
		return
	}

	for i := range s.data {
		s.data[i] = 0
	}

	if s.locked {
		munlock(s.data)
		s.locked = false
	}

	// Clear the slice reference
	s.data = nil

	// Remove the finalizer since we've already cleaned up
	runtime.SetFinalizer(s, nil)
}

// Len returns the length of the data. Zeroed buffers report zero.
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return 0
	}
	return len(s.data)
}

// ZeroBytes overwrites a plain byte slice with zeros. Use it for
// transient secrets that never made it into a SecureBytes.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
