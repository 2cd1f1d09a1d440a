package hawalacrypto

// RedactionMarker is what a SecureString renders instead of its value.
const RedactionMarker = "[REDACTED]"

// SecureString wraps a SecureBytes for text-shaped secrets such as
// mnemonics and passphrases. Every text-producing operation returns a
// fixed redaction marker; the real value is only reachable through the
// deliberately named Reveal accessor.
type SecureString struct {
	buf *SecureBytes
}

// NewSecureString copies text into locked memory.
func NewSecureString(text string) (*SecureString, error) {
	buf, err := SecureBytesFromString(text)
	if err != nil {
		return nil, err
	}
	return &SecureString{buf: buf}, nil
}

// String implements fmt.Stringer and always redacts.
func (s *SecureString) String() string {
	return RedactionMarker
}

// GoString implements fmt.GoStringer so %#v cannot leak the value.
func (s *SecureString) GoString() string {
	return RedactionMarker
}

// MarshalText redacts, so accidental JSON/YAML encoding is safe.
func (s *SecureString) MarshalText() ([]byte, error) {
	return []byte(RedactionMarker), nil
}

// Reveal returns the actual secret value. Callers copying the result
// take over responsibility for its lifetime.
func (s *SecureString) Reveal() string {
	data := s.buf.Bytes()
	if data == nil {
		return ""
	}
	return string(data)
}

// Len returns the byte length of the secret. Cleared strings report zero.
func (s *SecureString) Len() int {
	return s.buf.Len()
}

// IsCleared reports whether Clear has been called.
func (s *SecureString) IsCleared() bool {
	return s.buf.IsCleared()
}

// Clear zeroes the underlying buffer. Idempotent.
func (s *SecureString) Clear() {
	s.buf.Zero()
}
