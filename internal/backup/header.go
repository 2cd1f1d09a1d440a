// Package backup implements the Hawala backup container: a versioned,
// authenticated, password-encrypted file holding wallet seeds, imported
// accounts, and application settings.
package backup

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/hawala-app/hawala/internal/hawalacrypto"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

// Container layout, fixed-width fields in big-endian byte order:
//
//	offset  size  field
//	0       8     magic constant (format marker + version nibble)
//	8       2     format version (uint16)
//	10      2     flags bitmask (uint16)
//	12      32    KDF salt
//	44      12    AEAD nonce
//	56      N     ciphertext
//	56+N    16    AEAD authentication tag
const (
	// HeaderSize is the fixed byte length of the file header. It is
	// independent of payload size and always precedes the ciphertext.
	HeaderSize = 56

	// magicSize is the byte length of the magic constant.
	magicSize = 8

	// CurrentVersion is the container format version this codec writes.
	CurrentVersion uint16 = 1

	// minFileSize is the smallest possible valid container: a header
	// followed by an empty ciphertext and its authentication tag.
	minFileSize = HeaderSize + hawalacrypto.TagLength
)

// magic identifies a Hawala backup file. The trailing "1" doubles as a
// coarse version marker so even a pre-header parser can spot the era.
//
//nolint:gochecknoglobals // Format constant
var magic = [magicSize]byte{'H', 'A', 'W', 'A', 'L', 'A', 'v', '1'}

// Flags is the header bitmask hinting at payload contents. Flags are a
// decode-time hint only: the decoder trusts the deserialized payload,
// never the bitmask.
type Flags uint16

// Flag bits, independently settable.
const (
	// FlagHDWallets is set when the payload carries HD wallet records.
	FlagHDWallets Flags = 1 << iota

	// FlagImportedAccounts is set when imported accounts are present.
	FlagImportedAccounts

	// FlagSettings is set when a settings record is present.
	FlagSettings
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// FileHeader is the parsed fixed-size header of a backup container.
type FileHeader struct {
	Version uint16
	Flags   Flags
	Salt    [hawalacrypto.SaltLength]byte
	Nonce   [hawalacrypto.NonceLength]byte
}

// newFileHeader builds a header for the current format version.
func newFileHeader(flags Flags, salt, nonce []byte) (*FileHeader, error) {
	if len(salt) != hawalacrypto.SaltLength {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", hawalacrypto.SaltLength, len(salt))
	}
	if len(nonce) != hawalacrypto.NonceLength {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", hawalacrypto.NonceLength, len(nonce))
	}

	h := &FileHeader{
		Version: CurrentVersion,
		Flags:   flags,
	}
	copy(h.Salt[:], salt)
	copy(h.Nonce[:], nonce)
	return h, nil
}

// marshal serializes the header into its fixed 56-byte wire form.
func (h *FileHeader) marshal() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:magicSize], magic[:])
	binary.BigEndian.PutUint16(buf[8:10], h.Version)
	binary.BigEndian.PutUint16(buf[10:12], uint16(h.Flags))
	copy(buf[12:44], h.Salt[:])
	copy(buf[44:56], h.Nonce[:])
	return buf
}

// ValidateHeader parses and validates a container header without
// touching the ciphertext. It needs no password, so callers can use it
// to recognize backup files before prompting.
func ValidateHeader(data []byte) (*FileHeader, error) {
	if len(data) < minFileSize {
		return nil, hawalaerr.WithDetails(hawalaerr.ErrFileTooSmall, map[string]string{
			"size":    fmt.Sprintf("%d", len(data)),
			"minimum": fmt.Sprintf("%d", minFileSize),
		})
	}

	if !bytes.Equal(data[0:magicSize], magic[:]) {
		return nil, hawalaerr.ErrInvalidMagicBytes
	}

	version := binary.BigEndian.Uint16(data[8:10])
	if version != CurrentVersion {
		return nil, hawalaerr.WithDetails(hawalaerr.ErrUnsupportedVersion, map[string]string{
			"version":   fmt.Sprintf("%d", version),
			"supported": fmt.Sprintf("%d", CurrentVersion),
		})
	}

	h := &FileHeader{
		Version: version,
		Flags:   Flags(binary.BigEndian.Uint16(data[10:12])),
	}
	copy(h.Salt[:], data[12:44])
	copy(h.Nonce[:], data[44:56])
	return h, nil
}
