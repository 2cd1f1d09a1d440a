package backup

import (
	"fmt"
	"time"

	"github.com/hawala-app/hawala/internal/hawalacrypto"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

// FileExtension is the extension for Hawala backup files.
const FileExtension = ".hawala"

// filenameTimeLayout is the timestamp layout in suggested filenames.
const filenameTimeLayout = "20060102-150405"

// Codec encodes and decodes backup containers. It owns no state beyond
// the injected crypto provider, so concurrent calls with different
// inputs are safe without locking.
type Codec struct {
	provider *hawalacrypto.Provider
}

// NewCodec creates a codec backed by the given crypto provider.
func NewCodec(provider *hawalacrypto.Provider) *Codec {
	return &Codec{provider: provider}
}

// DefaultCodec returns a codec using the default Argon2id +
// AES-256-GCM provider.
func DefaultCodec() *Codec {
	return NewCodec(hawalacrypto.DefaultProvider())
}

// Encode serializes, checksums, and encrypts a payload under a
// password-derived key. A fresh salt and nonce are generated per call;
// the header bytes are bound into the authentication tag as associated
// data, so header tampering fails decryption. The serialized plaintext
// and derived key are zeroed before returning on every path.
func (c *Codec) Encode(payload *Payload, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, hawalaerr.WithSuggestion(hawalaerr.ErrInvalidInput, "password must not be empty")
	}

	plaintext, err := payload.marshal()
	if err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrEncryptionFailed, "%v", err)
	}
	defer hawalacrypto.ZeroBytes(plaintext)

	// Entropy failure is an encryption failure: the container cannot be
	// produced without a fresh salt and nonce.
	salt, err := hawalacrypto.RandomBytes(hawalacrypto.SaltLength)
	if err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrEncryptionFailed, "generating salt: %v", err)
	}

	nonce, err := hawalacrypto.RandomBytes(hawalacrypto.NonceLength)
	if err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrEncryptionFailed, "generating nonce: %v", err)
	}

	header, err := newFileHeader(payload.flags(), salt, nonce)
	if err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrEncryptionFailed, "building header: %v", err)
	}
	headerBytes := header.marshal()

	key, err := c.provider.KDF().DeriveKey(password, salt)
	if err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrKeyDerivationFailed, "%v", err)
	}
	defer hawalacrypto.ZeroBytes(key)

	sealed, err := c.provider.AEAD().Seal(key, nonce, plaintext, headerBytes)
	if err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrEncryptionFailed, "%v", err)
	}

	out := make([]byte, 0, len(headerBytes)+len(sealed))
	out = append(out, headerBytes...)
	out = append(out, sealed...)
	return out, nil
}

// Decode validates the header, derives the key, authenticates, and
// deserializes. It fails closed: no partial payload is ever returned.
// Wrong password and tampered ciphertext are deliberately collapsed
// into ErrInvalidPassword so the error is not an oracle.
func (c *Codec) Decode(data, password []byte) (*Payload, error) {
	header, err := ValidateHeader(data)
	if err != nil {
		return nil, err
	}

	key, err := c.provider.KDF().DeriveKey(password, header.Salt[:])
	if err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrKeyDerivationFailed, "%v", err)
	}
	defer hawalacrypto.ZeroBytes(key)

	plaintext, err := c.provider.AEAD().Open(key, header.Nonce[:], data[HeaderSize:], data[:HeaderSize])
	if err != nil {
		return nil, hawalaerr.ErrInvalidPassword
	}
	defer hawalacrypto.ZeroBytes(plaintext)

	payload, err := unmarshalPayload(plaintext)
	if err != nil {
		// Authenticated but unparseable plaintext is a format bug,
		// not a user input error.
		return nil, hawalaerr.Wrap(hawalaerr.ErrDecryptionFailed, "%v", err)
	}

	if err := payload.VerifyChecksum(); err != nil {
		return nil, err
	}

	return payload, nil
}

// Preview is a read-only summary of a decoded backup. It carries no
// seed phrases or passphrases.
type Preview struct {
	// WalletCount is the number of HD wallet records.
	WalletCount int `json:"wallet_count"`

	// WalletNames are the wallet display names in payload order.
	WalletNames []string `json:"wallet_names"`

	// ImportedAccountCount is the number of imported accounts.
	ImportedAccountCount int `json:"imported_account_count"`

	// HasSettings reports whether a settings record is present.
	HasSettings bool `json:"has_settings"`

	// Checksum is the embedded content checksum.
	Checksum string `json:"checksum"`
}

// Preview performs a full decode and returns the summary view. The
// decoded payload is wiped before returning, so the summary is safe to
// hold longer than the decode.
func (c *Codec) Preview(data, password []byte) (*Preview, error) {
	payload, err := c.Decode(data, password)
	if err != nil {
		return nil, err
	}
	defer payload.Wipe()

	names := make([]string, 0, len(payload.HDWallets))
	for _, w := range payload.HDWallets {
		names = append(names, w.Name)
	}

	return &Preview{
		WalletCount:          len(payload.HDWallets),
		WalletNames:          names,
		ImportedAccountCount: len(payload.ImportedAccounts),
		HasSettings:          payload.Settings != nil,
		Checksum:             payload.Checksum,
	}, nil
}

// VerifyPassword tests whether a password decrypts a backup without
// returning the plaintext.
func (c *Codec) VerifyPassword(data, password []byte) error {
	payload, err := c.Decode(data, password)
	if err != nil {
		return err
	}
	payload.Wipe()
	return nil
}

// SuggestedFilename returns the conventional name for a new backup
// file. Pure formatting, no cryptographic relevance.
func SuggestedFilename() string {
	return SuggestedFilenameAt(time.Now())
}

// SuggestedFilenameAt returns the conventional name for a backup
// created at the given time.
func SuggestedFilenameAt(t time.Time) string {
	return fmt.Sprintf("hawala-backup-%s%s", t.UTC().Format(filenameTimeLayout), FileExtension)
}
