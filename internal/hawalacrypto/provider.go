package hawalacrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"sync"

	"golang.org/x/crypto/argon2"
)

// Format constants shared by every provider. The container layout
// depends on these, so they are data, not hidden cipher defaults.
const (
	// SaltLength is the KDF salt length in bytes.
	SaltLength = 32

	// NonceLength is the AEAD nonce length in bytes.
	NonceLength = 12

	// TagLength is the AEAD authentication tag length in bytes.
	TagLength = 16

	// KeyLength is the derived symmetric key length in bytes.
	KeyLength = 32
)

// KDF derives a symmetric key from a password and salt. Implementations
// are deterministic and deliberately expensive.
type KDF interface {
	// DeriveKey maps (password, salt) to a KeyLength-byte key.
	DeriveKey(password, salt []byte) ([]byte, error)

	// Name identifies the algorithm and its cost parameters.
	Name() string
}

// AEAD seals and opens data with authentication. The associated data is
// bound into the tag, so tampering with it fails Open.
type AEAD interface {
	// Seal returns ciphertext followed by a TagLength-byte tag.
	Seal(key, nonce, plaintext, associatedData []byte) ([]byte, error)

	// Open authenticates and decrypts. It returns an error on any
	// authentication failure without revealing why.
	Open(key, nonce, ciphertext, associatedData []byte) ([]byte, error)

	// Name identifies the cipher.
	Name() string
}

// KDFCost holds the tunable Argon2id work parameters.
type KDFCost struct {
	// Time is the number of passes over memory.
	Time uint32

	// MemoryKiB is the memory cost in KiB.
	MemoryKiB uint32

	// Parallelism is the number of lanes.
	Parallelism uint8
}

// DefaultKDFCost matches the parameters used for Hawala backups:
// 64 MiB memory, 3 passes, 4 lanes.
func DefaultKDFCost() KDFCost {
	return KDFCost{
		Time:        3,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
	}
}

// EstimateMemoryUsage returns the approximate bytes of working memory a
// key derivation with this cost requires.
func (c KDFCost) EstimateMemoryUsage() int {
	return int(c.MemoryKiB) * 1024
}

//nolint:gochecknoglobals // Package-level cost override is required for test speed
var (
	costMu       sync.RWMutex
	overrideCost *KDFCost
)

// SetKDFCost overrides the cost used by DefaultProvider. Intended for
// tests, where the production parameters are too slow.
func SetKDFCost(cost KDFCost) {
	costMu.Lock()
	defer costMu.Unlock()
	overrideCost = &cost
}

// currentKDFCost returns the override if set, otherwise the default.
func currentKDFCost() KDFCost {
	costMu.RLock()
	defer costMu.RUnlock()
	if overrideCost != nil {
		return *overrideCost
	}
	return DefaultKDFCost()
}

// Argon2idKDF implements KDF using the memory-hard Argon2id function.
type Argon2idKDF struct {
	Cost KDFCost
}

// NewArgon2idKDF creates an Argon2id KDF with the given cost.
func NewArgon2idKDF(cost KDFCost) *Argon2idKDF {
	return &Argon2idKDF{Cost: cost}
}

// DeriveKey derives a KeyLength-byte key from (password, salt).
func (a *Argon2idKDF) DeriveKey(password, salt []byte) ([]byte, error) {
	if len(salt) != SaltLength {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltLength, len(salt))
	}
	key := argon2.IDKey(password, salt, a.Cost.Time, a.Cost.MemoryKiB, a.Cost.Parallelism, KeyLength)
	return key, nil
}

// Name identifies the algorithm and its cost parameters.
func (a *Argon2idKDF) Name() string {
	return fmt.Sprintf("argon2id(t=%d,m=%d,p=%d)", a.Cost.Time, a.Cost.MemoryKiB, a.Cost.Parallelism)
}

// AESGCM implements AEAD using AES-256-GCM.
type AESGCM struct{}

// Seal encrypts and authenticates plaintext, binding associatedData
// into the tag. Output is ciphertext followed by the 16-byte tag.
func (AESGCM) Seal(key, nonce, plaintext, associatedData []byte) ([]byte, error) {
	gcm, err := newGCM(key, len(nonce))
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, associatedData), nil
}

// Open authenticates and decrypts. Authentication failure is reported
// without distinguishing a wrong key from tampered data.
func (AESGCM) Open(key, nonce, ciphertext, associatedData []byte) ([]byte, error) {
	gcm, err := newGCM(key, len(nonce))
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, ciphertext, associatedData)
}

// Name identifies the cipher.
func (AESGCM) Name() string {
	return "aes-256-gcm"
}

func newGCM(key []byte, nonceSize int) (cipher.AEAD, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeyLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	if nonceSize != NonceLength {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", NonceLength, nonceSize)
	}
	return cipher.NewGCM(block)
}

// Provider bundles a KDF and an AEAD. The codec takes one by injection,
// so the algorithm pairing is explicit configuration rather than a
// hidden platform default.
type Provider struct {
	kdf  KDF
	aead AEAD
}

// NewProvider creates a provider from an explicit KDF and AEAD.
func NewProvider(kdf KDF, aead AEAD) *Provider {
	return &Provider{kdf: kdf, aead: aead}
}

// DefaultProvider returns the Argon2id + AES-256-GCM pairing used for
// Hawala backup files.
func DefaultProvider() *Provider {
	return NewProvider(NewArgon2idKDF(currentKDFCost()), AESGCM{})
}

// KDF returns the provider's key derivation function.
func (p *Provider) KDF() KDF {
	return p.kdf
}

// AEAD returns the provider's authenticated cipher.
func (p *Provider) AEAD() AEAD {
	return p.aead
}
