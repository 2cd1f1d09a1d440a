package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tyler-smith/go-bip39"

	"github.com/hawala-app/hawala/internal/hawalacrypto"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

// fingerprintLength is the hex length of a seed fingerprint.
const fingerprintLength = 8

// SecretText is a string-shaped secret. Its human-readable and debug
// renderings are redacted; JSON marshaling keeps the real value because
// payload JSON only ever exists as AEAD plaintext.
type SecretText string

// String implements fmt.Stringer and always redacts.
func (SecretText) String() string {
	return hawalacrypto.RedactionMarker
}

// GoString implements fmt.GoStringer so %#v cannot leak the value.
func (SecretText) GoString() string {
	return hawalacrypto.RedactionMarker
}

// Reveal returns the actual secret value.
func (s SecretText) Reveal() string {
	return string(s)
}

// Payload is the plaintext protected by a backup container: wallet
// records, imported accounts, optional settings, and a content checksum
// recomputed after every successful decryption as defense in depth
// beyond AEAD authentication.
type Payload struct {
	// HDWallets are the hierarchical-deterministic wallet records, in
	// the order the user created them.
	HDWallets []HDWallet `json:"hd_wallets"`

	// ImportedAccounts are single-address accounts imported without a
	// seed.
	ImportedAccounts []ImportedAccount `json:"imported_accounts"`

	// Settings is the optional application settings record.
	Settings *Settings `json:"settings,omitempty"`

	// Checksum is the SHA-256 hex digest of the serialized content
	// sections, embedded before encryption.
	Checksum string `json:"checksum"`
}

// HDWallet is one seed-backed wallet and its derived account metadata.
type HDWallet struct {
	// ID is a stable random identifier.
	ID string `json:"id"`

	// Name is the user-visible display name.
	Name string `json:"name"`

	// SeedFingerprint is a short digest of the seed used for
	// deduplication and display. It is never the seed itself.
	SeedFingerprint string `json:"seed_fingerprint"`

	// Mnemonic is the BIP-39 seed phrase.
	Mnemonic SecretText `json:"mnemonic"`

	// Passphrase is the optional BIP-39 passphrase.
	Passphrase SecretText `json:"passphrase,omitempty"`

	// Scheme tags the derivation scheme the accounts were built with.
	Scheme string `json:"scheme"`

	// Accounts are the already-derived per-chain account records. The
	// codec never derives addresses itself.
	Accounts []HDAccount `json:"accounts"`

	// CreatedAt is the wallet creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// HDAccount is one derived chain account within an HD wallet.
type HDAccount struct {
	// Chain identifies the blockchain, e.g. "eth" or "btc".
	Chain string `json:"chain"`

	// Index is the account index within the derivation scheme.
	Index uint32 `json:"index"`

	// Path is the derivation path string, e.g. "m/44'/60'/0'/0/0".
	Path string `json:"path"`

	// Address is the derived chain address.
	Address string `json:"address"`
}

// ImportedAccount is a single account imported by key or watch-only.
type ImportedAccount struct {
	// Chain identifies the blockchain.
	Chain string `json:"chain"`

	// Address is the account address.
	Address string `json:"address"`

	// Name is the optional display name.
	Name string `json:"name,omitempty"`

	// Method tags how the account was imported.
	Method string `json:"method"`
}

// Settings is the application settings record. Every field has a
// default, so a partial record is valid.
type Settings struct {
	// Currency is the fiat display currency code.
	Currency string `json:"currency"`

	// Theme is the appearance mode: "system", "light", or "dark".
	Theme string `json:"theme"`

	// BiometricsEnabled unlocks the app with biometrics.
	BiometricsEnabled bool `json:"biometrics_enabled"`

	// AutoLockSeconds is the idle interval before locking.
	AutoLockSeconds int `json:"auto_lock_seconds"`

	// HideBalances blanks balance amounts in the UI.
	HideBalances bool `json:"hide_balances"`
}

// DefaultSettings returns the settings a fresh install uses.
func DefaultSettings() *Settings {
	return &Settings{
		Currency:        "USD",
		Theme:           "system",
		AutoLockSeconds: 300,
	}
}

// NewHDWallet builds a wallet record from a validated mnemonic. The
// seed derived for the fingerprint is zeroed before returning.
func NewHDWallet(name, mnemonic, passphrase, scheme string) (*HDWallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, hawalaerr.ErrInvalidMnemonic
	}

	id, err := hawalacrypto.RandomBytes(8)
	if err != nil {
		return nil, fmt.Errorf("generating wallet id: %w", err)
	}

	return &HDWallet{
		ID:              hex.EncodeToString(id),
		Name:            name,
		SeedFingerprint: SeedFingerprint(mnemonic, passphrase),
		Mnemonic:        SecretText(mnemonic),
		Passphrase:      SecretText(passphrase),
		Scheme:          scheme,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// SeedFingerprint derives a short display identifier from a mnemonic
// and passphrase. The intermediate seed is zeroed before returning.
func SeedFingerprint(mnemonic, passphrase string) string {
	seed := bip39.NewSeed(mnemonic, passphrase)
	defer hawalacrypto.ZeroBytes(seed)

	digest := sha256.Sum256(seed)
	return hex.EncodeToString(digest[:])[:fingerprintLength]
}

// content is the checksummed portion of a payload.
type content struct {
	HDWallets        []HDWallet        `json:"hd_wallets"`
	ImportedAccounts []ImportedAccount `json:"imported_accounts"`
	Settings         *Settings         `json:"settings,omitempty"`
}

// ComputeChecksum returns the SHA-256 hex digest over the serialized
// wallet, account, and settings sections.
func (p *Payload) ComputeChecksum() (string, error) {
	data, err := json.Marshal(content{
		HDWallets:        p.HDWallets,
		ImportedAccounts: p.ImportedAccounts,
		Settings:         p.Settings,
	})
	if err != nil {
		return "", fmt.Errorf("serializing payload content: %w", err)
	}
	defer hawalacrypto.ZeroBytes(data)

	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}

// VerifyChecksum recomputes the content checksum and compares it with
// the embedded one. A mismatch after successful authentication means
// corruption the AEAD did not catch, or a logic bug.
func (p *Payload) VerifyChecksum() error {
	actual, err := p.ComputeChecksum()
	if err != nil {
		return hawalaerr.Wrap(err, "recomputing checksum")
	}
	if actual != p.Checksum {
		return hawalaerr.ErrChecksumMismatch
	}
	return nil
}

// flags derives the header bitmask from actual payload contents.
func (p *Payload) flags() Flags {
	var f Flags
	if len(p.HDWallets) > 0 {
		f |= FlagHDWallets
	}
	if len(p.ImportedAccounts) > 0 {
		f |= FlagImportedAccounts
	}
	if p.Settings != nil {
		f |= FlagSettings
	}
	return f
}

// marshal serializes the payload with a freshly computed checksum
// embedded. The caller owns the returned plaintext and must zero it
// after sealing.
func (p *Payload) marshal() ([]byte, error) {
	checksum, err := p.ComputeChecksum()
	if err != nil {
		return nil, err
	}

	sealed := *p
	sealed.Checksum = checksum

	data, err := json.Marshal(&sealed)
	if err != nil {
		return nil, fmt.Errorf("serializing payload: %w", err)
	}
	return data, nil
}

// unmarshalPayload parses decrypted plaintext back into a payload.
func unmarshalPayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	return &p, nil
}

// Wipe drops every secret field so the record no longer references the
// seed material. Byte-exact erasure of the codec's serialized plaintext
// happens separately inside Encode and Decode.
func (p *Payload) Wipe() {
	for i := range p.HDWallets {
		p.HDWallets[i].Mnemonic = ""
		p.HDWallets[i].Passphrase = ""
	}
}
