package backup_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawala-app/hawala/internal/backup"
	"github.com/hawala-app/hawala/internal/hawalacrypto"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

func TestMain(m *testing.M) {
	// Fast KDF parameters for tests
	hawalacrypto.SetKDFCost(hawalacrypto.KDFCost{Time: 1, MemoryKiB: 64, Parallelism: 1})
	os.Exit(m.Run())
}

// encodeTestBackup produces a valid container for header tests.
func encodeTestBackup(t *testing.T, payload *backup.Payload, password string) []byte {
	t.Helper()
	data, err := backup.DefaultCodec().Encode(payload, []byte(password))
	require.NoError(t, err)
	return data
}

func TestValidateHeader(t *testing.T) {
	t.Parallel()
	data := encodeTestBackup(t, &backup.Payload{Settings: backup.DefaultSettings()}, "password")

	header, err := backup.ValidateHeader(data)
	require.NoError(t, err)
	assert.Equal(t, backup.CurrentVersion, header.Version)
	assert.True(t, header.Flags.Has(backup.FlagSettings))
	assert.False(t, header.Flags.Has(backup.FlagHDWallets))
	assert.NotEqual(t, [hawalacrypto.SaltLength]byte{}, header.Salt)
	assert.NotEqual(t, [hawalacrypto.NonceLength]byte{}, header.Nonce)
}

func TestValidateHeaderFileTooSmall(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"ten bytes", make([]byte, 10)},
		{"header only", make([]byte, backup.HeaderSize)},
		{"one short of minimum", make([]byte, backup.HeaderSize+hawalacrypto.TagLength-1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := backup.ValidateHeader(tt.data)
			require.ErrorIs(t, err, hawalaerr.ErrFileTooSmall)
		})
	}
}

func TestValidateHeaderInvalidMagic(t *testing.T) {
	t.Parallel()
	data := encodeTestBackup(t, &backup.Payload{}, "password")
	data[0] = 'X'

	_, err := backup.ValidateHeader(data)
	require.ErrorIs(t, err, hawalaerr.ErrInvalidMagicBytes)
}

func TestValidateHeaderNotABackup(t *testing.T) {
	t.Parallel()
	// A large-enough file that is simply not a backup at all.
	junk := make([]byte, 256)
	for i := range junk {
		junk[i] = byte(i)
	}

	_, err := backup.ValidateHeader(junk)
	require.ErrorIs(t, err, hawalaerr.ErrInvalidMagicBytes)
}

func TestValidateHeaderUnsupportedVersion(t *testing.T) {
	t.Parallel()
	data := encodeTestBackup(t, &backup.Payload{}, "password")
	// Bump the big-endian version field at offset 8.
	data[9] = 2

	_, err := backup.ValidateHeader(data)
	require.ErrorIs(t, err, hawalaerr.ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "version: 2")
}

func TestFlagsHas(t *testing.T) {
	t.Parallel()
	f := backup.FlagHDWallets | backup.FlagSettings
	assert.True(t, f.Has(backup.FlagHDWallets))
	assert.True(t, f.Has(backup.FlagSettings))
	assert.False(t, f.Has(backup.FlagImportedAccounts))
	assert.True(t, f.Has(backup.FlagHDWallets|backup.FlagSettings))
	assert.False(t, f.Has(backup.FlagHDWallets|backup.FlagImportedAccounts))
}
