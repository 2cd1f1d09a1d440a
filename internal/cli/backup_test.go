package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawala-app/hawala/internal/backup"
	"github.com/hawala-app/hawala/internal/output"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// writeTestPayloadFile writes a payload JSON file for backup create.
func writeTestPayloadFile(t *testing.T, dir string) string {
	t.Helper()
	wallet, err := backup.NewHDWallet("main", testMnemonic, "", "bip44")
	require.NoError(t, err)

	payload := backup.Payload{
		HDWallets: []backup.HDWallet{*wallet},
		Settings:  backup.DefaultSettings(),
	}
	data, err := json.Marshal(&payload)
	require.NoError(t, err)

	path := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// createTestBackup runs backup create and returns the written file path.
func createTestBackup(t *testing.T, home string) string {
	t.Helper()
	backupFrom = writeTestPayloadFile(t, home)
	withMockPrompts(t, []byte("test password"))

	cmd, _ := newTestCmd()
	require.NoError(t, runBackupCreate(cmd, nil))

	names, err := service().List()
	require.NoError(t, err)
	require.Len(t, names, 1)
	return service().BackupPath(names[0])
}

func TestRunBackupCreateAndList(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	path := createTestBackup(t, home)
	assert.FileExists(t, path)

	cmd, buf := newTestCmd()
	require.NoError(t, runBackupList(cmd, nil))
	assert.Contains(t, buf.String(), filepath.Base(path))
}

func TestRunBackupListEmpty(t *testing.T) {
	setupTestEnv(t, output.FormatText)

	cmd, buf := newTestCmd()
	require.NoError(t, runBackupList(cmd, nil))
	assert.Contains(t, buf.String(), "No backups found")
}

func TestRunBackupCreateInvalidPayload(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	backupFrom = filepath.Join(home, "payload.json")
	require.NoError(t, os.WriteFile(backupFrom, []byte("not json"), 0o600))
	withMockPrompts(t, []byte("test password"))

	cmd, _ := newTestCmd()
	err := runBackupCreate(cmd, nil)
	require.ErrorIs(t, err, hawalaerr.ErrInvalidFormat)
}

func TestRunBackupInspect(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	backupInput = createTestBackup(t, home)

	cmd, buf := newTestCmd()
	require.NoError(t, runBackupInspect(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "format version 1")
	assert.Contains(t, result, "HD wallets:        yes")
	assert.Contains(t, result, "Imported accounts: no")
	assert.Contains(t, result, "Settings:          yes")
}

func TestRunBackupPreview(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	backupInput = createTestBackup(t, home)

	cmd, buf := newTestCmd()
	require.NoError(t, runBackupPreview(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "Wallets: 1")
	assert.Contains(t, result, "- main")
	// The preview must never print the seed phrase.
	assert.NotContains(t, result, "abandon")
}

func TestRunBackupVerify(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	backupInput = createTestBackup(t, home)

	cmd, _ := newTestCmd()
	require.NoError(t, runBackupVerify(cmd, nil))
}

func TestRunBackupVerifyWrongPassword(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	backupInput = createTestBackup(t, home)

	withMockPrompts(t, []byte("wrong password"))
	cmd, _ := newTestCmd()
	require.ErrorIs(t, runBackupVerify(cmd, nil), hawalaerr.ErrInvalidPassword)
}

func TestRunBackupRestore(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	backupInput = createTestBackup(t, home)
	backupOutput = filepath.Join(home, "restored.json")
	restoreForce = false

	cmd, _ := newTestCmd()
	require.NoError(t, runBackupRestore(cmd, nil))

	data, err := os.ReadFile(backupOutput)
	require.NoError(t, err)

	var payload backup.Payload
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Len(t, payload.HDWallets, 1)
	assert.Equal(t, testMnemonic, payload.HDWallets[0].Mnemonic.Reveal())
}

func TestRunBackupRestoreRefusesOverwrite(t *testing.T) {
	home := setupTestEnv(t, output.FormatText)
	backupInput = createTestBackup(t, home)
	backupOutput = filepath.Join(home, "restored.json")
	restoreForce = false
	require.NoError(t, os.WriteFile(backupOutput, []byte("existing"), 0o600))

	cmd, _ := newTestCmd()
	require.ErrorIs(t, runBackupRestore(cmd, nil), hawalaerr.ErrInvalidInput)
}

func TestRunBackupInspectMissingFile(t *testing.T) {
	setupTestEnv(t, output.FormatText)
	backupInput = "/nonexistent/backup.hawala"

	cmd, _ := newTestCmd()
	require.ErrorIs(t, runBackupInspect(cmd, nil), hawalaerr.ErrBackupNotFound)
}
