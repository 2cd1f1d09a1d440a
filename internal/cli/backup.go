package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hawala-app/hawala/internal/backup"
	"github.com/hawala-app/hawala/internal/fileutil"
	"github.com/hawala-app/hawala/internal/hawalacrypto"
	"github.com/hawala-app/hawala/internal/output"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// backupInput is the path to a backup file.
	backupInput string
	// backupFrom is the path to a plaintext payload JSON for create.
	backupFrom string
	// backupOutput is the destination path for restore output.
	backupOutput string
	// restoreForce allows overwriting an existing restore output file.
	restoreForce bool
)

// backupCmd is the parent command for backup operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage encrypted wallet backups",
	Long:  `Create, inspect, preview, verify, and restore encrypted wallet backups.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an encrypted backup",
	Long: `Encrypt a wallet payload into a backup container.

The payload JSON lists HD wallets, imported accounts, and settings.
The backup file is written to the backups directory with a timestamped
name and can only be opened with the password chosen here.

Example:
  hawala backup create --from payload.json`,
	RunE: runBackupCreate,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a backup header",
	Long: `Parse and display a backup file's header without a password.

This shows the format version and which sections the file claims to
contain. It does not prove the file decrypts.

Example:
  hawala backup inspect --input backup.hawala`,
	RunE: runBackupInspect,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a backup's contents",
	Long: `Decrypt a backup and show a summary: wallet names and counts.

Seed phrases and passphrases are never printed.

Example:
  hawala backup preview --input backup.hawala`,
	RunE: runBackupPreview,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a backup decrypts",
	Long: `Test that a password decrypts a backup file, without writing
any plaintext anywhere.

Example:
  hawala backup verify --input backup.hawala`,
	RunE: runBackupVerify,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a backup to payload JSON",
	Long: `Decrypt a backup and write the full payload, including seed
phrases, to a JSON file.

The output contains secrets in the clear. It is written with 0600
permissions; handle and delete it carefully.

Example:
  hawala backup restore --input backup.hawala --out payload.json`,
	RunE: runBackupRestore,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List all backup files in the backups directory.

Example:
  hawala backup list`,
	Aliases: []string{"ls"},
	RunE:    runBackupList,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupInspectCmd)
	backupCmd.AddCommand(backupPreviewCmd)
	backupCmd.AddCommand(backupVerifyCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupListCmd)

	backupCreateCmd.Flags().StringVar(&backupFrom, "from", "", "path to payload JSON (required)")
	_ = backupCreateCmd.MarkFlagRequired("from")

	for _, c := range []*cobra.Command{backupInspectCmd, backupPreviewCmd, backupVerifyCmd, backupRestoreCmd} {
		c.Flags().StringVar(&backupInput, "input", "", "path to backup file (required)")
		_ = c.MarkFlagRequired("input")
	}

	backupRestoreCmd.Flags().StringVar(&backupOutput, "out", "", "path for the decrypted payload JSON (required)")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "overwrite the output file if it exists")
	_ = backupRestoreCmd.MarkFlagRequired("out")
}

// service builds the backup service for the configured directory.
func service() *backup.Service {
	return backup.NewService(cfg.BackupsDir(), backup.DefaultCodec())
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	// #nosec G304 -- payload path is from user input
	data, err := os.ReadFile(backupFrom)
	if err != nil {
		return hawalaerr.Wrap(err, "reading payload file")
	}
	defer hawalacrypto.ZeroBytes(data)

	var payload backup.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return hawalaerr.Wrap(hawalaerr.ErrInvalidFormat, "parsing payload file: %v", err)
	}
	defer payload.Wipe()

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer hawalacrypto.ZeroBytes(password)

	path, err := service().Save(&payload, password)
	if err != nil {
		return err
	}

	logger.Debug("backup created: %s", path)

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"status": "success", "path": path})
	}
	out(w, "Backup written to %s\n", path)
	return nil
}

func runBackupInspect(cmd *cobra.Command, _ []string) error {
	header, err := service().Inspect(backupInput)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]any{
			"version":               header.Version,
			"has_hd_wallets":        header.Flags.Has(backup.FlagHDWallets),
			"has_imported_accounts": header.Flags.Has(backup.FlagImportedAccounts),
			"has_settings":          header.Flags.Has(backup.FlagSettings),
		})
	}

	out(w, "Hawala backup, format version %d\n", header.Version)
	out(w, "  HD wallets:        %s\n", yesNo(header.Flags.Has(backup.FlagHDWallets)))
	out(w, "  Imported accounts: %s\n", yesNo(header.Flags.Has(backup.FlagImportedAccounts)))
	out(w, "  Settings:          %s\n", yesNo(header.Flags.Has(backup.FlagSettings)))
	return nil
}

func runBackupPreview(cmd *cobra.Command, _ []string) error {
	password, err := promptPasswordFn("Enter backup password: ")
	if err != nil {
		return err
	}
	defer hawalacrypto.ZeroBytes(password)

	preview, err := service().Preview(backupInput, password)
	if err != nil {
		logChecksumAnomaly(err)
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, preview)
	}

	out(w, "Wallets: %d\n", preview.WalletCount)
	for _, name := range preview.WalletNames {
		out(w, "  - %s\n", name)
	}
	out(w, "Imported accounts: %d\n", preview.ImportedAccountCount)
	out(w, "Settings included: %s\n", yesNo(preview.HasSettings))
	out(w, "Checksum: %s\n", preview.Checksum)
	return nil
}

func runBackupVerify(cmd *cobra.Command, _ []string) error {
	password, err := promptPasswordFn("Enter backup password: ")
	if err != nil {
		return err
	}
	defer hawalacrypto.ZeroBytes(password)

	if err := service().Verify(backupInput, password); err != nil {
		logChecksumAnomaly(err)
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"status": "ok"})
	}
	outln(w, "Backup verified: password decrypts and content is intact.")
	return nil
}

func runBackupRestore(cmd *cobra.Command, _ []string) error {
	if !restoreForce {
		if _, err := os.Stat(backupOutput); err == nil {
			return hawalaerr.WithSuggestion(
				hawalaerr.ErrInvalidInput,
				fmt.Sprintf("output file '%s' exists; pass --force to overwrite", backupOutput),
			)
		}
	}

	password, err := promptPasswordFn("Enter backup password: ")
	if err != nil {
		return err
	}
	defer hawalacrypto.ZeroBytes(password)

	payload, err := service().Load(backupInput, password)
	if err != nil {
		logChecksumAnomaly(err)
		return err
	}
	defer payload.Wipe()

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return hawalaerr.Wrap(err, "serializing payload")
	}
	defer hawalacrypto.ZeroBytes(data)

	if err := fileutil.WriteAtomic(backupOutput, data, 0o600); err != nil {
		return hawalaerr.Wrap(err, "writing payload file")
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"status": "success", "path": backupOutput})
	}
	out(w, "Payload written to %s\n", backupOutput)
	output.Warn("the file contains seed phrases in the clear; delete it when done")
	return nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	backups, err := service().List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]any{"backups": backups})
	}

	if len(backups) == 0 {
		outln(w, "No backups found.")
		return nil
	}
	for _, name := range backups {
		outln(w, name)
	}
	return nil
}

// logChecksumAnomaly records checksum mismatches, which mean the file
// authenticated but its content is inconsistent.
func logChecksumAnomaly(err error) {
	if hawalaerr.Is(err, hawalaerr.ErrChecksumMismatch) {
		logger.Error("integrity anomaly: backup authenticated but checksum mismatched (file: %s)", backupInput)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
