package cli

import (
	"github.com/spf13/cobra"

	"github.com/hawala-app/hawala/internal/hawalacrypto"
)

// passwordCmd is the parent command for password utilities.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Password utilities",
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var passwordStrengthCmd = &cobra.Command{
	Use:   "strength",
	Short: "Classify a candidate password",
	Long: `Prompt for a password and classify it as weak, fair, good, or strong.

The classification is advisory; backup creation never rejects a weak
password. The password is read with hidden input and zeroed afterwards.

Example:
  hawala password strength`,
	RunE: runPasswordStrength,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.AddCommand(passwordStrengthCmd)
}

func runPasswordStrength(cmd *cobra.Command, _ []string) error {
	password, err := promptPasswordFn("Enter password to evaluate: ")
	if err != nil {
		return err
	}
	defer hawalacrypto.ZeroBytes(password)

	strength := hawalacrypto.EvaluatePasswordStrength(string(password))

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"strength": strength.String()})
	}
	out(w, "Strength: %s\n", strength)
	return nil
}
