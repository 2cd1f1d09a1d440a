package cli

import (
	"github.com/spf13/cobra"

	"github.com/hawala-app/hawala/internal/config"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Get and set Hawala configuration values.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key.

Example:
  hawala config get encryption.kdf_memory_mib`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value by dot-notation key and persist it.

Example:
  hawala config set encryption.kdf_memory_mib 128`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List configuration keys and values",
	Aliases: []string{"ls"},
	RunE:    runConfigList,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := cfg.Get(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{args[0]: value})
	}
	outln(w, value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Load the stored config so unrelated flag/env overrides are not
	// persisted along with the change.
	configPath := config.Path(cfg.Home)
	stored, err := config.Load(configPath)
	if err != nil {
		stored = config.Defaults()
		stored.Home = cfg.Home
	}

	if err := stored.Set(key, value); err != nil {
		return err
	}

	if err := config.Save(stored, configPath); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"status": "success", key: value})
	}
	out(w, "Set %s = %s\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	values := make(map[string]string, len(config.Keys()))
	for _, key := range config.Keys() {
		v, err := cfg.Get(key)
		if err != nil {
			continue
		}
		values[key] = v
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, values)
	}
	for _, key := range config.Keys() {
		out(w, "%s = %s\n", key, values[key])
	}
	return nil
}
