// Package config provides configuration management for Hawala.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/hawala-app/hawala/internal/hawalacrypto"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Home       string           `yaml:"home"`
	Encryption EncryptionConfig `yaml:"encryption"`
	Backups    BackupsConfig    `yaml:"backups"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// EncryptionConfig carries the backup codec's crypto parameters as
// explicit data. The format constants (salt/nonce/tag lengths) are
// fixed by the container; only the KDF cost is tunable.
type EncryptionConfig struct {
	KDF            string `yaml:"kdf"`
	Cipher         string `yaml:"cipher"`
	KDFTime        uint32 `yaml:"kdf_time"`
	KDFMemoryMiB   uint32 `yaml:"kdf_memory_mib"`
	KDFParallelism uint8  `yaml:"kdf_parallelism"`
}

// KDFCost converts the configured parameters into a crypto cost value.
func (e EncryptionConfig) KDFCost() hawalacrypto.KDFCost {
	return hawalacrypto.KDFCost{
		Time:        e.KDFTime,
		MemoryKiB:   e.KDFMemoryMiB * 1024,
		Parallelism: e.KDFParallelism,
	}
}

// BackupsConfig defines where backup files are written.
type BackupsConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, hawalaerr.Wrap(hawalaerr.ErrConfigInvalid, "%v", err)
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default Hawala home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hawala"
	}
	return filepath.Join(home, ".hawala")
}

// BackupsDir resolves the backup directory, defaulting under home.
func (c *Config) BackupsDir() string {
	if c.Backups.Dir != "" {
		return expandHome(c.Backups.Dir)
	}
	return filepath.Join(expandHome(c.Home), "backups")
}

// expandHome expands a leading "~/" to the user home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// keys lists the dot-notation paths Get and Set understand.
//
//nolint:gochecknoglobals // Static key table for config access
var keys = []string{
	"home",
	"encryption.kdf_time",
	"encryption.kdf_memory_mib",
	"encryption.kdf_parallelism",
	"backups.dir",
	"output.default_format",
	"output.verbose",
	"logging.level",
	"logging.file",
}

// Get retrieves a config value by dot-notation key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "home":
		return c.Home, nil
	case "encryption.kdf_time":
		return strconv.FormatUint(uint64(c.Encryption.KDFTime), 10), nil
	case "encryption.kdf_memory_mib":
		return strconv.FormatUint(uint64(c.Encryption.KDFMemoryMiB), 10), nil
	case "encryption.kdf_parallelism":
		return strconv.FormatUint(uint64(c.Encryption.KDFParallelism), 10), nil
	case "backups.dir":
		return c.Backups.Dir, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.verbose":
		return strconv.FormatBool(c.Output.Verbose), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", unknownKeyError(key)
	}
}

// Set updates a config value by dot-notation key.
//
//nolint:gocyclo // Flat key dispatch reads better than reflection
func (c *Config) Set(key, value string) error {
	switch key {
	case "home":
		c.Home = value
	case "encryption.kdf_time":
		v, err := parseUint32(value)
		if err != nil {
			return err
		}
		c.Encryption.KDFTime = v
	case "encryption.kdf_memory_mib":
		v, err := parseUint32(value)
		if err != nil {
			return err
		}
		c.Encryption.KDFMemoryMiB = v
	case "encryption.kdf_parallelism":
		v, err := parseUint32(value)
		if err != nil {
			return err
		}
		if v == 0 || v > 255 {
			return hawalaerr.WithSuggestion(hawalaerr.ErrInvalidInput, "parallelism must be between 1 and 255")
		}
		c.Encryption.KDFParallelism = uint8(v)
	case "backups.dir":
		c.Backups.Dir = value
	case "output.default_format":
		c.Output.DefaultFormat = strings.ToLower(value)
	case "output.verbose":
		c.Output.Verbose = parseBool(value)
	case "logging.level":
		c.Logging.Level = strings.ToLower(value)
	case "logging.file":
		c.Logging.File = value
	default:
		return unknownKeyError(key)
	}
	return nil
}

// Keys returns the supported dot-notation config keys.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// unknownKeyError builds an unknown-key error, suggesting the closest
// known key when one is near enough.
func unknownKeyError(key string) error {
	err := hawalaerr.WithDetails(hawalaerr.ErrUnknownConfigKey, map[string]string{"key": key})

	best := ""
	bestDist := 4 // Suggest only close matches
	for _, k := range keys {
		if dist := levenshtein.ComputeDistance(key, k); dist < bestDist {
			best = k
			bestDist = dist
		}
	}
	if best != "" {
		return hawalaerr.WithSuggestion(err, fmt.Sprintf("did you mean '%s'?", best))
	}
	return err
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, hawalaerr.WithSuggestion(hawalaerr.ErrInvalidInput, "value must be a positive integer")
	}
	return uint32(v), nil
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
