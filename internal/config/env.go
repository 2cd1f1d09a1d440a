package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "HAWALA_HOME"
	EnvBackupsDir   = "HAWALA_BACKUPS_DIR"
	EnvOutputFormat = "HAWALA_OUTPUT_FORMAT"
	EnvVerbose      = "HAWALA_VERBOSE"
	EnvLogLevel     = "HAWALA_LOG_LEVEL"
	EnvKDFMemory    = "HAWALA_KDF_MEMORY_MIB"
	EnvKDFTime      = "HAWALA_KDF_TIME"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvBackupsDir); v != "" {
		cfg.Backups.Dir = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvKDFMemory); v != "" {
		if mib, err := strconv.ParseUint(v, 10, 32); err == nil && mib > 0 {
			cfg.Encryption.KDFMemoryMiB = uint32(mib)
		}
	}

	if v := os.Getenv(EnvKDFTime); v != "" {
		if t, err := strconv.ParseUint(v, 10, 32); err == nil && t > 0 {
			cfg.Encryption.KDFTime = uint32(t)
		}
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}
