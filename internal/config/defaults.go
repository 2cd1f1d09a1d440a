package config

// Default Argon2id cost parameters: 64 MiB memory, 3 passes, 4 lanes.
const (
	DefaultKDFTime        = 3
	DefaultKDFMemoryMiB   = 64
	DefaultKDFParallelism = 4
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.hawala",
		Encryption: EncryptionConfig{
			KDF:            "argon2id",
			Cipher:         "aes-256-gcm",
			KDFTime:        DefaultKDFTime,
			KDFMemoryMiB:   DefaultKDFMemoryMiB,
			KDFParallelism: DefaultKDFParallelism,
		},
		Backups: BackupsConfig{
			Dir: "", // Resolved under home when empty
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.hawala/hawala.log",
		},
	}
}
