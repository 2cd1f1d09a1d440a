package backup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hawala-app/hawala/internal/fileutil"
	hawalaerr "github.com/hawala-app/hawala/pkg/errors"
)

const (
	// dirPermissions is the permission mode for the backup directory.
	dirPermissions = 0o750

	// filePermissions is the permission mode for backup files.
	filePermissions = 0o600
)

// Service stores and retrieves backup containers on disk. All
// cryptography is delegated to the codec; the service adds atomic
// writes, secure permissions, and the naming convention.
type Service struct {
	dir   string
	codec *Codec
}

// NewService creates a backup service rooted at dir.
func NewService(dir string, codec *Codec) *Service {
	return &Service{dir: dir, codec: codec}
}

// Save encodes a payload and writes it to the backup directory under a
// suggested filename. The password should be zeroed by the caller
// after this call returns. Returns the written path.
func (s *Service) Save(payload *Payload, password []byte) (string, error) {
	data, err := s.codec.Encode(payload, password)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	path := filepath.Join(s.dir, SuggestedFilename())
	if err := fileutil.WriteAtomic(path, data, filePermissions); err != nil {
		return "", fmt.Errorf("writing backup file: %w", err)
	}

	return path, nil
}

// Load reads and decodes a backup file.
// The password should be zeroed by the caller after this call returns.
func (s *Service) Load(path string, password []byte) (*Payload, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(data, password)
}

// Preview reads a backup file and returns its summary without
// retaining the decoded secrets.
func (s *Service) Preview(path string, password []byte) (*Preview, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	return s.codec.Preview(data, password)
}

// Inspect parses a backup file's header without a password. Use it to
// recognize a backup and report its version and content flags.
func (s *Service) Inspect(path string) (*FileHeader, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateHeader(data)
}

// Verify tests that a password decrypts a backup file without
// returning any plaintext.
func (s *Service) Verify(path string, password []byte) error {
	data, err := s.readFile(path)
	if err != nil {
		return err
	}
	return s.codec.VerifyPassword(data, password)
}

// List returns the backup filenames in the backup directory.
func (s *Service) List() ([]string, error) {
	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == FileExtension {
			backups = append(backups, entry.Name())
		}
	}

	return backups, nil
}

// BackupPath returns the path to a backup file inside the directory.
func (s *Service) BackupPath(filename string) string {
	return filepath.Join(s.dir, filename)
}

// readFile reads a backup file from a caller-supplied path.
func (s *Service) readFile(path string) ([]byte, error) {
	// #nosec G304 -- path is from user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, hawalaerr.ErrBackupNotFound
		}
		return nil, fmt.Errorf("reading backup file: %w", err)
	}
	return data, nil
}
