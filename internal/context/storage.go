package context

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"escli/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	// configFileName is the name of the configuration file.
	configFileName = "config.yml"
	// userConfigDir is the directory under home holding escli state.
	userConfigDir = ".elastic-cli"
)

// Storage provides thread-safe access to the configuration file.
// It only loads and saves whole documents; ContextConfig holds the logic.
type Storage struct {
	mu       sync.RWMutex
	filePath string
}

// DefaultConfigDir returns ~/.elastic-cli.
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// NewStorage creates a new Storage instance using the default config path.
// The default path is ~/.elastic-cli/config.yml.
func NewStorage() (*Storage, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStorageWithPath(dir), nil
}

// NewStorageWithPath creates a new Storage instance for config.yml inside configDir.
func NewStorageWithPath(configDir string) *Storage {
	return NewStorageWithFile(filepath.Join(configDir, configFileName))
}

// NewStorageWithFile creates a new Storage instance for an explicit file path.
func NewStorageWithFile(filePath string) *Storage {
	return &Storage{filePath: filePath}
}

// Path returns the configuration file location.
func (s *Storage) Path() string {
	return s.filePath
}

// ensureDir creates the parent directory of the configuration file.
func (s *Storage) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Load reads and parses the configuration file.
//
// Load never returns a nil config. A missing file yields an empty config and no
// error. A file that cannot be read or parsed yields an empty config together
// with the error, so callers can report it and carry on without contexts.
// A current context naming a missing entry is cleared.
func (s *Storage) Load() (*ContextConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ensureDir(); err != nil {
		return NewContextConfig(), err
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewContextConfig(), nil
		}
		return NewContextConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	var config ContextConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return NewContextConfig(), &ParseError{Path: s.filePath, Err: err}
	}
	if dropped := config.normalize(); len(dropped) > 0 {
		logging.Warn("Storage", "Ignoring contexts with invalid names in %s: %s", s.filePath, strings.Join(dropped, ", "))
	}

	return &config, nil
}

// Save writes the whole configuration to the file, replacing its contents.
// The file is created with owner-only permissions since it holds passwords.
// The passed config is never modified.
func (s *Storage) Save(config *ContextConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
