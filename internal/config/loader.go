package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".trackerlens"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file schema. Every field is optional;
// zero values mean "keep the built-in default". Pointer fields distinguish
// an explicit false from an unset value.
//
// Example:
//
//	workers: 4
//	topDomains: 50
//	saveRuns: false
//	dataDir: /var/lib/trackerlens
type File struct {
	// Workers overrides the number of concurrently loaded documents.
	Workers int `yaml:"workers"`

	// TopDomains overrides the prevalence-ranking length.
	TopDomains int `yaml:"topDomains"`

	// TopCategories overrides the leading-category subset size.
	TopCategories int `yaml:"topCategories"`

	// PerCategory overrides the per-category selection size.
	PerCategory int `yaml:"perCategory"`

	// DataDir overrides the run database directory.
	DataDir string `yaml:"dataDir"`

	// SaveRuns toggles run persistence. Unset keeps the default (on).
	SaveRuns *bool `yaml:"saveRuns"`
}

// Apply copies the file's set values onto the config.
// CLI flags are applied after the file, so flags win.
func (f *File) Apply(cfg *Config) {
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.TopDomains > 0 {
		cfg.TopDomains = f.TopDomains
	}
	if f.TopCategories > 0 {
		cfg.TopCategories = f.TopCategories
	}
	if f.PerCategory > 0 {
		cfg.PerCategory = f.PerCategory
	}
	if f.DataDir != "" {
		cfg.DBDir = f.DataDir
	}
	if f.SaveRuns != nil {
		cfg.SaveToDB = *f.SaveRuns
	}
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .trackerlens in the current directory
// 3. Look for .trackerlens in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
