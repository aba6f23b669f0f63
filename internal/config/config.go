package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Store settings
	Store StoreConfig `yaml:"store"`

	// PDF output settings
	PDF PDFConfig `yaml:"pdf"`
}

type StoreConfig struct {
	Path string `yaml:"path"` // Path to the SQLite store file
}

type PDFConfig struct {
	OutputDir string `yaml:"output_dir"` // Directory for generated bill PDFs
}

// DefaultConfigPath returns ~/.config/smartbill/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "smartbill", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "smartbill", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(homeDir, ".config", "smartbill", "smartbill.db"),
		},
		PDF: PDFConfig{
			OutputDir: filepath.Join(homeDir, ".config", "smartbill", "bills"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for the store, PDFs, etc.)
func (c *Config) EnsureDirectories() error {
	// Create store directory
	storeDir := filepath.Dir(c.Store.Path)
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return err
	}

	// Create PDF output directory
	if err := os.MkdirAll(c.PDF.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
