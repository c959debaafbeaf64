package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the YAML config file.
const FileName = ".cifmt.yaml"

// Constants for default values.
const (
	DefaultPlatform  = "auto"
	DefaultChunkSize = 16 * 1024 // 16KiB
	DefaultColor     = ColorAuto
	MaxChunkSize     = 16 * 1024 * 1024 // 16MiB
	MaxVerbosity     = 2
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// FileConfig is the content of .cifmt.yaml. Pointer fields distinguish an
// absent key from a zero value.
type FileConfig struct {
	Platform  *string `yaml:"platform"`
	Tool      *string `yaml:"tool"`
	ChunkSize *int    `yaml:"chunk_size"`
	Color     *string `yaml:"color"`
	Verbosity *int    `yaml:"verbosity"`
}

// LoadFile reads and parses the config file at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadConfig finds and loads the config file. It returns an empty config and
// an empty path when there is none.
func LoadConfig() (*FileConfig, string, error) {
	path := getConfigPath()
	if path == "" {
		return &FileConfig{}, "", nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &FileConfig{}, "", nil
		}
		return nil, path, err
	}
	return cfg, path, nil
}

// getConfigPath returns the local config file if present, then the one under
// the user config directory, or "".
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "cifmt", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
