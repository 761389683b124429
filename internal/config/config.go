// Package config loads the on-disk description of an SFS volume: its image
// path, storage capacity, cache size, and name-hashing strategy, as a TOML
// file a volume can be reopened against with the same parameters it was
// created with.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// VolumeConfig describes one SFS volume.
type VolumeConfig struct {
	// ImagePath is the path to the backing file.
	ImagePath string `toml:"image_path"`
	// StorageSize is the volume's total capacity in bytes.
	StorageSize uint64 `toml:"storage_size"`
	// CacheSize is the number of metadata pages kept warm, 0 for the
	// package default.
	CacheSize uint `toml:"cache_size"`
	// Hasher selects the name-hashing strategy: "legacy" or "fnv1a".
	Hasher string `toml:"hasher"`
	// LogLevel is the logrus level name used for operational logging.
	LogLevel string `toml:"log_level"`
}

// Load reads and parses a VolumeConfig from path.
func Load(path string) (VolumeConfig, error) {
	var cfg VolumeConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if cfg.StorageSize == 0 {
		return cfg, fmt.Errorf("config: %s: storage_size must be set", path)
	}

	return cfg, nil
}

// Save writes cfg to path as TOML, creating or truncating the file.
func Save(path string, cfg VolumeConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}

	return nil
}
