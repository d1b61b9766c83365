// Package config loads ifs's runtime configuration the way the teacher's
// internal/device.LoadDMGConfig does: viper, a fixed search path, and
// IFS_-prefixed environment overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings mount/archive/check need to locate and treat
// an image, mirroring the shape (and defaulting strategy) of the
// teacher's DMGConfig.
type Config struct {
	AutoDetectFWFS bool   `mapstructure:"auto_detect_fwfs"`
	DefaultOffset  int64  `mapstructure:"default_offset"`
	CacheEnabled   bool   `mapstructure:"cache_enabled"`
	CacheSize      int    `mapstructure:"cache_size"`
	TestDataPath   string `mapstructure:"test_data_path"`

	// HostRoot is the directory hostfs mounts as the writable upper
	// layer of a hybrid filesystem.
	HostRoot string `mapstructure:"host_root"`

	// CompressionLevel selects the zstd level archive uses when an
	// encoder is requested (0 = library default).
	CompressionLevel int `mapstructure:"compression_level"`
}

// Load reads ifs-config.yaml from the usual places, falling back to
// defaults, with IFS_-prefixed environment variables taking precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("ifs-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.ifs")
	v.AddConfigPath("/etc/ifs")

	v.SetDefault("auto_detect_fwfs", true)
	v.SetDefault("default_offset", 0)
	v.SetDefault("cache_enabled", true)
	v.SetDefault("cache_size", 100)
	v.SetDefault("test_data_path", "./tests")
	v.SetDefault("host_root", "")
	v.SetDefault("compression_level", 0)

	v.SetEnvPrefix("IFS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}
