package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.AutoDetectFWFS)
	assert.Equal(t, int64(0), cfg.DefaultOffset)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 100, cfg.CacheSize)
	assert.Equal(t, "./tests", cfg.TestDataPath)
	assert.Equal(t, "", cfg.HostRoot)
	assert.Equal(t, 0, cfg.CompressionLevel)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("IFS_HOST_ROOT", "/srv/overlay")
	t.Setenv("IFS_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/overlay", cfg.HostRoot)
	assert.Equal(t, 500, cfg.CacheSize)
}

func TestLoadIgnoresMissingConfigFile(t *testing.T) {
	_, err := os.Stat("ifs-config.yaml")
	require.True(t, os.IsNotExist(err), "test assumes no config file is present in the package directory")

	_, err = Load()
	assert.NoError(t, err)
}
