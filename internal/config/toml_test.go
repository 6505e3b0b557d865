package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Exchange.Steps)
	assert.Nil(t, cfg.Switch.Pin)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[exchange]
steps = 7200
steps-per-minute = 500

[switch]
pin = 12

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Exchange.Steps)
	assert.Equal(t, 7200, *cfg.Exchange.Steps)
	require.NotNil(t, cfg.Exchange.StepsPerMinute)
	assert.Equal(t, 500, *cfg.Exchange.StepsPerMinute)
	assert.Nil(t, cfg.Exchange.Walk)
	require.NotNil(t, cfg.Switch.Pin)
	assert.Equal(t, 12, *cfg.Switch.Pin)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[exchange]\nrate = 3\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "exchange.rate")
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/cfg", "stepai", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/tmp/data", "stepai", "stepai.log"), DefaultLogPath())
}
