package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEnvFromString(t *testing.T) {
	assert.Equal(t, Test, EnvFromString("test"))
	assert.Equal(t, Production, EnvFromString("production"))
	assert.Equal(t, Development, EnvFromString("development"))
	assert.Equal(t, Development, EnvFromString("anything-else"))
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `{
  "port": 3000,
  "env": "development",
  "api-keys": ["test"],
  "rate-limit": 100,
  "verbose": true,
  "data-path": ":memory:",
  "gtfs-source": "testdata/feed.zip",
  "elevation-path": "testdata/profiles.json"
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	appCfg := cfg.ToAppConfig()
	assert.Equal(t, 3000, appCfg.Port)
	assert.Equal(t, Development, appCfg.Env)
	assert.Equal(t, []string{"test"}, appCfg.ApiKeys)
	assert.Equal(t, 100, appCfg.RateLimit)
	assert.True(t, appCfg.Verbose)

	storeCfg := cfg.ToStoreConfigData()
	assert.Equal(t, ":memory:", storeCfg.DBPath)
	assert.Equal(t, "testdata/feed.zip", storeCfg.GtfsSource)
	assert.Equal(t, "testdata/profiles.json", storeCfg.ElevationPath)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stat config file")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeConfig(t, "{not json")
		_, err := LoadFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse JSON config")
	})

	t.Run("invalid port", func(t *testing.T) {
		path := writeConfig(t, `{"port": 99999}`)
		_, err := LoadFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("unknown env", func(t *testing.T) {
		path := writeConfig(t, `{"port": 80, "env": "staging"}`)
		_, err := LoadFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
