package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
)

func TestParseAPIKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single key",
			input:    "test-key",
			expected: []string{"test-key"},
		},
		{
			name:     "Multiple keys",
			input:    "key1,key2,key3",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Keys with spaces",
			input:    " key1 , key2 , key3 ",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "Keys with mixed whitespace",
			input:    "key1,  key2  ,   key3",
			expected: []string{"key1", "key2", "key3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAPIKeys(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func testConfigs() (appconf.Config, appconf.StoreConfigData) {
	cfg := appconf.Config{
		Port:      4000,
		Env:       appconf.Test,
		ApiKeys:   []string{"test"},
		Verbose:   false,
		RateLimit: 100,
	}
	storeCfg := appconf.StoreConfigData{
		DBPath:  ":memory:",
		Env:     appconf.Test,
		Verbose: false,
	}
	return cfg, storeCfg
}

func TestBuildApplicationWithMemoryDB(t *testing.T) {
	cfg, storeCfg := testConfigs()

	coreApp, err := BuildApplication(cfg, storeCfg)

	require.NoError(t, err, "BuildApplication should not return an error")
	assert.NotNil(t, coreApp, "Application should not be nil")
	assert.NotNil(t, coreApp.Logger, "Logger should be initialized")
	assert.NotNil(t, coreApp.Store, "Store should be initialized")
	assert.NotNil(t, coreApp.Metrics, "Metrics should be initialized")
	assert.Equal(t, cfg, coreApp.Config, "Config should match input")

	coreApp.Metrics.Shutdown()
	require.NoError(t, coreApp.Store.Close())
}

func TestBuildApplicationRejectsFileDBInTestEnv(t *testing.T) {
	cfg, storeCfg := testConfigs()
	storeCfg.DBPath = t.TempDir() + "/trips.db"

	_, err := BuildApplication(cfg, storeCfg)
	require.Error(t, err)
}

func TestCreateServerServesHealthEndpoint(t *testing.T) {
	cfg, storeCfg := testConfigs()

	coreApp, err := BuildApplication(cfg, storeCfg)
	require.NoError(t, err)
	defer func() {
		coreApp.Metrics.Shutdown()
		_ = coreApp.Store.Close()
	}()

	srv, api := CreateServer(coreApp, cfg)
	defer api.Shutdown()

	assert.Equal(t, ":4000", srv.Addr)

	testServer := httptest.NewServer(srv.Handler)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/health.json")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
}
