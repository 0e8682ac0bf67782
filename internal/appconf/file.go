package appconf

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONConfig mirrors the on-disk configuration file.
type JSONConfig struct {
	Port          int      `json:"port"`
	Env           string   `json:"env"`
	ApiKeys       []string `json:"api-keys"`
	RateLimit     int      `json:"rate-limit"`
	Verbose       bool     `json:"verbose"`
	DataPath      string   `json:"data-path"`
	GtfsSource    string   `json:"gtfs-source"`
	ElevationPath string   `json:"elevation-path"`
}

// LoadFromFile reads and validates a JSON configuration file.
func LoadFromFile(path string) (*JSONConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg JSONConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *JSONConfig) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate-limit must not be negative")
	}
	switch c.Env {
	case "", "development", "test", "production":
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	return nil
}

// ToAppConfig converts the file representation into the runtime Config.
func (c *JSONConfig) ToAppConfig() Config {
	return Config{
		Port:      c.Port,
		Env:       EnvFromString(c.Env),
		ApiKeys:   c.ApiKeys,
		Verbose:   c.Verbose,
		RateLimit: c.RateLimit,
	}
}

// ToStoreConfigData extracts the storage settings.
func (c *JSONConfig) ToStoreConfigData() StoreConfigData {
	return StoreConfigData{
		DBPath:        c.DataPath,
		GtfsSource:    c.GtfsSource,
		ElevationPath: c.ElevationPath,
		Env:           EnvFromString(c.Env),
		Verbose:       c.Verbose,
	}
}
