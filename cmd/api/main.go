package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	var (
		configPath    = flag.String("config", os.Getenv("CONFIG_FILE"), "Path to JSON config file (overrides the other flags)")
		port          = flag.Int("port", envInt("PORT", 4000), "API server port")
		env           = flag.String("env", envOr("APP_ENV", "development"), "Environment (development|test|production)")
		apiKeys       = flag.String("api-keys", envOr("API_KEYS", "test"), "Comma-separated list of valid API keys")
		rateLimit     = flag.Int("rate-limit", envInt("RATE_LIMIT", 100), "Requests per second allowed per API key")
		verbose       = flag.Bool("verbose", false, "Enable debug logging")
		dbPath        = flag.String("db-path", envOr("DB_PATH", "trips.db"), "SQLite database path, or :memory:")
		gtfsSource    = flag.String("gtfs-source", os.Getenv("GTFS_SOURCE"), "Static GTFS zip URL or file path to import on startup")
		elevationPath = flag.String("elevation-path", os.Getenv("ELEVATION_PATH"), "Elevation profile seed file to import on startup")
	)
	flag.Parse()

	var cfg appconf.Config
	var storeCfg appconf.StoreConfigData
	if *configPath != "" {
		jsonCfg, err := appconf.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = jsonCfg.ToAppConfig()
		storeCfg = jsonCfg.ToStoreConfigData()
	} else {
		cfg = appconf.Config{
			Port:      *port,
			Env:       appconf.EnvFromString(*env),
			ApiKeys:   ParseAPIKeys(*apiKeys),
			Verbose:   *verbose,
			RateLimit: *rateLimit,
		}
		storeCfg = appconf.StoreConfigData{
			DBPath:        *dbPath,
			GtfsSource:    *gtfsSource,
			ElevationPath: *elevationPath,
			Env:           cfg.Env,
			Verbose:       *verbose,
		}
	}

	coreApp, err := BuildApplication(cfg, storeCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := Run(coreApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
