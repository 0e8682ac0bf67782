// Package appconf holds application configuration shared across packages.
package appconf

// Environment selects runtime behavior (debug endpoints, log verbosity).
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFromString maps a config value onto an Environment, defaulting to
// Development for anything unrecognized.
func EnvFromString(s string) Environment {
	switch s {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

// Config is the application-level configuration.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	Verbose   bool
	RateLimit int
}

// StoreConfigData carries the storage-related settings out of a JSON config
// file without this package importing the store.
type StoreConfigData struct {
	DBPath        string
	GtfsSource    string
	ElevationPath string
	Env           Environment
	Verbose       bool
}
