package tripdb

import (
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
)

// Config carries the settings needed to open and populate the trip store.
type Config struct {
	DBPath  string
	Env     appconf.Environment
	verbose bool

	// bulkInsertBatchSize caps rows per multi-row INSERT during import.
	// Zero means the default.
	bulkInsertBatchSize int
}

const defaultBulkInsertBatchSize = 500

// NewConfig builds a store configuration.
func NewConfig(dbPath string, env appconf.Environment, verbose bool) Config {
	return Config{
		DBPath:  dbPath,
		Env:     env,
		verbose: verbose,
	}
}

// ConfigFromStoreData adapts the file-level storage settings.
func ConfigFromStoreData(data appconf.StoreConfigData) Config {
	return NewConfig(data.DBPath, data.Env, data.Verbose)
}

// GetBulkInsertBatchSize returns the configured batch size for bulk inserts.
func (c Config) GetBulkInsertBatchSize() int {
	if c.bulkInsertBatchSize <= 0 {
		return defaultBulkInsertBatchSize
	}
	return c.bulkInsertBatchSize
}
