package tripdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/OneBusAway/go-gtfs"
	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/logging"
)

//go:embed schema.sql
var ddl string

// createDB creates a new SQLite database with tables for trip and elevation
// data.
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test database must use in-memory storage, got path: %s", config.DBPath)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	err = configureSQLitePerformance(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("error configuring SQLite performance: %w", err)
	}

	err = performDatabaseMigration(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	configureConnectionPool(db, config)

	return db, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate") // Split DDL into individual statements
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue // Skip empty statements
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

// configureSQLitePerformance applies PRAGMA settings to speed up bulk GTFS
// imports and queries.
func configureSQLitePerformance(ctx context.Context, db *sql.DB) error {
	pragmas := []struct {
		name        string
		description string
	}{
		// Increase cache size to 64MB (negative value means KB)
		{"PRAGMA cache_size=-64000", "Set cache size to 64MB"},
		// Store temp tables and indices in memory for faster operations
		{"PRAGMA temp_store=MEMORY", "Store temporary data in memory"},
	}

	logger := slog.Default().With(slog.String("component", "sqlite_performance"))

	for _, pragma := range pragmas {
		_, err := db.ExecContext(ctx, pragma.name)
		if err != nil {
			logging.LogError(logger, fmt.Sprintf("Failed to set %s", pragma.description), err)
			return fmt.Errorf("failed to execute %s: %w", pragma.name, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

// configureConnectionPool sets up appropriate connection pool settings for
// SQLite. Each connection to a :memory: database gets its own separate
// database instance, so :memory: stores are limited to a single connection.
func configureConnectionPool(db *sql.DB, config Config) {
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
}

func (c *Client) processAndStoreGTFSDataWithSource(b []byte, source string) error {
	logger := slog.Default().With(slog.String("component", "gtfs_importer"))

	startTime := time.Now()
	defer func() {
		endTime := time.Now()

		c.importRuntime = endTime.Sub(startTime)

		logging.LogOperation(logger, "gtfs_data_import_completed",
			slog.Duration("duration", c.importRuntime),
			slog.String("source", source))
	}()

	hash := sha256.Sum256(b)
	hashStr := hex.EncodeToString(hash[:])

	ctx := context.Background()

	// Check if we already have this data imported
	existingMetadata, err := c.Queries.GetImportMetadata(ctx)
	if err == nil {
		if existingMetadata.FileHash == hashStr && existingMetadata.FileSource == source {
			logging.LogOperation(logger, "gtfs_data_unchanged_skipping_import",
				slog.String("hash", hashStr[:8]))
			return nil
		}
		logging.LogOperation(logger, "gtfs_data_changed_reimporting",
			slog.String("old_hash", existingMetadata.FileHash[:8]),
			slog.String("new_hash", hashStr[:8]))
		err = c.clearAllGTFSData(ctx)
		if err != nil {
			return fmt.Errorf("error clearing existing GTFS data: %w", err)
		}
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("error checking import metadata: %w", err)
	}
	// If err == sql.ErrNoRows, this is the first import, continue normally

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return err
	}

	logging.LogOperation(logger, "starting_database_import",
		slog.Int("trips", len(staticData.Trips)),
		slog.Int("stops", len(staticData.Stops)),
		slog.Int("warnings", len(staticData.Warnings)))

	var allStopParams []CreateStopParams
	for _, s := range staticData.Stops {
		params := CreateStopParams{
			ID:   s.Id,
			Name: toNullString(s.Name),
		}
		// Lat/lon stay NULL for generic nodes and boarding areas, which
		// GTFS permits to omit coordinates.
		if s.Latitude != nil && s.Longitude != nil {
			params.Lat = toNullFloat64(*s.Latitude)
			params.Lon = toNullFloat64(*s.Longitude)
		}
		allStopParams = append(allStopParams, params)
	}

	var allTripParams []CreateTripParams
	var allVisitParams []CreateStopVisitParams
	for _, t := range staticData.Trips {
		allTripParams = append(allTripParams, CreateTripParams{
			ID:        t.ID,
			RouteID:   t.Route.Id,
			ServiceID: t.Service.Id,
			Headsign:  toNullString(t.Headsign),
		})

		for _, st := range t.StopTimes {
			allVisitParams = append(allVisitParams, CreateStopVisitParams{
				TripID:           t.ID,
				StopID:           st.Stop.Id,
				StopSequence:     int64(st.StopSequence),
				ArrivalSeconds:   int64(st.ArrivalTime / time.Second),
				DepartureSeconds: int64(st.DepartureTime / time.Second),
			})
		}
	}

	if err := c.bulkInsertStops(ctx, allStopParams); err != nil {
		return fmt.Errorf("unable to create stops: %w", err)
	}
	if err := c.bulkInsertTrips(ctx, allTripParams); err != nil {
		return fmt.Errorf("unable to create trips: %w", err)
	}
	if err := c.bulkInsertStopVisits(ctx, allVisitParams); err != nil {
		return fmt.Errorf("unable to create stop visits: %w", err)
	}

	return c.Queries.UpsertImportMetadata(ctx, ImportMetadata{
		FileHash:   hashStr,
		FileSource: source,
		ImportedAt: time.Now().Unix(),
	})
}

func (c *Client) clearAllGTFSData(ctx context.Context) error {
	if err := c.Queries.ClearStopVisits(ctx); err != nil {
		return err
	}
	if err := c.Queries.ClearTrips(ctx); err != nil {
		return err
	}
	return c.Queries.ClearStops(ctx)
}

func (c *Client) bulkInsertStops(ctx context.Context, stops []CreateStopParams) error {
	const baseQuery = `INSERT INTO stops (id, name, lat, lon) VALUES `
	const suffix = ` ON CONFLICT (id) DO UPDATE SET name = excluded.name, lat = excluded.lat, lon = excluded.lon`
	return c.bulkInsert(ctx, "bulk_insert_stops", len(stops), 4, baseQuery, suffix,
		func(args []interface{}, i int) []interface{} {
			s := stops[i]
			return append(args, s.ID, s.Name, s.Lat, s.Lon)
		})
}

func (c *Client) bulkInsertTrips(ctx context.Context, trips []CreateTripParams) error {
	const baseQuery = `INSERT INTO trips (id, route_id, service_id, headsign) VALUES `
	return c.bulkInsert(ctx, "bulk_insert_trips", len(trips), 4, baseQuery, "",
		func(args []interface{}, i int) []interface{} {
			t := trips[i]
			return append(args, t.ID, t.RouteID, t.ServiceID, t.Headsign)
		})
}

func (c *Client) bulkInsertStopVisits(ctx context.Context, visits []CreateStopVisitParams) error {
	const baseQuery = `INSERT INTO stop_visits (
		trip_id, stop_id, stop_sequence, arrival_seconds, departure_seconds
	) VALUES `
	return c.bulkInsert(ctx, "bulk_insert_stop_visits", len(visits), 5, baseQuery, "",
		func(args []interface{}, i int) []interface{} {
			v := visits[i]
			return append(args, v.TripID, v.StopID, v.StopSequence, v.ArrivalSeconds, v.DepartureSeconds)
		})
}

// bulkInsert executes multi-row INSERTs in batches within one transaction.
// SECURITY: Only use placeholders (?) for values. Never concatenate user
// input directly into the query string.
func (c *Client) bulkInsert(ctx context.Context, operation string, count, fieldsPerRow int, baseQuery, suffix string, appendArgs func([]interface{}, int) []interface{}) error {
	logger := slog.Default().With(slog.String("component", "bulk_insert"))

	logging.LogOperation(logger, operation, slog.Int("count", count))

	if count == 0 {
		return nil
	}

	batchSize := c.config.GetBulkInsertBatchSize()

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, logger, operation)

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", fieldsPerRow), ", ") + ")"

	for start := 0; start < count; start += batchSize {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		end := start + batchSize
		if end > count {
			end = count
		}

		var query strings.Builder
		query.WriteString(baseQuery)
		args := make([]interface{}, 0, (end-start)*fieldsPerRow)

		for i := start; i < end; i++ {
			if i > start {
				query.WriteString(", ")
			}
			query.WriteString(placeholder)
			args = appendArgs(args, i)
		}
		query.WriteString(suffix)

		if _, err := tx.ExecContext(ctx, query.String(), args...); err != nil {
			return fmt.Errorf("%s batch failed: %w", operation, err)
		}
	}

	return tx.Commit()
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullFloat64(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: true}
}
