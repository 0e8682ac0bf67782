package tripdb

// Hand-written SQL statements for the trip store. If the table schemas in
// schema.sql change, the SQL and Go types in this file must be updated
// manually to match.

import (
	"context"
	"database/sql"
)

const getTrip = `
SELECT id, route_id, service_id, headsign
FROM trips
WHERE id = ?
`

func (q *Queries) GetTrip(ctx context.Context, id string) (Trip, error) {
	row := q.db.QueryRowContext(ctx, getTrip, id)
	var i Trip
	err := row.Scan(&i.ID, &i.RouteID, &i.ServiceID, &i.Headsign)
	return i, err
}

const countTrips = `
SELECT COUNT(*) FROM trips
`

func (q *Queries) CountTrips(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTrips)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getStopVisitsForTrip = `
SELECT
    sv.trip_id,
    sv.stop_id,
    sv.stop_sequence,
    sv.arrival_seconds,
    sv.departure_seconds,
    s.name,
    s.lat,
    s.lon
FROM
    stop_visits sv
    JOIN stops s ON s.id = sv.stop_id
WHERE
    sv.trip_id = ?
ORDER BY
    sv.stop_sequence
`

func (q *Queries) GetStopVisitsForTrip(ctx context.Context, tripID string) ([]StopVisitRow, error) {
	rows, err := q.db.QueryContext(ctx, getStopVisitsForTrip, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []StopVisitRow
	for rows.Next() {
		var i StopVisitRow
		if err := rows.Scan(
			&i.TripID,
			&i.StopID,
			&i.StopSequence,
			&i.ArrivalSeconds,
			&i.DepartureSeconds,
			&i.StopName,
			&i.StopLat,
			&i.StopLon,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createStop = `
INSERT INTO stops (id, name, lat, lon)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, lat = excluded.lat, lon = excluded.lon
`

type CreateStopParams struct {
	ID   string
	Name sql.NullString
	Lat  sql.NullFloat64
	Lon  sql.NullFloat64
}

func (q *Queries) CreateStop(ctx context.Context, arg CreateStopParams) error {
	_, err := q.db.ExecContext(ctx, createStop, arg.ID, arg.Name, arg.Lat, arg.Lon)
	return err
}

const createTrip = `
INSERT INTO trips (id, route_id, service_id, headsign)
VALUES (?, ?, ?, ?)
`

type CreateTripParams struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  sql.NullString
}

func (q *Queries) CreateTrip(ctx context.Context, arg CreateTripParams) error {
	_, err := q.db.ExecContext(ctx, createTrip, arg.ID, arg.RouteID, arg.ServiceID, arg.Headsign)
	return err
}

const createStopVisit = `
INSERT INTO stop_visits (trip_id, stop_id, stop_sequence, arrival_seconds, departure_seconds)
VALUES (?, ?, ?, ?, ?)
`

type CreateStopVisitParams struct {
	TripID           string
	StopID           string
	StopSequence     int64
	ArrivalSeconds   int64
	DepartureSeconds int64
}

func (q *Queries) CreateStopVisit(ctx context.Context, arg CreateStopVisitParams) error {
	_, err := q.db.ExecContext(ctx, createStopVisit,
		arg.TripID, arg.StopID, arg.StopSequence, arg.ArrivalSeconds, arg.DepartureSeconds)
	return err
}

const upsertElevationProfile = `
INSERT INTO elevation_profiles (trip_id, presegmented, payload, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (trip_id) DO UPDATE SET
    presegmented = excluded.presegmented,
    payload = excluded.payload,
    updated_at = excluded.updated_at
`

type UpsertElevationProfileParams struct {
	TripID       string
	Presegmented bool
	Payload      []byte
	UpdatedAt    int64
}

func (q *Queries) UpsertElevationProfile(ctx context.Context, arg UpsertElevationProfileParams) error {
	_, err := q.db.ExecContext(ctx, upsertElevationProfile,
		arg.TripID, arg.Presegmented, arg.Payload, arg.UpdatedAt)
	return err
}

const getElevationProfile = `
SELECT trip_id, presegmented, payload, updated_at
FROM elevation_profiles
WHERE trip_id = ?
`

func (q *Queries) GetElevationProfile(ctx context.Context, tripID string) (ElevationProfileRow, error) {
	row := q.db.QueryRowContext(ctx, getElevationProfile, tripID)
	var i ElevationProfileRow
	err := row.Scan(&i.TripID, &i.Presegmented, &i.Payload, &i.UpdatedAt)
	return i, err
}

const getImportMetadata = `
SELECT file_hash, file_source, imported_at
FROM import_metadata
WHERE id = 1
`

func (q *Queries) GetImportMetadata(ctx context.Context) (ImportMetadata, error) {
	row := q.db.QueryRowContext(ctx, getImportMetadata)
	var i ImportMetadata
	err := row.Scan(&i.FileHash, &i.FileSource, &i.ImportedAt)
	return i, err
}

const upsertImportMetadata = `
INSERT INTO import_metadata (id, file_hash, file_source, imported_at)
VALUES (1, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    file_hash = excluded.file_hash,
    file_source = excluded.file_source,
    imported_at = excluded.imported_at
`

func (q *Queries) UpsertImportMetadata(ctx context.Context, arg ImportMetadata) error {
	_, err := q.db.ExecContext(ctx, upsertImportMetadata,
		arg.FileHash, arg.FileSource, arg.ImportedAt)
	return err
}

const clearStopVisits = `DELETE FROM stop_visits`

func (q *Queries) ClearStopVisits(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearStopVisits)
	return err
}

const clearTrips = `DELETE FROM trips`

func (q *Queries) ClearTrips(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearTrips)
	return err
}

const clearStops = `DELETE FROM stops`

func (q *Queries) ClearStops(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearStops)
	return err
}
