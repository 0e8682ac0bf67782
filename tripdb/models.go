package tripdb

import "database/sql"

// Trip is a trips table row.
type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  sql.NullString
}

// Stop is a stops table row. Coordinates are nullable since GTFS permits
// location types without them.
type Stop struct {
	ID   string
	Name sql.NullString
	Lat  sql.NullFloat64
	Lon  sql.NullFloat64
}

// StopVisitRow is a stop_visits row joined with its stop.
type StopVisitRow struct {
	TripID           string
	StopID           string
	StopSequence     int64
	ArrivalSeconds   int64
	DepartureSeconds int64
	StopName         sql.NullString
	StopLat          sql.NullFloat64
	StopLon          sql.NullFloat64
}

// ElevationProfileRow is an elevation_profiles table row. The payload is a
// gzip-compressed JSON encoding of the profile's points.
type ElevationProfileRow struct {
	TripID       string
	Presegmented bool
	Payload      []byte
	UpdatedAt    int64
}

// ImportMetadata records the provenance of the last GTFS import.
type ImportMetadata struct {
	FileHash   string
	FileSource string
	ImportedAt int64
}
