package tripdb

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

// ErrNotFound reports a missing trip or elevation profile.
var ErrNotFound = errors.New("not found")

// GetTrip loads one stored trip with its ordered stop visits.
func (c *Client) GetTrip(ctx context.Context, tripID string) (timetable.Trip, error) {
	if _, err := c.Queries.GetTrip(ctx, tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timetable.Trip{}, fmt.Errorf("trip %s: %w", tripID, ErrNotFound)
		}
		return timetable.Trip{}, err
	}

	rows, err := c.Queries.GetStopVisitsForTrip(ctx, tripID)
	if err != nil {
		return timetable.Trip{}, err
	}

	visits := make([]timetable.StopVisit, 0, len(rows))
	for _, row := range rows {
		var position *timetable.Position
		if row.StopLat.Valid && row.StopLon.Valid {
			position = &timetable.Position{Lat: row.StopLat.Float64, Lon: row.StopLon.Float64}
		}
		visits = append(visits, timetable.StopVisit{
			StopID:           row.StopID,
			StopName:         row.StopName.String,
			Position:         position,
			Sequence:         int(row.StopSequence),
			ArrivalSeconds:   int(row.ArrivalSeconds),
			DepartureSeconds: int(row.DepartureSeconds),
		})
	}

	trip := timetable.Trip{ID: tripID, Visits: visits}
	if err := trip.Validate(); err != nil {
		return timetable.Trip{}, fmt.Errorf("stored trip %s is invalid: %w", tripID, err)
	}
	return trip, nil
}

// GetTripsByIDs loads the named trips, preserving the caller's order. Any
// missing trip fails the whole lookup.
func (c *Client) GetTripsByIDs(ctx context.Context, tripIDs []string) ([]timetable.Trip, error) {
	trips := make([]timetable.Trip, 0, len(tripIDs))
	for _, id := range tripIDs {
		trip, err := c.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

type elevationPayloadPoint struct {
	CumulativeDistanceM float64  `json:"cumulative_distance_m"`
	AltitudeM           float64  `json:"altitude_m"`
	Lat                 *float64 `json:"lat,omitempty"`
	Lon                 *float64 `json:"lon,omitempty"`
}

// PutElevationProfile stores a trip's elevation profile as a gzip-compressed
// JSON blob, replacing any previous one.
func (c *Client) PutElevationProfile(ctx context.Context, tripID string, profile elevation.Profile) error {
	points := make([]elevationPayloadPoint, len(profile.Points))
	for i, p := range profile.Points {
		points[i] = elevationPayloadPoint{
			CumulativeDistanceM: p.CumulativeDistanceM,
			AltitudeM:           p.AltitudeM,
		}
		if p.Position != nil {
			lat, lon := p.Position.Lat, p.Position.Lon
			points[i].Lat = &lat
			points[i].Lon = &lon
		}
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(points); err != nil {
		return fmt.Errorf("failed to encode elevation payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress elevation payload: %w", err)
	}

	return c.Queries.UpsertElevationProfile(ctx, UpsertElevationProfileParams{
		TripID:       tripID,
		Presegmented: profile.Presegmented,
		Payload:      buf.Bytes(),
		UpdatedAt:    time.Now().Unix(),
	})
}

// GetElevationProfile loads a trip's stored elevation profile.
func (c *Client) GetElevationProfile(ctx context.Context, tripID string) (elevation.Profile, error) {
	row, err := c.Queries.GetElevationProfile(ctx, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return elevation.Profile{}, fmt.Errorf("elevation profile for trip %s: %w", tripID, ErrNotFound)
		}
		return elevation.Profile{}, err
	}

	zr, err := gzip.NewReader(bytes.NewReader(row.Payload))
	if err != nil {
		return elevation.Profile{}, fmt.Errorf("failed to decompress elevation payload: %w", err)
	}

	var stored []elevationPayloadPoint
	if err := json.NewDecoder(zr).Decode(&stored); err != nil {
		return elevation.Profile{}, fmt.Errorf("failed to decode elevation payload: %w", err)
	}
	if err := zr.Close(); err != nil {
		return elevation.Profile{}, err
	}

	points := make([]elevation.Point, len(stored))
	for i, p := range stored {
		var position *timetable.Position
		if p.Lat != nil && p.Lon != nil {
			position = &timetable.Position{Lat: *p.Lat, Lon: *p.Lon}
		}
		points[i] = elevation.Point{
			CumulativeDistanceM: p.CumulativeDistanceM,
			AltitudeM:           p.AltitudeM,
			Position:            position,
		}
	}

	if row.Presegmented {
		return elevation.NewPresegmentedProfile(points)
	}
	return elevation.NewRawProfile(points)
}
