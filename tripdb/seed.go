package tripdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/logging"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

// elevationSeedEntry is one record of the elevation seed file: a trip id and
// its profile samples in route order.
type elevationSeedEntry struct {
	TripID       string `json:"trip_id"`
	Presegmented bool   `json:"presegmented"`
	Points       []struct {
		CumulativeDistanceM float64  `json:"cumulative_distance_m"`
		AltitudeM           float64  `json:"altitude_m"`
		Lat                 *float64 `json:"lat,omitempty"`
		Lon                 *float64 `json:"lon,omitempty"`
	} `json:"points"`
}

// ImportElevationFromFile loads a JSON seed file of per-trip elevation
// profiles and stores each one. Entries are validated before storage; one
// bad entry fails the whole import.
func (c *Client) ImportElevationFromFile(ctx context.Context, path string) error {
	logger := slog.Default().With(slog.String("component", "elevation_importer"))

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []elevationSeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse elevation seed file %s: %w", path, err)
	}

	for _, entry := range entries {
		points := make([]elevation.Point, len(entry.Points))
		for i, p := range entry.Points {
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

		var profile elevation.Profile
		if entry.Presegmented {
			profile, err = elevation.NewPresegmentedProfile(points)
		} else {
			profile, err = elevation.NewRawProfile(points)
		}
		if err != nil {
			return fmt.Errorf("elevation seed entry for trip %s: %w", entry.TripID, err)
		}

		if err := c.PutElevationProfile(ctx, entry.TripID, profile); err != nil {
			return fmt.Errorf("failed to store elevation profile for trip %s: %w", entry.TripID, err)
		}
	}

	logging.LogOperation(logger, "elevation_seed_import_completed",
		slog.Int("profiles", len(entries)),
		slog.String("source", path))
	return nil
}
