// Package models defines the JSON record shapes exchanged with API clients
// and their conversions into the pipeline's internal types.
package models

import (
	"fmt"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

// StopVisitModel is one scheduled stop call as submitted by a client.
// Coordinates are optional; times are GTFS clock strings whose hours may
// exceed 23 for services running past midnight.
type StopVisitModel struct {
	StopID        string   `json:"stop_id"`
	StopName      string   `json:"stop_name"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
	Sequence      int      `json:"sequence"`
	ArrivalTime   string   `json:"arrival_time"`
	DepartureTime string   `json:"departure_time"`
}

// TripModel is a timetabled trip as submitted by a client.
type TripModel struct {
	TripID string           `json:"trip_id"`
	Stops  []StopVisitModel `json:"stops"`
}

// ToTrip parses and validates the submitted trip.
func (m TripModel) ToTrip() (timetable.Trip, error) {
	visits := make([]timetable.StopVisit, 0, len(m.Stops))
	for _, stop := range m.Stops {
		var position *timetable.Position
		if stop.Lat != nil && stop.Lon != nil {
			position = &timetable.Position{Lat: *stop.Lat, Lon: *stop.Lon}
		}
		visit, err := timetable.NewVisit(stop.StopID, stop.StopName, position, stop.Sequence, stop.ArrivalTime, stop.DepartureTime)
		if err != nil {
			return timetable.Trip{}, fmt.Errorf("trip %s: %w", m.TripID, err)
		}
		visits = append(visits, visit)
	}

	trip := timetable.Trip{ID: m.TripID, Visits: visits}
	if err := trip.Validate(); err != nil {
		return timetable.Trip{}, err
	}
	return trip, nil
}

// ElevationPointModel is one elevation sample as submitted by a client.
type ElevationPointModel struct {
	CumulativeDistanceM float64  `json:"cumulative_distance_m"`
	AltitudeM           float64  `json:"altitude_m"`
	Lat                 *float64 `json:"lat,omitempty"`
	Lon                 *float64 `json:"lon,omitempty"`
}

// ElevationProfileModel is an elevation trace as submitted by a client.
// Positions come either per point (lat/lon) or, more compactly, as an
// encoded polyline covering all samples in order, with the distances and
// altitudes in parallel arrays.
type ElevationProfileModel struct {
	Presegmented   bool                  `json:"presegmented"`
	Points         []ElevationPointModel `json:"points,omitempty"`
	PointsPolyline string                `json:"points_polyline,omitempty"`
	DistancesM     []float64             `json:"distances_m,omitempty"`
	AltitudesM     []float64             `json:"altitudes_m,omitempty"`
}

// ToProfile converts the submitted trace into a tagged elevation profile.
func (m ElevationProfileModel) ToProfile() (elevation.Profile, error) {
	points, err := m.toPoints()
	if err != nil {
		return elevation.Profile{}, err
	}
	if m.Presegmented {
		return elevation.NewPresegmentedProfile(points)
	}
	return elevation.NewRawProfile(points)
}

func (m ElevationProfileModel) toPoints() ([]elevation.Point, error) {
	if m.PointsPolyline != "" {
		return elevation.PointsFromPolyline(m.PointsPolyline, m.DistancesM, m.AltitudesM)
	}

	points := make([]elevation.Point, len(m.Points))
	for i, point := range m.Points {
		var position *timetable.Position
		if point.Lat != nil && point.Lon != nil {
			position = &timetable.Position{Lat: *point.Lat, Lon: *point.Lon}
		}
		points[i] = elevation.Point{
			CumulativeDistanceM: point.CumulativeDistanceM,
			AltitudeM:           point.AltitudeM,
			Position:            position,
		}
	}
	return points, nil
}

// ComputeRequest is the inline payload of POST /api/features/compute.json:
// one or more trips in traversal order plus the elevation trace covering
// them.
type ComputeRequest struct {
	Trips     []TripModel           `json:"trips"`
	Elevation ElevationProfileModel `json:"elevation"`
}

// ToTrips parses every submitted trip, preserving caller order.
func (r ComputeRequest) ToTrips() ([]timetable.Trip, error) {
	trips := make([]timetable.Trip, 0, len(r.Trips))
	for _, model := range r.Trips {
		trip, err := model.ToTrip()
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}
