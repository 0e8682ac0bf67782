// Package timetable holds the scheduled side of a vehicle trip: ordered stop
// visits with GTFS clock times, and the combiner that concatenates several
// trips into one continuous vehicle duty.
package timetable

import (
	"fmt"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/gtfstime"
)

// Position is a WGS 84 coordinate.
type Position struct {
	Lat float64
	Lon float64
}

// StopVisit is one scheduled call at a stop. Times are seconds from midnight
// of the service day and may exceed 86400 for services running past midnight.
type StopVisit struct {
	StopID           string
	StopName         string
	Position         *Position
	Sequence         int
	ArrivalSeconds   int
	DepartureSeconds int
}

// DwellSeconds is the time the vehicle stands at this stop before departing.
func (v StopVisit) DwellSeconds() (int, error) {
	return gtfstime.Duration(v.ArrivalSeconds, v.DepartureSeconds)
}

// Trip is an immutable ordered sequence of stop visits.
type Trip struct {
	ID     string
	Visits []StopVisit
}

// NewVisit parses the clock strings and builds a StopVisit. The position may
// be nil for stops without coordinates.
func NewVisit(stopID, stopName string, position *Position, sequence int, arrival, departure string) (StopVisit, error) {
	arrivalSeconds, err := gtfstime.ParseClock(arrival)
	if err != nil {
		return StopVisit{}, fmt.Errorf("stop %s arrival: %w", stopID, err)
	}
	departureSeconds, err := gtfstime.ParseClock(departure)
	if err != nil {
		return StopVisit{}, fmt.Errorf("stop %s departure: %w", stopID, err)
	}
	return StopVisit{
		StopID:           stopID,
		StopName:         stopName,
		Position:         position,
		Sequence:         sequence,
		ArrivalSeconds:   arrivalSeconds,
		DepartureSeconds: departureSeconds,
	}, nil
}

// Validate checks the per-trip invariants: at least one visit, strictly
// increasing sequence indices, and arrival never after departure at the same
// stop. An arrival after its own departure surfaces as a
// gtfstime.NegativeDurationError, same as any other ordering corruption.
func (t Trip) Validate() error {
	if len(t.Visits) == 0 {
		return fmt.Errorf("trip %s has no stop visits", t.ID)
	}
	for i, visit := range t.Visits {
		if i > 0 && visit.Sequence <= t.Visits[i-1].Sequence {
			return fmt.Errorf("trip %s: stop sequence not strictly increasing at index %d", t.ID, i)
		}
		if _, err := gtfstime.Duration(visit.ArrivalSeconds, visit.DepartureSeconds); err != nil {
			return fmt.Errorf("trip %s stop %s: %w", t.ID, visit.StopID, err)
		}
	}
	return nil
}
