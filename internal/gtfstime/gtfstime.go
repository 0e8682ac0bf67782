// Package gtfstime handles GTFS clock times: time-of-day values whose hour
// field may exceed 23 to represent a service day continuing past midnight.
// Times are kept as plain seconds from midnight of the service day so that
// "25:13:00" stays 90780 and never wraps back onto the next calendar day.
package gtfstime

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedTimeError reports a clock string that could not be parsed.
type MalformedTimeError struct {
	Value  string
	Reason string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed clock time %q: %s", e.Value, e.Reason)
}

// NegativeDurationError reports an end time earlier than its start time.
// Overnight services are already encoded with hours >= 24, so a negative
// span always means the upstream timetable is out of order.
type NegativeDurationError struct {
	StartSeconds int
	EndSeconds   int
}

func (e *NegativeDurationError) Error() string {
	return fmt.Sprintf("negative duration: end %d precedes start %d", e.EndSeconds, e.StartSeconds)
}

// ParseClock converts an "H:MM:SS" or "H:MM" clock string into seconds from
// midnight. Hours may be 24 or greater.
func ParseClock(text string) (int, error) {
	fields := strings.Split(strings.TrimSpace(text), ":")
	if len(fields) != 2 && len(fields) != 3 {
		return 0, &MalformedTimeError{Value: text, Reason: "expected H:MM or H:MM:SS"}
	}

	hours, err := parseField(fields[0])
	if err != nil {
		return 0, &MalformedTimeError{Value: text, Reason: "hours are not numeric"}
	}
	if hours < 0 {
		return 0, &MalformedTimeError{Value: text, Reason: "hours are negative"}
	}

	minutes, err := parseField(fields[1])
	if err != nil {
		return 0, &MalformedTimeError{Value: text, Reason: "minutes are not numeric"}
	}
	if minutes < 0 || minutes > 59 {
		return 0, &MalformedTimeError{Value: text, Reason: "minutes out of range 0-59"}
	}

	seconds := 0
	if len(fields) == 3 {
		seconds, err = parseField(fields[2])
		if err != nil {
			return 0, &MalformedTimeError{Value: text, Reason: "seconds are not numeric"}
		}
		if seconds < 0 || seconds > 59 {
			return 0, &MalformedTimeError{Value: text, Reason: "seconds out of range 0-59"}
		}
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// Duration returns end - start in seconds. It never wraps modulo 86400:
// callers pass the raw ParseClock values, which already encode rollover.
func Duration(startSeconds, endSeconds int) (int, error) {
	if endSeconds < startSeconds {
		return 0, &NegativeDurationError{StartSeconds: startSeconds, EndSeconds: endSeconds}
	}
	return endSeconds - startSeconds, nil
}

// FormatClock renders seconds from midnight back into "H:MM:SS" form,
// keeping hours above 23 as-is.
func FormatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func parseField(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}
