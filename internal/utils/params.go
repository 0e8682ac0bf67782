package utils

import (
	"errors"
	"net/http"
	"strings"
)

// ExtractIDFromParams returns the {id} path segment with any ".json" suffix
// removed, so /api/features/trip/t-42.json yields "t-42".
func ExtractIDFromParams(r *http.Request) string {
	return strings.TrimSuffix(r.PathValue("id"), ".json")
}

// ValidateID rejects empty or absurdly long identifiers before they reach
// the store.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id must not be empty")
	}
	if len(id) > 255 {
		return errors.New("id must be at most 255 characters")
	}
	return nil
}

// SplitIDList parses a comma-separated ids query parameter, trimming
// whitespace and dropping empty entries while preserving caller order.
func SplitIDList(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
