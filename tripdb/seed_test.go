package tripdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportElevationFromFile(t *testing.T) {
	client := newTestClient(t)

	seed := `[
		{
			"trip_id": "t1",
			"presegmented": false,
			"points": [
				{"cumulative_distance_m": 0, "altitude_m": 300, "lat": 46.0, "lon": 8.95},
				{"cumulative_distance_m": 400, "altitude_m": 312, "lat": 46.01, "lon": 8.96}
			]
		},
		{
			"trip_id": "t2",
			"presegmented": true,
			"points": [
				{"cumulative_distance_m": 0, "altitude_m": 250},
				{"cumulative_distance_m": 500, "altitude_m": 245}
			]
		}
	]`
	path := filepath.Join(t.TempDir(), "elevation.json")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	require.NoError(t, client.ImportElevationFromFile(context.Background(), path))

	raw, err := client.GetElevationProfile(context.Background(), "t1")
	require.NoError(t, err)
	assert.False(t, raw.Presegmented)
	require.Len(t, raw.Points, 2)
	require.NotNil(t, raw.Points[0].Position)
	assert.Equal(t, 46.0, raw.Points[0].Position.Lat)

	pre, err := client.GetElevationProfile(context.Background(), "t2")
	require.NoError(t, err)
	assert.True(t, pre.Presegmented)
	assert.Nil(t, pre.Points[0].Position)
}

func TestImportElevationFromFileRejectsBadEntry(t *testing.T) {
	client := newTestClient(t)

	// Distances must be non-decreasing.
	seed := `[
		{
			"trip_id": "t1",
			"presegmented": false,
			"points": [
				{"cumulative_distance_m": 400, "altitude_m": 300},
				{"cumulative_distance_m": 0, "altitude_m": 312}
			]
		}
	]`
	path := filepath.Join(t.TempDir(), "elevation.json")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	err := client.ImportElevationFromFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "t1")
}
