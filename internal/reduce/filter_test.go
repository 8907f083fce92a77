package reduce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargosys/tracking-service/internal/models"
)

var testBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testReading builds a reading offset from testBase by whole minutes
func testReading(minute int, impactG float64) models.Reading {
	return models.Reading{
		Timestamp:    testBase.Add(time.Duration(minute) * time.Minute),
		TrackingCode: "CS-TEST",
		Position:     models.Position{Latitude: 52.0 + float64(minute)*0.001, Longitude: 5.0},
		ImpactG:      impactG,
		BatteryPct:   90,
	}
}

func testSeries(impacts ...float64) []models.Reading {
	out := make([]models.Reading, len(impacts))
	for i, g := range impacts {
		out[i] = testReading(i*10, g)
	}
	return out
}

func TestSortByTime(t *testing.T) {
	shuffled := []models.Reading{
		testReading(30, 0),
		testReading(0, 0),
		testReading(20, 0),
		testReading(10, 0),
	}
	original := make([]models.Reading, len(shuffled))
	copy(original, shuffled)

	sorted := SortByTime(shuffled)

	for i := 1; i < len(sorted); i++ {
		assert.True(t, sorted[i].Timestamp.After(sorted[i-1].Timestamp))
	}
	// input untouched
	assert.Equal(t, original, shuffled)
}

func TestFilterRange(t *testing.T) {
	readings := testSeries(0, 0, 0, 0, 0) // minutes 0, 10, 20, 30, 40

	tests := []struct {
		name        string
		from, to    time.Time
		wantMinutes []int
	}{
		{
			name:        "unbounded is identity",
			wantMinutes: []int{0, 10, 20, 30, 40},
		},
		{
			name:        "inclusive lower bound",
			from:        testBase.Add(10 * time.Minute),
			wantMinutes: []int{10, 20, 30, 40},
		},
		{
			name:        "inclusive upper bound",
			to:          testBase.Add(30 * time.Minute),
			wantMinutes: []int{0, 10, 20, 30},
		},
		{
			name:        "both bounds",
			from:        testBase.Add(10 * time.Minute),
			to:          testBase.Add(30 * time.Minute),
			wantMinutes: []int{10, 20, 30},
		},
		{
			name:        "inverted window is empty, not an error",
			from:        testBase.Add(30 * time.Minute),
			to:          testBase.Add(10 * time.Minute),
			wantMinutes: []int{},
		},
		{
			name:        "window past the data",
			from:        testBase.Add(2 * time.Hour),
			wantMinutes: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRange(readings, tt.from, tt.to)

			require.Len(t, got, len(tt.wantMinutes))
			for i, m := range tt.wantMinutes {
				assert.Equal(t, testBase.Add(time.Duration(m)*time.Minute), got[i].Timestamp)
			}
			// every kept reading is inside the window
			for _, r := range got {
				if !tt.from.IsZero() {
					assert.False(t, r.Timestamp.Before(tt.from))
				}
				if !tt.to.IsZero() {
					assert.False(t, r.Timestamp.After(tt.to))
				}
			}
		})
	}
}

func TestFilterRange_Empty(t *testing.T) {
	got := FilterRange(nil, testBase, testBase.Add(time.Hour))
	assert.Empty(t, got)
}

func TestIncidents(t *testing.T) {
	readings := testSeries(0.1, 2.0, 1.99, 7.8, 0.5)

	incidents := Incidents(readings, 2.0)

	require.Len(t, incidents, 2)
	// boundary is inclusive: exactly-at-threshold counts
	assert.Equal(t, 2.0, incidents[0].ImpactG)
	assert.Equal(t, 7.8, incidents[1].ImpactG)
	assert.True(t, incidents[1].Timestamp.After(incidents[0].Timestamp), "order preserved")
}

func TestIncidents_Empty(t *testing.T) {
	assert.Empty(t, Incidents(nil, 1.0))
	assert.Empty(t, Incidents(testSeries(0.1, 0.2), 1.0))
}
