// Package reduce implements the time-series reduction pipeline between a full
// reading sequence and one rendering pass: range filtering, extrema-preserving
// downsampling, incident extraction, route segmentation, density thinning, and
// CSV export.
//
// Every function is a pure function of its inputs and returns a fresh view;
// nothing here mutates or retains the input slice. Changing a window or
// threshold means recomputing from the full sequence, never refining a prior
// result.
package reduce

import (
	"sort"
	"time"

	"github.com/cargosys/tracking-service/internal/models"
)

// SortByTime returns a copy of readings sorted ascending by timestamp.
// Generated sequences arrive sorted; externally supplied data must go through
// this before the rest of the pipeline.
func SortByTime(readings []models.Reading) []models.Reading {
	out := make([]models.Reading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// FilterRange returns readings with timestamp in [from, to] inclusive.
// A zero from or to means unbounded on that side, so two zero bounds are the
// identity filter. from after to is a valid degenerate window and yields an
// empty result. Order is preserved.
func FilterRange(readings []models.Reading, from, to time.Time) []models.Reading {
	out := make([]models.Reading, 0, len(readings))
	for _, r := range readings {
		if !from.IsZero() && r.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && r.Timestamp.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Incidents returns the readings whose impact meets or exceeds thresholdG,
// preserving order. The comparison is inclusive: a reading exactly at the
// threshold counts.
func Incidents(readings []models.Reading, thresholdG float64) []models.Reading {
	var out []models.Reading
	for _, r := range readings {
		if r.ImpactG >= thresholdG {
			out = append(out, r)
		}
	}
	return out
}
