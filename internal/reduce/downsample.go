package reduce

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cargosys/tracking-service/internal/models"
)

// ErrInvalidBudget is returned by Downsample for a non-positive point budget
var ErrInvalidBudget = errors.New("reduce: point budget must be positive")

// Downsample reduces readings to a chart-friendly subsequence without losing
// impact spikes. Input at or under the budget is returned unchanged. Longer
// input is partitioned into min(maxPoints, n) equal-width time buckets and
// each non-empty bucket keeps its first reading, its last, and the one with
// maximum impact, deduplicated. The result is sorted by timestamp and bounded
// by 3x the bucket count. Larger than maxPoints, but unlike stride sampling
// it can never silently drop a spike.
func Downsample(readings []models.Reading, maxPoints int) ([]models.Reading, error) {
	if maxPoints <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidBudget, maxPoints)
	}
	n := len(readings)
	if n <= maxPoints {
		// identity in content, but still a fresh slice per the package contract
		out := make([]models.Reading, n)
		copy(out, readings)
		return out, nil
	}

	minTS, maxTS := readings[0].Timestamp, readings[0].Timestamp
	for _, r := range readings[1:] {
		if r.Timestamp.Before(minTS) {
			minTS = r.Timestamp
		}
		if r.Timestamp.After(maxTS) {
			maxTS = r.Timestamp
		}
	}

	bucketCount := maxPoints
	if n < bucketCount {
		bucketCount = n
	}
	spanMs := maxTS.Sub(minTS).Milliseconds()
	if spanMs <= 0 {
		// all timestamps identical: one bucket holds everything
		spanMs = 1
	}
	widthMs := (spanMs + int64(bucketCount) - 1) / int64(bucketCount)

	type bucket struct {
		first, last, peak int
	}
	buckets := make(map[int64]*bucket, bucketCount)
	for i, r := range readings {
		b := r.Timestamp.Sub(minTS).Milliseconds() / widthMs
		if b >= int64(bucketCount) {
			b = int64(bucketCount) - 1
		}
		cur, ok := buckets[b]
		if !ok {
			buckets[b] = &bucket{first: i, last: i, peak: i}
			continue
		}
		if readings[i].Timestamp.Before(readings[cur.first].Timestamp) {
			cur.first = i
		}
		if !readings[i].Timestamp.Before(readings[cur.last].Timestamp) {
			cur.last = i
		}
		if r.ImpactG > readings[cur.peak].ImpactG {
			cur.peak = i
		}
	}

	kept := make(map[int]struct{}, 3*len(buckets))
	for _, b := range buckets {
		kept[b.first] = struct{}{}
		kept[b.last] = struct{}{}
		kept[b.peak] = struct{}{}
	}
	out := make([]models.Reading, 0, len(kept))
	for i := range kept {
		out = append(out, readings[i])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
