package reduce

import "github.com/cargosys/tracking-service/internal/models"

// SegmentByImpact splits an already density-reduced route into contiguous
// polyline runs tagged hot or cold. An edge between consecutive points is hot
// when either endpoint's impact meets or exceeds thresholdG. When hotness
// flips, the transition point is written into both the closing and the opening
// segment so the rendered polyline has no gap at the boundary. Runs of fewer
// than 2 points are dropped: they cannot draw a line.
func SegmentByImpact(readings []models.Reading, thresholdG float64) []models.RouteSegment {
	if len(readings) < 2 {
		return nil
	}
	hot := func(r models.Reading) bool { return r.ImpactG >= thresholdG }

	var segments []models.RouteSegment
	cur := models.RouteSegment{
		IsHot:  hot(readings[0]) || hot(readings[1]),
		Points: []models.Position{readings[0].Position},
	}
	for i := 0; i < len(readings)-1; i++ {
		edgeHot := hot(readings[i]) || hot(readings[i+1])
		if edgeHot != cur.IsHot {
			if len(cur.Points) >= 2 {
				segments = append(segments, cur)
			}
			cur = models.RouteSegment{
				IsHot:  edgeHot,
				Points: []models.Position{readings[i].Position},
			}
		}
		cur.Points = append(cur.Points, readings[i+1].Position)
	}
	if len(cur.Points) >= 2 {
		segments = append(segments, cur)
	}
	return segments
}
