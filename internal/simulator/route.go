package simulator

import (
	"math"
	"time"

	"github.com/cargosys/tracking-service/internal/models"
)

// Route geometry for the repeating Rotterdam-Utrecht-Berlin corridor.
// The tables are package-level configuration and are never mutated at runtime;
// reversed variants are materialized once at init.
var (
	rotterdamPort = models.Waypoint{Name: "Rotterdam Port", Latitude: 51.9475, Longitude: 4.1427}
	utrechtHub    = models.Waypoint{Name: "Utrecht Hub", Latitude: 52.0907, Longitude: 5.1214}
	berlinDepot   = models.Waypoint{Name: "Berlin Depot", Latitude: 52.5200, Longitude: 13.4050}

	shortHaulRoute = []models.Waypoint{
		rotterdamPort,
		{Name: "Gouda", Latitude: 52.0115, Longitude: 4.7105},
		utrechtHub,
	}

	longHaulRoute = []models.Waypoint{
		utrechtHub,
		{Name: "Arnhem", Latitude: 51.9851, Longitude: 5.8987},
		{Name: "Duisburg", Latitude: 51.4344, Longitude: 6.7623},
		{Name: "Dortmund", Latitude: 51.5136, Longitude: 7.4653},
		{Name: "Hannover", Latitude: 52.3759, Longitude: 9.7320},
		berlinDepot,
	}
)

// legSpec describes one entry of the fixed leg cycle: its phase, nominal
// duration, and the geometry it travels (a single waypoint for stationary legs).
type legSpec struct {
	phase     models.LegPhase
	minutes   int
	waypoints []models.Waypoint
}

// legCycle is the fixed repeating journey pattern. Legs are laid end to end
// with no gaps or overlaps; the cycle is 49h long so day/night effects drift
// across cycles instead of repeating in lockstep.
var legCycle = []legSpec{
	{models.PhaseOutboundShortHaul, 150, shortHaulRoute},
	{models.PhaseStop, 120, []models.Waypoint{utrechtHub}},
	{models.PhaseLongHaulOutbound, 660, longHaulRoute},
	{models.PhaseRest, 540, []models.Waypoint{berlinDepot}},
	{models.PhaseLongHaulReturn, 660, reversed(longHaulRoute)},
	{models.PhaseStop, 120, []models.Waypoint{utrechtHub}},
	{models.PhaseInboundShortHaul, 150, reversed(shortHaulRoute)},
	{models.PhaseRest, 540, []models.Waypoint{rotterdamPort}},
}

func reversed(wps []models.Waypoint) []models.Waypoint {
	out := make([]models.Waypoint, len(wps))
	for i, wp := range wps {
		out[len(wps)-1-i] = wp
	}
	return out
}

// scheduledLeg is a leg instantiated on the timeline together with its geometry
type scheduledLeg struct {
	models.Leg
	waypoints []models.Waypoint
}

// buildTimeline lays the leg cycle end to end from start until the horizon is
// covered. The instantiated To of one leg equals the From of the next; the
// final leg is truncated when it would overshoot end.
func buildTimeline(start, end time.Time) []scheduledLeg {
	var legs []scheduledLeg
	cursor := start
	for i := 0; cursor.Before(end); i++ {
		spec := legCycle[i%len(legCycle)]
		to := cursor.Add(time.Duration(spec.minutes) * time.Minute)
		if to.After(end) {
			to = end
		}
		legs = append(legs, scheduledLeg{
			Leg:       models.Leg{Phase: spec.phase, From: cursor, To: to},
			waypoints: spec.waypoints,
		})
		cursor = to
	}
	return legs
}

// Timeline returns the leg schedule covering [start, start+d), for consumers
// that need to correlate readings with journey phases.
func Timeline(start time.Time, d time.Duration) []models.Leg {
	scheduled := buildTimeline(start.UTC(), start.UTC().Add(d))
	legs := make([]models.Leg, len(scheduled))
	for i, sl := range scheduled {
		legs[i] = sl.Leg
	}
	return legs
}

const earthRadiusKm = 6371.0

// distanceKm is the great-circle distance between two waypoints (haversine)
func distanceKm(a, b models.Waypoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// lerpPosition interpolates between two waypoints. Linear interpolation in
// degrees is fine at corridor scale.
func lerpPosition(a, b models.Waypoint, t float64) models.Position {
	return models.Position{
		Latitude:  a.Latitude + (b.Latitude-a.Latitude)*t,
		Longitude: a.Longitude + (b.Longitude-a.Longitude)*t,
	}
}

const (
	kmPerDegreeLat = 110.574
	kmPerDegreeLon = 111.320 // at the equator, scaled by cos(lat)
)

// jitterPosition displaces p uniformly within a disk of radius radiusKm.
// The radial coordinate uses sqrt sampling so the density is uniform over the
// disk's area rather than concentrated at the center.
func jitterPosition(p models.Position, radiusKm float64, rng randSource) models.Position {
	if radiusKm <= 0 {
		return p
	}
	r := radiusKm * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()

	dLat := r * math.Cos(theta) / kmPerDegreeLat
	dLon := r * math.Sin(theta) / (kmPerDegreeLon * math.Cos(p.Latitude*math.Pi/180))
	return models.Position{
		Latitude:  p.Latitude + dLat,
		Longitude: p.Longitude + dLon,
	}
}
