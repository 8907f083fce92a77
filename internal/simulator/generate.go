package simulator

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/cargosys/tracking-service/internal/models"
)

// scriptedEvent injects a deterministic impact at a minute offset within every
// leg of the given phase. Offsets are minutes into the leg, not wall-clock
// instants, so jittered sampling cannot miss them; magnitudes are multiples of
// the configured alert threshold so raising the threshold never silently hides
// a scripted event.
type scriptedEvent struct {
	phase    models.LegPhase
	minute   float64
	multiple float64
}

var scriptedEvents = []scriptedEvent{
	{models.PhaseStop, 45, 1.25},             // forklift bump while loading
	{models.PhaseLongHaulOutbound, 180, 3.9}, // severe road event
	{models.PhaseLongHaulOutbound, 210, 2.2}, // first aftershock
	{models.PhaseLongHaulOutbound, 240, 1.3}, // second aftershock
}

// seedFor hashes a tracking code to the 32-bit PRNG seed
func seedFor(trackingCode string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(trackingCode))
	return h.Sum32()
}

// Generate produces the full synthetic reading sequence for a tracking code.
// Output is sorted ascending by timestamp with no duplicate instants, every
// field finite and within its physical range, and battery percent
// non-increasing. Identical inputs yield identical output.
func Generate(trackingCode string, opts Options) ([]models.Reading, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Days == 0 {
		return []models.Reading{}, nil
	}

	span := time.Duration(opts.Days) * 24 * time.Hour
	start := opts.StartDate
	if start.IsZero() {
		start = time.Now().UTC().Add(-span)
	}
	start = start.UTC()
	end := start.Add(span)

	rng := rand.New(rand.NewSource(int64(seedFor(trackingCode))))
	legs := buildTimeline(start, end)

	estimated := opts.Days*24*60/opts.SampleMinutes + len(legs)*4
	readings := make([]models.Reading, 0, estimated)

	for _, leg := range legs {
		for _, s := range sampleLeg(leg, opts, rng) {
			if s.at.Before(start) || s.at.After(end) {
				continue
			}
			elapsedDays := int(s.at.Sub(start).Hours() / 24)
			rms, hz := synthVibration(s.at, leg.Phase, rng)

			impact := synthImpactBaseline(opts.ImpactThresholdG, rng)
			if s.scripted > 0 {
				impact = s.scripted * opts.ImpactThresholdG
			}

			readings = append(readings, models.Reading{
				Timestamp:           s.at,
				TrackingCode:        trackingCode,
				Position:            jitterPosition(s.pos, opts.GPSJitterKm, rng),
				TemperatureC:        synthTemperature(s.at, leg.Phase, s.nominalMinute, rng),
				RelativeHumidityPct: synthHumidity(s.at, elapsedDays, rng),
				ImpactG:             impact,
				VibrationRMS:        rms,
				VibrationHz:         hz,
			})
		}
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
	readings = dedupeTimestamps(readings)
	fillBattery(readings, start, opts, rng)
	return readings, nil
}

// legSample is one nominal sampling slot of a leg: the jittered instant, the
// pre-jitter position on the route, the nominal minutes into the leg (used for
// phase-dependent drift), and the scripted impact multiple if this slot hosts
// a scripted event.
type legSample struct {
	at            time.Time
	pos           models.Position
	nominalMinute float64
	scripted      float64
}

// sampleLeg lays out the leg's nominal sampling grid, assigns each slot a
// route position with per-segment counts apportioned by great-circle distance,
// perturbs instants by the configured jitter, and marks scripted event slots.
func sampleLeg(leg scheduledLeg, opts Options, rng randSource) []legSample {
	legDur := leg.To.Sub(leg.From)
	if legDur <= 0 {
		return nil
	}
	interval := time.Duration(opts.SampleMinutes) * time.Minute
	n := int(math.Round(float64(legDur) / float64(interval)))
	if n < 2 {
		n = 2
	}
	segments := len(leg.waypoints) - 1
	if segments > 0 && n < 2*segments {
		// every inter-waypoint segment gets at least 2 samples
		n = 2 * segments
	}

	step := legDur / time.Duration(n)
	stepMinutes := step.Minutes()
	jitter := float64(opts.SampleJitterMinutes)

	samples := make([]legSample, n)
	for i := range samples {
		nominal := leg.From.Add(time.Duration(i) * step)
		offset := (rng.Float64()*2 - 1) * jitter
		samples[i] = legSample{
			at:            nominal.Add(time.Duration(offset * float64(time.Minute))).Truncate(time.Second),
			nominalMinute: float64(i) * stepMinutes,
		}
	}

	if segments > 0 {
		assignRoutePositions(samples, leg.waypoints)
	} else {
		at := leg.waypoints[0]
		for i := range samples {
			samples[i].pos = models.Position{Latitude: at.Latitude, Longitude: at.Longitude}
		}
	}

	markScripted(samples, leg.Phase, stepMinutes)
	return samples
}

// assignRoutePositions distributes the leg's samples across inter-waypoint
// segments proportionally to each segment's distance (so dense waypoint
// clusters are not over-weighted), minimum 2 per segment, then interpolates
// evenly within each segment.
func assignRoutePositions(samples []legSample, wps []models.Waypoint) {
	counts := apportionByDistance(len(samples), wps)
	idx := 0
	for seg := 0; seg < len(wps)-1; seg++ {
		c := counts[seg]
		for local := 0; local < c && idx < len(samples); local++ {
			t := float64(local) / float64(c-1)
			samples[idx].pos = lerpPosition(wps[seg], wps[seg+1], t)
			idx++
		}
	}
	// rounding slack lands on the final waypoint
	for ; idx < len(samples); idx++ {
		last := wps[len(wps)-1]
		samples[idx].pos = models.Position{Latitude: last.Latitude, Longitude: last.Longitude}
	}
}

// apportionByDistance splits n samples across the inter-waypoint segments in
// proportion to great-circle length, guaranteeing at least 2 per segment and
// summing exactly to n (largest-remainder rounding, corrected against the
// longest segments).
func apportionByDistance(n int, wps []models.Waypoint) []int {
	segments := len(wps) - 1
	counts := make([]int, segments)
	dists := make([]float64, segments)
	total := 0.0
	for i := 0; i < segments; i++ {
		dists[i] = distanceKm(wps[i], wps[i+1])
		total += dists[i]
	}
	sum := 0
	for i := range counts {
		counts[i] = int(math.Round(float64(n) * dists[i] / total))
		if counts[i] < 2 {
			counts[i] = 2
		}
		sum += counts[i]
	}
	for sum > n {
		// shave the largest count that can still afford it
		largest := -1
		for i := range counts {
			if counts[i] > 2 && (largest < 0 || counts[i] > counts[largest]) {
				largest = i
			}
		}
		if largest < 0 {
			break
		}
		counts[largest]--
		sum--
	}
	for sum < n {
		longest := 0
		for i := range dists {
			if dists[i] > dists[longest] {
				longest = i
			}
		}
		counts[longest]++
		sum++
	}
	return counts
}

// markScripted pins each scripted event of the leg's phase to the sampling
// slot nearest its minute offset. Events are listed in ascending offset order;
// when a coarse sampling interval would collapse two events onto one slot the
// later event shifts to the next slot so magnitudes stay distinct.
func markScripted(samples []legSample, phase models.LegPhase, stepMinutes float64) {
	last := -1
	for _, ev := range scriptedEvents {
		if ev.phase != phase {
			continue
		}
		idx := int(math.Round(ev.minute / stepMinutes))
		if idx <= last {
			idx = last + 1
		}
		if idx >= len(samples) {
			break
		}
		samples[idx].scripted = ev.multiple
		last = idx
	}
}

// dedupeTimestamps drops later entries sharing an instant with their
// predecessor. Input must be sorted.
func dedupeTimestamps(readings []models.Reading) []models.Reading {
	out := readings[:0]
	for i, r := range readings {
		if i > 0 && !r.Timestamp.After(out[len(out)-1].Timestamp) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// fillBattery runs after sorting: an idealized linear discharge over the drain
// horizon plus noise, floored against the previous sample so the sequence
// never charges, with voltage derived from percent.
func fillBattery(readings []models.Reading, start time.Time, opts Options, rng randSource) {
	horizon := float64(opts.BatteryDrainDays) * 24
	prev := 100.0
	for i := range readings {
		elapsedHours := readings[i].Timestamp.Sub(start).Hours()
		pct := 100*(1-elapsedHours/horizon) + rng.NormFloat64()*0.15
		pct = clamp(pct, 0, 100)
		if pct > prev {
			pct = prev
		}
		prev = pct
		readings[i].BatteryPct = pct
		readings[i].BatteryVoltage = batteryVoltage(pct, rng)
	}
}
