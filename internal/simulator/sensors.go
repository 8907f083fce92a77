package simulator

import (
	"math"
	"time"

	"github.com/cargosys/tracking-service/internal/models"
)

// randSource is the slice of *rand.Rand the synthesis steps need.
// The generator threads one instance created per Generate call; nothing here
// touches shared state.
type randSource interface {
	Float64() float64
	NormFloat64() float64
}

// Physical clamping ranges. Clamping happens here as part of synthesis, not as
// error handling: generator output is always within these bounds.
const (
	minTempC = -25.0
	maxTempC = 45.0

	minHumidityPct = 15.0
	maxHumidityPct = 100.0

	minCellVoltage = 3.0
	maxCellVoltage = 4.25
)

// reeferOffsetC is subtracted on refrigerated long-haul legs
const reeferOffsetC = 9.0

// rainCycleDays / rainWindowDays define the recurring multi-day rain window:
// days where elapsedDays mod rainCycleDays < rainWindowDays get a humidity boost.
const (
	rainCycleDays  = 9
	rainWindowDays = 2
	rainBoostPct   = 12.0
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// minuteOfDay returns the UTC minute within t's day
func minuteOfDay(t time.Time) float64 {
	return float64(t.UTC().Hour()*60 + t.UTC().Minute())
}

// dayCycle is a unit sinusoid peaking at 14:00 UTC
func dayCycle(t time.Time) float64 {
	return math.Cos(2 * math.Pi * (minuteOfDay(t) - 840) / 1440)
}

func isWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// synthTemperature models a day/night sinusoid with phase-dependent offsets:
// active cooling on long-haul legs, a slow warm-up while parked.
func synthTemperature(t time.Time, phase models.LegPhase, minutesIntoLeg float64, rng randSource) float64 {
	temp := 13.5 + 7.0*dayCycle(t) + rng.NormFloat64()*0.4
	if phase.LongHaul() {
		temp -= reeferOffsetC
	} else if !phase.Traveling() {
		// parked trailers heat up slowly, capped at a few degrees
		temp += math.Min(3.0, minutesIntoLeg/60*0.6)
	}
	return clamp(temp, minTempC, maxTempC)
}

// synthHumidity is in inverse phase with temperature (humid nights, drier
// afternoons) plus the recurring rain-window boost.
func synthHumidity(t time.Time, elapsedDays int, rng randSource) float64 {
	rh := 62.0 - 14.0*dayCycle(t) + rng.NormFloat64()*2.0
	if elapsedDays%rainCycleDays < rainWindowDays {
		rh += rainBoostPct
	}
	return clamp(rh, minHumidityPct, maxHumidityPct)
}

// synthVibration returns (rms, dominant Hz) from phase-dependent baseline
// bands. Weekends damp both, and the dominant frequency couples upward with
// RMS so rough readings also read fast.
func synthVibration(t time.Time, phase models.LegPhase, rng randSource) (float64, float64) {
	var rms, hz float64
	if phase.Traveling() {
		rms = 0.45 + rng.Float64()*0.35
		hz = 22.0 + rng.Float64()*8.0
	} else {
		rms = 0.02 + rng.Float64()*0.06
		hz = 2.0 + rng.Float64()*4.0
	}
	if isWeekend(t) {
		rms *= 0.7
		hz *= 0.85
	}
	hz += rms * 6.0
	return rms, hz
}

// synthImpactBaseline is the unscripted impact signal: near-zero with rare
// small spikes that stay below the alert threshold.
func synthImpactBaseline(thresholdG float64, rng randSource) float64 {
	impact := math.Abs(rng.NormFloat64()) * 0.08
	if rng.Float64() < 0.015 {
		impact += rng.Float64() * 0.5 * thresholdG
	}
	return impact
}

// batteryVoltage derives cell voltage as an affine function of charge percent
func batteryVoltage(pct float64, rng randSource) float64 {
	v := 3.3 + 0.9*pct/100 + rng.NormFloat64()*0.01
	return clamp(v, minCellVoltage, maxCellVoltage)
}
