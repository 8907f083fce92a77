// Package simulator generates deterministic synthetic telemetry for a tracking code.
//
// A sequence is a pure function of the tracking code and the options: the code is
// hashed to a 32-bit seed, a fresh PRNG is built from it per call, and no wall-clock
// or external entropy influences sample values. Only the start instant, when left
// unset, depends on "now".
package simulator

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidOptions is returned by Generate when the configuration is malformed
var ErrInvalidOptions = errors.New("simulator: invalid options")

// Options configures one generation call.
// Zero values for SampleMinutes, ImpactThresholdG and BatteryDrainDays mean
// "use the default" (zero is invalid for them anyway). Zero jitter means no
// jitter and zero Days requests an empty sequence, so callers wanting the
// documented defaults should start from DefaultOptions().
type Options struct {
	// Total duration to cover, in days
	Days int

	// Nominal sampling interval in minutes (default 30)
	SampleMinutes int

	// Uniform jitter bound applied to each nominal sample instant, in minutes (default 5)
	SampleJitterMinutes int

	// Radius of the uniform-disk GPS jitter, in km (default 0.25)
	GPSJitterKm float64

	// Impact alert threshold in g; scripted event magnitudes scale with it (default 2.0)
	ImpactThresholdG float64

	// First instant of the generation window; zero means Days before now
	StartDate time.Time

	// Days for the battery to drain linearly from 100% to 0% (default 90)
	BatteryDrainDays int
}

// DefaultOptions returns the documented defaults for a two-month trace
func DefaultOptions() Options {
	return Options{
		Days:                60,
		SampleMinutes:       30,
		SampleJitterMinutes: 5,
		GPSJitterKm:         0.25,
		ImpactThresholdG:    2.0,
		BatteryDrainDays:    90,
	}
}

// withDefaults fills the fields where zero means unset. Days and the jitter
// bounds are left alone: zero days and zero jitter are both meaningful.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SampleMinutes == 0 {
		o.SampleMinutes = def.SampleMinutes
	}
	if o.ImpactThresholdG == 0 {
		o.ImpactThresholdG = def.ImpactThresholdG
	}
	if o.BatteryDrainDays == 0 {
		o.BatteryDrainDays = def.BatteryDrainDays
	}
	return o
}

// Validate distinguishes malformed configuration (an error) from merely trivial
// input: negative durations and non-positive intervals fail fast, Days == 0 does not.
func (o Options) Validate() error {
	if o.Days < 0 {
		return fmt.Errorf("%w: days must be >= 0, got %d", ErrInvalidOptions, o.Days)
	}
	if o.SampleMinutes <= 0 {
		return fmt.Errorf("%w: sample interval must be positive, got %d minutes", ErrInvalidOptions, o.SampleMinutes)
	}
	if o.SampleJitterMinutes < 0 {
		return fmt.Errorf("%w: sample jitter must be >= 0, got %d minutes", ErrInvalidOptions, o.SampleJitterMinutes)
	}
	if o.GPSJitterKm < 0 {
		return fmt.Errorf("%w: gps jitter must be >= 0, got %g km", ErrInvalidOptions, o.GPSJitterKm)
	}
	if o.ImpactThresholdG <= 0 {
		return fmt.Errorf("%w: impact threshold must be positive, got %g g", ErrInvalidOptions, o.ImpactThresholdG)
	}
	if o.BatteryDrainDays <= 0 {
		return fmt.Errorf("%w: battery drain horizon must be positive, got %d days", ErrInvalidOptions, o.BatteryDrainDays)
	}
	return nil
}

// Fingerprint returns a stable identifier for the (code, options) combination,
// used by callers that cache generated sequences.
func (o Options) Fingerprint(trackingCode string) string {
	start := int64(0)
	if !o.StartDate.IsZero() {
		start = o.StartDate.UTC().Unix()
	}
	return fmt.Sprintf("%s:d%d:s%d:j%d:g%g:t%g:b%d:a%d",
		trackingCode, o.Days, o.SampleMinutes, o.SampleJitterMinutes,
		o.GPSJitterKm, o.ImpactThresholdG, o.BatteryDrainDays, start)
}
