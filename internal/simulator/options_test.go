package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(_ *Options) {},
			wantErr: false,
		},
		{
			name:    "zero days is trivial, not malformed",
			mutate:  func(o *Options) { o.Days = 0 },
			wantErr: false,
		},
		{
			name:    "negative days",
			mutate:  func(o *Options) { o.Days = -1 },
			wantErr: true,
		},
		{
			name:    "zero sample interval",
			mutate:  func(o *Options) { o.SampleMinutes = 0 },
			wantErr: true,
		},
		{
			name:    "negative sample interval",
			mutate:  func(o *Options) { o.SampleMinutes = -30 },
			wantErr: true,
		},
		{
			name:    "negative sample jitter",
			mutate:  func(o *Options) { o.SampleJitterMinutes = -5 },
			wantErr: true,
		},
		{
			name:    "negative gps jitter",
			mutate:  func(o *Options) { o.GPSJitterKm = -0.5 },
			wantErr: true,
		},
		{
			name:    "zero impact threshold",
			mutate:  func(o *Options) { o.ImpactThresholdG = 0 },
			wantErr: true,
		},
		{
			name:    "zero battery drain horizon",
			mutate:  func(o *Options) { o.BatteryDrainDays = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	filled := Options{}.withDefaults()
	def := DefaultOptions()

	assert.Equal(t, def.SampleMinutes, filled.SampleMinutes)
	assert.Equal(t, def.ImpactThresholdG, filled.ImpactThresholdG)
	assert.Equal(t, def.BatteryDrainDays, filled.BatteryDrainDays)

	// Days is not defaulted: zero days is a valid request for an empty sequence
	assert.Equal(t, 0, filled.Days)

	// zero jitter means no jitter, not the default bound
	assert.Zero(t, filled.SampleJitterMinutes)
	assert.Zero(t, filled.GPSJitterKm)
}

func TestOptions_Fingerprint(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a := DefaultOptions()
	a.StartDate = start
	b := a

	assert.Equal(t, a.Fingerprint("CS-1"), b.Fingerprint("CS-1"))
	assert.NotEqual(t, a.Fingerprint("CS-1"), a.Fingerprint("CS-2"))

	b.SampleMinutes = 15
	assert.NotEqual(t, a.Fingerprint("CS-1"), b.Fingerprint("CS-1"))

	b = a
	b.StartDate = start.Add(24 * time.Hour)
	assert.NotEqual(t, a.Fingerprint("CS-1"), b.Fingerprint("CS-1"))
}
