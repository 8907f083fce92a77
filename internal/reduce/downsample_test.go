package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargosys/tracking-service/internal/models"
)

func TestDownsample_IdentityUnderBudget(t *testing.T) {
	readings := testSeries(0.1, 0.2, 0.3)

	got, err := Downsample(readings, 3)
	require.NoError(t, err)
	assert.Equal(t, readings, got)

	got, err = Downsample(readings, 100)
	require.NoError(t, err)
	assert.Equal(t, readings, got)
}

func TestDownsample_IdentityDoesNotAliasInput(t *testing.T) {
	readings := testSeries(0.1, 0.2, 0.3)

	got, err := Downsample(readings, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// mutating the returned view must leave the source sequence untouched
	got[0].ImpactG = 99.9
	assert.Equal(t, 0.1, readings[0].ImpactG)
}

func TestDownsample_Empty(t *testing.T) {
	got, err := Downsample(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDownsample_InvalidBudget(t *testing.T) {
	for _, budget := range []int{0, -5} {
		_, err := Downsample(testSeries(0.1), budget)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidBudget)
	}
}

func TestDownsample_BoundAndOrdering(t *testing.T) {
	// 500 readings, 10-minute spacing
	readings := make([]models.Reading, 500)
	for i := range readings {
		readings[i] = testReading(i*10, 0.1)
	}

	const maxPoints = 40
	got, err := Downsample(readings, maxPoints)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(got), 3*maxPoints)
	assert.Less(t, len(got), len(readings))

	for i := 1; i < len(got); i++ {
		require.True(t, got[i].Timestamp.After(got[i-1].Timestamp),
			"output not strictly increasing at %d", i)
	}
}

func TestDownsample_PreservesSpikes(t *testing.T) {
	readings := make([]models.Reading, 1000)
	for i := range readings {
		readings[i] = testReading(i*10, 0.1)
	}
	// a lone severe spike mid-series must survive any bucketing
	readings[613].ImpactG = 8.4

	got, err := Downsample(readings, 25)
	require.NoError(t, err)
	require.Less(t, len(got), len(readings))

	found := false
	for _, r := range got {
		if r.ImpactG == 8.4 {
			found = true
			break
		}
	}
	assert.True(t, found, "downsampling dropped the impact spike")
}

func TestDownsample_BucketEndpointsKept(t *testing.T) {
	readings := make([]models.Reading, 100)
	for i := range readings {
		readings[i] = testReading(i, 0.1)
	}

	got, err := Downsample(readings, 10)
	require.NoError(t, err)

	// overall first and last reading are first/last of their buckets
	assert.Equal(t, readings[0].Timestamp, got[0].Timestamp)
	assert.Equal(t, readings[99].Timestamp, got[len(got)-1].Timestamp)
}

func TestDownsample_ZeroSpan(t *testing.T) {
	// all samples share one instant: everything lands in bucket zero
	readings := make([]models.Reading, 10)
	for i := range readings {
		readings[i] = models.Reading{
			Timestamp: testBase,
			ImpactG:   float64(i),
		}
	}

	got, err := Downsample(readings, 4)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 3)
	for _, r := range got {
		assert.True(t, r.Timestamp.Equal(testBase))
	}
}

func TestDownsample_Deterministic(t *testing.T) {
	readings := make([]models.Reading, 777)
	for i := range readings {
		readings[i] = testReading(i*7, float64(i%13)/10)
	}

	a, err := Downsample(readings, 50)
	require.NoError(t, err)
	b, err := Downsample(readings, 50)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDownsample_RecomputesFromSource(t *testing.T) {
	// a tighter budget is a fresh reduction of the full input, not a
	// refinement of a previous output
	readings := make([]models.Reading, 300)
	for i := range readings {
		readings[i] = testReading(i*10, 0.1)
	}
	readings[250].ImpactG = 5.0

	coarse, err := Downsample(readings, 5)
	require.NoError(t, err)
	fine, err := Downsample(readings, 60)
	require.NoError(t, err)

	assert.Less(t, len(coarse), len(fine))
	for _, out := range [][]models.Reading{coarse, fine} {
		found := false
		for _, r := range out {
			if r.ImpactG == 5.0 {
				found = true
			}
		}
		assert.True(t, found)
	}
}
