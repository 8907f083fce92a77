package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargosys/tracking-service/internal/models"
)

func TestThin(t *testing.T) {
	readings := make([]models.Reading, 10)
	for i := range readings {
		readings[i] = testReading(i, 0)
	}

	tests := []struct {
		name     string
		nth      int
		wantLen  int
		wantLast models.Reading
	}{
		{"stride 1 is identity", 1, 10, readings[9]},
		{"stride 3 keeps every 3rd", 3, 4, readings[9]},
		{"stride 4 keeps every 4th plus the endpoint", 4, 4, readings[9]},
		{"stride larger than input keeps ends", 100, 2, readings[9]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Thin(readings, tt.nth)
			require.NoError(t, err)

			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, readings[0], got[0])
			assert.Equal(t, tt.wantLast, got[len(got)-1])
		})
	}
}

func TestThin_EndpointAlwaysKept(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for size := 1; size <= 20; size++ {
			readings := make([]models.Reading, size)
			for i := range readings {
				readings[i] = testReading(i, 0)
			}

			got, err := Thin(readings, n)
			require.NoError(t, err)
			require.NotEmpty(t, got)
			assert.Equal(t, readings[size-1], got[len(got)-1],
				"stride %d dropped the endpoint of %d readings", n, size)
		}
	}
}

func TestThin_Empty(t *testing.T) {
	got, err := Thin(nil, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestThin_InvalidStride(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Thin(testSeries(0.1), n)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidStride)
	}
}

func TestAutoStride(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1500, 1},
		{1501, 2},
		{4001, 5},
		{10001, 10},
		{20001, 20},
		{50001, 50},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AutoStride(tt.n), "population %d", tt.n)
	}
}
