package reduce

import (
	"errors"
	"fmt"

	"github.com/cargosys/tracking-service/internal/models"
)

// ErrInvalidStride is returned by Thin for a stride below 1
var ErrInvalidStride = errors.New("reduce: stride must be >= 1")

// Thin keeps every nth reading by index, always including the final reading so
// the route endpoint survives regardless of stride alignment. Unlike
// Downsample it is a pure index stride with no spike guarantee; it exists to
// bound map-rendering cost, not chart fidelity.
func Thin(readings []models.Reading, everyNth int) ([]models.Reading, error) {
	if everyNth < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidStride, everyNth)
	}
	if len(readings) == 0 {
		return []models.Reading{}, nil
	}
	out := make([]models.Reading, 0, len(readings)/everyNth+2)
	for i := 0; i < len(readings); i += everyNth {
		out = append(out, readings[i])
	}
	if last := len(readings) - 1; last%everyNth != 0 {
		out = append(out, readings[last])
	}
	return out, nil
}

// AutoStride picks a thinning stride from the population size. The
// breakpoints are a rendering-cost tuning choice, not a correctness contract;
// they bound the drawn route at a few thousand vertices.
func AutoStride(n int) int {
	switch {
	case n > 50000:
		return 50
	case n > 20000:
		return 20
	case n > 10000:
		return 10
	case n > 4000:
		return 5
	case n > 1500:
		return 2
	default:
		return 1
	}
}
