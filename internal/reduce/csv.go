package reduce

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cargosys/tracking-service/internal/models"
)

// csvHeader is the fixed export column order
var csvHeader = []string{
	"ts", "lat", "lon", "tempC", "rhPct", "impactG",
	"vibrationRms", "vibrationHz", "batteryPct", "batteryV",
}

// ToCSV serializes readings for download: one header line, one line per
// reading, timestamps as second-precision ISO-8601 UTC instants with a Z
// suffix, RFC4180 quoting. A non-finite numeric field is a generator bug and
// surfaces as an error rather than being coerced to an empty cell.
func ToCSV(readings []models.Reading) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for i, r := range readings {
		fields := []struct {
			name  string
			value float64
		}{
			{"lat", r.Position.Latitude},
			{"lon", r.Position.Longitude},
			{"tempC", r.TemperatureC},
			{"rhPct", r.RelativeHumidityPct},
			{"impactG", r.ImpactG},
			{"vibrationRms", r.VibrationRMS},
			{"vibrationHz", r.VibrationHz},
			{"batteryPct", r.BatteryPct},
			{"batteryV", r.BatteryVoltage},
		}
		row := make([]string, 0, len(csvHeader))
		row = append(row, r.Timestamp.UTC().Truncate(time.Second).Format(time.RFC3339))
		for _, f := range fields {
			if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
				return "", fmt.Errorf("reading %d: non-finite %s", i, f.name)
			}
			row = append(row, strconv.FormatFloat(f.value, 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}
