// Package handlers contains HTTP request handlers for the tracking service.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cargosys/tracking-service/internal/models"
	"github.com/cargosys/tracking-service/internal/reduce"
	"github.com/cargosys/tracking-service/internal/repository"
	"github.com/cargosys/tracking-service/internal/simulator"
)

const (
	defaultMaxPoints = 300
	maxCodeLength    = 64
)

// TelemetryHandler serves telemetry views for a tracking code: the chart
// series, the map route, and the CSV export. The full sequence is generated
// once per (code, defaults) and cached; every view is reduced fresh from the
// full sequence per request.
type TelemetryHandler struct {
	repo     repository.SequenceRepository
	defaults simulator.Options
}

// NewTelemetryHandler creates a new telemetry handler
func NewTelemetryHandler(repo repository.SequenceRepository, defaults simulator.Options) *TelemetryHandler {
	return &TelemetryHandler{repo: repo, defaults: defaults}
}

// sequence returns the full reading sequence for a code, from cache when the
// fingerprint matches, generating and caching otherwise. The start instant is
// pinned to a day boundary so the fingerprint is stable across requests within
// the same day.
func (h *TelemetryHandler) sequence(c *gin.Context, code string) ([]models.Reading, error) {
	ctx := c.Request.Context()
	opts := h.defaults
	opts.StartDate = time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -opts.Days)

	fingerprint := opts.Fingerprint(code)
	readings, err := h.repo.GetSequence(ctx, code, fingerprint)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Sequence cache lookup failed for %s: %v", code, err)
		}
		readings, err = simulator.Generate(code, opts)
		if err != nil {
			return nil, err
		}
		if err := h.repo.SaveSequence(ctx, code, fingerprint, readings); err != nil {
			// cache write failure degrades to regeneration next request
			log.Printf("Sequence cache write failed for %s: %v", code, err)
		}
	}

	// the recent code tracks every successful query, cached or generated
	if err := h.repo.SetRecentCode(ctx, code); err != nil {
		log.Printf("Failed to record recent code %s: %v", code, err)
	}
	return readings, nil
}

// parseCode validates the :code path parameter
func parseCode(c *gin.Context) (string, bool) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" || len(code) > maxCodeLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_tracking_code",
			"message": fmt.Sprintf("Tracking code must be 1-%d characters", maxCodeLength),
		})
		return "", false
	}
	return code, true
}

// parseWindow parses the optional from/to query parameters as RFC3339 instants
func parseWindow(c *gin.Context) (from, to time.Time, ok bool) {
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"from", &from}, {"to", &to}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_time_range",
				"message": fmt.Sprintf("Query parameter %q must be an RFC3339 instant", p.name),
			})
			return from, to, false
		}
		*p.dst = t
	}
	return from, to, true
}

// HandleGet serves the chart view of a tracking code's telemetry
// GET /api/v1/telemetry/:code?from=&to=&maxPoints=
func (h *TelemetryHandler) HandleGet(c *gin.Context) {
	code, ok := parseCode(c)
	if !ok {
		return
	}
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	maxPoints := defaultMaxPoints
	if raw := c.Query("maxPoints"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_max_points",
				"message": "Query parameter \"maxPoints\" must be a positive integer",
			})
			return
		}
		maxPoints = v
	}

	all, err := h.sequence(c, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "generation_failed",
			"message": "Failed to produce telemetry sequence",
		})
		return
	}

	filtered := reduce.FilterRange(all, from, to)
	sampled, err := reduce.Downsample(filtered, maxPoints)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "reduction_failed",
			"message": "Failed to downsample telemetry sequence",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trackingCode": code,
		"total":        len(all),
		"returned":     len(sampled),
		"readings":     sampled,
	})
}

// HandleRoute serves the map view: thinned route, hot/cold segments, incidents
// GET /api/v1/telemetry/:code/route?from=&to=&threshold=&stride=
func (h *TelemetryHandler) HandleRoute(c *gin.Context) {
	code, ok := parseCode(c)
	if !ok {
		return
	}
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	threshold := h.defaults.ImpactThresholdG
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_threshold",
				"message": "Query parameter \"threshold\" must be a positive number",
			})
			return
		}
		threshold = v
	}

	stride := 0 // 0 selects the automatic population-based stride
	if raw := c.Query("stride"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_stride",
				"message": "Query parameter \"stride\" must be a non-negative integer",
			})
			return
		}
		stride = v
	}

	all, err := h.sequence(c, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "generation_failed",
			"message": "Failed to produce telemetry sequence",
		})
		return
	}

	filtered := reduce.FilterRange(all, from, to)
	if stride == 0 {
		stride = reduce.AutoStride(len(filtered))
	}
	thinned, err := reduce.Thin(filtered, stride)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "reduction_failed",
			"message": "Failed to thin route",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trackingCode": code,
		"total":        len(filtered),
		"routePoints":  len(thinned),
		"stride":       stride,
		"segments":     reduce.SegmentByImpact(thinned, threshold),
		"incidents":    reduce.Incidents(filtered, threshold),
	})
}

// HandleExport serves the filtered sequence as a CSV download
// GET /api/v1/telemetry/:code/export?from=&to=
func (h *TelemetryHandler) HandleExport(c *gin.Context) {
	code, ok := parseCode(c)
	if !ok {
		return
	}
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	all, err := h.sequence(c, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "generation_failed",
			"message": "Failed to produce telemetry sequence",
		})
		return
	}

	body, err := reduce.ToCSV(reduce.FilterRange(all, from, to))
	if err != nil {
		log.Printf("CSV export failed for %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "export_failed",
			"message": "Failed to serialize telemetry to CSV",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", code+"-telemetry.csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

// HandleRecent returns the last tracking code any client queried
// GET /api/v1/recent
func (h *TelemetryHandler) HandleRecent(c *gin.Context) {
	code, err := h.repo.GetRecentCode(c.Request.Context())
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "no_recent_code",
			"message": "No tracking code has been queried yet",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load recent tracking code",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trackingCode": code})
}
