// Package models contains data models for the tracking service.
package models

import "time"

// Reading represents one telemetry sample from a tracked shipment
type Reading struct {
	// UTC instant the sample was taken
	Timestamp time.Time `json:"timestamp"`

	// Tracking code of the shipment the sample belongs to
	TrackingCode string `json:"trackingCode"`

	// GPS position at the time of the sample
	Position Position `json:"position"`

	// Ambient temperature in degrees Celsius
	TemperatureC float64 `json:"temperatureC"`

	// Relative humidity (0-100%)
	RelativeHumidityPct float64 `json:"relativeHumidityPct"`

	// Peak shock acceleration in g
	ImpactG float64 `json:"impactG"`

	// Vibration RMS amplitude in g
	VibrationRMS float64 `json:"vibrationRms"`

	// Dominant vibration frequency in Hz
	VibrationHz float64 `json:"vibrationHz"`

	// Battery level (0-100%), non-increasing within a generated sequence
	BatteryPct float64 `json:"batteryPct"`

	// Battery cell voltage in volts
	BatteryVoltage float64 `json:"batteryVoltage"`
}

// Position represents a GPS position in decimal degrees
type Position struct {
	// Latitude in degrees (-90 to 90)
	Latitude float64 `json:"latitude"`

	// Longitude in degrees (-180 to 180)
	Longitude float64 `json:"longitude"`
}
