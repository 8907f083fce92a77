// Package config provides configuration management for the tracking service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cargosys/tracking-service/internal/simulator"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Simulator SimulatorConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                   string
	Host                  string
	Port                  string
	Name                  string
	User                  string
	Password              string
	SSLMode               string
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// SimulatorConfig holds the generation defaults served by the API.
// Per-request query parameters narrow the view but never change these, so one
// tracking code maps to one cached sequence.
type SimulatorConfig struct {
	Days                int
	SampleMinutes       int
	SampleJitterMinutes int
	GPSJitterKm         float64
	ImpactThresholdG    float64
	BatteryDrainDays    int
}

// Options converts the configured defaults to simulator options
func (s SimulatorConfig) Options() simulator.Options {
	return simulator.Options{
		Days:                s.Days,
		SampleMinutes:       s.SampleMinutes,
		SampleJitterMinutes: s.SampleJitterMinutes,
		GPSJitterKm:         s.GPSJitterKm,
		ImpactThresholdG:    s.ImpactThresholdG,
		BatteryDrainDays:    s.BatteryDrainDays,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	def := simulator.DefaultOptions()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:                   os.Getenv("DATABASE_URL"),
			Host:                  getEnv("DB_HOST", "localhost"),
			Port:                  getEnv("DB_PORT", "5432"),
			Name:                  getEnv("DB_NAME", "tracking_dev"),
			User:                  getEnv("DB_USER", "tracking_user"),
			Password:              GetSecret("DB_PASSWORD", "tracking_pass"),
			SSLMode:               getEnv("DB_SSLMODE", "disable"),
			MaxConnections:        getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MaxIdleConnections:    getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
			ConnectionMaxLifetime: getEnvAsDuration("DB_CONNECTION_MAX_LIFETIME", "5m"),
		},
		Simulator: SimulatorConfig{
			Days:                getEnvAsInt("SIM_DAYS", def.Days),
			SampleMinutes:       getEnvAsInt("SIM_SAMPLE_MINUTES", def.SampleMinutes),
			SampleJitterMinutes: getEnvAsInt("SIM_SAMPLE_JITTER_MINUTES", def.SampleJitterMinutes),
			GPSJitterKm:         getEnvAsFloat("SIM_GPS_JITTER_KM", def.GPSJitterKm),
			ImpactThresholdG:    getEnvAsFloat("SIM_IMPACT_THRESHOLD_G", def.ImpactThresholdG),
			BatteryDrainDays:    getEnvAsInt("SIM_BATTERY_DRAIN_DAYS", def.BatteryDrainDays),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.Simulator.Days <= 0 {
		return fmt.Errorf("SIM_DAYS must be positive, got %d", c.Simulator.Days)
	}
	if err := c.Simulator.Options().Validate(); err != nil {
		return fmt.Errorf("simulator defaults: %w", err)
	}
	return nil
}

// ConnectionString returns the database connection string
func (d *DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat gets an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}
