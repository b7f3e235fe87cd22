// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Lookup strategy names for the CEE valorisation engine.
const (
	LookupStrategyFlat          = "flat"
	LookupStrategySurfaceBanded = "surface_banded"
)

// Surface band names used when a project's building surface is unknown.
const (
	SurfaceBandLT400  = "lt400"
	SurfaceBandGTE400 = "gte400"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// CEEConfig provides the valorisation engine parameters. Bonification and the
// unknown-surface band are deliberately required values: the business never
// agreed on a default, so the operator has to state them.
type CEEConfig interface {
	GetCEEBonification() float64
	GetCEELookupStrategy() string
	GetCEEUnknownSurfaceBand() string
}

// SchedulerConfig provides settings for the asynq-based background worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetEnergySnapshotInterval() time.Duration
}

// CacheConfig provides settings for the redis snapshot cache.
type CacheConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetEnergySnapshotTTL() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	DatabaseURL            string
	CORSAllowAll           bool
	CORSOrigins            []string
	CORSAllowCreds         bool
	RedisURL               string
	RedisTLSInsecure       bool
	AsynqQueueName         string
	AsynqConcurrency       int
	EnergySnapshotInterval time.Duration
	EnergySnapshotTTL      time.Duration
	CEEBonification        float64
	CEELookupStrategy      string
	CEEUnknownSurfaceBand  string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// CEEConfig implementation
func (c *Config) GetCEEBonification() float64      { return c.CEEBonification }
func (c *Config) GetCEELookupStrategy() string     { return c.CEELookupStrategy }
func (c *Config) GetCEEUnknownSurfaceBand() string { return c.CEEUnknownSurfaceBand }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string                      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool                { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string                { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int                 { return c.AsynqConcurrency }
func (c *Config) GetEnergySnapshotInterval() time.Duration { return c.EnergySnapshotInterval }

// CacheConfig implementation
func (c *Config) GetEnergySnapshotTTL() time.Duration { return c.EnergySnapshotTTL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		CORSAllowCreds:         strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:               getEnv("REDIS_URL", ""),
		RedisTLSInsecure:       strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:       mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		EnergySnapshotInterval: mustDuration(getEnv("ENERGY_SNAPSHOT_INTERVAL", "1h")),
		EnergySnapshotTTL:      mustDuration(getEnv("ENERGY_SNAPSHOT_TTL", "2h")),
		CEEBonification:        mustFloat(getEnv("CEE_BONIFICATION", "")),
		CEELookupStrategy:      strings.ToLower(getEnv("CEE_LOOKUP_STRATEGY", LookupStrategyFlat)),
		CEEUnknownSurfaceBand:  strings.ToLower(getEnv("CEE_UNKNOWN_SURFACE_BAND", "")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.CEEBonification <= 0 {
		return nil, fmt.Errorf("CEE_BONIFICATION is required and must be a positive number")
	}
	if cfg.CEELookupStrategy != LookupStrategyFlat && cfg.CEELookupStrategy != LookupStrategySurfaceBanded {
		return nil, fmt.Errorf("CEE_LOOKUP_STRATEGY must be %q or %q", LookupStrategyFlat, LookupStrategySurfaceBanded)
	}
	if cfg.CEELookupStrategy == LookupStrategySurfaceBanded {
		if cfg.CEEUnknownSurfaceBand != SurfaceBandLT400 && cfg.CEEUnknownSurfaceBand != SurfaceBandGTE400 {
			return nil, fmt.Errorf("CEE_UNKNOWN_SURFACE_BAND must be %q or %q when CEE_LOOKUP_STRATEGY is %q",
				SurfaceBandLT400, SurfaceBandGTE400, LookupStrategySurfaceBanded)
		}
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
