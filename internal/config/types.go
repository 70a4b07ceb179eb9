// SPDX-License-Identifier: MIT

// Package config loads and validates the kugiri runtime configuration with
// the precedence ENV > config file > defaults.
package config

import (
	"fmt"
	"time"
)

// Cache backend names accepted by CacheConfig.Backend.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheBadger = "badger"
	CacheNone   = "none"
)

// AppConfig is the validated application configuration.
type AppConfig struct {
	LogLevel   string
	LogService string

	// DataDir holds everything the daemon persists: custom models,
	// dictionary database, badger cache.
	DataDir  string
	ModelDir string
	DictPath string

	DefaultLang  string
	Threshold    int
	MaxTextBytes int
	MaxBatchSize int
	Normalize    bool   // NFC-normalize inputs before parsing

	APIToken   string
	RateLimit  int
	RateWindow time.Duration

	Cache CacheConfig
	Trace TraceConfig
}

// CacheConfig selects and configures the segmentation result cache.
type CacheConfig struct {
	Backend       string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// TraceConfig configures the OpenTelemetry trace exporter.
type TraceConfig struct {
	Enabled     bool
	Exporter    string  // "grpc", "http" or "noop"
	Endpoint    string
	SampleRate  float64
	Environment string
}

// ServerConfig holds HTTP server tuning shared by the API and metrics
// listeners.
type ServerConfig struct {
	ListenAddr      string
	MetricsAddr     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int
	MaxConns        int
}

// ParseServerConfig reads server tuning from the environment with safe
// defaults.
func ParseServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:      ParseString("KUGIRI_LISTEN", ":8488"),
		MetricsAddr:     ParseString("KUGIRI_METRICS_LISTEN", ""),
		ReadTimeout:     ParseDuration("KUGIRI_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    ParseDuration("KUGIRI_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     ParseDuration("KUGIRI_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: ParseDuration("KUGIRI_SHUTDOWN_TIMEOUT", 15*time.Second),
		MaxHeaderBytes:  ParseInt("KUGIRI_MAX_HEADER_BYTES", 1<<20),
		MaxConns:        ParseInt("KUGIRI_MAX_CONNS", 512),
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *AppConfig) Validate() error {
	if c.Threshold == 0 {
		return fmt.Errorf("threshold must not be zero (default is 1000)")
	}
	if c.MaxTextBytes <= 0 {
		return fmt.Errorf("maxTextBytes must be positive, got %d", c.MaxTextBytes)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("maxBatchSize must be positive, got %d", c.MaxBatchSize)
	}
	if c.DefaultLang == "" {
		return fmt.Errorf("defaultLang must be set")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rateLimit must not be negative, got %d", c.RateLimit)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheBadger, CacheNone:
	default:
		return fmt.Errorf("unknown cache backend %q (memory, redis, badger, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend redis requires redisAddr")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}

	if c.Trace.Enabled {
		switch c.Trace.Exporter {
		case "grpc", "http", "noop":
		default:
			return fmt.Errorf("unknown trace exporter %q (grpc, http, noop)", c.Trace.Exporter)
		}
		if c.Trace.SampleRate < 0 || c.Trace.SampleRate > 1 {
			return fmt.Errorf("trace sampleRate must be in [0,1], got %g", c.Trace.SampleRate)
		}
	}

	return nil
}
