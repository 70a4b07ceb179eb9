// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader resolves the application configuration with the precedence
// ENV > config file > defaults.
type Loader struct {
	configPath string
}

// NewLoader creates a configuration loader. configPath may be empty, in
// which case only environment and defaults apply.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// fileConfig is the YAML schema. Durations are strings ("10m", "30s") so the
// file reads the same way the env vars do.
type fileConfig struct {
	LogLevel     string `yaml:"logLevel"`
	LogService   string `yaml:"logService"`
	DataDir      string `yaml:"dataDir"`
	ModelDir     string `yaml:"modelDir"`
	DictPath     string `yaml:"dictPath"`
	DefaultLang  string `yaml:"defaultLang"`
	Threshold    *int   `yaml:"threshold"`
	MaxTextBytes *int   `yaml:"maxTextBytes"`
	MaxBatchSize *int   `yaml:"maxBatchSize"`
	Normalize    *bool  `yaml:"normalize"`
	APIToken     string `yaml:"apiToken"`
	RateLimit    *int   `yaml:"rateLimit"`
	RateWindow   string `yaml:"rateWindow"`

	Cache struct {
		Backend       string `yaml:"backend"`
		TTL           string `yaml:"ttl"`
		RedisAddr     string `yaml:"redisAddr"`
		RedisPassword string `yaml:"redisPassword"`
		RedisDB       *int   `yaml:"redisDB"`
	} `yaml:"cache"`

	Trace struct {
		Enabled     *bool    `yaml:"enabled"`
		Exporter    string   `yaml:"exporter"`
		Endpoint    string   `yaml:"endpoint"`
		SampleRate  *float64 `yaml:"sampleRate"`
		Environment string   `yaml:"environment"`
	} `yaml:"trace"`
}

func defaults() AppConfig {
	return AppConfig{
		LogLevel:     "info",
		LogService:   "kugiri",
		DataDir:      "/var/lib/kugiri",
		DefaultLang:  "ja",
		Threshold:    1000,
		MaxTextBytes: 64 << 10,
		MaxBatchSize: 64,
		Normalize:    true,
		RateLimit:    600,
		RateWindow:   time.Minute,
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     10 * time.Minute,
		},
		Trace: TraceConfig{
			Exporter:    "noop",
			SampleRate:  0.1,
			Environment: "production",
		},
	}
}

// Load resolves the effective configuration. A missing config file is fine;
// an unreadable or malformed one is an error.
func (l *Loader) Load() (AppConfig, error) {
	cfg := defaults()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath) // #nosec G304 -- path comes from the operator
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env + defaults
		case err != nil:
			return AppConfig{}, fmt.Errorf("read config file %s: %w", l.configPath, err)
		default:
			if err := mergeFile(&cfg, data); err != nil {
				return AppConfig{}, fmt.Errorf("config file %s: %w", l.configPath, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.ModelDir == "" {
		cfg.ModelDir = filepath.Join(cfg.DataDir, "models")
	}
	if cfg.DictPath == "" {
		cfg.DictPath = filepath.Join(cfg.DataDir, "dictionary.db")
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func mergeFile(cfg *AppConfig, data []byte) error {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogService, fc.LogService)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.ModelDir, fc.ModelDir)
	setString(&cfg.DictPath, fc.DictPath)
	setString(&cfg.DefaultLang, fc.DefaultLang)
	setInt(&cfg.Threshold, fc.Threshold)
	setInt(&cfg.MaxTextBytes, fc.MaxTextBytes)
	setInt(&cfg.MaxBatchSize, fc.MaxBatchSize)
	setBool(&cfg.Normalize, fc.Normalize)
	setString(&cfg.APIToken, fc.APIToken)
	setInt(&cfg.RateLimit, fc.RateLimit)
	if err := setDuration(&cfg.RateWindow, fc.RateWindow); err != nil {
		return fmt.Errorf("rateWindow: %w", err)
	}

	setString(&cfg.Cache.Backend, fc.Cache.Backend)
	if err := setDuration(&cfg.Cache.TTL, fc.Cache.TTL); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	setString(&cfg.Cache.RedisAddr, fc.Cache.RedisAddr)
	setString(&cfg.Cache.RedisPassword, fc.Cache.RedisPassword)
	setInt(&cfg.Cache.RedisDB, fc.Cache.RedisDB)

	setBool(&cfg.Trace.Enabled, fc.Trace.Enabled)
	setString(&cfg.Trace.Exporter, fc.Trace.Exporter)
	setString(&cfg.Trace.Endpoint, fc.Trace.Endpoint)
	if fc.Trace.SampleRate != nil {
		cfg.Trace.SampleRate = *fc.Trace.SampleRate
	}
	setString(&cfg.Trace.Environment, fc.Trace.Environment)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// applyEnv overlays environment values on top of file/default values.
func applyEnv(cfg *AppConfig) {
	cfg.LogLevel = ParseString("KUGIRI_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = ParseString("KUGIRI_LOG_SERVICE", cfg.LogService)
	cfg.DataDir = ParseString("KUGIRI_DATA", cfg.DataDir)
	cfg.ModelDir = ParseString("KUGIRI_MODEL_DIR", cfg.ModelDir)
	cfg.DictPath = ParseString("KUGIRI_DICT_PATH", cfg.DictPath)
	cfg.DefaultLang = ParseString("KUGIRI_DEFAULT_LANG", cfg.DefaultLang)
	cfg.Threshold = ParseInt("KUGIRI_THRESHOLD", cfg.Threshold)
	cfg.MaxTextBytes = ParseInt("KUGIRI_MAX_TEXT_BYTES", cfg.MaxTextBytes)
	cfg.MaxBatchSize = ParseInt("KUGIRI_MAX_BATCH", cfg.MaxBatchSize)
	cfg.Normalize = ParseBool("KUGIRI_NORMALIZE", cfg.Normalize)
	cfg.APIToken = ParseString("KUGIRI_API_TOKEN", cfg.APIToken)
	cfg.RateLimit = ParseInt("KUGIRI_RATE_LIMIT", cfg.RateLimit)
	cfg.RateWindow = ParseDuration("KUGIRI_RATE_WINDOW", cfg.RateWindow)

	cfg.Cache.Backend = ParseString("KUGIRI_CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.TTL = ParseDuration("KUGIRI_CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.RedisAddr = ParseString("KUGIRI_REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = ParseString("KUGIRI_REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = ParseInt("KUGIRI_REDIS_DB", cfg.Cache.RedisDB)

	cfg.Trace.Enabled = ParseBool("KUGIRI_OTEL_ENABLED", cfg.Trace.Enabled)
	cfg.Trace.Exporter = ParseString("KUGIRI_OTEL_EXPORTER", cfg.Trace.Exporter)
	cfg.Trace.Endpoint = ParseString("KUGIRI_OTEL_ENDPOINT", cfg.Trace.Endpoint)
	cfg.Trace.SampleRate = ParseFloat("KUGIRI_OTEL_SAMPLE_RATE", cfg.Trace.SampleRate)
	cfg.Trace.Environment = ParseString("KUGIRI_OTEL_ENV", cfg.Trace.Environment)
}
