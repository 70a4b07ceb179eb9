// SPDX-License-Identifier: MIT

// Command daemon runs the kugiri segmentation service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/kugiri/internal/api"
	"github.com/ManuGH/kugiri/internal/cache"
	"github.com/ManuGH/kugiri/internal/config"
	"github.com/ManuGH/kugiri/internal/daemon"
	"github.com/ManuGH/kugiri/internal/dictionary"
	"github.com/ManuGH/kugiri/internal/health"
	xlog "github.com/ManuGH/kugiri/internal/log"
	"github.com/ManuGH/kugiri/internal/modelstore"
	"github.com/ManuGH/kugiri/internal/telemetry"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("kugiri %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	xlog.Configure(xlog.Config{
		Level:   config.ParseString("KUGIRI_LOG_LEVEL", "info"),
		Service: "kugiri",
		Version: version,
	})
	logger := xlog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Explicit --config wins; otherwise pick up ${KUGIRI_DATA}/config.yaml
	// when it exists.
	effectivePath := strings.TrimSpace(*configPath)
	if effectivePath == "" {
		dataDir := strings.TrimSpace(config.ParseString("KUGIRI_DATA", ""))
		if dataDir != "" {
			autoPath := filepath.Join(dataDir, "config.yaml")
			if _, err := os.Stat(autoPath); err == nil {
				effectivePath = autoPath
			}
		}
	}

	cfg, err := config.NewLoader(effectivePath).Load()
	if err != nil {
		logger.Fatal().Err(err).
			Str("event", "config.load_failed").
			Str(xlog.FieldPath, effectivePath).
			Msg("failed to load configuration")
	}

	logger.Info().
		Str("event", "config.loaded").
		Str(xlog.FieldPath, effectivePath).
		Str("default_lang", cfg.DefaultLang).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("configuration loaded")

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("daemon exited with error")
	}
	logger.Info().Msg("daemon stopped")
}

func run(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger) error {
	tracer, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Trace.Enabled,
		ServiceName:    "kugiri",
		ServiceVersion: version,
		Environment:    cfg.Trace.Environment,
		ExporterType:   cfg.Trace.Exporter,
		Endpoint:       cfg.Trace.Endpoint,
		SamplingRate:   cfg.Trace.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	store, err := modelstore.New(cfg.ModelDir, xlog.WithComponent("modelstore"))
	if err != nil {
		return fmt.Errorf("open model store: %w", err)
	}

	dict, err := dictionary.Open(cfg.DictPath)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}

	resultCache, closeCache, err := buildCache(cfg)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	hm := health.NewManager(version)
	hm.RegisterChecker(health.NewChecker("dictionary", dict.HealthCheck))
	hm.RegisterChecker(health.NewChecker("modelstore", func(context.Context) error {
		_, err := os.Stat(store.Dir())
		return err
	}))
	if rc, ok := resultCache.(*cache.RedisCache); ok {
		hm.RegisterChecker(health.NewChecker("redis", rc.HealthCheck))
	}

	apiServer := api.NewServer(api.Deps{
		Config:  cfg,
		Store:   store,
		Dict:    dict,
		Cache:   resultCache,
		Health:  hm,
		Version: version,
	})

	serverCfg := config.ParseServerConfig()
	mgr, err := daemon.NewManager(serverCfg, daemon.Deps{
		APIHandler:     apiServer.Routes(),
		MetricsHandler: promhttp.Handler(),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	mgr.RegisterShutdownHook("telemetry", tracer.Shutdown)
	mgr.RegisterShutdownHook("dictionary", func(context.Context) error {
		return dict.Close()
	})
	if closeCache != nil {
		mgr.RegisterShutdownHook("cache", func(context.Context) error {
			return closeCache()
		})
	}

	return daemon.NewApp(logger, mgr, store).Run(ctx)
}

// buildCache selects the configured cache backend. The returned close
// function is nil for backends without resources to release.
func buildCache(cfg config.AppConfig) (cache.Cache, func() error, error) {
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return cache.NewMemoryCache(5 * time.Minute), nil, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		}, xlog.WithComponent("cache"))
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil
	case config.CacheBadger:
		bc, err := cache.NewBadgerCache(filepath.Join(cfg.DataDir, "cache"), xlog.WithComponent("cache"))
		if err != nil {
			return nil, nil, err
		}
		return bc, bc.Close, nil
	default:
		return cache.NewNoOpCache(), nil, nil
	}
}
