package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jpp0ca/SetlistStats-API/internal/adapters"
	handler "github.com/jpp0ca/SetlistStats-API/internal/adapters/http"
	"github.com/jpp0ca/SetlistStats-API/internal/adapters/setlistfm"
	"github.com/jpp0ca/SetlistStats-API/internal/adapters/static"
	"github.com/jpp0ca/SetlistStats-API/internal/adapters/store"
	"github.com/jpp0ca/SetlistStats-API/internal/app"
	"github.com/jpp0ca/SetlistStats-API/internal/catalog"
	"github.com/jpp0ca/SetlistStats-API/internal/config"
	"github.com/jpp0ca/SetlistStats-API/internal/jobs"
	"github.com/jpp0ca/SetlistStats-API/internal/logging"
	"github.com/jpp0ca/SetlistStats-API/internal/metrics"
	"github.com/jpp0ca/SetlistStats-API/internal/ports"
	"github.com/jpp0ca/SetlistStats-API/internal/tour"

	_ "github.com/jpp0ca/SetlistStats-API/docs"
)

// @title			SetlistStats API
// @version		1.0
// @description	Setlist comparison and tour statistics backed by setlist.fm.
// @description	Compares two shows song by song and aggregates per-song play statistics across a tour.

// @contact.name	SetlistStats API Support
// @license.name	MIT

// @host		localhost:8080
// @BasePath	/
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, os.Stdout)
	if cfg.EnvFileErr != nil {
		log.Info().Err(cfg.EnvFileErr).Msg("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Create source adapters
	httpClient := &http.Client{Timeout: 15 * time.Second}
	setlistFM := setlistfm.NewProvider(httpClient, setlistfm.Options{
		BaseURL:           cfg.SetlistFMBaseURL,
		APIKey:            cfg.SetlistFMAPIKey,
		ArtistMBID:        cfg.ArtistMBID,
		RequestsPerSecond: cfg.UpstreamRPS,
	}, m, log)

	// Register sources
	registry, err := adapters.NewSourceRegistry(setlistFM)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot register data sources")
	}
	if ds, err := static.Open(cfg.StaticDataPath); err != nil {
		log.Debug().Err(err).Str("path", cfg.StaticDataPath).Msg("static dataset not loaded")
	} else if err := registry.Register(ds); err != nil {
		log.Fatal().Err(err).Msg("cannot register static dataset")
	} else {
		log.Info().Int("setlists", ds.Len()).Str("path", cfg.StaticDataPath).Msg("static dataset loaded")
	}

	source, err := registry.Get(cfg.DataSource)
	if err != nil {
		log.Fatal().Err(err).Strs("available", registry.Available()).Msg("cannot select data source")
	}
	if source.Name() == setlistFM.Name() && cfg.SetlistFMAPIKey == "" {
		log.Warn().Msg("SETLISTFM_API_KEY is empty, upstream requests will be rejected")
	}

	payloads, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.CacheBackend).Msg("cannot open cache store")
	}
	defer closeStore()

	songs, tourCfg, err := loadReferenceData(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load reference data")
	}

	// Create application service
	svc := app.NewService(source, payloads, songs, tourCfg, app.Options{
		CacheTTL:     cfg.CacheTTL,
		CacheKey:     cfg.CacheKey,
		TourCacheKey: cfg.TourCacheKey,
		TourName:     cfg.TourName,
		MaxPages:     cfg.MaxPages,
		Workers:      cfg.FetchWorkers,
	}, m, log)

	// Setup HTTP server
	r := gin.New()
	r.Use(
		gin.Recovery(),
		handler.RequestID(),
		handler.AccessLog(logging.Component(log, "http")),
		handler.RateLimit(cfg.APIRateLimit, int(cfg.APIRateLimit)*2, handler.DefaultRateLimitClients),
	)

	var proxy handler.Forwarder
	if cfg.SetlistFMAPIKey != "" {
		proxy = setlistFM
	}
	h := handler.NewHandler(svc, proxy)
	h.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Scheduled refresh
	if cfg.RefreshSchedule != "" {
		scheduler, err := jobs.NewScheduler(cfg.RefreshSchedule, svc, 5*time.Minute, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot schedule tour refresh")
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
	}

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	log.Info().
		Str("addr", addr).
		Str("source", source.Name()).
		Strs("sources", registry.Available()).
		Str("cache", cfg.CacheBackend).
		Int("workers", cfg.FetchWorkers).
		Msg("starting SetlistStats API")
	log.Info().Msgf("Swagger UI: http://localhost%s/swagger/index.html", addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore builds the payload store selected by CACHE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (ports.PayloadStore, func(), error) {
	switch cfg.CacheBackend {
	case "sqlite":
		s, err := store.OpenSQLite(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "redis":
		s, err := store.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, "setliststats:")
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}

// loadReferenceData reads the song catalog and tour legs, falling back to
// the bundled copies when no path is configured.
func loadReferenceData(cfg *config.Config) (*catalog.Catalog, *tour.Config, error) {
	songs := catalog.Default()
	if cfg.CatalogPath != "" {
		c, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
		songs = c
	}

	tourCfg := tour.Default()
	if cfg.TourConfigPath != "" {
		t, err := tour.Open(cfg.TourConfigPath)
		if err != nil {
			return nil, nil, err
		}
		tourCfg = t
	}
	return songs, tourCfg, nil
}
