package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/internal/auth"
	"github.com/creatorstats/youtube-dashboard-go/internal/cache"
	"github.com/creatorstats/youtube-dashboard-go/internal/config"
	"github.com/creatorstats/youtube-dashboard-go/internal/handler"
	"github.com/creatorstats/youtube-dashboard-go/internal/middleware"
	"github.com/creatorstats/youtube-dashboard-go/internal/service"
	"github.com/creatorstats/youtube-dashboard-go/internal/service/analytics"
	"github.com/creatorstats/youtube-dashboard-go/internal/service/quota"
	"github.com/creatorstats/youtube-dashboard-go/internal/service/youtube"
	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	store, err := newStore(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize cache store", zap.Error(err))
	}

	creds := auth.NewTokenProvider(cfg.Auth.CredentialsEnv, cfg.Auth.TokenFile)
	ledger := quota.NewLedger(cfg.YouTube.DailyQuotaLimit)

	ytClient := youtube.NewClient(creds, ledger)
	analyticsClient := analytics.NewClient(creds, analytics.Config{
		ChannelID:       cfg.YouTube.ChannelID,
		StartDate:       cfg.YouTube.AnalyticsStart,
		MaxFilterLength: cfg.YouTube.MaxFilterLength,
		MaxFilterVideos: cfg.YouTube.MaxFilterVideos,
	}, ledger)

	scope := cfg.YouTube.ChannelID
	if scope == "" {
		scope = "mine"
	}

	aggregator := service.NewAggregator(ytClient, analyticsClient, store, service.AggregatorConfig{
		ScopeID:         scope,
		MaxResults:      cfg.YouTube.MaxResults,
		SweepAge:        cfg.Cache.SweepAge,
		PadMinutes:      cfg.YouTube.PadMinutes,
		PerItemFallback: cfg.YouTube.PerItemFallback,
		DemoOnError:     cfg.Demo.Enabled,
	})

	router := newRouter(cfg, aggregator, ytClient)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Log.Info("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("cache_backend", cfg.Cache.Backend),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
}

func newStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := cache.NewRedisStore(cfg.Cache.RedisURL, cfg.Cache.TTL, cfg.Cache.SweepAge)
		if err != nil {
			return nil, err
		}
		if err := store.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		return store, nil
	case "file", "":
		return cache.NewFileStore(cfg.Cache.Dir, cfg.Cache.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func newRouter(cfg *config.Config, aggregator *service.Aggregator, ytClient *youtube.Client) *gin.Engine {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	videoHandler := handler.NewVideoHandler(aggregator)
	channelHandler := handler.NewChannelHandler(ytClient)
	healthHandler := handler.NewHealthHandler()

	apiAuth := middleware.NewAPIKeyAuth(cfg.API.Keys)

	api := router.Group("/api", apiAuth.Middleware())
	{
		api.GET("/videos", videoHandler.ListVideos)
		api.GET("/channel", channelHandler.GetChannel)
		api.GET("/clear-cache", videoHandler.ClearCache)
		api.POST("/clear-cache", videoHandler.ClearCache)
	}

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.StaticFile("/", "./static/dashboard.html")
	router.Static("/static", "./static")

	return router
}
