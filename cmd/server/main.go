package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/config"
	"github.com/archlens/analysis-engine/internal/engine"
	"github.com/archlens/analysis-engine/internal/handlers"
	"github.com/archlens/analysis-engine/internal/metrics"
	"github.com/archlens/analysis-engine/internal/portfolio"
	"github.com/archlens/analysis-engine/internal/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Architecture Analysis Engine",
		zap.String("environment", cfg.Environment),
		zap.Int("http_port", cfg.Server.HTTPPort))

	collector := metrics.NewCollector()

	var cache pricing.PriceCache
	if cfg.Pricing.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Pricing.RedisAddr,
			Password: cfg.Pricing.RedisPassword,
			DB:       cfg.Pricing.RedisDB,
		})
		cache = pricing.NewRedisCache(client)
		logger.Info("Using Redis pricing cache", zap.String("addr", cfg.Pricing.RedisAddr))
	} else {
		cache = pricing.NewMemoryCache()
	}

	var adapter pricing.Adapter
	if len(cfg.Pricing.Endpoints) > 0 {
		adapter = pricing.NewResolver(logger, cache,
			func(provider string) string { return cfg.Pricing.Endpoints[provider] },
			pricing.WithLookupTimeout(cfg.Pricing.LookupTimeout),
			pricing.WithCacheObserver(collector.RecordPricingCache))
	} else {
		logger.Info("No pricing endpoints configured; cloud pricing runs in heuristic-only mode")
	}

	eng := engine.New(engine.Options{
		Logger:            logger,
		PricingAdapter:    adapter,
		Metrics:           collector,
		MaxTraversalDepth: cfg.Analysis.MaxTraversalDepth,
		UnitMonthlyCost:   cfg.Analysis.UnitMonthlyCost,
		Maturity: portfolio.MaturityBaselines{
			Process:       cfg.Analysis.ProcessMaturity,
			Automation:    cfg.Analysis.AutomationMaturity,
			Documentation: cfg.Analysis.DocumentationMaturity,
		},
	})

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler := handlers.NewHandler(eng, logger)
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	if err := zapCfg.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return zapCfg.Build()
}
