package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cryptobit/internal/client/coingecko"
	"cryptobit/internal/config"
	cronrunner "cryptobit/internal/cron"
	"cryptobit/internal/db"
	"cryptobit/internal/engine"
	"cryptobit/internal/handler"
	"cryptobit/internal/logger"
	"cryptobit/internal/marketdata"
	gormrepository "cryptobit/internal/repository/gorm"
)

func main() {
	cfgPath := os.Getenv("CB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("CB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	geckoHTTP := &http.Client{Timeout: cfg.CoinGecko.Timeout}
	geckoClient := coingecko.NewClient(geckoHTTP, cfg.CoinGecko.BaseURL)
	cache := marketdata.NewCache(logger)
	md := marketdata.NewService(geckoClient, cache, cfg.Cache)

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(router)

	api := router.Group("/api")
	api.Use(handler.SyncIdentity(store, logger))

	marketsHandler := &handler.MarketsHandler{MD: md, Logger: logger}
	marketsHandler.Register(api)
	signalsHandler := &handler.SignalsHandler{Repo: store, MD: md, Admin: cfg.Admin, Logger: logger}
	signalsHandler.Register(api)
	adminHandler := &handler.AdminHandler{Repo: store, Cfg: cfg.Admin, Logger: logger}
	adminHandler.Register(api)
	portfolioHandler := &handler.PortfolioHandler{Repo: store, Logger: logger}
	portfolioHandler.Register(api)
	paymentsHandler := &handler.PaymentsHandler{Repo: store, Cfg: cfg.Uploads, Logger: logger}
	paymentsHandler.Register(api)
	if cfg.Stream.Enabled {
		streamHandler := &handler.StreamHandler{
			Repo:         store,
			MD:           md,
			Logger:       logger,
			PushInterval: cfg.Stream.PushInterval,
		}
		streamHandler.Register(api)
	}
	router.Static(cfg.Uploads.PublicPath, cfg.Uploads.Dir)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Engine.Enabled {
		eng := &engine.Engine{
			Repo:   store,
			Prices: md,
			Logger: logger,
		}
		spec := "@every " + cfg.Engine.Interval.String()
		if _, err := cronRunner.Add(spec, func(ctx context.Context) {
			if err := eng.EvaluateOnce(ctx); err != nil {
				logger.Warn("signal evaluation pass failed", zap.Error(err))
			}
		}); err != nil {
			logger.Warn("cron register signal evaluation failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Admin-Auth,X-Admin-Key,X-User-Id,X-User-Email,X-User-Name")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
