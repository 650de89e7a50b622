package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"exitlens/internal/auth"
	"exitlens/internal/calibration"
	"exitlens/internal/listings"
	"exitlens/internal/live"
	"exitlens/internal/score"
	"exitlens/internal/startup"
	"exitlens/internal/valuation"
	"exitlens/pkg/database"
	"exitlens/pkg/utils"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	cfg := utils.Load(logger)

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := live.NewHub()
	router.GET("/ws", live.WSHandler(hub, logger))

	// calibration pipeline
	snap := calibration.NewSnapshot()
	calService := &calibration.Service{
		Source:  listings.NewClient(cfg.ListingsBaseURL, cfg.ListingsAPIKey, logger),
		Builder: calibration.NewBuilder(calibration.DefaultConfig()),
		Store:   calibration.NewStore(db),
		Snap:    snap,
		Hub:     hub,
		Logger:  logger,
	}
	if err := calService.Restore(context.Background()); err != nil {
		logger.WithError(err).Warn("restoring stored profile failed, serving defaults")
	}

	// estimation and scoring
	valCfg := valuation.DefaultConfig()
	var strategy valuation.Strategy = valuation.NewTiered(valCfg)
	if cfg.ValuationModel == "simple" {
		strategy = valuation.NewSimple(valCfg)
	}
	logger.WithField("model", strategy.Name()).Info("valuation strategy selected")
	estimator := valuation.NewEstimator(strategy, valCfg, logger)

	var oracle score.Scorer
	if o := score.NewOracle(cfg.OracleURL, cfg.OracleAPIKey); o != nil {
		oracle = o
	}
	scorer := score.NewService(oracle, score.NewFallback(score.DefaultFallbackConfig()), logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": hub.Count(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": hub.Count(),
		})
	})

	// auth
	tokens := auth.TokenService{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Duration: cfg.JWTDuration,
	}
	var adminHash []byte
	if cfg.AdminPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.Fatalf("hashing admin password failed: %v", err)
		}
		adminHash = h
	}
	authHandler := auth.NewHandler(adminHash, tokens)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// public API
	api := router.Group("/api")
	calHandler := calibration.NewHandler(calService)
	calHandler.RegisterPublicRoutes(api)

	subRepo := startup.NewRepo(db)
	subHandler := startup.NewHandler(estimator, scorer, snap, subRepo, logger)
	subHandler.RegisterPublicRoutes(api)

	// protected admin API
	admin := router.Group("/api/admin")
	admin.Use(auth.AdminMiddleware(cfg.AdminSecret, tokens))
	calHandler.RegisterAdminRoutes(admin)
	subHandler.RegisterAdminRoutes(admin)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API server listening on :%d", cfg.ServerPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("shutdown signal received: %s", sig)
	case err := <-errCh:
		logger.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown error: %v", err)
	}
	logger.Info("server stopped")
}
