package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardvault/internal/cards"
	"cardvault/internal/events"
	"cardvault/internal/images"
	"cardvault/internal/importer"
	"cardvault/internal/pricing"
	"cardvault/pkg/logger"
	"cardvault/pkg/store"
	"cardvault/pkg/utils"
)

func main() {
	cfg := utils.LoadServerConfig()
	logger.Initialize(cfg.Env)
	defer logger.Sync()

	st, err := openStore(cfg)
	if err != nil {
		logger.Log.Fatal("open store failed", zap.Error(err))
	}
	defer st.Close()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.RequestLogger(), gin.Recovery())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"store_error": err.Error(),
				"ws_clients":  hub.Count(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"ws_clients": hub.Count(),
		})
	})

	cardsHandler := cards.NewHandler(st, hub, pricing.NewService())
	cardsGroup := router.Group("/cards")
	cardsHandler.RegisterRoutes(cardsGroup)

	imagesHandler := images.NewHandler(st, cfg.UploadDir, cfg.PublicURL)
	imagesHandler.RegisterRoutes(cardsGroup)
	router.Static("/uploads", cfg.UploadDir)

	importHandler := importer.NewHandler(st)
	importHandler.RegisterRoutes(router.Group("/import"))

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("HTTP API server listening",
			zap.String("addr", cfg.Addr),
			zap.String("store", storeKind(cfg)),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("http shutdown error", zap.Error(err))
	}
	logger.Log.Info("server stopped")
}

func openStore(cfg utils.ServerConfig) (store.CardStore, error) {
	if cfg.DBPath == "" {
		return store.NewMemory(), nil
	}
	return store.OpenSQLite(cfg.DBPath)
}

func storeKind(cfg utils.ServerConfig) string {
	if cfg.DBPath == "" {
		return "memory"
	}
	return "sqlite:" + cfg.DBPath
}
