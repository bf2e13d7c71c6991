package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/etceter4/littlelemon/config"
	"github.com/etceter4/littlelemon/database"
	"github.com/etceter4/littlelemon/router"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const revokedTokenPurgeInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Setup(db, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		utils.ErrorLogger.Fatalf("Failed to prepare database: %v", err)
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(db, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		utils.InfoLogger.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		purgeRevokedTokens(ctx, revokedTokenPurgeInterval)
		return nil
	})

	if err := g.Wait(); err != nil {
		utils.ErrorLogger.Fatalf("Server stopped with error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Println("Server exited")
}

// purgeRevokedTokens drops expired entries from the revocation list until ctx is done.
func purgeRevokedTokens(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := utils.PurgeRevokedTokens(now); n > 0 {
				utils.InfoLogger.WithField("removed", n).Debug("revoked tokens purged")
			}
		}
	}
}
