package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DarshanLevi/shop-it-back/backup"
	"github.com/DarshanLevi/shop-it-back/config"
	"github.com/DarshanLevi/shop-it-back/routes"
	"github.com/DarshanLevi/shop-it-back/store"
	"github.com/DarshanLevi/shop-it-back/store/gormstore"
	"github.com/DarshanLevi/shop-it-back/store/memstore"
	"github.com/DarshanLevi/shop-it-back/store/mongostore"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Printf("❌ Failed to close store: %v", err)
		}
	}()

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	routes.SetupRoutes(r, routes.NewDeps(cfg, st))

	if cfg.AdminAPIKey == "" {
		log.Println("⚠️ ADMIN_API_KEY is not set: product administration routes are open")
	}

	if cfg.BackupDir != "" {
		go backup.NewScheduler(cfg.UploadDir, cfg.BackupDir, cfg.BackupRetention, cfg.BackupHour).Run(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⏳ Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Forced shutdown: %v", err)
	}
}

// openStore connects the configured persistence backend.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		st, err := gormstore.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("DB connection failed: %w", err)
		}
		return st, nil
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		st, err := mongostore.Open(connectCtx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("MongoDB connection failed: %w", err)
		}
		return st, nil
	case config.DriverMemory:
		log.Println("⚠️ Using in-memory store: data is lost on restart")
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
