package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-orders/config"
	"github.com/yeremiapane/table-orders/database"
	"github.com/yeremiapane/table-orders/kds"
	"github.com/yeremiapane/table-orders/messaging"
	"github.com/yeremiapane/table-orders/middlewares"
	"github.com/yeremiapane/table-orders/router"
	"github.com/yeremiapane/table-orders/services"
	"github.com/yeremiapane/table-orders/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.AppConfig) error {
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.AutoMigrate(db.DB); err != nil {
		return err
	}
	if cfg.SeedFile != "" {
		if err := database.ExecuteSQLFile(db.DB, cfg.SeedFile); err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded orders from %s", cfg.SeedFile)
	}

	store := database.NewGormOrderStore(db.DB)
	hub := kds.NewHub()
	defer hub.Close()

	opts := []services.Option{services.WithNotifier(hub)}
	if cfg.AMQPURL != "" {
		publisher, err := messaging.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		opts = append(opts, services.WithNotifier(publisher))
		utils.InfoLogger.Printf("Publishing order events to exchange %s", cfg.AMQPExchange)
	}
	orders := services.NewOrderService(store, cfg.MaxTables, opts...)

	var limiter *middlewares.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	r := router.SetupRouter(router.Dependencies{
		Config:  cfg,
		Orders:  orders,
		Health:  store,
		KDS:     hub,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.InfoLogger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	utils.InfoLogger.Println("Server stopped")
	return nil
}
