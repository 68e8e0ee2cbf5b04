package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riservarotundo/order-service/internal/config"
	"github.com/riservarotundo/order-service/internal/order/application"
	orderhttp "github.com/riservarotundo/order-service/internal/order/infrastructure/http"
	orderpg "github.com/riservarotundo/order-service/internal/order/infrastructure/postgres"
	ordersmtp "github.com/riservarotundo/order-service/internal/order/infrastructure/smtp"
	"github.com/riservarotundo/order-service/pkg/logging"
	"github.com/riservarotundo/order-service/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Postgres setup
	if err := orderpg.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Wiring
	repo := orderpg.NewRepository(log, pool)
	mailer := ordersmtp.NewMailer(log, cfg)
	svc := application.NewService(log, repo, mailer, cfg.Recipient())
	handler := orderhttp.NewHandler(log, svc)

	// HTTP server
	r := chi.NewRouter()
	r.Mount("/", handler.Routes())
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("order-service shutdown complete")
}
