package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/config"
	"github.com/IAmPiHi/StockSystem/internal/infra"
	"github.com/IAmPiHi/StockSystem/internal/report"
	"github.com/IAmPiHi/StockSystem/internal/repository"
	"github.com/IAmPiHi/StockSystem/internal/router"
	"github.com/IAmPiHi/StockSystem/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := infra.Seed(ctx, db, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	// Reporting core — shared between the HTTP surface and the scheduler.
	saleRepo := repository.NewSaleRepository(db)
	agg := report.NewAggregator(saleRepo, nil)
	mat, err := report.NewMaterializer(agg, cfg.ReportsDir, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare reports directory")
	}

	sched := report.NewScheduler(mat, nil)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start report scheduler")
	}
	defer sched.Stop()

	// Goroutine worker pool for async tasks (receipt PDFs). Handlers are
	// wired here (composition root) so the pool sees all infrastructure.
	workerHandlers := &worker.Handlers{
		Receipt: worker.NewReceiptWorker(saleRepo, cfg.ReceiptsDir),
	}
	worker.StartPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, agg, mat)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("StockSystem backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
