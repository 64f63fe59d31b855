// Package main provides the Azure cost dashboard web server.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lvonguyen/azure-cost-dashboard/internal/config"
	"github.com/lvonguyen/azure-cost-dashboard/internal/normalizer"
	"github.com/lvonguyen/azure-cost-dashboard/internal/pipeline"
	"github.com/lvonguyen/azure-cost-dashboard/internal/providers"
	"github.com/lvonguyen/azure-cost-dashboard/internal/server"
)

// Flags holds command line options.
type Flags struct {
	ConfigPath string
	Addr       string
	MonthlySum bool
	Verbose    bool
}

func main() {
	flags := parseFlags()

	// Credentials usually live in a local .env file, like the hosted
	// dashboard. Missing file is fine.
	_ = godotenv.Load()

	var logger *zap.Logger
	var err error
	if flags.Verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if flags.Addr != "" {
		cfg.Server.Addr = flags.Addr
	}

	logger.Info("Starting Azure Cost Dashboard",
		zap.String("addr", cfg.Server.Addr),
		zap.String("config", flags.ConfigPath),
	)

	var rng *rand.Rand
	if cfg.Mock.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Mock.Seed))
	}

	monthlyReducer := normalizer.ReduceKeepFirst
	if flags.MonthlySum {
		monthlyReducer = normalizer.ReduceSum
	}

	pipe := pipeline.New(
		normalizer.NewAggregator(monthlyReducer),
		providers.NewMockGenerator(rng),
		logger,
	)
	srv := server.New(cfg, pipe, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal")
		cancel()
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}

	logger.Info("Azure Cost Dashboard stopped")
}

func parseFlags() *Flags {
	flags := &Flags{}

	flag.StringVar(&flags.ConfigPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&flags.Addr, "addr", "", "Listen address, overrides config (e.g. :5001)")
	flag.BoolVar(&flags.MonthlySum, "monthly-sum", false, "Sum same-month cost rows instead of keeping the first sample per month")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	return flags
}
