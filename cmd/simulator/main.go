package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/selivandex/spot-simulator/internal/adapters/config"
	"github.com/selivandex/spot-simulator/internal/playback"
	"github.com/selivandex/spot-simulator/internal/session"
	"github.com/selivandex/spot-simulator/internal/sink"
	"github.com/selivandex/spot-simulator/internal/stats"
	"github.com/selivandex/spot-simulator/internal/workers"
	"github.com/selivandex/spot-simulator/pkg/logger"
	"github.com/selivandex/spot-simulator/pkg/models"
	"github.com/selivandex/spot-simulator/pkg/worker"
)

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Run application
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional; real environments configure through the process env
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Spot price simulator starting...")

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Addr, nil); err != nil {
				logger.Error("metrics endpoint failed", zap.Error(err))
			}
		}()
		logger.Info("metrics endpoint listening", zap.String("addr", cfg.Metrics.Addr))
	}

	parameters := models.SimulationParameters{
		MaxVolatility:         cfg.Simulation.MaxVolatility,
		MeanReversionStrength: cfg.Simulation.MeanReversionStrength,
		JumpFrequency:         cfg.Simulation.JumpFrequency,
		Seed:                  cfg.Simulation.Seed,
	}

	sess := session.New()
	if err := sess.Start(parameters, sink.NewConsole(), playback.Options{
		OverrunThreshold: cfg.Playback.OverrunThreshold,
	}); err != nil {
		return err
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	reporter := worker.NewPeriodicWorker(workers.NewProgressReporter(sess), cfg.Playback.ProgressInterval)
	reporter.Start(workerCtx)

	select {
	case <-ctx.Done():
		sess.Stop()
		<-sess.Done()
	case <-sess.Done():
	}

	stopWorkers()
	reporter.Stop(2 * time.Second)

	summary, err := stats.NewAnalyzer().Summarize(sess.Timeline())
	if err != nil {
		return fmt.Errorf("failed to summarize trajectory: %w", err)
	}

	logger.Info("trajectory summary",
		zap.String("mean_price", summary.MeanPrice.StringFixed(2)),
		zap.String("min_price", summary.MinPrice.StringFixed(2)),
		zap.String("max_price", summary.MaxPrice.StringFixed(2)),
		zap.String("final_price", summary.FinalPrice.StringFixed(2)),
		zap.Float64("realized_volatility", summary.RealizedVolatility),
		zap.Int("jumps", summary.JumpCount),
		zap.Int64("seed", sess.Seed()),
	)

	return nil
}
