package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"marketplace/internal/app"
	riderstatushandler "marketplace/internal/handlers/kafka-consumer/rider_status_changed"
	"marketplace/internal/handlers/rest/healthcheck_head"
	"marketplace/internal/pkg/config"
	"marketplace/internal/pkg/dotenv"
	"marketplace/internal/pkg/kafka"
	"marketplace/internal/pkg/postgres"
	"marketplace/pkg/logger"
	"marketplace/pkg/logger/zap_adapter"
)

func main() {
	// .env читается до логгера, чтобы LOG_LEVEL из файла тоже применился
	envFiles, envErr := dotenv.Load(dotenv.DefaultFiles...)

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"), logger.NewField("service", "rider-status-worker"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting rider-status worker application")

	if envErr != nil {
		mainLog.Error("failed to load .env file",
			logger.NewField("error", envErr),
		)
		return
	}
	if len(envFiles) == 0 {
		mainLog.Warn("No .env file found, using system environment variables")
	} else {
		mainLog.Info("environment loaded", logger.NewField("files", envFiles))
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config",
			logger.NewField("error", err),
		)
		return
	}

	err = run(context.Background(), appLogger, cfg)
	if err != nil {
		mainLog.Error("application failed",
			logger.NewField("error", err),
		)
		return
	}
}

//nolint:contextcheck // shutdown наследуется от context.Background(), а не от отменённого ctx
func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	const (
		shutdownPeriod      = 15 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(signalCtx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	businessApp, err := app.InitializeKafkaWorkerApp(signalCtx, log, pool, pgxv5.DefaultCtxGetter, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	brokers := kafka.SplitBrokers(cfg.Kafka.Brokers)
	consumer, err := kafka.NewConsumer(
		signalCtx,
		log,
		&cfg.Kafka,
		brokers,
		cfg.Kafka.ConsumerGroup,
		[]string{cfg.Kafka.Topic},
		riderstatushandler.New(log, businessApp.RiderStatusService, cfg.Kafka.Handlers.RiderStatusChanged.ProcessTimeout),
	)
	if err != nil {
		return fmt.Errorf("kafka consumer: %w", err)
	}

	// consumeCtx не наследует сигнал: сообщения в обработке дочитываются
	// уже после SIGTERM, отмена только после остановки health сервера.
	consumeCtx, stopConsuming := context.WithCancel(context.Background())
	defer stopConsuming()

	healthServer := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Kafka.PortHealthcheck),
		Handler:           initHealthcheckRouter(&isShuttingDown, pool),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(signalCtx)

	g.Go(func() error {
		runLog.Info("healthcheck server starting", logger.NewField("port", cfg.Kafka.PortHealthcheck))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("healthcheck server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runLog.Info("kafka consumer starting",
			logger.NewField("brokers", brokers),
			logger.NewField("topic", cfg.Kafka.Topic),
			logger.NewField("group", cfg.Kafka.ConsumerGroup),
		)
		err := consumer.Start(consumeCtx)
		if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
			runLog.Info("kafka consumer stopped")
			return nil
		}
		return fmt.Errorf("consumer: %w", err)
	})

	g.Go(func() error {
		<-gctx.Done()
		isShuttingDown.Store(true)

		// при сигнале даём балансировщику увидеть 503, при падении соседа сразу выходим
		if signalCtx.Err() != nil {
			runLog.Info("shutdown signal received")
			time.Sleep(readinessDrainDelay)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
		defer cancel()
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			runLog.Warn("healthcheck server shutdown", logger.NewField("error", err))
		}

		stopConsuming()
		if err := consumer.Close(); err != nil {
			runLog.Error("failed to close kafka consumer", logger.NewField("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	runLog.Info("Worker stopped")
	return nil
}

// initHealthcheckRouter порт воркера отдаёт готовность и метрики консьюмера.
func initHealthcheckRouter(isShuttingDown *atomic.Bool, db healthcheck_head.Pinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, db))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
