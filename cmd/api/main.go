package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/counterdesk/counter-dispatch/internal/api/http"
	"github.com/counterdesk/counter-dispatch/internal/api/http/handlers"
	"github.com/counterdesk/counter-dispatch/internal/broadcast"
	"github.com/counterdesk/counter-dispatch/internal/config"
	"github.com/counterdesk/counter-dispatch/internal/counter"
	"github.com/counterdesk/counter-dispatch/internal/events"
	"github.com/counterdesk/counter-dispatch/internal/observability"
	"github.com/counterdesk/counter-dispatch/internal/persistence"
	"github.com/counterdesk/counter-dispatch/internal/repository"
	"github.com/counterdesk/counter-dispatch/internal/service"
	"github.com/counterdesk/counter-dispatch/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	desk := counter.NewDispatcher(counter.Options{
		CounterID:   cfg.Counter.ID,
		HistorySize: cfg.Counter.HistorySize,
		Seed:        cfg.Counter.RandomSeed,
	})
	counterService := service.NewCounterService(service.CounterDependencies{
		Counter:    desk,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	var sinks []service.Sink
	if redis.Enabled() {
		sinks = append(sinks, broadcast.NewPanelPublisher(redis.Client, cfg.Redis.PanelChannel, desk))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := broadcast.NewKafkaSink(broadcast.KafkaSinkConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			logger.Fatal("failed to init kafka sink", zap.Error(err))
		}
		defer kafkaSink.Close() //nolint:errcheck
		sinks = append(sinks, kafkaSink)
	}

	var auditRepo repository.TicketEventRepository
	if pg.Enabled() {
		auditRepo = repository.NewTicketEventRepository(pg.PoolHandle())
	}
	auditService := service.NewAuditService(auditRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, sinks...)
	worker.StartNotificationWorker(notificationService, auditService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets: handlers.NewTicketsHandler(counterService, auditService),
		Counter: handlers.NewCounterHandler(counterService),
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("counter open",
		zap.String("counter_id", desk.CounterID()),
		zap.String("addr", cfg.App.Addr()),
		zap.Int("sinks", len(sinks)),
		zap.Bool("audit", auditService.Enabled()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
