package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-notification-service/internal/api/http"
	"github.com/spec-kit/user-notification-service/internal/api/http/handlers"
	"github.com/spec-kit/user-notification-service/internal/auth"
	"github.com/spec-kit/user-notification-service/internal/config"
	"github.com/spec-kit/user-notification-service/internal/events"
	"github.com/spec-kit/user-notification-service/internal/messaging"
	"github.com/spec-kit/user-notification-service/internal/observability"
	"github.com/spec-kit/user-notification-service/internal/persistence"
	"github.com/spec-kit/user-notification-service/internal/ratelimit"
	"github.com/spec-kit/user-notification-service/internal/repository"
	"github.com/spec-kit/user-notification-service/internal/service"
	"github.com/spec-kit/user-notification-service/internal/worker"
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

	stores, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer stores.close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()

	var broker service.BrokerPublisher
	if cfg.Broker.AMQPURL != "" {
		publisher, err := messaging.NewPublisher(cfg.Broker.AMQPURL, cfg.Broker.Exchange)
		if err != nil {
			logger.Warn("event forwarding disabled", zap.Error(err))
		} else {
			defer publisher.Close() //nolint:errcheck
			broker = publisher
		}
	}
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, broker))

	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:   stores.users,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: stores.notifications,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	authMiddleware := auth.NewAuthMiddleware(userService.TokenManager(), stores.users)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
		handlers.Dependency{Name: cfg.Store.Driver, Pinger: stores.pinger},
		handlers.Dependency{Name: "redis", Pinger: redis, Optional: true},
	)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          handlers.NewUsersHandler(userService, cfg.Users.RedactPasswordHash),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: authMiddleware,
		ProtectRoutes:  cfg.Auth.ProtectRoutes,
		AdminRoles:     cfg.Auth.AdminRoles,
		LoginLimiter:   ratelimit.NewFixedWindowLimiter(redis.Handle(), "login", cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
		MetricsHandler: adaptor.HTTPHandler(metrics.Handler()),
		Logger:         logger,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// storeSet holds the repositories for the selected driver.
type storeSet struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
	pinger        handlers.Pinger
	close         func()
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storeSet, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		return &storeSet{
			users:         repository.NewUserRepository(pg.PoolHandle()),
			notifications: repository.NewNotificationRepository(pg.PoolHandle()),
			pinger:        pg,
			close:         pg.Close,
		}, nil
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return &storeSet{
			users:         repository.NewMemoryUserRepository(),
			notifications: repository.NewMemoryNotificationRepository(),
			close:         func() {},
		}, nil
	default:
		m, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		return &storeSet{
			users:         repository.NewMongoUserRepository(m.DB),
			notifications: repository.NewMongoNotificationRepository(m.DB),
			pinger:        m,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				m.Close(closeCtx)
			},
		}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
