package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/logistics/config"
	"github.com/Gunvolt24/logistics/internal/auth"
	cachemem "github.com/Gunvolt24/logistics/internal/cache/memory"
	cacheredis "github.com/Gunvolt24/logistics/internal/cache/redis"
	"github.com/Gunvolt24/logistics/internal/kafka"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/internal/repo/postgres"
	"github.com/Gunvolt24/logistics/internal/session"
	rest "github.com/Gunvolt24/logistics/internal/transport/http"
	"github.com/Gunvolt24/logistics/internal/usecase"
	"github.com/Gunvolt24/logistics/pkg/logger"
	"github.com/Gunvolt24/logistics/pkg/metrics"
	"github.com/Gunvolt24/logistics/pkg/telemetry"
	"github.com/Gunvolt24/logistics/pkg/validate"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмер ленты статусов; nil, если Kafka выключена
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// RedisOptions — параметры клиента Redis из конфигурации.
func RedisOptions(cfg *config.Redis) cacheredis.ClientOptions {
	return cacheredis.ClientOptions{
		URL:          cfg.URL,
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		TLS:          cfg.TLS,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	}
}

// NewCacheStore — общий кэш по CACHE_DRIVER: "memory" или Redis (по умолчанию).
func NewCacheStore(cfg *config.Cache, client goredis.UniversalClient, log ports.Logger) (ports.CacheStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "memory":
		return cachemem.NewStore(cfg.Capacity, cfg.DefaultTTL), nil
	case "", "redis":
		return cacheredis.NewStore(client, cfg.DefaultTTL, log), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Стек очистки: выполняется в обратном порядке.
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		cleanup()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений Postgres и миграции.
	pool, err := postgres.NewPool(ctx, postgres.PoolOptions{
		DSN:            cfg.Postgres.DSN,
		MaxConns:       cfg.Postgres.MaxConns,
		MinConns:       cfg.Postgres.MinConns,
		ConnectTimeout: cfg.Postgres.ConnTimeout,
	})
	if err != nil {
		return fail(err)
	}
	closers = append(closers, pool.Close)

	if cfg.Postgres.AutoMigrate {
		applied, mErr := postgres.Migrate(ctx, pool, cfg.Postgres.MigrationsDir)
		if mErr != nil {
			return fail(mErr)
		}
		logg.Infof(ctx, "migrations applied=%d dir=%s", applied, cfg.Postgres.MigrationsDir)
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: cfg.Tracing.ServiceVersion,
			Endpoint:       cfg.Tracing.Endpoint,
			SampleRatio:    cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if terr := setup(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Redis нужен всегда: реестр сессий живёт только в нём, даже при CACHE_DRIVER=memory.
	redisClient, err := cacheredis.NewClient(ctx, RedisOptions(&cfg.Redis))
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() {
		if cerr := redisClient.Close(); cerr != nil {
			logg.Warnf(ctx, "redis close: %v", cerr)
		}
	})

	cacheStore, err := NewCacheStore(&cfg.Cache, redisClient, logg)
	if err != nil {
		return fail(err)
	}
	sessions := session.NewRegistry(redisClient, logg)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fail(err)
	}

	// Публикация событий заказов: Kafka или заглушка.
	var publisher ports.OrderEventPublisher = kafka.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(&kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.EventsTopic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logg)
		closers = append(closers, func() {
			if perr := producer.Close(); perr != nil {
				logg.Warnf(ctx, "kafka producer close error: %v", perr)
			}
		})
		publisher = producer
	}

	// Сборка зависимостей доменного слоя.
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	validator := validate.NewValidator()

	orderService := usecase.NewOrderService(orderRepo, cacheStore, logg, validator, publisher)
	authService := usecase.NewAuthService(userRepo, sessions, tokens, cacheStore, validator, logg)
	userService := usecase.NewUserService(userRepo, sessions, cacheStore, logg)
	healthService := usecase.NewHealthService(pool, cacheStore, logg)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(rest.Services{
		Orders: orderService,
		Auth:   authService,
		Users:  userService,
		Health: healthService,
	}, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Консьюмер ленты статусов перевозчика.
	if cfg.Kafka.Enabled {
		feedCfg := &kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.StatusTopic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}
		if err := feedCfg.Validate(); err != nil {
			return fail(err)
		}
		consumer := kafka.NewStatusFeed(feedCfg, orderService, logg)
		closers = append(closers, func() {
			if kerr := consumer.Close(); kerr != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", kerr)
			}
		})
		app.KafkaConsumer = consumer
	} else {
		logg.Infof(ctx, "kafka disabled: carrier feed is not consumed, order events are not published")
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера.
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка Kafka-консьюмера
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
