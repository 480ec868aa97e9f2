//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"

	pgrepo "github.com/Gunvolt24/logistics/internal/repo/postgres"
)

// Образы можно переопределить, например на зеркало в CI.
var (
	postgresImage = imageFromEnv("TC_POSTGRES_IMAGE", "postgres:16-alpine")
	redisImage    = imageFromEnv("TC_REDIS_IMAGE", "redis:7-alpine")
	redpandaImage = imageFromEnv("TC_REDPANDA_IMAGE", "docker.redpanda.com/redpandadata/redpanda:v23.3.8")
)

// StopFunc — остановка контейнера и связанных с ним клиентов.
type StopFunc func(context.Context) error

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

func imageFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lifecycleLog — одна строка лога на каждый этап жизни контейнера.
func lifecycleLog(service string) tc.CustomizeRequestOption {
	stage := func(name string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			tcLogger.Printf("%s %s id=%s", service, name, id)
			return nil
		}
	}
	return tc.WithLifecycleHooks(tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{func(_ context.Context, req tc.ContainerRequest) error {
			tcLogger.Printf("%s creating image=%s", service, req.Image)
			return nil
		}},
		PostStarts:     []tc.ContainerHook{stage("started")},
		PostReadies:    []tc.ContainerHook{stage("ready")},
		PreTerminates:  []tc.ContainerHook{stage("terminating")},
		PostTerminates: []tc.ContainerHook{stage("terminated")},
	})
}

// PGContainer — Postgres с пулом, собранным тем же конструктором, что и в сервисе.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

func StartPostgresTC(ctx context.Context) (*PGContainer, StopFunc, error) {
	pg, err := postgres.Run(ctx, postgresImage,
		lifecycleLog("postgres"),
		postgres.WithDatabase("logistics"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				// postgres перезапускается после init-скриптов: ждём второе сообщение
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("postgres dsn: %w", err)
	}

	pool, err := pgrepo.NewPool(ctx, pgrepo.PoolOptions{DSN: dsn, MaxConns: 5, ConnectTimeout: 5 * time.Second})
	if err != nil {
		_ = tc.TerminateContainer(pg)
		return nil, nil, err
	}

	stop := func(_ context.Context) error {
		pool.Close()
		return tc.TerminateContainer(pg)
	}
	return &PGContainer{Container: pg, Pool: pool, DSN: dsn}, stop, nil
}

// KafkaEnv — Redpanda с автосозданием топиков. BaseTopic — префикс имён топиков теста.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, StopFunc, error) {
	rp, err := redpanda.Run(ctx, redpandaImage,
		lifecycleLog("redpanda"),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("redpanda seed broker: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}

// RedisEnv — Redis для реестра сессий и кэша; URL вида redis://host:port.
type RedisEnv struct {
	Container *tcredis.RedisContainer
	URL       string
}

func StartRedisTC(ctx context.Context) (*RedisEnv, StopFunc, error) {
	rc, err := tcredis.Run(ctx, redisImage, lifecycleLog("redis"))
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}

	url, err := rc.ConnectionString(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rc)
		return nil, nil, fmt.Errorf("redis url: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rc) }
	return &RedisEnv{Container: rc, URL: url}, stop, nil
}
