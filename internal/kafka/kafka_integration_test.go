//go:build integration

package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/logistics/internal/cache/memory"
	"github.com/Gunvolt24/logistics/internal/domain"
	ikafka "github.com/Gunvolt24/logistics/internal/kafka"
	"github.com/Gunvolt24/logistics/internal/ports"
	pgrepo "github.com/Gunvolt24/logistics/internal/repo/postgres"
	"github.com/Gunvolt24/logistics/internal/testutil"
	"github.com/Gunvolt24/logistics/internal/usecase"
	"github.com/Gunvolt24/logistics/pkg/logger"
	"github.com/Gunvolt24/logistics/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

type applier interface {
	ApplyCarrierUpdate(ctx context.Context, raw []byte) error
}

type stack struct {
	ctx    context.Context
	orders *pgrepo.OrderRepository
	users  *pgrepo.UserRepository
	svc    *usecase.OrderService
	log    ports.Logger
	kf     *testutil.KafkaEnv
}

func newStack(t *testing.T) *stack {
	t.Helper()

	// Длинный контекст — на контейнеры
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })
	require.NoError(t, testutil.ApplyMigrations(ctxStart, pg.Pool))

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "carrier-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// Короткий контекст — сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	orders := pgrepo.NewOrderRepository(pg.Pool)
	svc := usecase.NewOrderService(orders, cachemem.NewStore(100, time.Minute), logg, validate.NewValidator(), ikafka.NopPublisher{})

	return &stack{ctx: ctx, orders: orders, users: pgrepo.NewUserRepository(pg.Pool), svc: svc, log: logg, kf: kf}
}

func (s *stack) seedOrder(t *testing.T, status domain.OrderStatus) domain.Order {
	t.Helper()
	u := testutil.MakeUser()
	require.NoError(t, s.users.Create(s.ctx, &u))
	o := testutil.MakeOrder(u.ID, testutil.WithStatus(status))
	require.NoError(t, s.orders.Create(s.ctx, &o))
	return o
}

func (s *stack) topic(t *testing.T) *testutil.CarrierTopic {
	t.Helper()
	ct, err := testutil.NewCarrierTopic(s.ctx, s.kf, safe(t))
	require.NoError(t, err)
	return ct
}

func feedConfig(ct *testutil.CarrierTopic) *ikafka.ConsumerConfig {
	return &ikafka.ConsumerConfig{
		Brokers:        ct.Brokers,
		Topic:          ct.Topic,
		GroupID:        ct.Group,
		StartOffset:    "first",
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   100 * time.Millisecond,
		RetryMax:       time.Second,
	}
}

// startFeed — читатель ленты до конца теста; возвращает функцию досрочной остановки.
func (s *stack) startFeed(t *testing.T, ct *testutil.CarrierTopic, service applier) func() {
	t.Helper()
	feed := ikafka.NewStatusFeed(feedConfig(ct), service, s.log)

	runCtx, cancelRun := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = feed.Run(runCtx)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancelRun()
			<-done
			_ = feed.Close()
		})
	}
	t.Cleanup(stop)

	// даём читателю присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)
	return stop
}

func (s *stack) waitStatus(t *testing.T, id string, want domain.OrderStatus) {
	t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for {
		got, err := s.orders.GetByID(s.ctx, id)
		require.NoError(t, err)
		if got != nil && got.Status == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("order %s did not reach %s in time", id, want)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func update(tracking string, status domain.OrderStatus) domain.CarrierStatusUpdate {
	return domain.CarrierStatusUpdate{TrackingNumber: tracking, Status: status}
}

// 1) Событие перевозчика переводит заказ в новый статус
func TestKafka_CarrierUpdate_Applied_TC(t *testing.T) {
	s := newStack(t)
	ord := s.seedOrder(t, domain.OrderStatusPending)
	ct := s.topic(t)
	s.startFeed(t, ct, s.svc)

	require.NoError(t, ct.Publish(s.ctx, update(ord.TrackingNumber, domain.OrderStatusInTransit)))
	s.waitStatus(t, ord.ID, domain.OrderStatusInTransit)
}

// 2) Мусор, запрещённый переход и неизвестный трек-номер пропускаются, следующее событие применяется
func TestKafka_Skip_Invalid_Then_Apply_TC(t *testing.T) {
	s := newStack(t)
	delivered := s.seedOrder(t, domain.OrderStatusDelivered)
	pending := s.seedOrder(t, domain.OrderStatusPending)
	ct := s.topic(t)
	s.startFeed(t, ct, s.svc)

	require.NoError(t, ct.PublishRaw(s.ctx, "garbage", []byte("not-a-json")))
	require.NoError(t, ct.Publish(s.ctx,
		update(delivered.TrackingNumber, domain.OrderStatusPending),
		update("TRK-UNKNOWN-000000", domain.OrderStatusDelivered),
		update(pending.TrackingNumber, domain.OrderStatusCanceled),
	))

	s.waitStatus(t, pending.ID, domain.OrderStatusCanceled)

	got, err := s.orders.GetByID(s.ctx, delivered.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusDelivered, got.Status)
}

// 3) Повтор того же события — без ошибок и без изменений
func TestKafka_Duplicate_Idempotent_TC(t *testing.T) {
	s := newStack(t)
	ord := s.seedOrder(t, domain.OrderStatusPending)
	next := s.seedOrder(t, domain.OrderStatusPending)
	ct := s.topic(t)
	s.startFeed(t, ct, s.svc)

	require.NoError(t, ct.Publish(s.ctx,
		update(ord.TrackingNumber, domain.OrderStatusInTransit),
		update(ord.TrackingNumber, domain.OrderStatusInTransit),
		update(next.TrackingNumber, domain.OrderStatusInTransit),
	))

	// последнее событие применено — значит дубликат не застрял
	s.waitStatus(t, next.ID, domain.OrderStatusInTransit)
	s.waitStatus(t, ord.ID, domain.OrderStatusInTransit)
}

// 4) Остановка во время временной ошибки — оффсет не закоммичен, новый читатель группы получает событие снова
func TestKafka_Redelivery_AfterTemporaryFailure_TC(t *testing.T) {
	s := newStack(t)
	ord := s.seedOrder(t, domain.OrderStatusPending)
	ct := s.topic(t)

	stopFailing := s.startFeed(t, ct, alwaysTempFail{})
	require.NoError(t, ct.Publish(s.ctx, update(ord.TrackingNumber, domain.OrderStatusInTransit)))
	time.Sleep(2 * time.Second)
	stopFailing()

	s.startFeed(t, ct, s.svc)
	s.waitStatus(t, ord.ID, domain.OrderStatusInTransit)
}

// 5) Временные ошибки повторяются на том же сообщении: порядок событий заказа сохраняется
func TestKafka_TemporaryFailure_KeepsOrder_TC(t *testing.T) {
	s := newStack(t)
	ord := s.seedOrder(t, domain.OrderStatusPending)
	ct := s.topic(t)
	s.startFeed(t, ct, &flakyApplier{next: s.svc, failures: 3})

	require.NoError(t, ct.Publish(s.ctx,
		update(ord.TrackingNumber, domain.OrderStatusInTransit),
		update(ord.TrackingNumber, domain.OrderStatusDelivered),
	))

	// если бы первое событие пропустили, второе стало бы запрещённым переходом PENDING -> DELIVERED
	s.waitStatus(t, ord.ID, domain.OrderStatusDelivered)
}

type alwaysTempFail struct{}

func (alwaysTempFail) ApplyCarrierUpdate(context.Context, []byte) error {
	return errors.New("temporary failure")
}

// flakyApplier — первые failures вызовов падают временной ошибкой, дальше делегирует.
type flakyApplier struct {
	next     applier
	mu       sync.Mutex
	failures int
}

func (f *flakyApplier) ApplyCarrierUpdate(ctx context.Context, raw []byte) error {
	f.mu.Lock()
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return errors.New("temporary failure")
	}
	f.mu.Unlock()
	return f.next.ApplyCarrierUpdate(ctx, raw)
}
