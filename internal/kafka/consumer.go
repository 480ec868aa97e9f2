package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageConsumer = (*StatusFeed)(nil)

// reader — минимальный контракт над kafka.Reader (подменяется моком в тестах).
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// statusApplier — разбор события перевозчика и переход статуса заказа.
// domain.ErrInvalidEvent — событие применить нельзя никогда.
type statusApplier interface {
	ApplyCarrierUpdate(ctx context.Context, raw []byte) error
}

// StatusFeed — читатель ленты статусов перевозчика.
// Сообщения одной партиции применяются строго по порядку: временная ошибка
// повторяется на том же сообщении, следующее не читается, пока текущее не применено
// или не отвергнуто. Оффсет коммитится только после этого (at-least-once).
type StatusFeed struct {
	reader         reader
	service        statusApplier
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

func NewStatusFeed(cfg *ConsumerConfig, service statusApplier, log ports.Logger) *StatusFeed {
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = time.Second
	}
	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &StatusFeed{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		service:        service,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — цикл чтения до отмены ctx. Возвращает только ошибку контекста.
func (f *StatusFeed) Run(ctx context.Context) error {
	rc := f.reader.Config()
	f.log.Infof(ctx, "carrier feed started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := f.retryInitial
	for {
		msg, fetchErr := f.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// брокер или сеть: ждём с equal-jitter и читаем снова
			sleep := f.withJitterEqual(retry)
			f.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !f.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = f.nextBackoff(retry)
			continue
		}

		retry = f.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		// без коммита: после рестарта группа получит сообщение снова
		if err := f.deliver(ctx, rc.Topic, &msg); err != nil {
			return err
		}
		f.commitSafely(ctx, &msg)
	}
}

// Close — закрывает reader (повторный вызов безопасен).
func (f *StatusFeed) Close() (retErr error) {
	f.closeOnce.Do(func() {
		retErr = f.reader.Close()
	})
	return retErr
}
