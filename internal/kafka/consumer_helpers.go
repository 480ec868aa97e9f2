package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// deliver — применяет сообщение, повторяя временные ошибки с backoff.
// nil — сообщение применено или отвергнуто навсегда, его можно коммитить.
func (f *StatusFeed) deliver(ctx context.Context, topic string, msg *kafka.Message) error {
	wait := f.retryInitial
	for attempt := 1; ; attempt++ {
		err := f.apply(ctx, msg)
		switch {
		case err == nil:
			metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
			return nil
		case errors.Is(err, domain.ErrInvalidEvent):
			metrics.KafkaMessagesFailed.WithLabelValues(topic, "invalid").Inc()
			f.log.Warnf(ctx, "carrier event skipped key=%s partition=%d offset=%d: %v",
				msg.Key, msg.Partition, msg.Offset, err)
			return nil
		}

		metrics.KafkaMessagesFailed.WithLabelValues(topic, "temporary").Inc()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleep := f.withJitterEqual(wait)
		f.log.Warnf(ctx, "carrier event failed key=%s offset=%d attempt=%d: %v (retry in %s)",
			msg.Key, msg.Offset, attempt, err, sleep)
		if !f.sleepWithBackoff(ctx, sleep) {
			return ctx.Err()
		}
		wait = f.nextBackoff(wait)
	}
}

// apply — один вызов бизнес-логики с таймаутом обработки.
func (f *StatusFeed) apply(ctx context.Context, msg *kafka.Message) error {
	ctx, cancel := context.WithTimeout(ctx, f.processTimeout)
	defer cancel()
	return f.service.ApplyCarrierUpdate(ctx, msg.Value)
}

// commitSafely — ошибка коммита только логируется: сообщение придёт повторно, а применение идемпотентно.
func (f *StatusFeed) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := f.reader.CommitMessages(ctx, *msg); commitErr != nil {
		f.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff — false, если контекст отменён раньше.
func (f *StatusFeed) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (f *StatusFeed) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > f.retryMax {
		return f.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (f *StatusFeed) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(f.jitterRand.Int63n(int64(d-half)+1))
}
