package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var (
	_ ports.OrderEventPublisher = (*Producer)(nil)
	_ ports.OrderEventPublisher = NopPublisher{}
)

// writer — минимальный контракт над kafka.Writer (подменяется моком в тестах).
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerConfig — параметры публикации событий заказов.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Producer — публикует события жизненного цикла заказа, ключ сообщения — id заказа
// (все события одного заказа попадают в одну партицию и сохраняют порядок).
type Producer struct {
	writer    writer
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

func NewProducer(cfg *ProducerConfig, log ports.Logger) *Producer {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			WriteTimeout:           wt,
			AllowAutoTopicCreation: true,
		},
		topic: cfg.Topic,
		log:   log,
	}
}

// Publish — синхронная запись одного события.
func (p *Producer) Publish(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		metrics.KafkaEventsPublished.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("write %s to %s: %w", event.Type, p.topic, err)
	}
	metrics.KafkaEventsPublished.WithLabelValues(event.Type, "ok").Inc()
	return nil
}

func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

// NopPublisher — заглушка, когда Kafka выключена.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.OrderEvent) error { return nil }
