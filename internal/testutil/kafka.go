//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/logistics/internal/domain"
)

// CarrierTopic — топик ленты статусов перевозчика и группа, созданные под один тест.
type CarrierTopic struct {
	Brokers []string
	Topic   string
	Group   string
}

// NewCarrierTopic — уникальные topic/group от префикса и одна партиция:
// порядок событий в тесте совпадает с порядком записи.
func NewCarrierTopic(ctx context.Context, env *KafkaEnv, name string) (*CarrierTopic, error) {
	suffix := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	topic := fmt.Sprintf("%s-%s-%s", env.BaseTopic, name, suffix)

	if err := ensureTopic(ctx, env.Brokers[0], topic); err != nil {
		return nil, fmt.Errorf("ensure topic %s: %w", topic, err)
	}
	return &CarrierTopic{Brokers: env.Brokers, Topic: topic, Group: topic + "-g"}, nil
}

// Publish — события перевозчика с ключом по трек-номеру.
func (c *CarrierTopic) Publish(ctx context.Context, updates ...domain.CarrierStatusUpdate) error {
	msgs := make([]kafka.Message, 0, len(updates))
	for _, u := range updates {
		raw, err := json.Marshal(u)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(u.TrackingNumber), Value: raw})
	}
	return c.write(ctx, msgs...)
}

// PublishRaw — произвольный payload (мусор, неизвестные поля).
func (c *CarrierTopic) PublishRaw(ctx context.Context, key string, payload []byte) error {
	return c.write(ctx, kafka.Message{Key: []byte(key), Value: payload})
}

func (c *CarrierTopic) write(ctx context.Context, msgs ...kafka.Message) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        c.Topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.Hash{},
	}
	defer w.Close()
	return w.WriteMessages(ctx, msgs...)
}

// ensureTopic — создаёт топик через контроллер кластера ("already exists" — не ошибка)
// и ждёт его появления в метаданных.
func ensureTopic(ctx context.Context, broker, topic string) error {
	addr := firstBootstrap(broker)

	conn, err := kafka.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.Dial("tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}

	return waitTopicReady(ctx, addr, topic)
}

// firstBootstrap — первый адрес bootstrap-строки без схемы вида "PLAINTEXT://".
func firstBootstrap(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitTopicReady(ctx context.Context, broker, topic string) error {
	deadline := time.Now().Add(5 * time.Second)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c, err := kafka.Dial("tcp", broker)
		if err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %w", topic, err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
