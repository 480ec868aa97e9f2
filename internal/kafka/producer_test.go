package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/kafka/mocks"
)

func TestProducer_Publish_KeyedByOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	event := domain.OrderEvent{
		Type:           domain.EventOrderStatusChanged,
		OrderID:        "o1",
		TrackingNumber: "TRK-1-ABCDEF",
		From:           domain.OrderStatusPending,
		To:             domain.OrderStatusInTransit,
		At:             time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			require.Equal(t, "o1", string(msgs[0].Key))

			var got map[string]any
			require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
			require.Equal(t, "order.status_changed", got["type"])
			require.Equal(t, "PENDING", got["from"])
			require.Equal(t, "IN_TRANSIT", got["to"])
			require.Equal(t, "TRK-1-ABCDEF", got["trackingNumber"])
			return nil
		})

	p := &Producer{writer: w, topic: "order-events", log: nopLogger{}}
	require.NoError(t, p.Publish(context.Background(), event))
}

func TestProducer_Publish_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))

	p := &Producer{writer: w, topic: "order-events", log: nopLogger{}}
	err := p.Publish(context.Background(), domain.OrderEvent{Type: domain.EventOrderCreated, OrderID: "o1"})
	require.Error(t, err)
}

func TestProducer_CloseOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().Close().Return(nil).Times(1)

	p := &Producer{writer: w, topic: "order-events", log: nopLogger{}}
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}
