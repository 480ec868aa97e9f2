package logger_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/logistics/pkg/ctxmeta"
	"github.com/Gunvolt24/logistics/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_AddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.Wrap(zap.New(core), false)

	ctx := ctxmeta.WithRequestID(context.Background(), "req-1")
	ctx = ctxmeta.WithUserID(ctx, "user-1")

	log.Infof(ctx, "order created tracking=%s", "TRK-1-ABC")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "order created tracking=TRK-1-ABC", entry.Message)

	fields := entry.ContextMap()
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "user-1", fields["user_id"])
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.Wrap(zap.New(core), true)

	log.Infof(context.Background(), "info")
	log.Warnf(context.Background(), "warn")
	log.Errorf(context.Background(), "error %d", 1)

	require.Equal(t, 3, logs.Len())
	require.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
	require.Equal(t, zapcore.ErrorLevel, logs.All()[2].Level)
	require.Empty(t, logs.All()[0].ContextMap())
}
