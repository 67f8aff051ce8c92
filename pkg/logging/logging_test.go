package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	f, logger, err := FileLogger(logrus.InfoLevel, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	logger.WithField("component", "test").Info("hello")
	logger.Debug("hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
	require.Contains(t, string(data), `"component":"test"`)
	require.NotContains(t, string(data), "hidden")
}

func TestNop(t *testing.T) {
	entry := Nop()
	require.NotPanics(t, func() { entry.WithField("k", "v").Error("discarded") })
	require.Equal(t, logrus.PanicLevel, entry.Logger.GetLevel())
}

func TestSetupTracing(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown := SetupTracing(context.Background(), "orgchart-test", "localhost:4318")
	require.NotNil(t, shutdown)
	require.NotSame(t, before, otel.GetTracerProvider())
	shutdown()
}
