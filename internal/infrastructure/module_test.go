package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Raikerian/go-choirboy/internal/config"
)

func TestZapConfig(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"debug", zapcore.DebugLevel},
	}

	for _, tt := range tests {
		cfg, err := ZapConfig(tt.level)
		require.NoError(t, err, tt.level)
		assert.Equal(t, tt.want, cfg.Level.Level(), tt.level)
	}

	dev, err := ZapConfig("debug")
	require.NoError(t, err)
	assert.True(t, dev.Development)

	_, err = ZapConfig("chatty")
	assert.Error(t, err)
}

func TestLoggerModule(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"

	app := fxtest.New(t,
		fx.Supply(cfg),
		LoggerModule,
		fx.Invoke(func(logger *zap.Logger) {
			require.NotNil(t, logger)
			assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
			assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
		}),
	)

	app.RequireStart()
	app.RequireStop()
}
