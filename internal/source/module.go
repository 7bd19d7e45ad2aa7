package source

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/internal/config"
	"github.com/Raikerian/go-choirboy/pkg/audio"
)

// Module provides the decoded source recording.
var Module = fx.Module("source",
	fx.Provide(NewSource),
)

// NewSource loads the configured input file once for the whole session.
func NewSource(cfg *config.Config, logger *zap.Logger) (*audio.Buffer, error) {
	path := cfg.Choir.InputFile

	buf, err := Load(path)
	if err != nil {
		logger.Error("Failed to load input file", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to load input file: %w", err)
	}

	logger.Info("Loaded input file",
		zap.String("path", path),
		zap.Int("frames", buf.Frames()),
		zap.Int("sample_rate", buf.SampleRate),
		zap.Duration("duration", buf.Duration()))

	return buf, nil
}
