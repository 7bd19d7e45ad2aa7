package playback

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/internal/config"
	"github.com/Raikerian/go-choirboy/pkg/audio"
)

// Module provides the configured Player.
var Module = fx.Module("playback",
	fx.Provide(NewPlayer),
)

// NewPlayerParams holds dependencies for NewPlayer.
type NewPlayerParams struct {
	fx.In
	Cfg    *config.Config
	Source *audio.Buffer
	Logger *zap.Logger
	LC     fx.Lifecycle
}

// NewPlayer opens the output selected by playback.output at the source's
// sample rate and closes it when the application stops.
func NewPlayer(params NewPlayerParams) (Player, error) {
	var (
		player Player
		err    error
	)

	switch params.Cfg.Playback.Output {
	case config.OutputWAV:
		player, err = NewWAVFilePlayer(params.Cfg.Playback.OutputFile, params.Source.SampleRate)
		if err == nil {
			params.Logger.Info("Rendering to wav file", zap.String("path", params.Cfg.Playback.OutputFile))
		}
	case config.OutputDevice:
		player, err = NewDevicePlayer(context.Background(), params.Source.SampleRate, params.Logger)
	default:
		err = fmt.Errorf("unknown output %q", params.Cfg.Playback.Output)
	}
	if err != nil {
		return nil, err
	}

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := player.Close(); err != nil {
				params.Logger.Error("Failed to close output", zap.Error(err))
				return err
			}
			params.Logger.Info("Output closed")
			return nil
		},
	})

	return player, nil
}
