package session

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/internal/config"
	"github.com/Raikerian/go-choirboy/internal/playback"
	"github.com/Raikerian/go-choirboy/pkg/audio"
	"github.com/Raikerian/go-choirboy/pkg/choir"
)

// Module provides the choir engine and the session runner.
var Module = fx.Module("session",
	fx.Provide(
		NewEngine,
		NewMixer,
		NewRunnerFromConfig,
	),
)

// NewEngineParams holds dependencies for NewEngine.
type NewEngineParams struct {
	fx.In
	Cfg    *config.Config
	Params choir.Params
	Source *audio.Buffer
	Logger *zap.Logger
}

// NewEngine builds the session's mix engine from the validated parameters.
func NewEngine(params NewEngineParams) (*choir.Engine, error) {
	rnd := choir.NewRandomSource(params.Cfg.Playback.Seed)
	return choir.NewEngine(params.Source, params.Params, rnd, params.Cfg.Playback.VoiceCacheSize, params.Logger)
}

// NewMixer exposes the engine to the runner.
func NewMixer(e *choir.Engine) Mixer {
	return e
}

// NewRunnerParams holds dependencies for NewRunnerFromConfig.
type NewRunnerParams struct {
	fx.In
	Cfg    *config.Config
	Mixer  Mixer
	Player playback.Player
	Source *audio.Buffer
	Logger *zap.Logger
}

// NewRunnerFromConfig creates the session runner.
func NewRunnerFromConfig(params NewRunnerParams) *Runner {
	return NewRunner(params.Mixer, params.Player, params.Logger, Options{
		Cycles:   params.Cfg.Playback.Cycles,
		Pipeline: params.Cfg.Playback.Pipeline,
		Period:   params.Source.Duration(),
	})
}
