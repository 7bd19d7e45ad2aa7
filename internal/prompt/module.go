package prompt

import (
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/internal/config"
	"github.com/Raikerian/go-choirboy/pkg/choir"
)

// Module provides the validated session parameters.
var Module = fx.Module("prompt",
	fx.Provide(
		NewTerminal,
		NewParams,
	),
)

// Terminal is where interactive questions are asked.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminal returns the process stdin/stdout.
func NewTerminal() Terminal {
	return Terminal{In: os.Stdin, Out: os.Stdout}
}

// NewParamsParams holds dependencies for NewParams.
type NewParamsParams struct {
	fx.In
	Cfg      *config.Config
	Logger   *zap.Logger
	Terminal Terminal
}

// NewParams returns the session parameters, prompting on the terminal in
// interactive mode and reading them from config otherwise.
func NewParams(params NewParamsParams) (choir.Params, error) {
	var (
		p   choir.Params
		err error
	)

	if params.Cfg.Choir.Interactive {
		p, err = NewPrompter(params.Terminal.In, params.Terminal.Out).Params()
		if err != nil {
			return choir.Params{}, err
		}
	} else {
		delay, err := choir.ParseDelayMillis(params.Cfg.Choir.MaxDelayMs)
		if err != nil {
			params.Logger.Error("Invalid choir parameters", zap.Error(err))
			return choir.Params{}, err
		}
		p = choir.Params{
			PitchOffset: params.Cfg.Choir.PitchOffset,
			NumVoices:   params.Cfg.Choir.NumVoices,
			MaxDelay:    delay,
		}
	}

	if err := p.Validate(); err != nil {
		params.Logger.Error("Invalid choir parameters", zap.Error(err))
		return choir.Params{}, err
	}

	params.Logger.Info("Choir parameters",
		zap.Float64("pitch_offset", p.PitchOffset),
		zap.Int("num_voices", p.NumVoices),
		zap.Duration("max_delay", p.MaxDelay),
		zap.Bool("interactive", params.Cfg.Choir.Interactive))

	return p, nil
}
