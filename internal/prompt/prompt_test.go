package prompt_test

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/internal/config"
	"github.com/Raikerian/go-choirboy/internal/prompt"
	"github.com/Raikerian/go-choirboy/pkg/choir"
)

func TestPrompter_Params(t *testing.T) {
	var out bytes.Buffer
	p := prompt.NewPrompter(strings.NewReader("4\n3\n250\n"), &out)

	params, err := p.Params()
	require.NoError(t, err)

	assert.Equal(t, choir.Params{PitchOffset: 4, NumVoices: 3, MaxDelay: 250 * time.Millisecond}, params)
	assert.Equal(t,
		"Enter the pitch offset (1 to 12): "+
			"Enter the number of voices (1 to 12): "+
			"Enter the maximum delay (0 to 1000 milliseconds): ",
		out.String())
}

func TestPrompter_RetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	input := strings.Join([]string{
		"abc", "0.5", "13", " 2.5 ", // pitch offset
		"3.5", "0", "12", // voices
		"-1", "1000.5", "1000", // delay
	}, "\n") + "\n"
	p := prompt.NewPrompter(strings.NewReader(input), &out)

	params, err := p.Params()
	require.NoError(t, err)

	assert.Equal(t, 2.5, params.PitchOffset)
	assert.Equal(t, 12, params.NumVoices)
	assert.Equal(t, time.Second, params.MaxDelay)

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "Invalid input. Please enter a numeric value."))
	assert.Equal(t, 2, strings.Count(text, "Invalid pitch offset. Please enter a value between 1 and 12."))
	assert.Equal(t, 1, strings.Count(text, "Invalid input. Please enter an integer value."))
	assert.Equal(t, 1, strings.Count(text, "Invalid number of voices. Please enter a value between 1 and 12."))
	assert.Equal(t, 2, strings.Count(text, "Invalid delay. Please enter a value between 0 and 1000 milliseconds."))
	assert.Equal(t, 4, strings.Count(text, "Enter the pitch offset (1 to 12): "))
}

func TestPrompter_EndOfInput(t *testing.T) {
	p := prompt.NewPrompter(strings.NewReader("5\nnope\n"), &bytes.Buffer{})

	_, err := p.Params()
	assert.ErrorIs(t, err, prompt.ErrNoInput)
	assert.ErrorContains(t, err, "number of voices")
}

func TestNewParams_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Choir.Interactive = false
	cfg.Choir.PitchOffset = 6
	cfg.Choir.NumVoices = 4
	cfg.Choir.MaxDelayMs = 0

	p, err := prompt.NewParams(prompt.NewParamsParams{
		Cfg:      cfg,
		Logger:   zap.NewNop(),
		Terminal: prompt.Terminal{In: strings.NewReader(""), Out: &bytes.Buffer{}},
	})
	require.NoError(t, err)
	assert.Equal(t, choir.Params{PitchOffset: 6, NumVoices: 4}, p)
}

func TestNewParams_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Choir.Interactive = false
	cfg.Choir.NumVoices = 20

	_, err := prompt.NewParams(prompt.NewParamsParams{
		Cfg:    cfg,
		Logger: zap.NewNop(),
	})
	assert.ErrorIs(t, err, choir.ErrInvalidParams)
}

func TestNewParams_Interactive(t *testing.T) {
	cfg := config.Default()
	var out bytes.Buffer

	p, err := prompt.NewParams(prompt.NewParamsParams{
		Cfg:      cfg,
		Logger:   zap.NewNop(),
		Terminal: prompt.Terminal{In: strings.NewReader("12\n1\n0\n"), Out: &out},
	})
	require.NoError(t, err)
	assert.Equal(t, choir.Params{PitchOffset: 12, NumVoices: 1}, p)
	assert.Contains(t, out.String(), "Enter the maximum delay")
}

func TestPrompter_RejectsNonFiniteNumbers(t *testing.T) {
	var out bytes.Buffer
	input := strings.Join([]string{
		"nan", "Inf", "4",           // pitch offset
		"3",                         // voices
		"NaN", "-inf", "+Inf", "10", // delay
	}, "\n") + "\n"
	p := prompt.NewPrompter(strings.NewReader(input), &out)

	params, err := p.Params()
	require.NoError(t, err)
	require.NoError(t, params.Validate())

	assert.Equal(t, choir.Params{PitchOffset: 4, NumVoices: 3, MaxDelay: 10 * time.Millisecond}, params)
	assert.Equal(t, []float64{-4, 0, 4}, []float64(params.Ladder()))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Invalid pitch offset. Please enter a value between 1 and 12."))
	assert.Equal(t, 3, strings.Count(text, "Invalid delay. Please enter a value between 0 and 1000 milliseconds."))
	assert.NotContains(t, text, "Invalid input. Please enter a numeric value.")
}

func TestNewParams_NonFiniteConfig(t *testing.T) {
	tests := []struct {
		name  string
		apply func(c *config.Config)
	}{
		{"NaN pitch offset", func(c *config.Config) { c.Choir.PitchOffset = math.NaN() }},
		{"infinite pitch offset", func(c *config.Config) { c.Choir.PitchOffset = math.Inf(1) }},
		{"NaN max delay", func(c *config.Config) { c.Choir.MaxDelayMs = math.NaN() }},
		{"infinite max delay", func(c *config.Config) { c.Choir.MaxDelayMs = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Choir.Interactive = false
			tt.apply(cfg)

			_, err := prompt.NewParams(prompt.NewParamsParams{
				Cfg:    cfg,
				Logger: zap.NewNop(),
			})
			assert.ErrorIs(t, err, choir.ErrInvalidParams)
		})
	}
}
