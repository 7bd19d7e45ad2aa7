package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output kinds for PlaybackConfig.Output.
const (
	OutputDevice = "device"
	OutputWAV    = "wav"
)

// ChoirConfig stores the choir session parameters.
type ChoirConfig struct {
	InputFile   string  `yaml:"input_file"`
	Interactive bool    `yaml:"interactive"`
	PitchOffset float64 `yaml:"pitch_offset"`
	NumVoices   int     `yaml:"num_voices"`
	MaxDelayMs  float64 `yaml:"max_delay_ms"`
}

// PlaybackConfig stores output and run-loop settings.
type PlaybackConfig struct {
	Output         string `yaml:"output"`
	OutputFile     string `yaml:"output_file"`
	Cycles         int    `yaml:"cycles"`
	Pipeline       bool   `yaml:"pipeline"`
	Seed           uint64 `yaml:"seed"`
	VoiceCacheSize int    `yaml:"voice_cache_size"`
}

// Config stores the application configuration.
type Config struct {
	Choir    ChoirConfig    `yaml:"choir"`
	Playback PlaybackConfig `yaml:"playback"`
	LogLevel string         `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Choir: ChoirConfig{
			InputFile:   "vocal.wav",
			Interactive: true,
			PitchOffset: 4,
			NumVoices:   3,
			MaxDelayMs:  50,
		},
		Playback: PlaybackConfig{
			Output:         OutputDevice,
			OutputFile:     "choir.wav",
			VoiceCacheSize: 16,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads the configuration from the given file path on top of the
// defaults, then applies environment overrides. A missing file is not an
// error.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that are not choir parameters. Choir parameters
// are checked when the session is built so interactive mode can prompt
// for them instead.
func (c *Config) Validate() error {
	switch c.Playback.Output {
	case OutputDevice:
	case OutputWAV:
		if c.Playback.OutputFile == "" {
			return errors.New("playback.output_file is required for wav output")
		}
	default:
		return fmt.Errorf("unknown playback.output %q", c.Playback.Output)
	}
	if c.Playback.Cycles < 0 {
		return fmt.Errorf("playback.cycles must not be negative, got %d", c.Playback.Cycles)
	}
	if c.Choir.InputFile == "" {
		return errors.New("choir.input_file is not set")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.LogLevel = envStr("CHOIR_LOG_LEVEL", cfg.LogLevel)
	cfg.Choir.InputFile = envStr("CHOIR_INPUT_FILE", cfg.Choir.InputFile)
	cfg.Playback.Output = strings.ToLower(envStr("CHOIR_OUTPUT", cfg.Playback.Output))
	cfg.Playback.OutputFile = envStr("CHOIR_OUTPUT_FILE", cfg.Playback.OutputFile)

	var err error
	if cfg.Choir.Interactive, err = envBool("CHOIR_INTERACTIVE", cfg.Choir.Interactive); err != nil {
		return err
	}
	if cfg.Choir.PitchOffset, err = envFloat("CHOIR_PITCH_OFFSET", cfg.Choir.PitchOffset); err != nil {
		return err
	}
	if cfg.Choir.NumVoices, err = envInt("CHOIR_NUM_VOICES", cfg.Choir.NumVoices); err != nil {
		return err
	}
	if cfg.Choir.MaxDelayMs, err = envFloat("CHOIR_MAX_DELAY_MS", cfg.Choir.MaxDelayMs); err != nil {
		return err
	}
	if cfg.Playback.Cycles, err = envInt("CHOIR_CYCLES", cfg.Playback.Cycles); err != nil {
		return err
	}
	if v := os.Getenv("CHOIR_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHOIR_SEED: %w", err)
		}
		cfg.Playback.Seed = seed
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
