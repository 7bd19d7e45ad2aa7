package choir

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/pkg/audio"
)

const (
	// shiftScale maps a ladder offset to a fraction of the buffer length.
	// A voice with offset p is rotated by p/1200 of the buffer.
	shiftScale = 1200.0

	// TargetPeak is the absolute peak of every non-silent mix.
	TargetPeak = 0.9
)

// ShiftFor returns the circular shift, in frames, applied to a voice with
// the given ladder offset.
func ShiftFor(offset float64, frames int) int {
	return int(math.Round(offset * float64(frames) / shiftScale))
}

// VoiceGain is the per-voice scale factor for a choir of numVoices.
// Voices alternate channels, so each side carries about half of them; the
// divisor never drops below 1.
func VoiceGain(numVoices int) float64 {
	divisor := numVoices / 2
	if divisor < 1 {
		divisor = 1
	}
	return 1 / float64(divisor)
}

// DrawDelay picks one voice's delay in [0, maxDelaySamples). An empty range
// yields 0 without consulting rnd.
func DrawDelay(rnd RandomSource, maxDelaySamples int) int {
	if maxDelaySamples <= 0 || rnd == nil {
		return 0
	}
	return rnd.Draw(0, maxDelaySamples)
}

// MixCycle renders one cycle: every ladder voice is rotated by its pitch
// shift and a random delay, summed into the left (even voices) or right (odd
// voices) channel, and the mix is normalized to TargetPeak and clamped to
// [-1, 1].
//
// src must be a validated stereo buffer. The returned buffer has the same
// shape and is never shared with src.
func MixCycle(src *audio.Buffer, ladder Ladder, maxDelaySamples int, rnd RandomSource) *audio.Buffer {
	return mixVoices(src, ladder, maxDelaySamples, rnd, src.Roll)
}

func mixVoices(src *audio.Buffer, ladder Ladder, maxDelaySamples int, rnd RandomSource, shifted func(int) *audio.Buffer) *audio.Buffer {
	frames := src.Frames()
	mix := audio.NewBuffer(src.Channels(), frames, src.SampleRate)
	if frames == 0 || src.Channels() < audio.StereoChannels {
		return mix
	}

	gain := VoiceGain(len(ladder))
	scratch := make([]float64, frames)

	for i, offset := range ladder {
		voice := shifted(ShiftFor(offset, frames))
		delay := DrawDelay(rnd, maxDelaySamples)

		ch := audio.Left
		if i%2 == 1 {
			ch = audio.Right
		}

		delayed := audio.RollSamples(voice.Data[ch], delay)
		vecmath.ScaleBlock(scratch, delayed, gain)
		vecmath.AddBlockInPlace(mix.Data[ch], scratch)
	}

	normalize(mix)
	mix.Clamp(-1, 1)
	return mix
}

// normalize scales b so its peak equals TargetPeak. Silence is left as is.
func normalize(b *audio.Buffer) {
	peak := b.Peak()
	if peak == 0 {
		return
	}
	scale := TargetPeak / peak
	for _, samples := range b.Data {
		vecmath.ScaleBlock(samples, samples, scale)
	}
}

// Engine mixes cycles for one session. It owns the immutable source and
// ladder and memoizes the pitch-shifted copies of the source, which are the
// same on every cycle. Only the delays change between cycles.
type Engine struct {
	src             *audio.Buffer
	ladder          Ladder
	maxDelaySamples int
	rnd             RandomSource
	shifted         *lru.Cache[int, *audio.Buffer]
	logger          *zap.Logger
}

// NewEngine validates src and params and prepares an engine. cacheSize bounds
// the number of shifted copies kept between cycles; 0 disables the cache.
func NewEngine(src *audio.Buffer, params Params, rnd RandomSource, cacheSize int, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("invalid source buffer: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRandomSource(0)
	}

	e := &Engine{
		src:             src,
		ladder:          params.Ladder(),
		maxDelaySamples: params.MaxDelaySamples(src.SampleRate),
		rnd:             rnd,
		logger:          logger,
	}

	if cacheSize > 0 {
		cache, err := lru.New[int, *audio.Buffer](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create shift cache: %w", err)
		}
		e.shifted = cache
	}

	if params.NumVoices == 1 {
		logger.Warn("Single voice choir, channel gain divisor floored at 1")
	}

	logger.Info("Choir engine ready",
		zap.Float64s("ladder", e.ladder),
		zap.Int("frames", src.Frames()),
		zap.Int("sample_rate", src.SampleRate),
		zap.Int("max_delay_samples", e.maxDelaySamples),
		zap.Int("shift_cache_size", cacheSize))

	return e, nil
}

// Ladder returns a copy of the session ladder.
func (e *Engine) Ladder() Ladder {
	return append(Ladder(nil), e.ladder...)
}

// MaxDelaySamples returns the exclusive upper bound of the per-voice delay.
func (e *Engine) MaxDelaySamples() int {
	return e.maxDelaySamples
}

// Mix renders one cycle. It is safe for concurrent use.
func (e *Engine) Mix() *audio.Buffer {
	return mixVoices(e.src, e.ladder, e.maxDelaySamples, e.rnd, e.shiftedSource)
}

func (e *Engine) shiftedSource(shift int) *audio.Buffer {
	if e.shifted == nil {
		return e.src.Roll(shift)
	}
	if b, ok := e.shifted.Get(shift); ok {
		return b
	}
	b := e.src.Roll(shift)
	e.shifted.Add(shift, b)
	return b
}
