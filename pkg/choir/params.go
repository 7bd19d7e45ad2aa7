package choir

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Parameter limits accepted from the user.
const (
	MinPitchOffset = 1.0
	MaxPitchOffset = 12.0
	MinVoices      = 1
	MaxVoices      = 12
	MaxDelayLimit  = 1000 * time.Millisecond
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid choir parameters")

// Params are the session parameters. They are validated once and never
// change afterwards.
type Params struct {
	PitchOffset float64
	NumVoices   int
	MaxDelay    time.Duration
}

// Validate checks every field against its allowed range. NaN is never in
// range.
func (p Params) Validate() error {
	if !(p.PitchOffset >= MinPitchOffset && p.PitchOffset <= MaxPitchOffset) {
		return fmt.Errorf("%w: pitch offset %g outside [%g, %g]", ErrInvalidParams, p.PitchOffset, MinPitchOffset, MaxPitchOffset)
	}
	if !(p.NumVoices >= MinVoices && p.NumVoices <= MaxVoices) {
		return fmt.Errorf("%w: voice count %d outside [%d, %d]", ErrInvalidParams, p.NumVoices, MinVoices, MaxVoices)
	}
	if !(p.MaxDelay >= 0 && p.MaxDelay <= MaxDelayLimit) {
		return fmt.Errorf("%w: max delay %s outside [0, %s]", ErrInvalidParams, p.MaxDelay, MaxDelayLimit)
	}
	return nil
}

// Ladder returns the pitch ladder for these parameters.
func (p Params) Ladder() Ladder {
	return GenerateLadder(p.NumVoices, p.PitchOffset)
}

// MaxDelaySamples converts MaxDelay to a whole number of frames at sampleRate.
// The fractional part is truncated.
func (p Params) MaxDelaySamples(sampleRate int) int {
	return int(float64(sampleRate) * p.MaxDelay.Seconds())
}

// DelayFromMillis converts a millisecond value as typed by a user.
// Callers must pass a finite value; see ParseDelayMillis.
func DelayFromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// ParseDelayMillis converts a configured millisecond value, rejecting NaN
// and infinities, which have no Duration.
func ParseDelayMillis(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, fmt.Errorf("%w: max delay %g ms is not a finite number", ErrInvalidParams, ms)
	}
	return DelayFromMillis(ms), nil
}
