package audio

import (
	"fmt"
	"time"
)

// Buffer holds planar float samples for a fixed number of frames.
//
// Data[ch][f] is the sample of channel ch at frame f. Every channel slice has
// the same length. Samples are expected in [-1, 1] once a buffer leaves the
// mixer; intermediate accumulators may exceed that range.
type Buffer struct {
	SampleRate int
	Data       [][]float64
}

// NewBuffer allocates a silent buffer.
func NewBuffer(channels, frames, sampleRate int) *Buffer {
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	return &Buffer{SampleRate: sampleRate, Data: data}
}

// NewStereoBuffer wraps left and right sample slices without copying.
func NewStereoBuffer(left, right []float64, sampleRate int) (*Buffer, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("channel length mismatch: left %d, right %d", len(left), len(right))
	}
	return &Buffer{SampleRate: sampleRate, Data: [][]float64{left, right}}, nil
}

// Channels returns the number of channels.
func (b *Buffer) Channels() int {
	return len(b.Data)
}

// Frames returns the number of frames per channel.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the playback length at the buffer's sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// SameShape reports whether o has the same channel and frame count as b.
func (b *Buffer) SameShape(o *Buffer) bool {
	return b.Channels() == o.Channels() && b.Frames() == o.Frames()
}

// Validate checks the invariants the mixer relies on: stereo, non-empty,
// equal channel lengths and a positive sample rate.
func (b *Buffer) Validate() error {
	if b.Channels() != StereoChannels {
		return fmt.Errorf("need %d channels, got %d", StereoChannels, b.Channels())
	}
	if b.Frames() == 0 {
		return fmt.Errorf("buffer is empty")
	}
	for ch, samples := range b.Data {
		if len(samples) != b.Frames() {
			return fmt.Errorf("channel %d has %d frames, want %d", ch, len(samples), b.Frames())
		}
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", b.SampleRate)
	}
	return nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float64, len(b.Data))}
	for ch, samples := range b.Data {
		out.Data[ch] = append([]float64(nil), samples...)
	}
	return out
}

// Roll returns a copy of b rotated by k frames with wraparound, so that
// frame f of b ends up at frame (f+k) mod n. Negative k rotates toward the
// start of the buffer.
func (b *Buffer) Roll(k int) *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float64, len(b.Data))}
	for ch, samples := range b.Data {
		out.Data[ch] = RollSamples(samples, k)
	}
	return out
}

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, samples := range b.Data {
		if p := PeakAbs(samples); p > peak {
			peak = p
		}
	}
	return peak
}

// Clamp limits every sample to [lo, hi] in place.
func (b *Buffer) Clamp(lo, hi float64) {
	for _, samples := range b.Data {
		ClampSamples(samples, lo, hi)
	}
}

// IsSilent reports whether every sample is zero.
func (b *Buffer) IsSilent() bool {
	return b.Peak() == 0
}
