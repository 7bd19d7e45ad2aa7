package audio

import (
	"encoding/binary"
	"math"
)

// Float32LE interleaves b into little-endian float32 frames, the layout the
// output device expects.
func (b *Buffer) Float32LE() []byte {
	channels, frames := b.Channels(), b.Frames()
	out := make([]byte, frames*channels*Float32SampleBytes)
	off := 0
	for f := 0; f < frames; f++ {
		for ch := 0; ch < channels; ch++ {
			binary.LittleEndian.PutUint32(out[off:], math.Float32bits(float32(b.Data[ch][f])))
			off += Float32SampleBytes
		}
	}
	return out
}

// PCM16 interleaves b into 16-bit integer samples scaled by PCM16Divisor,
// saturating anything outside [-1, 1].
func (b *Buffer) PCM16() []int {
	channels, frames := b.Channels(), b.Frames()
	out := make([]int, frames*channels)
	i := 0
	for f := 0; f < frames; f++ {
		for ch := 0; ch < channels; ch++ {
			out[i] = int(saturateInt16(int(math.Round(b.Data[ch][f] * PCM16Divisor))))
			i++
		}
	}
	return out
}

// FromInterleaved splits interleaved integer samples into a planar buffer,
// dividing each by divisor. Mono input is duplicated into both channels.
func FromInterleaved(samples []int, channels, sampleRate int, divisor float64) *Buffer {
	frames := len(samples) / channels
	out := NewBuffer(StereoChannels, frames, sampleRate)
	for f := 0; f < frames; f++ {
		for ch := 0; ch < StereoChannels; ch++ {
			src := ch
			if channels == 1 {
				src = 0
			}
			out.Data[ch][f] = float64(samples[f*channels+src]) / divisor
		}
	}
	return out
}
