package audio_test

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raikerian/go-choirboy/pkg/audio"
)

func TestRollSamples(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		k    int
		want []float64
	}{
		{0, []float64{1, 2, 3, 4, 5}},
		{1, []float64{5, 1, 2, 3, 4}},
		{2, []float64{4, 5, 1, 2, 3}},
		{-1, []float64{2, 3, 4, 5, 1}},
		{5, []float64{1, 2, 3, 4, 5}},
		{7, []float64{4, 5, 1, 2, 3}},
		{-12, []float64{3, 4, 5, 1, 2}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, audio.RollSamples(src, tt.k), "k=%d", tt.k)
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, src, "source must not change")
	assert.Empty(t, audio.RollSamples(nil, 3))
}

func TestBuffer_Roll(t *testing.T) {
	b, err := audio.NewStereoBuffer([]float64{1, 2, 3}, []float64{4, 5, 6}, 8000)
	require.NoError(t, err)

	r := b.Roll(1)

	assert.Equal(t, []float64{3, 1, 2}, r.Data[audio.Left])
	assert.Equal(t, []float64{6, 4, 5}, r.Data[audio.Right])
	assert.Equal(t, 8000, r.SampleRate)
	assert.Equal(t, []float64{1, 2, 3}, b.Data[audio.Left])
}

func TestNewStereoBuffer_LengthMismatch(t *testing.T) {
	_, err := audio.NewStereoBuffer([]float64{1}, []float64{1, 2}, 8000)
	assert.Error(t, err)
}

func TestBuffer_Validate(t *testing.T) {
	assert.NoError(t, audio.NewBuffer(2, 10, 44100).Validate())
	assert.Error(t, audio.NewBuffer(1, 10, 44100).Validate())
	assert.Error(t, audio.NewBuffer(3, 10, 44100).Validate())
	assert.Error(t, audio.NewBuffer(2, 0, 44100).Validate())
	assert.Error(t, audio.NewBuffer(2, 10, 0).Validate())

	ragged := &audio.Buffer{SampleRate: 44100, Data: [][]float64{make([]float64, 4), make([]float64, 3)}}
	assert.Error(t, ragged.Validate())
}

func TestBuffer_ShapeAndDuration(t *testing.T) {
	b := audio.NewBuffer(2, 22050, 44100)

	assert.Equal(t, 2, b.Channels())
	assert.Equal(t, 22050, b.Frames())
	assert.Equal(t, 500*time.Millisecond, b.Duration())
	assert.True(t, b.SameShape(audio.NewBuffer(2, 22050, 8000)))
	assert.False(t, b.SameShape(audio.NewBuffer(2, 22049, 44100)))
	assert.Equal(t, time.Duration(0), (&audio.Buffer{}).Duration())
}

func TestBuffer_PeakClampSilence(t *testing.T) {
	b, err := audio.NewStereoBuffer([]float64{0.2, -1.7, 0.4}, []float64{1.3, 0, -0.1}, 8000)
	require.NoError(t, err)

	assert.Equal(t, 1.7, b.Peak())
	assert.False(t, b.IsSilent())

	b.Clamp(-1, 1)
	assert.Equal(t, []float64{0.2, -1, 0.4}, b.Data[audio.Left])
	assert.Equal(t, []float64{1, 0, -0.1}, b.Data[audio.Right])

	assert.True(t, audio.NewBuffer(2, 5, 8000).IsSilent())
}

func TestBuffer_Clone(t *testing.T) {
	b := audio.NewBuffer(2, 3, 8000)
	c := b.Clone()
	c.Data[audio.Left][0] = 1

	assert.Zero(t, b.Data[audio.Left][0])
	assert.Equal(t, b.SampleRate, c.SampleRate)
}

func TestBuffer_Float32LE(t *testing.T) {
	b, err := audio.NewStereoBuffer([]float64{0.5, -0.25}, []float64{1, 0}, 8000)
	require.NoError(t, err)

	raw := b.Float32LE()
	require.Len(t, raw, 2*audio.StereoChannels*audio.Float32SampleBytes)

	read := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	assert.Equal(t, float32(0.5), read(0))
	assert.Equal(t, float32(1), read(1))
	assert.Equal(t, float32(-0.25), read(2))
	assert.Equal(t, float32(0), read(3))
}

func TestBuffer_PCM16(t *testing.T) {
	b, err := audio.NewStereoBuffer([]float64{1, -1, 2}, []float64{0.5, 0, -2}, 8000)
	require.NoError(t, err)

	assert.Equal(t, []int{32767, 16384, -32767, 0, 32767, -32768}, b.PCM16())
}

func TestFromInterleaved(t *testing.T) {
	stereo := audio.FromInterleaved([]int{32767, 0, -32767, 16384}, 2, 44100, audio.PCM16Divisor)
	require.Equal(t, 2, stereo.Frames())
	assert.Equal(t, []float64{1, -1}, stereo.Data[audio.Left])
	assert.InDelta(t, 0.5, stereo.Data[audio.Right][1], 1e-4)
	assert.Equal(t, 44100, stereo.SampleRate)

	mono := audio.FromInterleaved([]int{32767, -32767, 0}, 1, 22050, audio.PCM16Divisor)
	require.Equal(t, 3, mono.Frames())
	assert.Equal(t, mono.Data[audio.Left], mono.Data[audio.Right])
	assert.Equal(t, []float64{1, -1, 0}, mono.Data[audio.Left])
}
