// Package source loads the recording the choir is built from.
package source

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/wav"

	"github.com/Raikerian/go-choirboy/pkg/audio"
)

// ErrUnsupportedFormat is returned for WAV files the loader cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported wav format")

const wavFormatPCM = 1

// Load reads a WAV file from disk.
func Load(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Decode reads integer PCM WAV data into a stereo buffer with samples in
// [-1, 1]. 16-bit samples are divided by 32767. Mono input is copied into
// both channels; more than two channels is rejected.
func Decode(r io.ReadSeeker) (*audio.Buffer, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav file", ErrUnsupportedFormat)
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: audio format %d, want integer PCM", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}

	channels := int(decoder.NumChans)
	if channels < 1 || channels > audio.StereoChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	divisor, err := pcmDivisor(int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode pcm: %w", err)
	}
	if len(pcm.Data) < channels {
		return nil, errors.New("wav file has no audio frames")
	}

	buf := audio.FromInterleaved(pcm.Data, channels, int(decoder.SampleRate), divisor)
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return buf, nil
}

func pcmDivisor(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return audio.PCM16Divisor, nil
	case 24, 32:
		return math.Pow(2, float64(bitDepth-1)) - 1, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}
}
