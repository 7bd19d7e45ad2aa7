package playback

import (
	"context"
	"fmt"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Raikerian/go-choirboy/pkg/audio"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
	wavFilePerm  = 0o644
)

// WAVFilePlayer appends every cycle to a 16-bit stereo WAV file instead of
// sounding it. The file is finalized on Close.
type WAVFilePlayer struct {
	mu         sync.Mutex
	file       *os.File
	enc        *wav.Encoder
	sampleRate int
	frames     int
	closed     bool
}

// NewWAVFilePlayer creates (or truncates) path.
func NewWAVFilePlayer(path string, sampleRate int) (*WAVFilePlayer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, wavFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &WAVFilePlayer{
		file:       f,
		enc:        wav.NewEncoder(f, sampleRate, wavBitDepth, audio.StereoChannels, wavFormatPCM),
		sampleRate: sampleRate,
	}, nil
}

// Play encodes buf at the end of the file.
func (w *WAVFilePlayer) Play(ctx context.Context, buf *audio.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if buf.SampleRate != w.sampleRate {
		return fmt.Errorf("buffer sample rate %d does not match file rate %d", buf.SampleRate, w.sampleRate)
	}

	err := w.enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: buf.Channels(), SampleRate: buf.SampleRate},
		Data:           buf.PCM16(),
		SourceBitDepth: wavBitDepth,
	})
	if err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	w.frames += buf.Frames()
	return nil
}

// Frames returns the number of frames written so far.
func (w *WAVFilePlayer) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Realtime is false: a file accepts data as fast as it can be written.
func (w *WAVFilePlayer) Realtime() bool {
	return false
}

// Close writes the WAV header sizes and closes the file.
func (w *WAVFilePlayer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	encErr := w.enc.Close()
	fileErr := w.file.Close()
	if encErr != nil {
		return fmt.Errorf("failed to finalize wav file: %w", encErr)
	}
	return fileErr
}
