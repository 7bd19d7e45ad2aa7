package playback

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/pkg/audio"
)

const pollInterval = 10 * time.Millisecond

// DevicePlayer plays through the system's default output with oto. oto
// allows one context per process, so create at most one DevicePlayer.
type DevicePlayer struct {
	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
	logger     *zap.Logger
	closed     bool
}

// NewDevicePlayer opens the default output at sampleRate, stereo float32,
// and waits until the device is ready.
func NewDevicePlayer(ctx context.Context, sampleRate int, logger *zap.Logger) (*DevicePlayer, error) {
	otoCtx, ready, err := oto.NewContext(sampleRate, audio.StereoChannels, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	logger.Info("Audio device ready", zap.Int("sample_rate", sampleRate))

	return &DevicePlayer{
		ctx:        otoCtx,
		sampleRate: sampleRate,
		logger:     logger,
	}, nil
}

// Play streams buf to the device and returns once it has finished playing.
// On cancellation the player is paused and released before returning.
func (d *DevicePlayer) Play(ctx context.Context, buf *audio.Buffer) error {
	if err := d.checkPlayable(buf); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	player := d.ctx.NewPlayer(bytes.NewReader(buf.Float32LE()))
	defer func() {
		if err := player.Close(); err != nil {
			d.logger.Warn("Failed to close player", zap.Error(err))
		}
	}()

	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return player.Err()
}

// checkPlayable rejects buffers the device cannot take. It does not touch
// the oto context.
func (d *DevicePlayer) checkPlayable(buf *audio.Buffer) error {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if buf.Channels() != audio.StereoChannels {
		return fmt.Errorf("device needs %d channels, got %d", audio.StereoChannels, buf.Channels())
	}
	if buf.SampleRate != d.sampleRate {
		return fmt.Errorf("buffer sample rate %d does not match device rate %d", buf.SampleRate, d.sampleRate)
	}
	return nil
}

// Realtime is always true for the device.
func (d *DevicePlayer) Realtime() bool {
	return true
}

// Close suspends the device. oto contexts cannot be destroyed, so a closed
// DevicePlayer only refuses further playback.
func (d *DevicePlayer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.ctx.Suspend()
}
