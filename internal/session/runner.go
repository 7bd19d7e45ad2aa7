// Package session runs the choir loop: mix a cycle, play it, repeat until
// cancelled.
package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Raikerian/go-choirboy/internal/playback"
	"github.com/Raikerian/go-choirboy/pkg/audio"
	"github.com/Raikerian/go-choirboy/pkg/util"
)

// Mixer renders one cycle. *choir.Engine implements it.
type Mixer interface {
	Mix() *audio.Buffer
}

// Options control the run loop.
type Options struct {
	// Cycles stops the loop after this many cycles; 0 runs until cancelled.
	Cycles int
	// Pipeline mixes the next cycle while the current one plays.
	Pipeline bool
	// Period is the length of one cycle, used to pace realtime players.
	Period time.Duration
}

// Runner owns the loop for one session. A Runner is used once.
type Runner struct {
	mixer  Mixer
	player playback.Player
	logger *zap.Logger
	opts   Options

	played atomic.Int64
}

// NewRunner creates a Runner.
func NewRunner(mixer Mixer, player playback.Player, logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		mixer:  mixer,
		player: player,
		logger: logger,
		opts:   opts,
	}
}

// Played returns the number of cycles handed to the player in full.
func (r *Runner) Played() int {
	return int(r.played.Load())
}

// Finite reports whether Run stops on its own.
func (r *Runner) Finite() bool {
	return r.opts.Cycles > 0
}

// Run loops until ctx is cancelled or the configured cycle count is reached.
// Cancellation is the normal way to stop and is not reported as an error.
// No playback starts after ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	var pacer *util.Pacer
	if r.player.Realtime() && r.opts.Period > 0 {
		pacer = util.NewPacer(r.opts.Period)
		defer pacer.Stop()
	}

	r.logger.Info("Choir loop started",
		zap.Int("cycles", r.opts.Cycles),
		zap.Bool("pipeline", r.opts.Pipeline),
		zap.Duration("period", r.opts.Period))

	var err error
	if r.opts.Pipeline {
		err = r.runPipelined(ctx, pacer)
	} else {
		err = r.runSequential(ctx, pacer)
	}

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		err = nil
	}

	r.logger.Info("Choir loop stopped", zap.Int("played", r.Played()), zap.Error(err))
	return err
}

func (r *Runner) more(n int) bool {
	return r.opts.Cycles <= 0 || n < r.opts.Cycles
}

func (r *Runner) runSequential(ctx context.Context, pacer *util.Pacer) error {
	for n := 0; r.more(n); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.playCycle(ctx, n, r.mix(n), pacer); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runPipelined(ctx context.Context, pacer *util.Pacer) error {
	g, gctx := errgroup.WithContext(ctx)
	cycles := make(chan *audio.Buffer, 1)

	g.Go(func() error {
		defer close(cycles)
		for n := 0; r.more(n); n++ {
			buf := r.mix(n)
			select {
			case cycles <- buf:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		n := 0
		for buf := range cycles {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := r.playCycle(gctx, n, buf, pacer); err != nil {
				return err
			}
			n++
		}
		return nil
	})

	return g.Wait()
}

func (r *Runner) mix(n int) *audio.Buffer {
	start := time.Now()
	buf := r.mixer.Mix()
	r.logger.Debug("Cycle mixed",
		zap.Int("cycle", n),
		zap.Duration("mix_duration", time.Since(start)),
		zap.Float64("peak", buf.Peak()))
	return buf
}

func (r *Runner) playCycle(ctx context.Context, n int, buf *audio.Buffer, pacer *util.Pacer) error {
	if pacer != nil {
		pacer.Reset()
	}

	if err := r.player.Play(ctx, buf); err != nil {
		if ctx.Err() == nil {
			r.logger.Error("Playback failed", zap.Int("cycle", n), zap.Error(err))
		}
		return err
	}
	r.played.Add(1)

	if pacer != nil {
		return pacer.Wait(ctx)
	}
	return nil
}
