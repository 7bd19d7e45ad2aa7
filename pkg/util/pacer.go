package util

import (
	"context"
	"sync"
	"time"
)

// Pacer holds a loop to a fixed period per iteration. Reset marks the start
// of an iteration and Wait blocks until the period has elapsed since then.
// Work that already took longer than the period does not wait at all.
//
// Example usage:
//
//	pacer := NewPacer(buf.Duration())
//	defer pacer.Stop()
//
//	for {
//	    pacer.Reset()
//	    play(buf) // may return before buf has finished sounding
//	    if err := pacer.Wait(ctx); err != nil {
//	        return err // cancelled
//	    }
//	}
type Pacer struct {
	period  time.Duration
	timer   *time.Timer
	mu      sync.Mutex
	stopped bool
}

// NewPacer creates a pacer whose first period starts now.
func NewPacer(period time.Duration) *Pacer {
	return &Pacer{
		period: period,
		timer:  time.NewTimer(period),
	}
}

// Reset restarts the period from now.
// If the pacer has been stopped, this is a no-op.
func (p *Pacer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	// Stop timer and drain channel if necessary
	if !p.timer.Stop() {
		select {
		case <-p.timer.C:
		default:
		}
	}
	p.timer.Reset(p.period)
}

// Wait blocks until the current period ends or ctx is done, whichever comes
// first. It returns ctx.Err() on cancellation and nil once stopped.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped {
		return nil
	}

	select {
	case <-p.timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop stops the pacer and prevents further resets.
// It's safe to call Stop multiple times.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.timer.Stop()
		p.stopped = true
	}
}
