// Package playback hands finished choir cycles to an output: the default
// audio device or a WAV file.
package playback

import (
	"context"
	"errors"

	"github.com/Raikerian/go-choirboy/pkg/audio"
)

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("player closed")

// Player plays one buffer synchronously.
type Player interface {
	// Play blocks until buf has been handed to the output in full, or ctx
	// is done. buf must not be modified while Play runs.
	Play(ctx context.Context, buf *audio.Buffer) error

	// Realtime reports whether Play is bound to the wall clock, in which
	// case callers pace their loop to the buffer duration.
	Realtime() bool

	// Close releases the output. It is safe to call more than once.
	Close() error
}
