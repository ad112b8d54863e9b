// Package media defines the playback surface contract and its adapters.
//
// A Surface is the single sink the playback coordinator drives: one source
// bound at a time, decode and output delegated entirely to the adapter. The
// coordinator never reads media bytes.
package media

import (
	"errors"
	"time"

	"github.com/reelplayer/reel/internal/resource"
)

// ErrNotBound is returned by operations that need a bound source.
var ErrNotBound = errors.New("no source bound")

// Surface is a playback sink for one media source at a time.
//
// Binding a new source supersedes any in-flight load. Callbacks registered
// with OnEnded and OnError are delivered from the adapter's own goroutine;
// consumers must serialize on their side.
type Surface interface {
	// Bind loads a source and leaves it paused at position 0.
	Bind(src resource.Source) error
	// Unbind releases the bound source. No-op when nothing is bound.
	Unbind()

	// Play starts or resumes playback of the bound source.
	// Returns ErrNotBound when nothing is bound.
	Play() error
	// Pause suspends playback, keeping the position.
	Pause()
	// SetPosition moves playback to an absolute position, clamped to the
	// bound source's length.
	SetPosition(pos time.Duration)
	// SetVolume mirrors volume intent to the output. Level is 0.0 to 1.0.
	SetVolume(level float64, muted bool)

	Position() time.Duration
	Duration() time.Duration

	// OnEnded registers the natural end-of-media callback.
	OnEnded(fn func())
	// OnError registers the asynchronous playback failure callback.
	OnError(fn func(err error))
}
