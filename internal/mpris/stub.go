//go:build !linux

package mpris

import (
	"github.com/reelplayer/reel/internal/playback"
	"github.com/reelplayer/reel/internal/playlist"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ *playback.Coordinator, _ *playlist.Store) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
