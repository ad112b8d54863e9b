//go:build linux

// Package mpris exposes playback control over D-Bus so desktop media keys
// and applets can drive the player.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/reelplayer/reel/internal/playback"
	"github.com/reelplayer/reel/internal/playlist"
)

// Adapter connects the playback coordinator to MPRIS over D-Bus.
//
// Properties are served on demand: D-Bus clients read state through the
// player adapter's getters, so no event pump is needed.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(coordinator *playback.Coordinator, store *playlist.Store) (*Adapter, error) {
	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{coordinator: coordinator, store: store}

	a := &Adapter{
		server: server.NewServer("reel", rootAdapter, playerAdapter),
	}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil // Track list interface not implemented
}

func (r *rootAdapter) Identity() (string, error) {
	return "Reel", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	coordinator *playback.Coordinator
	store       *playlist.Store
}

func (p *playerAdapter) Next() error {
	p.coordinator.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.coordinator.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.coordinator.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.coordinator.Toggle()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.coordinator.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	p.coordinator.Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.coordinator.SeekRelative(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.coordinator.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.coordinator.State() {
	case playback.Playing:
		return types.PlaybackStatusPlaying, nil
	case playback.Paused, playback.Loading:
		return types.PlaybackStatusPaused, nil
	case playback.Unbound:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	entry := p.coordinator.CurrentEntry()
	if entry == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatEntryID(entry.ID)),
		Length:  types.Microseconds(p.coordinator.Duration().Microseconds()),
		Title:   entry.DisplayName,
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	level, muted := p.coordinator.Volume()
	if muted {
		return 0, nil
	}
	return level, nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.coordinator.SetVolume(level, false)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.coordinator.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	id := p.store.CurrentID()
	if id == "" {
		return false, nil
	}
	_, ok := p.store.NextAfter(id)
	return ok, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	id := p.store.CurrentID()
	if id == "" {
		return false, nil
	}
	_, ok := p.store.PrevBefore(id)
	return ok, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.store.IsEmpty(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.coordinator.Loop() {
	case playback.LoopSingle:
		return types.LoopStatusTrack, nil
	case playback.LoopAll:
		return types.LoopStatusPlaylist, nil
	case playback.LoopNone:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.coordinator.SetLoop(playback.LoopNone)
	case types.LoopStatusTrack:
		p.coordinator.SetLoop(playback.LoopSingle)
	case types.LoopStatusPlaylist:
		p.coordinator.SetLoop(playback.LoopAll)
	}
	return nil
}

func formatEntryID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Entry/%x", h.Sum64())
}
