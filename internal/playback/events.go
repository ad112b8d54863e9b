package playback

import (
	"time"

	"github.com/reelplayer/reel/internal/playlist"
)

// StateChange is emitted when the coordinator's binding state changes.
type StateChange struct {
	Previous State
	Current  State
}

// EntryChange is emitted when the surface is rebound to a different entry,
// or unbound (Current nil).
//
// Emitted for explicit selection, auto-select on first add, end-of-media
// advance, and removal of the current entry. Not emitted for pause/stop.
type EntryChange struct {
	Previous *playlist.Entry
	Current  *playlist.Entry
}

// PositionChange is emitted when a seek or stop moves the position.
// Natural position progress is not an event; poll the coordinator instead.
type PositionChange struct {
	Position time.Duration
}

// ModeChange is emitted when the loop mode changes.
type ModeChange struct {
	Loop LoopMode
}

// ErrorEvent is emitted when a surface operation fails.
// Failures are terminal only to the current playback attempt, never to the
// playlist or selection.
type ErrorEvent struct {
	Op  string // "bind", "play", "playback"
	Err error
}
