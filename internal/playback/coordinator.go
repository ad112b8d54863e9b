// Package playback coordinates the playlist store and the media surface.
//
// The coordinator owns the binding state machine and the playing intent. It
// reacts to store events (selection changes, removals) by rebinding the
// surface, and to surface events (end-of-media, failures) by advancing the
// selection or downgrading to paused. All policy lives here; the surface
// stays a dumb sink and the store stays a dumb sequence.
package playback

import (
	"sync"
	"time"

	"github.com/reelplayer/reel/internal/media"
	"github.com/reelplayer/reel/internal/playlist"
	"github.com/reelplayer/reel/internal/resource"
)

// Coordinator drives a media.Surface from playlist.Store events.
type Coordinator struct {
	store    *playlist.Store
	surface  media.Surface
	provider *resource.Provider

	mu      sync.Mutex
	state   State
	loop    LoopMode
	intent  bool // keep playing across rebinds
	current *playlist.Entry
	level   float64
	muted   bool

	subMu       sync.Mutex
	subscribers []*Subscription
}

// New wires a coordinator to its collaborators and registers for their
// events. The surface callbacks may arrive from another goroutine.
func New(store *playlist.Store, surface media.Surface, provider *resource.Provider) *Coordinator {
	c := &Coordinator{
		store:    store,
		surface:  surface,
		provider: provider,
		state:    Unbound,
		loop:     LoopNone,
		level:    1.0,
	}
	store.OnChange(c.handleStoreEvent)
	surface.OnEnded(c.handleEnded)
	surface.OnError(c.handleError)
	return c
}

// Subscribe returns a new event subscription.
func (c *Coordinator) Subscribe() *Subscription {
	sub := newSubscription()
	c.subMu.Lock()
	c.subscribers = append(c.subscribers, sub)
	c.subMu.Unlock()
	return sub
}

// Unsubscribe removes a subscription and signals its Done channel.
func (c *Coordinator) Unsubscribe(sub *Subscription) {
	c.subMu.Lock()
	for i, s := range c.subscribers {
		if s == sub {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			break
		}
	}
	c.subMu.Unlock()
	sub.close()
}

// Close unbinds the surface and signals all subscribers.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.surface.Unbind()
	c.state = Unbound
	c.current = nil
	c.intent = false
	c.mu.Unlock()

	c.subMu.Lock()
	subs := c.subscribers
	c.subscribers = nil
	c.subMu.Unlock()
	for _, sub := range subs {
		sub.close()
	}
}

// State returns the current binding state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentEntry returns the bound entry, or nil when unbound.
func (c *Coordinator) CurrentEntry() *playlist.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	e := *c.current
	return &e
}

// Position returns the surface playback position.
func (c *Coordinator) Position() time.Duration {
	return c.surface.Position()
}

// Duration returns the bound source's duration.
func (c *Coordinator) Duration() time.Duration {
	return c.surface.Duration()
}

// Loop returns the loop mode.
func (c *Coordinator) Loop() LoopMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop
}

// SetLoop changes the loop mode. Takes effect on the next end-of-media.
func (c *Coordinator) SetLoop(mode LoopMode) {
	c.mu.Lock()
	changed := c.loop != mode
	c.loop = mode
	c.mu.Unlock()
	if changed {
		c.broadcastMode(ModeChange{Loop: mode})
	}
}

// CycleLoop rotates none → all → single → none and returns the new mode.
func (c *Coordinator) CycleLoop() LoopMode {
	c.mu.Lock()
	c.loop = c.loop.Cycle()
	mode := c.loop
	c.mu.Unlock()
	c.broadcastMode(ModeChange{Loop: mode})
	return mode
}

// Play starts or resumes playback of the bound entry.
// A start failure downgrades to paused; it never unbinds or clears the
// selection.
func (c *Coordinator) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsBound() {
		return
	}
	if c.state == Playing {
		return
	}
	c.startLocked()
}

// Pause suspends playback, keeping the bound entry and position.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Playing {
		return
	}
	c.surface.Pause()
	c.intent = false
	c.setStateLocked(Paused)
}

// Toggle flips between playing and paused.
func (c *Coordinator) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Playing:
		c.surface.Pause()
		c.intent = false
		c.setStateLocked(Paused)
	case Paused:
		c.startLocked()
	}
}

// Stop pauses and rewinds to position 0. The entry stays bound and current.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.state.IsBound() {
		c.mu.Unlock()
		return
	}
	if c.state == Playing {
		c.surface.Pause()
	}
	c.surface.SetPosition(0)
	c.intent = false
	c.setStateLocked(Paused)
	c.mu.Unlock()

	c.broadcastPosition(0)
}

// SeekRelative moves the position by delta, clamped to [0, duration].
// Out-of-range targets are clamped silently; seeking while unbound is a
// no-op.
func (c *Coordinator) SeekRelative(delta time.Duration) {
	c.mu.Lock()
	if !c.state.IsBound() {
		c.mu.Unlock()
		return
	}
	target := c.surface.Position() + delta
	if target < 0 {
		target = 0
	}
	if d := c.surface.Duration(); d > 0 && target > d {
		target = d
	}
	c.surface.SetPosition(target)
	c.mu.Unlock()

	c.broadcastPosition(target)
}

// SeekTo moves the position to an absolute target, clamped to [0, duration].
func (c *Coordinator) SeekTo(pos time.Duration) {
	c.mu.Lock()
	if !c.state.IsBound() {
		c.mu.Unlock()
		return
	}
	if pos < 0 {
		pos = 0
	}
	if d := c.surface.Duration(); d > 0 && pos > d {
		pos = d
	}
	c.surface.SetPosition(pos)
	c.mu.Unlock()

	c.broadcastPosition(pos)
}

// SetVolume passes the volume intent through to the surface unconditionally,
// bound or not. Level is clamped to [0, 1].
func (c *Coordinator) SetVolume(level float64, muted bool) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	c.mu.Lock()
	c.level = level
	c.muted = muted
	c.surface.SetVolume(level, muted)
	c.mu.Unlock()
}

// Volume returns the last volume intent.
func (c *Coordinator) Volume() (level float64, muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level, c.muted
}

// Next selects the entry after the current one, if any.
func (c *Coordinator) Next() {
	id := c.store.CurrentID()
	if id == "" {
		return
	}
	if next, ok := c.store.NextAfter(id); ok {
		c.store.Select(next.ID) //nolint:errcheck // id comes from the store
	}
}

// Previous selects the entry before the current one, if any.
func (c *Coordinator) Previous() {
	id := c.store.CurrentID()
	if id == "" {
		return
	}
	if prev, ok := c.store.PrevBefore(id); ok {
		c.store.Select(prev.ID) //nolint:errcheck // id comes from the store
	}
}

// startLocked starts playback of the bound entry. Must hold c.mu.
func (c *Coordinator) startLocked() {
	if err := c.surface.Play(); err != nil {
		c.intent = false
		c.setStateLocked(Paused)
		c.broadcastError(ErrorEvent{Op: "play", Err: err})
		return
	}
	c.intent = true
	c.setStateLocked(Playing)
}

// handleStoreEvent reacts to playlist store changes. The store guarantees
// listeners run outside its lock, so store getters are safe here.
func (c *Coordinator) handleStoreEvent(e playlist.Event) {
	if e.Kind != playlist.EventCurrentChanged {
		return
	}

	if e.CurrentID == "" {
		// Current entry removed: unbind in the same reaction, so no
		// caller observes a bound surface with no current entry.
		c.mu.Lock()
		previous := c.current
		c.surface.Unbind()
		c.current = nil
		c.intent = false
		c.setStateLocked(Unbound)
		c.mu.Unlock()

		c.broadcastEntry(EntryChange{Previous: previous, Current: nil})
		return
	}

	entry, ok := c.store.Get(e.CurrentID)
	if !ok {
		return
	}
	start := e.Cause == playlist.CauseSelect
	c.rebind(entry, start)
}

// rebind loads the entry into the surface. Explicit selections always start
// playback; implicit changes (auto-select) preserve the playing intent.
func (c *Coordinator) rebind(entry playlist.Entry, start bool) {
	c.mu.Lock()
	previous := c.current

	src, err := c.provider.Lookup(entry.SourceRef)
	if err != nil {
		c.surface.Unbind()
		c.current = nil
		c.intent = false
		c.setStateLocked(Unbound)
		c.mu.Unlock()

		c.broadcastEntry(EntryChange{Previous: previous, Current: nil})
		c.broadcastError(ErrorEvent{Op: "bind", Err: err})
		return
	}

	c.surface.Unbind()
	c.setStateLocked(Loading)

	if err := c.surface.Bind(src); err != nil {
		c.current = nil
		c.intent = false
		c.setStateLocked(Unbound)
		c.mu.Unlock()

		c.broadcastEntry(EntryChange{Previous: previous, Current: nil})
		c.broadcastError(ErrorEvent{Op: "bind", Err: err})
		return
	}

	e := entry
	c.current = &e
	c.surface.SetVolume(c.level, c.muted)

	if start || c.intent {
		c.startLocked()
	} else {
		c.setStateLocked(Paused)
	}
	c.mu.Unlock()

	c.broadcastEntry(EntryChange{Previous: previous, Current: &e})
}

// handleEnded reacts to natural end-of-media per the loop mode.
func (c *Coordinator) handleEnded() {
	c.mu.Lock()
	if c.state != Playing || c.current == nil {
		c.mu.Unlock()
		return
	}
	loop := c.loop
	currentID := c.current.ID
	c.mu.Unlock()

	if loop == LoopSingle {
		// Re-selecting the current entry rebinds it at position 0 and
		// restarts; the current pointer never moves.
		c.store.Select(currentID) //nolint:errcheck
		return
	}

	if next, ok := c.store.NextAfter(currentID); ok {
		c.store.Select(next.ID) //nolint:errcheck
		return
	}

	if loop == LoopAll {
		if first, ok := c.store.First(); ok {
			c.store.Select(first.ID) //nolint:errcheck
			return
		}
	}

	// End of playlist: come to rest paused at the end. The entry stays
	// bound and current.
	c.mu.Lock()
	c.intent = false
	c.setStateLocked(Paused)
	c.mu.Unlock()
}

// handleError reacts to an asynchronous surface failure. The failure is
// terminal to the playback attempt only: the entry stays bound and current.
func (c *Coordinator) handleError(err error) {
	c.mu.Lock()
	if !c.state.IsBound() {
		c.mu.Unlock()
		return
	}
	c.intent = false
	c.setStateLocked(Paused)
	c.mu.Unlock()

	c.broadcastError(ErrorEvent{Op: "playback", Err: err})
}

// setStateLocked updates the state and broadcasts the transition.
// Must hold c.mu; the broadcast is non-blocking so this is safe.
func (c *Coordinator) setStateLocked(next State) {
	if c.state == next {
		return
	}
	previous := c.state
	c.state = next
	c.broadcastState(StateChange{Previous: previous, Current: next})
}

func (c *Coordinator) broadcastState(e StateChange) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, sub := range c.subscribers {
		sub.sendState(e)
	}
}

func (c *Coordinator) broadcastEntry(e EntryChange) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, sub := range c.subscribers {
		sub.sendEntry(e)
	}
}

func (c *Coordinator) broadcastPosition(pos time.Duration) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, sub := range c.subscribers {
		sub.sendPosition(pos)
	}
}

func (c *Coordinator) broadcastMode(e ModeChange) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, sub := range c.subscribers {
		sub.sendMode(e)
	}
}

func (c *Coordinator) broadcastError(e ErrorEvent) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, sub := range c.subscribers {
		sub.sendError(e)
	}
}
