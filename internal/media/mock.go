package media

import (
	"time"

	"github.com/reelplayer/reel/internal/resource"
)

// Mock is a test double for Surface.
type Mock struct {
	bound    bool
	src      resource.Source
	playing  bool
	position time.Duration
	duration time.Duration

	level float64
	muted bool

	bindErr error
	playErr error

	bindCalls    []string
	playCalls    int
	unbindCalls  int
	positionSets []time.Duration

	onEnded func()
	onError func(err error)
}

// NewMock creates a new mock surface for testing.
func NewMock() *Mock {
	return &Mock{level: 1.0}
}

func (m *Mock) Bind(src resource.Source) error {
	m.bindCalls = append(m.bindCalls, src.Path)
	if m.bindErr != nil {
		return m.bindErr
	}
	m.bound = true
	m.src = src
	m.playing = false
	m.position = 0
	return nil
}

func (m *Mock) Unbind() {
	if !m.bound {
		return
	}
	m.unbindCalls++
	m.bound = false
	m.playing = false
	m.position = 0
}

func (m *Mock) Play() error {
	if !m.bound {
		return ErrNotBound
	}
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	return nil
}

func (m *Mock) Pause() {
	m.playing = false
}

func (m *Mock) SetPosition(pos time.Duration) {
	m.positionSets = append(m.positionSets, pos)
	if pos < 0 {
		pos = 0
	}
	if m.duration > 0 && pos > m.duration {
		pos = m.duration
	}
	m.position = pos
}

func (m *Mock) SetVolume(level float64, muted bool) {
	m.level = level
	m.muted = muted
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) OnEnded(fn func()) { m.onEnded = fn }

func (m *Mock) OnError(fn func(err error)) { m.onError = fn }

// Test helpers

func (m *Mock) SetBindError(err error) { m.bindErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) AdvanceTo(pos time.Duration) { m.position = pos }

func (m *Mock) IsBound() bool { return m.bound }

func (m *Mock) IsPlaying() bool { return m.playing }

func (m *Mock) BoundSource() resource.Source { return m.src }

func (m *Mock) BindCalls() []string { return m.bindCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) UnbindCalls() int { return m.unbindCalls }

func (m *Mock) PositionSets() []time.Duration { return m.positionSets }

func (m *Mock) Level() float64 { return m.level }

func (m *Mock) Muted() bool { return m.muted }

// SimulateEnded reports natural end-of-media to the registered callback.
func (m *Mock) SimulateEnded() {
	m.playing = false
	m.position = m.duration
	if m.onEnded != nil {
		m.onEnded()
	}
}

// SimulateError reports an asynchronous playback failure.
func (m *Mock) SimulateError(err error) {
	m.playing = false
	if m.onError != nil {
		m.onError(err)
	}
}

// Verify Mock implements Surface at compile time.
var _ Surface = (*Mock)(nil)
