package media

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/reelplayer/reel/internal/resource"
)

// Speaker plays bound sources through the system audio device via beep.
type Speaker struct {
	bound    bool
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File

	level float64
	muted bool

	// generation invalidates end callbacks from superseded binds
	generation int

	onEnded func()
	onError func(err error)
}

var speakerInitialized bool

// NewSpeaker creates an unbound speaker surface.
func NewSpeaker() *Speaker {
	return &Speaker{level: 1.0}
}

// SupportedFile reports whether the speaker can decode the file at path.
func SupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".wav", ".ogg", ".oga":
		return true
	}
	return false
}

// Bind decodes the source and leaves it paused at position 0.
func (s *Speaker) Bind(src resource.Source) error {
	s.Unbind()

	ext := strings.ToLower(filepath.Ext(src.Path))
	f, err := os.Open(src.Path)
	if err != nil {
		return fmt.Errorf("bind %s: %w", src.Name, err)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		err = fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("bind %s: %w", src.Name, err)
	}

	if !speakerInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return fmt.Errorf("bind %s: %w", src.Name, err)
		}
		speakerInitialized = true
	}

	s.file = f
	s.streamer = streamer
	s.format = format
	s.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.muted,
	}
	s.bound = true
	s.generation++

	generation := s.generation
	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// Dispatched off the speaker goroutine so the consumer may call
		// back into the surface without deadlocking on the speaker lock.
		go s.finished(generation)
	})))

	return nil
}

// finished reports natural end-of-media, ignoring superseded binds.
func (s *Speaker) finished(generation int) {
	speaker.Lock()
	stale := !s.bound || generation != s.generation
	fn := s.onEnded
	speaker.Unlock()

	if stale || fn == nil {
		return
	}
	fn()
}

// Unbind releases the bound source.
func (s *Speaker) Unbind() {
	if !s.bound {
		return
	}

	speaker.Clear()

	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}

	s.ctrl = nil
	s.volume = nil
	s.bound = false
	s.generation++
}

// Play starts or resumes playback.
func (s *Speaker) Play() error {
	if !s.bound || s.ctrl == nil {
		return ErrNotBound
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause suspends playback, keeping the position.
func (s *Speaker) Pause() {
	if !s.bound || s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// SetPosition seeks to an absolute position, clamped to the stream length.
func (s *Speaker) SetPosition(pos time.Duration) {
	if !s.bound || s.streamer == nil {
		return
	}

	target := s.format.SampleRate.N(pos)
	speaker.Lock()
	if s.streamer != nil {
		if last := s.streamer.Len() - 1; target > last {
			target = last
		}
		if target < 0 {
			target = 0
		}
		_ = s.streamer.Seek(target)
	}
	speaker.Unlock()
}

// SetVolume mirrors volume intent to the output.
func (s *Speaker) SetVolume(level float64, muted bool) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	s.level = level
	s.muted = muted

	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Volume = levelToVolume(level)
	s.volume.Silent = muted
	speaker.Unlock()
}

// Position returns the current playback position.
func (s *Speaker) Position() time.Duration {
	if !s.bound || s.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := s.format.SampleRate.D(s.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the bound source's length.
func (s *Speaker) Duration() time.Duration {
	if !s.bound || s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// OnEnded registers the natural end-of-media callback.
func (s *Speaker) OnEnded(fn func()) {
	s.onEnded = fn
}

// OnError registers the asynchronous failure callback.
// The beep pipeline reports decode errors at bind time, so this surface
// never raises asynchronous errors; registration is kept for the contract.
func (s *Speaker) OnError(fn func(err error)) {
	s.onError = fn
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic volume.
// With base 2, volume 0 means unchanged, -1 half, -2 quarter.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// Verify Speaker implements Surface at compile time.
var _ Surface = (*Speaker)(nil)
