package playback

// LoopMode governs the automatic advance on natural end-of-media.
// It has no effect on manual navigation.
type LoopMode int

const (
	// LoopNone stops at the end of the playlist.
	LoopNone LoopMode = iota
	// LoopAll wraps from the last entry back to the first.
	LoopAll
	// LoopSingle replays the current entry indefinitely.
	LoopSingle
)

// String returns the loop mode name.
func (m LoopMode) String() string {
	switch m {
	case LoopNone:
		return "none"
	case LoopAll:
		return "all"
	case LoopSingle:
		return "single"
	default:
		return "unknown"
	}
}

// ParseLoopMode converts a string to a LoopMode, defaulting to LoopNone.
func ParseLoopMode(s string) LoopMode {
	switch s {
	case "all":
		return LoopAll
	case "single":
		return LoopSingle
	default:
		return LoopNone
	}
}

// Cycle returns the next mode in the none → all → single rotation.
func (m LoopMode) Cycle() LoopMode {
	switch m {
	case LoopNone:
		return LoopAll
	case LoopAll:
		return LoopSingle
	default:
		return LoopNone
	}
}
