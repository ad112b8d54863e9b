package playback

// State represents the coordinator's binding state machine.
//
// The machine has four states:
//
//	┌─────────┐   current set   ┌─────────┐
//	│ Unbound │ ───────────────▶│ Loading │
//	└─────────┘                 └─────────┘
//	     ▲                           │ bound
//	     │ current cleared           ▼
//	     │                      ┌─────────┐   play    ┌─────────┐
//	     └──────────────────────│ Paused  │◀─────────▶│ Playing │
//	                            └─────────┘   pause   └─────────┘
//
// Valid transitions:
//   - Unbound → Loading (current entry set)
//   - Loading → Playing (bound, playing intent)
//   - Loading → Paused  (bound, no playing intent, or play start failed)
//   - Paused  ⇄ Playing (play / pause)
//   - Playing → Paused  (end-of-media with no advance target)
//   - any bound state → Unbound (current entry removed)
//
// Every transition is driven by a playlist store event or a surface event;
// none is self-scheduled.
type State int

const (
	// Unbound means no entry is bound to the surface.
	Unbound State = iota
	// Loading means a bind is in progress.
	Loading
	// Paused means an entry is bound but not playing.
	Paused
	// Playing means the bound entry is playing.
	Playing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unbound:
		return "Unbound"
	case Loading:
		return "Loading"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsBound returns true when an entry is bound to the surface.
func (s State) IsBound() bool {
	return s != Unbound
}
