package playlist

// EventKind discriminates store events.
type EventKind int

const (
	// EventEntriesChanged fires after any mutation of the entry sequence.
	EventEntriesChanged EventKind = iota
	// EventCurrentChanged fires when the current-entry pointer changes.
	EventCurrentChanged
	// EventEntryRemoved fires after an entry left the playlist, so the
	// owner of its resource can release it.
	EventEntryRemoved
)

// Cause tells listeners why the current entry changed.
type Cause int

const (
	// CauseSelect is an explicit selection.
	CauseSelect Cause = iota
	// CauseAutoSelect is the first add into an empty playlist.
	CauseAutoSelect
	// CauseRemove is the removal of the current entry; CurrentID is "".
	CauseRemove
)

// Event describes one store change.
// Fields are populated per kind: Entries for EventEntriesChanged,
// PreviousID/CurrentID/Cause for EventCurrentChanged, Removed/WasCurrent for
// EventEntryRemoved.
type Event struct {
	Kind       EventKind
	PreviousID string
	CurrentID  string
	Cause      Cause
	Removed    *Entry
	WasCurrent bool
	Entries    []Entry
}
