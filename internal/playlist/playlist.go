// Package playlist holds the ordered media entries and the current selection.
package playlist

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/reelplayer/reel/internal/resource"
)

var (
	// ErrNotFound is returned when an id does not match any entry.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidPermutation is returned when a reorder adds, drops, or
	// duplicates an id.
	ErrInvalidPermutation = errors.New("invalid permutation")
)

// Entry is one playlist item wrapping an opaque media resource.
type Entry struct {
	ID          string
	SourceRef   resource.Ref
	DisplayName string
}

// NewEntry creates an entry with a fresh id.
func NewEntry(ref resource.Ref, name string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		SourceRef:   ref,
		DisplayName: name,
	}
}

// Store owns the ordered entry sequence and the current-entry pointer.
//
// Invariant: currentID is either "" or equal to the id of an entry present in
// entries. When the current entry is removed, currentID is cleared within the
// same locked mutation; no caller can observe a dangling pointer.
//
// Listeners run synchronously after the mutation has settled, outside the
// store lock, so they may call back into the store.
type Store struct {
	mu        sync.RWMutex
	entries   []Entry
	currentID string
	listeners []func(Event)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make([]Entry, 0),
	}
}

// OnChange registers a listener for store events.
func (s *Store) OnChange(fn func(Event)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// emit delivers events to listeners. Must be called without the lock held.
func (s *Store) emit(events []Event) {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()

	for _, e := range events {
		for _, fn := range listeners {
			fn(e)
		}
	}
}

// Add appends entries, preserving input order.
// When the playlist was empty and nothing was current, the first added entry
// becomes current.
func (s *Store) Add(entries ...Entry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	autoSelect := len(s.entries) == 0 && s.currentID == ""
	s.entries = append(s.entries, entries...)
	if autoSelect {
		s.currentID = entries[0].ID
	}
	events := []Event{{Kind: EventEntriesChanged, Entries: s.entriesLocked()}}
	if autoSelect {
		events = append(events, Event{
			Kind:      EventCurrentChanged,
			CurrentID: s.currentID,
			Cause:     CauseAutoSelect,
		})
	}
	s.mu.Unlock()

	s.emit(events)
}

// Remove deletes the entry with the given id.
// Returns false (no-op) when the id is absent. Removing the current entry
// clears the selection.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	index := s.indexLocked(id)
	if index < 0 {
		s.mu.Unlock()
		return false
	}

	removed := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)

	wasCurrent := s.currentID == id
	if wasCurrent {
		s.currentID = ""
	}

	events := []Event{{Kind: EventEntriesChanged, Entries: s.entriesLocked()}}
	if wasCurrent {
		events = append(events, Event{
			Kind:       EventCurrentChanged,
			PreviousID: id,
			Cause:      CauseRemove,
		})
	}
	events = append(events, Event{
		Kind:       EventEntryRemoved,
		Removed:    &removed,
		WasCurrent: wasCurrent,
	})
	s.mu.Unlock()

	s.emit(events)
	return true
}

// Select makes the entry with the given id current.
// Selecting the already-current entry re-emits the change, which restarts
// playback from the beginning.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	if s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	previous := s.currentID
	s.currentID = id
	s.mu.Unlock()

	s.emit([]Event{{
		Kind:       EventCurrentChanged,
		PreviousID: previous,
		CurrentID:  id,
		Cause:      CauseSelect,
	}})
	return nil
}

// Reorder replaces the entry sequence with a permutation of itself.
// The current entry is unchanged. A sequence that adds, drops, or duplicates
// an id is rejected and the store is left untouched.
func (s *Store) Reorder(newOrder []Entry) error {
	s.mu.Lock()
	if !samePermutation(s.entries, newOrder) {
		s.mu.Unlock()
		return ErrInvalidPermutation
	}

	s.entries = make([]Entry, len(newOrder))
	copy(s.entries, newOrder)
	events := []Event{{Kind: EventEntriesChanged, Entries: s.entriesLocked()}}
	s.mu.Unlock()

	s.emit(events)
	return nil
}

// samePermutation reports whether a and b hold the same multiset of ids.
func samePermutation(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, e := range a {
		counts[e.ID]++
	}
	for _, e := range b {
		counts[e.ID]--
		if counts[e.ID] < 0 {
			return false
		}
	}
	return true
}

// Entries returns a copy of the entry sequence.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entriesLocked()
}

func (s *Store) entriesLocked() []Entry {
	result := make([]Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// IsEmpty returns true when the playlist has no entries.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// CurrentID returns the current entry id, or "" when nothing is selected.
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// Current returns the current entry.
func (s *Store) Current() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byIDLocked(s.currentID)
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byIDLocked(id)
}

// IndexOf returns the position of an id, or -1 when absent.
func (s *Store) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id)
}

// Entry returns the entry at the given position.
func (s *Store) Entry(index int) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[index], true
}

// NextAfter returns the entry following the given id in playlist order.
func (s *Store) NextAfter(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := s.indexLocked(id)
	if index < 0 || index+1 >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[index+1], true
}

// PrevBefore returns the entry preceding the given id in playlist order.
func (s *Store) PrevBefore(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := s.indexLocked(id)
	if index <= 0 {
		return Entry{}, false
	}
	return s.entries[index-1], true
}

// First returns the first entry.
func (s *Store) First() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) byIDLocked(id string) (Entry, bool) {
	index := s.indexLocked(id)
	if index < 0 {
		return Entry{}, false
	}
	return s.entries[index], true
}
