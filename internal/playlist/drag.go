package playlist

// DragSession reorders one entry while a drag gesture is in progress.
//
// Every hover over a new slot commits the prospective permutation immediately:
// the dragged entry is removed from its position and reinserted at the hovered
// index. Intermediate arrangements are real store state, not a preview. Ending
// the gesture commits nothing further, and there is no cancel path that would
// restore the starting order.
type DragSession struct {
	store *Store
	id    string
}

// BeginDrag starts a drag gesture for the entry with the given id.
func (s *Store) BeginDrag(id string) (*DragSession, error) {
	if s.IndexOf(id) < 0 {
		return nil, ErrNotFound
	}
	return &DragSession{store: s, id: id}, nil
}

// HoverAt moves the dragged entry to the given slot and commits the result.
// The index is clamped to the playlist bounds. Hovering over the entry's own
// slot is a no-op.
func (d *DragSession) HoverAt(index int) error {
	from := d.store.IndexOf(d.id)
	if from < 0 {
		// Dragged entry was removed mid-gesture.
		return ErrNotFound
	}

	if index < 0 {
		index = 0
	}
	if index >= d.store.Len() {
		index = d.store.Len() - 1
	}
	if index == from {
		return nil
	}

	entries := d.store.Entries()
	dragged := entries[from]
	entries = append(entries[:from], entries[from+1:]...)
	entries = append(entries[:index], append([]Entry{dragged}, entries[index:]...)...)

	return d.store.Reorder(entries)
}

// End finishes the gesture. The last committed arrangement stands.
func (d *DragSession) End() {}
