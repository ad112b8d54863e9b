package playlist

import (
	"errors"
	"testing"
)

func ids(s *Store) []string {
	entries := s.Entries()
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.ID
	}
	return result
}

func wantOrder(t *testing.T, s *Store, want ...string) {
	t.Helper()
	got := ids(s)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBeginDrag_UnknownID(t *testing.T) {
	s := NewStore()
	s.Add(entry("a"))

	_, err := s.BeginDrag("nope")

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("BeginDrag() error = %v, want ErrNotFound", err)
	}
}

func TestDrag_CommitsOnEveryHover(t *testing.T) {
	s := NewStore()
	s.Add(entry("a"), entry("b"), entry("c"), entry("d"))

	d, err := s.BeginDrag("a")
	if err != nil {
		t.Fatalf("BeginDrag() error = %v", err)
	}

	// Each hover over a new slot is committed immediately, not on drop.
	if err := d.HoverAt(1); err != nil {
		t.Fatalf("HoverAt(1) error = %v", err)
	}
	wantOrder(t, s, "b", "a", "c", "d")

	if err := d.HoverAt(3); err != nil {
		t.Fatalf("HoverAt(3) error = %v", err)
	}
	wantOrder(t, s, "b", "c", "d", "a")

	if err := d.HoverAt(2); err != nil {
		t.Fatalf("HoverAt(2) error = %v", err)
	}
	wantOrder(t, s, "b", "c", "a", "d")

	// Ending the gesture changes nothing: the last hovered arrangement stands
	// even though the item started at index 0.
	d.End()
	wantOrder(t, s, "b", "c", "a", "d")
}

func TestDrag_HoverOwnSlotIsNoOp(t *testing.T) {
	s := NewStore()
	s.Add(entry("a"), entry("b"))
	var events int
	s.OnChange(func(_ Event) { events++ })

	d, _ := s.BeginDrag("b")
	if err := d.HoverAt(1); err != nil {
		t.Fatalf("HoverAt(1) error = %v", err)
	}

	if events != 0 {
		t.Errorf("hover over own slot emitted %d events, want 0", events)
	}
	wantOrder(t, s, "a", "b")
}

func TestDrag_ClampsHoverIndex(t *testing.T) {
	s := NewStore()
	s.Add(entry("a"), entry("b"), entry("c"))

	d, _ := s.BeginDrag("b")

	if err := d.HoverAt(99); err != nil {
		t.Fatalf("HoverAt(99) error = %v", err)
	}
	wantOrder(t, s, "a", "c", "b")

	if err := d.HoverAt(-5); err != nil {
		t.Fatalf("HoverAt(-5) error = %v", err)
	}
	wantOrder(t, s, "b", "a", "c")
}

func TestDrag_CurrentUnchangedByReorder(t *testing.T) {
	s := NewStore()
	s.Add(entry("a"), entry("b"), entry("c"))
	_ = s.Select("b")

	d, _ := s.BeginDrag("b")
	_ = d.HoverAt(0)
	d.End()

	if s.CurrentID() != "b" {
		t.Errorf("CurrentID() = %q, want b", s.CurrentID())
	}
}

func TestDrag_EntryRemovedMidGesture(t *testing.T) {
	s := NewStore()
	s.Add(entry("a"), entry("b"))

	d, _ := s.BeginDrag("b")
	s.Remove("b")

	err := d.HoverAt(0)

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("HoverAt() error = %v, want ErrNotFound", err)
	}
}
