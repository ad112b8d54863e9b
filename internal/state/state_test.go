package state

import (
	"path/filepath"
	"testing"
)

func openTestManager(t *testing.T, path string) *Manager {
	t.Helper()
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	return m
}

func TestGetSettings_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.db")
	m := openTestManager(t, path)
	defer m.Close()

	s, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}

	if s.Volume != 1.0 {
		t.Errorf("Volume = %f, want 1.0", s.Volume)
	}
	if s.Muted {
		t.Error("Muted = true, want false")
	}
	if s.Loop != "none" {
		t.Errorf("Loop = %q, want %q", s.Loop, "none")
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.db")

	m := openTestManager(t, path)
	m.SaveSettings(Settings{Volume: 0.35, Muted: true, Loop: "all"})
	// Close flushes the debounced write.
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m = openTestManager(t, path)
	defer m.Close()

	s, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s.Volume != 0.35 {
		t.Errorf("Volume = %f, want 0.35", s.Volume)
	}
	if !s.Muted {
		t.Error("Muted = false, want true")
	}
	if s.Loop != "all" {
		t.Errorf("Loop = %q, want %q", s.Loop, "all")
	}
}

func TestSaveSettings_LastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.db")

	m := openTestManager(t, path)
	m.SaveSettings(Settings{Volume: 0.1, Loop: "none"})
	m.SaveSettings(Settings{Volume: 0.2, Loop: "single"})
	m.SaveSettings(Settings{Volume: 0.9, Loop: "all"})
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m = openTestManager(t, path)
	defer m.Close()

	s, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s.Volume != 0.9 {
		t.Errorf("Volume = %f, want 0.9 (last write)", s.Volume)
	}
	if s.Loop != "all" {
		t.Errorf("Loop = %q, want %q", s.Loop, "all")
	}
}

func TestOpenPath_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "reel.db")
	m := openTestManager(t, path)
	defer m.Close()

	if _, err := m.GetSettings(); err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
}
