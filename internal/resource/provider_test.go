package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempMedia(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not real media"), 0o600); err != nil {
		t.Fatalf("could not write temp file: %v", err)
	}
	return path
}

func TestProvider_AcquireRelease(t *testing.T) {
	p := NewProvider()
	path := writeTempMedia(t, "clip.mp4")

	ref, err := p.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if ref == "" {
		t.Fatal("Acquire() returned empty ref")
	}
	if p.Active() != 1 {
		t.Errorf("Active() = %d, want 1", p.Active())
	}

	if err := p.Release(ref); err != nil {
		t.Errorf("Release() error = %v", err)
	}
	if p.Active() != 0 {
		t.Errorf("Active() after release = %d, want 0", p.Active())
	}
}

func TestProvider_DoubleRelease(t *testing.T) {
	p := NewProvider()
	ref, err := p.Acquire(writeTempMedia(t, "clip.mp4"))
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if err := p.Release(ref); err != nil {
		t.Fatalf("first Release() error = %v", err)
	}

	err = p.Release(ref)
	if !errors.Is(err, ErrUnknownRef) {
		t.Errorf("second Release() error = %v, want ErrUnknownRef", err)
	}
}

func TestProvider_Acquire_MissingFile(t *testing.T) {
	p := NewProvider()

	_, err := p.Acquire(filepath.Join(t.TempDir(), "does-not-exist.mp4"))

	if err == nil {
		t.Error("Acquire() of missing file should fail")
	}
	if p.Active() != 0 {
		t.Errorf("Active() = %d, want 0 after failed acquire", p.Active())
	}
}

func TestProvider_Acquire_Directory(t *testing.T) {
	p := NewProvider()

	_, err := p.Acquire(t.TempDir())

	if err == nil {
		t.Error("Acquire() of a directory should fail")
	}
}

func TestProvider_Lookup(t *testing.T) {
	p := NewProvider()
	path := writeTempMedia(t, "holiday.mkv")
	ref, err := p.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	src, err := p.Lookup(ref)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if src.Path != path {
		t.Errorf("Path = %q, want %q", src.Path, path)
	}
	// File has no readable tags, so the name falls back to the base name.
	if src.Name != "holiday.mkv" {
		t.Errorf("Name = %q, want holiday.mkv", src.Name)
	}
	if src.Size == 0 {
		t.Error("Size should not be zero")
	}
}

func TestProvider_Lookup_AfterRelease(t *testing.T) {
	p := NewProvider()
	ref, err := p.Acquire(writeTempMedia(t, "clip.mp4"))
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	_ = p.Release(ref)

	_, err = p.Lookup(ref)

	if !errors.Is(err, ErrUnknownRef) {
		t.Errorf("Lookup() error = %v, want ErrUnknownRef", err)
	}
}

func TestProvider_DistinctRefs(t *testing.T) {
	p := NewProvider()
	path := writeTempMedia(t, "clip.mp4")

	// Same file acquired twice yields two independent refs.
	ref1, err := p.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	ref2, err := p.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if ref1 == ref2 {
		t.Error("refs for separate acquires should differ")
	}
	if p.Active() != 2 {
		t.Errorf("Active() = %d, want 2", p.Active())
	}
}
