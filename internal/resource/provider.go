// Package resource owns the lifecycle of media sources handed to the player.
//
// Callers acquire a file once and receive an opaque Ref. The Ref is what the
// rest of the application passes around; only the provider can resolve it back
// to the underlying file. Every acquired source must be released exactly once.
package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Ref is an opaque handle to an acquired media source.
type Ref string

// Source describes an acquired media file.
type Source struct {
	Path string
	Name string // tag title when the file carries one, base name otherwise
	Size int64
}

// ErrUnknownRef is returned when a ref is not registered, including refs
// that were already released.
var ErrUnknownRef = errors.New("unknown resource ref")

// Provider tracks acquired sources by ref.
type Provider struct {
	mu   sync.Mutex
	refs map[Ref]Source
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{
		refs: make(map[Ref]Source),
	}
}

// Acquire registers a media file and returns its ref.
func (p *Provider) Acquire(path string) (Ref, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("acquire %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("acquire %s: is a directory", path)
	}

	name := probeTitle(path)
	if name == "" {
		name = filepath.Base(path)
	}

	ref := Ref(uuid.NewString())

	p.mu.Lock()
	p.refs[ref] = Source{
		Path: path,
		Name: name,
		Size: info.Size(),
	}
	p.mu.Unlock()

	return ref, nil
}

// Release forgets an acquired source.
// Releasing a ref twice returns ErrUnknownRef.
func (p *Provider) Release(ref Ref) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.refs[ref]; !ok {
		return fmt.Errorf("release %s: %w", ref, ErrUnknownRef)
	}
	delete(p.refs, ref)
	return nil
}

// Lookup resolves a ref to its source.
func (p *Provider) Lookup(ref Ref) (Source, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	src, ok := p.refs[ref]
	if !ok {
		return Source{}, fmt.Errorf("lookup %s: %w", ref, ErrUnknownRef)
	}
	return src, nil
}

// Active returns the number of sources currently held.
func (p *Provider) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.refs)
}
