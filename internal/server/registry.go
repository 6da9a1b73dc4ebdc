package server

import (
	"sort"
	"sync"

	"xqr/editor"
)

// Registry tracks the files the server has loaded for editing. The most
// recently loaded editor is the default target for operations that do
// not name a file.
type Registry struct {
	mu      sync.RWMutex
	editors map[string]*editor.Editor
	recent  string
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{editors: make(map[string]*editor.Editor)}
}

// Load opens the file and registers it, replacing any earlier editor
// for the same path.
func (r *Registry) Load(path string) (*editor.Editor, error) {
	ed, err := editor.Open(path)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.editors[path] = ed
	r.recent = path
	r.mu.Unlock()
	return ed, nil
}

// Get returns the editor registered for path.
func (r *Registry) Get(path string) (*editor.Editor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ed, ok := r.editors[path]
	return ed, ok
}

// Current returns the most recently loaded editor.
func (r *Registry) Current() (*editor.Editor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ed, ok := r.editors[r.recent]
	return ed, ok
}

// Paths lists the registered file paths in stable order.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.editors))
	for path := range r.editors {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
