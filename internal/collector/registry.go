package collector

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages financial data sources by name
type Registry struct {
	mu      sync.RWMutex
	sources map[string]FinancialsSource
}

// NewRegistry creates a new source registry
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]FinancialsSource),
	}
}

// Register adds a source to the registry
func (r *Registry) Register(s FinancialsSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[s.Name()] = s
}

// Get retrieves a source by name
func (r *Registry) Get(name string) (FinancialsSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[name]
	return s, ok
}

// MustGet retrieves a source by name or returns an error naming the known sources
func (r *Registry) MustGet(name string) (FinancialsSource, error) {
	if s, ok := r.Get(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown financials source %q (available: %v)", name, r.Names())
}

// Names returns the registered source names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
