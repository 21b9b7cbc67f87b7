package plugin

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory creates a fresh module instance for one pipeline assembly.
type Factory func() Plugin

// Registry maps plugin identifiers and their aliases to factories.
type Registry struct {
	factories map[string]Factory
	aliases   map[string]string
	mux       sync.RWMutex
}

// Register registers a factory under id and optional aliases.
func (r *Registry) Register(id string, factory Factory, aliases ...string) {
	r.mux.Lock()
	defer r.mux.Unlock()
	id = strings.TrimSpace(id)
	r.factories[id] = factory
	for _, alias := range aliases {
		r.aliases[strings.TrimSpace(alias)] = id
	}
}

// Lookup returns a factory by id or alias, nil when unknown.
func (r *Registry) Lookup(id string) Factory {
	r.mux.RLock()
	defer r.mux.RUnlock()
	id = strings.TrimSpace(id)
	if factory, ok := r.factories[id]; ok {
		return factory
	}
	if target, ok := r.aliases[id]; ok {
		return r.factories[target]
	}
	return nil
}

// New creates a module for id.
func (r *Registry) New(id string) (Plugin, error) {
	factory := r.Lookup(id)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, id)
	}
	return factory(), nil
}

// IDs returns sorted registered identifiers, aliases excluded.
func (r *Registry) IDs() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		aliases:   make(map[string]string),
	}
}
