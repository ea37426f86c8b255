package schema

import (
	"sync"

	"github.com/pdxkit/go-pdxscript/debug"
)

// Registry holds every loaded schema and the shared type registry.
// Schemas keep registration order, which breaks path-pattern ties
// after specificity. Lookups are safe for concurrent use; the
// per-path resolution cache lives for the registry's lifetime.
type Registry struct {
	mu      sync.RWMutex
	schemas []*Schema
	types   map[string]*TypeDef

	pathCache map[string]*Schema
}

func NewRegistry() *Registry {
	return &Registry{
		types:     map[string]*TypeDef{},
		pathCache: map[string]*Schema{},
	}
}

// AddSchema compiles and registers a schema.
func (r *Registry) AddSchema(s *Schema) {
	s.compile(s)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas = append(r.schemas, s)
	clear(r.pathCache)
}

// AddTypes compiles and merges shared type definitions.
func (r *Registry) AddTypes(defs map[string]*TypeDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, td := range defs {
		td.compile(name)
		r.types[name] = td
	}
}

// TypeDef returns the shared type definition for name, or nil when
// unknown. Callers treat nil as "skip this check", not an error.
func (r *Registry) TypeDef(name string) *TypeDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[name]
}

// Schemas returns the registered schemas in registration order.
func (r *Registry) Schemas() []*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas
}

// SchemaFor selects the schema whose path patterns match the given
// logical path, or nil when none does. With several candidates the
// most specific pattern wins; equal specificity falls back to
// registration order.
func (r *Registry) SchemaFor(path string) *Schema {
	path = NormalizePath(path)

	r.mu.RLock()
	cached, ok := r.pathCache[path]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	var best *Schema
	var bestPat *globPattern
	r.mu.RLock()
	for _, s := range r.schemas {
		for i := range s.patterns {
			p := &s.patterns[i]
			if !p.match(path) {
				continue
			}
			if bestPat == nil || p.moreSpecific(bestPat) {
				best, bestPat = s, p
			}
		}
	}
	r.mu.RUnlock()

	if debug.Schema() {
		if best != nil {
			debug.Logf("schema: %s -> %s (%s)", path, best.FileType, bestPat.src)
		} else {
			debug.Logf("schema: %s -> no match", path)
		}
	}

	r.mu.Lock()
	r.pathCache[path] = best
	r.mu.Unlock()
	return best
}
