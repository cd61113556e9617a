// Package tool holds the registry of tools advertised by the connected
// backend. The registry is populated once after the backend handshake and
// read on every query; tools are not added or removed mid-session.
package tool

import (
	"log/slog"
	"sync"

	ai "github.com/swingAnt/mcpchat"
)

// Registry manages the set of tools available from the connected backend.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools []ai.Tool
	names map[string]int
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]int),
	}
}

// Populate replaces the registry contents with the given descriptors,
// preserving their order. Descriptors with an empty name are skipped with a
// logged warning so one bad entry does not make the whole backend unusable;
// a duplicate name replaces the earlier entry.
func (r *Registry) Populate(tools []ai.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make([]ai.Tool, 0, len(tools))
	r.names = make(map[string]int, len(tools))

	for _, t := range tools {
		if t.Name == "" {
			slog.Warn("skipping tool descriptor with empty name", "description", t.Description)
			continue
		}
		if i, exists := r.names[t.Name]; exists {
			slog.Warn("duplicate tool descriptor replaces earlier entry", "tool", t.Name)
			r.tools[i] = t
			continue
		}
		r.names[t.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
}

// Snapshot returns the registered tools in registration order.
// The returned slice is a copy; it is empty if Populate was never called.
func (r *Registry) Snapshot() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ai.Tool, len(r.tools))
	copy(result, r.tools)
	return result
}

// Get retrieves a tool definition by name.
func (r *Registry) Get(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.names[name]
	if !ok {
		return ai.Tool{}, false
	}
	return r.tools[i], true
}

// Has returns true if the registry has a tool with the given name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the names of all registered tools in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
