package endpoint

import "sync"

// Registry holds the current ordered endpoint collection. The collection is
// replaced wholesale on Reload, never mutated in place, so readers that
// straddle a reload see either the old list or the new one, never a mix.
type Registry struct {
	mu        sync.RWMutex
	endpoints []Endpoint
	subs      map[int]func([]Endpoint)
	next      int
}

// NewRegistry creates a registry seeded with the given endpoints.
func NewRegistry(initial []Endpoint) *Registry {
	r := &Registry{subs: make(map[int]func([]Endpoint))}
	r.endpoints = append([]Endpoint(nil), initial...)
	return r
}

// List returns a copy of the current ordered endpoint collection.
func (r *Registry) List() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Endpoint(nil), r.endpoints...)
}

// Reload replaces the collection and notifies every subscriber with the new
// list. Subscribers run outside the registry lock so they may call List or
// FindByURL without deadlocking.
func (r *Registry) Reload(next []Endpoint) {
	replacement := append([]Endpoint(nil), next...)

	r.mu.Lock()
	r.endpoints = replacement
	subs := make([]func([]Endpoint), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(append([]Endpoint(nil), replacement...))
	}
}

// Subscribe registers a reload callback and returns a cancel function.
func (r *Registry) Subscribe(fn func([]Endpoint)) func() {
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// FindByURL returns the first endpoint with the given URL.
func (r *Registry) FindByURL(url string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ep := range r.endpoints {
		if ep.URL == url {
			return ep, true
		}
	}
	return Endpoint{}, false
}

// FindByName returns the first endpoint whose name or URL matches.
func (r *Registry) FindByName(name string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ep := range r.endpoints {
		if ep.Name == name || ep.URL == name {
			return ep, true
		}
	}
	return Endpoint{}, false
}
