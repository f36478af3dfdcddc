package gewe

import (
	"fmt"
	"sort"
	"sync"
)

// Registry indexes endpoints by name and by route.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Endpoint
	byRoute map[string]*Endpoint
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Endpoint),
		byRoute: make(map[string]*Endpoint),
	}
}

// DefaultRegistry holds every endpoint declared in this package.
var DefaultRegistry = NewRegistry()

// Register adds an endpoint. Names and routes must both be unique.
func (r *Registry) Register(ep *Endpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[ep.Name]; exists {
		return fmt.Errorf("endpoint %q already registered", ep.Name)
	}
	if other, exists := r.byRoute[ep.Route]; exists {
		return fmt.Errorf("route %s already registered by %q", ep.Route, other.Name)
	}
	r.byName[ep.Name] = ep
	r.byRoute[ep.Route] = ep
	return nil
}

// Lookup returns the endpoint registered under name.
func (r *Registry) Lookup(name string) (*Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.byName[name]
	return ep, ok
}

// LookupRoute returns the endpoint bound to route.
func (r *Registry) LookupRoute(route string) (*Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.byRoute[route]
	return ep, ok
}

// Resolve accepts either an endpoint name or a route.
func (r *Registry) Resolve(nameOrRoute string) (*Endpoint, error) {
	if ep, ok := r.Lookup(nameOrRoute); ok {
		return ep, nil
	}
	if ep, ok := r.LookupRoute(nameOrRoute); ok {
		return ep, nil
	}
	return nil, fmt.Errorf("unknown endpoint %q", nameOrRoute)
}

// Has returns whether an endpoint with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// List returns all endpoints sorted by area, then name.
func (r *Registry) List() []*Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	eps := make([]*Endpoint, 0, len(r.byName))
	for _, ep := range r.byName {
		eps = append(eps, ep)
	}
	sort.Slice(eps, func(i, j int) bool {
		if eps[i].Area != eps[j].Area {
			return eps[i].Area < eps[j].Area
		}
		return eps[i].Name < eps[j].Name
	})
	return eps
}

// Names returns the registered endpoint names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegister(eps ...*Endpoint) {
	for _, ep := range eps {
		if err := DefaultRegistry.Register(ep); err != nil {
			panic(err)
		}
	}
}
