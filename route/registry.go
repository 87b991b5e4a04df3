package route

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrEmptyName is returned when registering with an empty name
	ErrEmptyName = errors.New("empty router name")

	// ErrNilHandle is returned when registering a nil handle
	ErrNilHandle = errors.New("nil router handle")

	// ErrAlreadyRegistered is returned when a name is bound to a different router
	ErrAlreadyRegistered = errors.New("router already registered")

	// ErrNotRegistered is returned when resolving a name with no router
	ErrNotRegistered = errors.New("router not registered")
)

// Handle is the type-erased router surface held by a Registry.
type Handle interface {
	Go(Route) error
	Open(Locator) error
}

// Registry maps names to routers. It is an explicit handle created at
// startup and passed to the components that navigate; there is no package
// level default.
type Registry struct {
	mu      sync.RWMutex
	routers map[string]Handle
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		routers: make(map[string]Handle),
	}
}

// Register binds name to h. Registering the same pair again is a no-op;
// binding a taken name to a different router returns ErrAlreadyRegistered.
func (g *Registry) Register(name string, h Handle) error {
	if name == "" {
		return ErrEmptyName
	}
	if h == nil {
		return ErrNilHandle
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.routers[name]; ok {
		if existing == h {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}

	g.routers[name] = h
	return nil
}

// Resolve returns the router bound to name.
func (g *Registry) Resolve(name string) (Handle, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	h, ok := g.routers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return h, nil
}

// MustResolve is Resolve for wiring paths where a missing router is a
// programming error; it panics instead of returning the error.
func (g *Registry) MustResolve(name string) Handle {
	h, err := g.Resolve(name)
	if err != nil {
		panic(err)
	}
	return h
}

// Names returns the registered names in sorted order.
func (g *Registry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.routers))
	for name := range g.routers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
