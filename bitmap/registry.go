package bitmap

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a variant instance sized for the given universe.
type Factory func(universe uint64) (Bitmap, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register registers a variant factory under a name.
//
// Variant packages should typically call this from an init() function.
// Registering a name twice replaces the earlier factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New constructs the variant registered under name.
func New(name string, universe uint64) (Bitmap, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("bitmap: %w: %q", ErrUnknownVariant, name)
	}

	bm, err := factory(universe)
	if err != nil {
		return nil, err
	}
	return bm, nil
}

// Names returns the sorted names of all registered variants.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registered reports whether a variant is registered under name.
func Registered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
