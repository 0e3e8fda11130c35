package adapters

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/jpp0ca/SetlistStats-API/internal/ports"
)

// SourceRegistry holds the setlist sources the server can run against,
// keyed by Name(). DATA_SOURCE picks one of them at startup.
type SourceRegistry struct {
	mu      sync.RWMutex
	sources map[string]ports.SetlistSource
}

// NewSourceRegistry registers the given sources. Names must be unique.
func NewSourceRegistry(sources ...ports.SetlistSource) (*SourceRegistry, error) {
	r := &SourceRegistry{sources: make(map[string]ports.SetlistSource, len(sources))}
	var errs []error
	for _, src := range sources {
		errs = append(errs, r.Register(src))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a source. A second source under the same name is rejected
// so one adapter cannot silently shadow another.
func (r *SourceRegistry) Register(src ports.SetlistSource) error {
	name := src.Name()
	if name == "" {
		return fmt.Errorf("register source: empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.sources[name]; dup {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSource, name)
	}
	r.sources[name] = src
	return nil
}

// Get returns the named source. The error lists what is available.
func (r *SourceRegistry) Get(name string) (ports.SetlistSource, error) {
	r.mu.RLock()
	src, ok := r.sources[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			domain.ErrUnknownSource, name, strings.Join(r.Available(), ", "))
	}
	return src, nil
}

// Available returns the registered source names in sorted order.
func (r *SourceRegistry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.sources))
}
