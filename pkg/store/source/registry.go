package source

import (
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

// LoaderFactory builds a Loader for a dataset profile of one kind.
type LoaderFactory func(profile domain.DatasetProfile) (Loader, error)

// Registry manages loader factories keyed by profile kind.
type Registry interface {
	// Register adds a new loader factory
	Register(kind domain.SourceKind, factory LoaderFactory) error
	// Create instantiates a loader for the profile's kind
	Create(profile domain.DatasetProfile) (Loader, error)
	// ListKinds returns the registered kinds, sorted
	ListKinds() []domain.SourceKind
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.SourceKind]LoaderFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.SourceKind]LoaderFactory),
	}
}

func (r *registry) Register(kind domain.SourceKind, factory LoaderFactory) error {
	if kind == "" {
		return fmt.Errorf("source kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("source kind %q is already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

func (r *registry) Create(profile domain.DatasetProfile) (Loader, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Kind]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source kind %q is not registered", profile.Kind)
	}

	return factory(profile)
}

func (r *registry) ListKinds() []domain.SourceKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.SourceKind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
