package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/seriesreg/internal/series"
)

var (
	// ErrAlreadyRegistered is returned when a key or symbol is registered twice.
	ErrAlreadyRegistered = errors.New("series was already registered")
	// ErrSealed is returned when registering into a sealed registry.
	ErrSealed = errors.New("registry is sealed")
)

// Module is the interface that all engine modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds every registered concrete series type of one application
// instance. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	byKey    map[series.Key]*series.Descriptor
	bySymbol map[string]*series.Descriptor
	ordered  []*series.Descriptor
	sealed   bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty, unsealed Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:   slog.Default(),
		byKey:    make(map[series.Key]*series.Descriptor),
		bySymbol: make(map[string]*series.Descriptor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers a descriptor and assigns it the next sequential ID. The
// caller's descriptor is copied; later changes to it are not observed.
func (r *Registry) Add(d *series.Descriptor) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid descriptor: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("cannot register %s: %w", d.Symbol, ErrSealed)
	}
	if _, exists := r.byKey[d.Key]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, d.Key)
	}
	if _, exists := r.bySymbol[d.Symbol]; exists {
		return fmt.Errorf("%w: symbol %q", ErrAlreadyRegistered, d.Symbol)
	}

	stored := clone(d)
	stored.ID = len(r.ordered)
	r.byKey[stored.Key] = stored
	r.bySymbol[stored.Symbol] = stored
	r.ordered = append(r.ordered, stored)

	r.logger.Debug("Registering series type.", "symbol", stored.Symbol, "id", stored.ID)
	return nil
}

// Register is Add for module code: a failure is a programmer error and panics.
func (r *Registry) Register(d *series.Descriptor) {
	if err := r.Add(d); err != nil {
		panic(err)
	}
}

// Seal makes the registry read-only. Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sealed {
		r.sealed = true
		r.logger.Debug("Registry sealed.", "series_types", len(r.ordered))
	}
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Len returns the number of registered concrete series types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// Descriptors returns copies of all descriptors in registration (ID) order.
func (r *Registry) Descriptors() []*series.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*series.Descriptor, len(r.ordered))
	for i, d := range r.ordered {
		out[i] = clone(d)
	}
	return out
}

// SeriesKinds returns the distinct series kinds with at least one
// registration, in declaration order.
func (r *Registry) SeriesKinds() []series.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[series.Kind]struct{})
	var kinds []series.Kind
	for _, d := range r.ordered {
		if _, ok := seen[d.Key.Series]; !ok {
			seen[d.Key.Series] = struct{}{}
			kinds = append(kinds, d.Key.Series)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Lookup returns the descriptor exported under symbol.
func (r *Registry) Lookup(symbol string) (*series.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.bySymbol[symbol]
	if !ok {
		return nil, false
	}
	return clone(d), true
}

// LoadModules registers every module in order.
func (r *Registry) LoadModules(modules ...Module) {
	for _, mod := range modules {
		before := r.Len()
		mod.Register(r)
		r.logger.Debug("Module registered.", "module", fmt.Sprintf("%T", mod), "series_types", r.Len()-before)
	}
}

func clone(d *series.Descriptor) *series.Descriptor {
	c := *d
	c.Capabilities = d.Capabilities.Clone()
	return &c
}
