package series

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/seriesreg/internal/coefficient"
)

// Instance is a value constructed by a Factory.
type Instance interface {
	Key() Key
	Symbol() string
	// Len returns the number of terms.
	Len() int
	String() string
}

// Factory constructs an empty instance of a concrete series type.
type Factory func() Instance

// Capabilities lists the coefficient kinds a concrete type interoperates
// with, can be raised to the power of, evaluated with, and substituted with.
type Capabilities struct {
	Interop []coefficient.Kind
	Pow     []coefficient.Kind
	Eval    []coefficient.Kind
	Subs    []coefficient.Kind
}

// Clone returns a copy that shares no backing arrays with c.
func (c Capabilities) Clone() Capabilities {
	return Capabilities{
		Interop: slices.Clone(c.Interop),
		Pow:     slices.Clone(c.Pow),
		Eval:    slices.Clone(c.Eval),
		Subs:    slices.Clone(c.Subs),
	}
}

// Map returns the capabilities keyed by name, as type names.
func (c Capabilities) Map() map[string][]string {
	return map[string][]string{
		"interop": coefficient.Names(c.Interop),
		"pow":     coefficient.Names(c.Pow),
		"eval":    coefficient.Names(c.Eval),
		"subs":    coefficient.Names(c.Subs),
	}
}

// Descriptor is the registered description of a concrete series type.
type Descriptor struct {
	Key          Key
	ID           int
	Symbol       string
	Description  string
	Capabilities Capabilities
	New          Factory
}

// NewDescriptor builds a descriptor for key with its derived symbol. The ID is
// assigned by the registry.
func NewDescriptor(key Key, description string, caps Capabilities, factory Factory) *Descriptor {
	return &Descriptor{
		Key:          key,
		Symbol:       SymbolFor(key),
		Description:  description,
		Capabilities: caps,
		New:          factory,
	}
}

// Validate checks the descriptor is internally consistent.
func (d *Descriptor) Validate() error {
	if d == nil {
		return errors.New("descriptor is nil")
	}
	if !d.Key.Valid() {
		return fmt.Errorf("descriptor %q: invalid key %s", d.Symbol, d.Key)
	}
	if want := SymbolFor(d.Key); d.Symbol != want {
		return fmt.Errorf("descriptor for %s: symbol %q does not match expected %q", d.Key, d.Symbol, want)
	}
	if d.New == nil {
		return fmt.Errorf("descriptor %q: factory is nil", d.Symbol)
	}
	for name, kinds := range map[string][]coefficient.Kind{
		"interop": d.Capabilities.Interop,
		"pow":     d.Capabilities.Pow,
		"eval":    d.Capabilities.Eval,
		"subs":    d.Capabilities.Subs,
	} {
		for _, k := range kinds {
			if !k.Valid() {
				return fmt.Errorf("descriptor %q: invalid %s capability kind %d", d.Symbol, name, int(k))
			}
		}
	}
	return nil
}

// Handle is an Instance with no terms. Engine modules embed it in their
// concrete series types.
type Handle struct {
	key Key
}

// NewHandle returns an empty handle for key.
func NewHandle(key Key) Handle {
	return Handle{key: key}
}

func (h Handle) Key() Key       { return h.key }
func (h Handle) Symbol() string { return SymbolFor(h.key) }
func (h Handle) Len() int       { return 0 }
func (h Handle) String() string { return "0" }
