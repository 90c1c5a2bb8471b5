package registry

import (
	"errors"
	"fmt"

	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/series"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnsupportedCoefficient is matched by every UnsupportedError.
var ErrUnsupportedCoefficient = errors.New("no series type available for this coefficient type")

// UnsupportedError reports a (series, coefficient) pair with no registration.
// Coefficient is the type name as requested, which may not be a known kind.
type UnsupportedError struct {
	Series      series.Kind
	Coefficient string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: series %q, coefficient %q", ErrUnsupportedCoefficient, e.Series, e.Coefficient)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedCoefficient
}

// CfType is one entry of a series' coefficient table: a sample coefficient
// value and the coefficient's type name.
type CfType struct {
	Sample cty.Value
	Name   string
}

// CfTypes returns the coefficient table of a series kind, in registration
// order. It is empty for a series kind with no registrations.
func (r *Registry) CfTypes(kind series.Kind) []CfType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []CfType
	for _, d := range r.ordered {
		if d.Key.Series == kind {
			out = append(out, CfType{
				Sample: coefficient.Sample(d.Key.Coefficient),
				Name:   d.Key.Coefficient.String(),
			})
		}
	}
	return out
}

// CoefficientKinds returns the distinct coefficient kinds supported by a
// series kind.
func (r *Registry) CoefficientKinds(kind series.Kind) coefficient.Set {
	set := coefficient.NewSet()
	for _, cf := range r.CfTypes(kind) {
		// Names in the table come from registered kinds, so they always parse.
		set.Add(coefficient.MustParseKind(cf.Name))
	}
	return set
}

// Resolve returns the single descriptor registered for (kind, cf). A missing
// pair yields an *UnsupportedError and a nil descriptor.
func (r *Registry) Resolve(kind series.Kind, cf coefficient.Kind) (*series.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKey[series.NewKey(kind, cf)]
	if !ok {
		return nil, &UnsupportedError{Series: kind, Coefficient: cf.String()}
	}
	return clone(d), nil
}

// ResolveByName is Resolve for type names. Unknown series names fail with
// series.ErrUnknownSeries; unknown coefficient names are unsupported.
func (r *Registry) ResolveByName(seriesName, cfName string) (*series.Descriptor, error) {
	kind, err := series.ParseKind(seriesName)
	if err != nil {
		return nil, err
	}
	cf, err := coefficient.ParseKind(cfName)
	if err != nil {
		return nil, &UnsupportedError{Series: kind, Coefficient: cfName}
	}
	return r.Resolve(kind, cf)
}

// New resolves (kind, cf) and constructs an empty instance of it.
func (r *Registry) New(kind series.Kind, cf coefficient.Kind) (series.Instance, error) {
	d, err := r.Resolve(kind, cf)
	if err != nil {
		return nil, err
	}
	inst := d.New()
	if inst == nil || inst.Key() != d.Key {
		panic(fmt.Sprintf("registry: factory for %s constructed an instance of a different type", d.Symbol))
	}
	return inst, nil
}
