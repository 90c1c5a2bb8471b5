// Package polynomial registers the multivariate polynomial series types.
package polynomial

import (
	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/series"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Coefficients are the coefficient kinds polynomials are instantiated with.
var Coefficients = []coefficient.Kind{
	coefficient.Double,
	coefficient.Integer,
	coefficient.Rational,
	coefficient.Real,
}

var scalars = []coefficient.Kind{coefficient.Double, coefficient.Integer, coefficient.Rational, coefficient.Real}

// Capabilities are shared by every polynomial instantiation. Exponentiation
// is only defined for integral exponents.
var Capabilities = series.Capabilities{
	Interop: scalars,
	Pow:     []coefficient.Kind{coefficient.Integer},
	Eval:    scalars,
	Subs:    scalars,
}

// Polynomial is an empty polynomial over a single coefficient kind.
type Polynomial struct {
	series.Handle
}

// New returns an empty polynomial with coefficients of kind cf.
func New(cf coefficient.Kind) *Polynomial {
	return &Polynomial{Handle: series.NewHandle(series.NewKey(series.Polynomial, cf))}
}

// Register registers one polynomial type per coefficient kind.
func (m *Module) Register(r *registry.Registry) {
	for _, cf := range Coefficients {
		r.Register(series.NewDescriptor(
			series.NewKey(series.Polynomial, cf),
			"Multivariate polynomial with "+cf.String()+" coefficients.",
			Capabilities,
			func() series.Instance { return New(cf) },
		))
	}
}
