// Package poissonseries registers the Poisson series types, over scalar
// coefficients and over polynomial coefficients.
package poissonseries

import (
	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/series"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Coefficients are the coefficient kinds Poisson series are instantiated with.
var Coefficients = []coefficient.Kind{
	coefficient.Double,
	coefficient.Integer,
	coefficient.Rational,
	coefficient.Real,
	coefficient.PolynomialDouble,
	coefficient.PolynomialInteger,
	coefficient.PolynomialRational,
	coefficient.PolynomialReal,
}

// Capabilities are shared by every Poisson series instantiation.
var Capabilities = series.Capabilities{
	Interop: []coefficient.Kind{coefficient.Double, coefficient.Integer, coefficient.Rational, coefficient.Real},
	Pow:     []coefficient.Kind{coefficient.Integer},
	Eval:    []coefficient.Kind{coefficient.Double, coefficient.Real},
	Subs:    []coefficient.Kind{coefficient.Double, coefficient.Real},
}

// PoissonSeries is an empty Poisson series over a single coefficient kind.
type PoissonSeries struct {
	series.Handle
}

// New returns an empty Poisson series with coefficients of kind cf.
func New(cf coefficient.Kind) *PoissonSeries {
	return &PoissonSeries{Handle: series.NewHandle(series.NewKey(series.PoissonSeries, cf))}
}

// Register registers one Poisson series type per coefficient kind.
func (m *Module) Register(r *registry.Registry) {
	for _, cf := range Coefficients {
		r.Register(series.NewDescriptor(
			series.NewKey(series.PoissonSeries, cf),
			"Poisson series with "+cf.String()+" coefficients.",
			Capabilities,
			func() series.Instance { return New(cf) },
		))
	}
}
