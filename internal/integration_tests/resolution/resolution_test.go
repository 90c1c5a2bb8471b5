package integration_tests

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/seriesreg/internal/app"
	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/series"
	"github.com/vk/seriesreg/internal/testutil"
	"github.com/vk/seriesreg/modules/poissonseries"
	"github.com/vk/seriesreg/modules/polynomial"
)

func startRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	result := testutil.StartApp(t, app.Config{}, nil)
	require.NoError(t, result.Err)
	return result.App.Registry()
}

// TestResolution_EveryDeclaredPairResolves checks each supported pair of the
// core modules resolves to exactly one type whose symbol names both kinds.
func TestResolution_EveryDeclaredPairResolves(t *testing.T) {
	t.Parallel()
	reg := startRegistry(t)

	supported := map[series.Kind][]coefficient.Kind{
		series.Polynomial:    polynomial.Coefficients,
		series.PoissonSeries: poissonseries.Coefficients,
	}

	for kind, cfs := range supported {
		require.Equal(t, len(cfs), reg.CoefficientKinds(kind).Len(), "series %s", kind)
		for _, cf := range cfs {
			d, err := reg.Resolve(kind, cf)
			require.NoError(t, err, "%s[%s]", kind, cf)
			assert.True(t, strings.Contains(d.Symbol, kind.String()), d.Symbol)
			assert.True(t, strings.Contains(d.Symbol, cf.String()), d.Symbol)

			inst, err := reg.New(kind, cf)
			require.NoError(t, err)
			assert.Equal(t, d.Symbol, inst.Symbol())
		}
	}
}

// TestResolution_AbsentPairsAreUnsupported checks every pair outside the
// registered table fails with the unsupported error.
func TestResolution_AbsentPairsAreUnsupported(t *testing.T) {
	t.Parallel()
	reg := startRegistry(t)

	for _, kind := range series.Kinds() {
		registered := reg.CoefficientKinds(kind)
		for _, cf := range coefficient.Kinds() {
			if registered.Has(cf) {
				continue
			}
			d, err := reg.Resolve(kind, cf)
			assert.Nil(t, d)
			assert.True(t, errors.Is(err, registry.ErrUnsupportedCoefficient), "%s[%s]: %v", kind, cf, err)
		}
	}
}

// TestResolution_ConcurrentQueriesAgree runs the same queries from many
// goroutines against the sealed registry.
func TestResolution_ConcurrentQueriesAgree(t *testing.T) {
	t.Parallel()
	reg := startRegistry(t)

	want, err := reg.Resolve(series.PoissonSeries, coefficient.PolynomialRational)
	require.NoError(t, err)

	var wg sync.WaitGroup
	symbols := make([]string, 32)
	for i := range symbols {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := reg.Resolve(series.PoissonSeries, coefficient.PolynomialRational)
			if err == nil {
				symbols[i] = d.Symbol
			}
			_ = reg.CfTypes(series.PoissonSeries)
		}()
	}
	wg.Wait()

	for _, s := range symbols {
		assert.Equal(t, want.Symbol, s)
	}
}
