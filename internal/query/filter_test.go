package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/series"
)

func descriptors() []*series.Descriptor {
	mk := func(id int, s series.Kind, cf coefficient.Kind, pow ...coefficient.Kind) *series.Descriptor {
		key := series.NewKey(s, cf)
		d := series.NewDescriptor(key, "test", series.Capabilities{Pow: pow}, func() series.Instance {
			return series.NewHandle(key)
		})
		d.ID = id
		return d
	}
	return []*series.Descriptor{
		mk(0, series.Polynomial, coefficient.Double, coefficient.Integer),
		mk(1, series.Polynomial, coefficient.Rational),
		mk(2, series.PoissonSeries, coefficient.PolynomialRational, coefficient.Integer),
	}
}

func symbols(ds []*series.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Symbol)
	}
	return out
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name     string
		expr     string
		expected []string
	}{
		{
			name:     "empty matches all",
			expr:     "",
			expected: []string{"_polynomial_double", "_polynomial_rational", "_poisson_series_polynomial_rational"},
		},
		{
			name:     "by series",
			expr:     `series == "polynomial"`,
			expected: []string{"_polynomial_double", "_polynomial_rational"},
		},
		{
			name:     "by coefficient prefix",
			expr:     `coefficient.startsWith("polynomial_")`,
			expected: []string{"_poisson_series_polynomial_rational"},
		},
		{
			name:     "by capability",
			expr:     `"integer" in capabilities["pow"]`,
			expected: []string{"_polynomial_double", "_poisson_series_polynomial_rational"},
		},
		{
			name:     "by id",
			expr:     `id >= 1 && symbol.contains("rational")`,
			expected: []string{"_polynomial_rational", "_poisson_series_polynomial_rational"},
		},
		{
			name:     "no match",
			expr:     `series == "laurent"`,
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFilter(tc.expr)
			require.NoError(t, err)
			got, err := f.Apply(descriptors())
			require.NoError(t, err)
			assert.Equal(t, tc.expected, symbols(got))
		})
	}
}

func TestNewFilter_Errors(t *testing.T) {
	for name, expr := range map[string]string{
		"syntax error":     `series ==`,
		"undeclared ident": `degree > 2`,
		"non-bool result":  `symbol`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewFilter(expr)
			require.Error(t, err)
		})
	}
}

func TestMatch_EvaluationError(t *testing.T) {
	f, err := NewFilter(`capabilities["missing"].size() > 0`)
	require.NoError(t, err)
	_, err = f.Match(descriptors()[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error evaluating filter")
}
