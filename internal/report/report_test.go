package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/series"
	"github.com/vk/seriesreg/internal/settings"
	"gopkg.in/yaml.v3"
)

func testDescriptor() *series.Descriptor {
	key := series.NewKey(series.Polynomial, coefficient.Rational)
	d := series.NewDescriptor(key, "Rational polynomial.", series.Capabilities{
		Pow: []coefficient.Kind{coefficient.Integer},
	}, func() series.Instance { return series.NewHandle(key) })
	d.ID = 2
	return d
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", "yaml"} {
		_, err := ParseFormat(s)
		require.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	require.ErrorContains(t, err, "invalid output format")
}

func TestSeriesTypes_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).SeriesTypes([]*series.Descriptor{testDescriptor()}))

	out := buf.String()
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "_polynomial_rational")
	assert.Contains(t, out, "rational")
}

func TestSeriesTypes_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).SeriesTypes([]*series.Descriptor{testDescriptor()}))

	var got []SeriesType
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, SeriesType{
		ID:           2,
		Symbol:       "_polynomial_rational",
		Series:       "polynomial",
		Coefficient:  "rational",
		Description:  "Rational polynomial.",
		Capabilities: map[string][]string{"pow": {"integer"}},
	}, got[0])
}

func TestResolution_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatYAML).Resolution(testDescriptor()))

	var got SeriesType
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "_polynomial_rational", got.Symbol)
	assert.Equal(t, []string{"integer"}, got.Capabilities["pow"])
}

func TestResolution_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).Resolution(testDescriptor()))
	assert.Equal(t, "_polynomial_rational\n  Rational polynomial.\n  pow:     integer\n", buf.String())
}

func TestCoefficientTypes(t *testing.T) {
	cfTypes := []registry.CfType{
		{Sample: coefficient.Sample(coefficient.Integer), Name: "integer"},
		{Sample: coefficient.Sample(coefficient.Rational), Name: "rational"},
		{Sample: coefficient.Sample(coefficient.PolynomialDouble), Name: "polynomial_double"},
	}

	views, err := NewCoefficientTypes(cfTypes)
	require.NoError(t, err)
	assert.Equal(t, []CoefficientType{
		{Name: "integer", Sample: "0"},
		{Name: "rational", Sample: `{"den":1,"num":0}`},
		{Name: "polynomial_double", Sample: "[]"},
	}, views)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).CoefficientTypes(series.Polynomial, cfTypes))
	assert.Contains(t, buf.String(), `"series": "polynomial"`)

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatText).CoefficientTypes(series.Polynomial, cfTypes))
	assert.Contains(t, buf.String(), "polynomial_double")
}

func TestSettings(t *testing.T) {
	v := settings.Values{NThreads: 2, CacheLineSize: 64, MaxTermOutput: 20, MinWorkPerThread: 500000}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatYAML).Settings(v))
	assert.Contains(t, buf.String(), "n_threads: 2")

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatText).Settings(v))
	assert.Contains(t, buf.String(), "min_work_per_thread")
	assert.Contains(t, buf.String(), "500000")
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf, Format("xml")).Resolution(testDescriptor())
	require.ErrorContains(t, err, "unsupported output format")
}
