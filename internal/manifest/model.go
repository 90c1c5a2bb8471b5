package manifest

import (
	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/series"
	"github.com/vk/seriesreg/internal/settings"
)

// Model is the format-agnostic result of loading one or more manifests.
type Model struct {
	Series   map[series.Kind]*SeriesDefinition
	Settings *settings.Overrides
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Series: make(map[series.Kind]*SeriesDefinition)}
}

// SeriesDefinition is one declared series type.
type SeriesDefinition struct {
	Kind         series.Kind
	Description  string
	Coefficients []*CoefficientDefinition
	Source       string
}

// CoefficientDefinition is one declared coefficient instantiation of a series.
type CoefficientDefinition struct {
	Kind         coefficient.Kind
	Capabilities series.Capabilities
}

// Keys returns every declared (series, coefficient) pair in manifest order.
func (d *SeriesDefinition) Keys() []series.Key {
	keys := make([]series.Key, 0, len(d.Coefficients))
	for _, cf := range d.Coefficients {
		keys = append(keys, series.NewKey(d.Kind, cf.Kind))
	}
	return keys
}

// Coefficient returns the declaration for kind, if any.
func (d *SeriesDefinition) Coefficient(kind coefficient.Kind) (*CoefficientDefinition, bool) {
	for _, cf := range d.Coefficients {
		if cf.Kind == kind {
			return cf, true
		}
	}
	return nil, false
}

// Declared reports whether the model declares key.
func (m *Model) Declared(key series.Key) bool {
	def, ok := m.Series[key.Series]
	if !ok {
		return false
	}
	_, ok = def.Coefficient(key.Coefficient)
	return ok
}
