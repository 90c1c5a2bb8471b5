// This file translates decoded HCL blocks into the format-agnostic Model.

package manifest

import (
	"fmt"
	"sort"

	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/series"
	"github.com/vk/seriesreg/internal/settings"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func translateSeries(b *seriesBlock, filename string) (*SeriesDefinition, error) {
	kind, err := series.ParseKind(b.Name)
	if err != nil {
		return nil, err
	}

	defaults, err := translateCapabilities(b.Capabilities)
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", b.Name, err)
	}

	def := &SeriesDefinition{
		Kind:        kind,
		Description: b.Description,
		Source:      filename,
	}
	for _, cb := range b.Coefficients {
		cf, err := coefficient.ParseKind(cb.Type)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", b.Name, err)
		}
		if _, dup := def.Coefficient(cf); dup {
			return nil, fmt.Errorf("series %q: coefficient %q declared more than once", b.Name, cb.Type)
		}

		caps := defaults
		if cb.Capabilities != nil {
			if caps, err = translateCapabilities(cb.Capabilities); err != nil {
				return nil, fmt.Errorf("series %q, coefficient %q: %w", b.Name, cb.Type, err)
			}
		}
		def.Coefficients = append(def.Coefficients, &CoefficientDefinition{Kind: cf, Capabilities: caps})
	}
	return def, nil
}

func translateCapabilities(b *capabilitiesBlock) (series.Capabilities, error) {
	var caps series.Capabilities
	if b == nil {
		return caps, nil
	}
	var err error
	if caps.Interop, err = parseCapability("interop", b.Interop); err != nil {
		return caps, err
	}
	if caps.Pow, err = parseCapability("pow", b.Pow); err != nil {
		return caps, err
	}
	if caps.Eval, err = parseCapability("eval", b.Eval); err != nil {
		return caps, err
	}
	if caps.Subs, err = parseCapability("subs", b.Subs); err != nil {
		return caps, err
	}
	return caps, nil
}

func parseCapability(name string, values []string) ([]coefficient.Kind, error) {
	if len(values) == 0 {
		return nil, nil
	}
	kinds, err := coefficient.ParseKinds(values)
	if err != nil {
		return nil, fmt.Errorf("capability %q: %w", name, err)
	}
	return kinds, nil
}

func translateSettings(b *settingsBlock) (*settings.Overrides, error) {
	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid settings block: %w", diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	o := &settings.Overrides{}
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("settings attribute %q: %w", name, diags)
		}

		var err error
		switch name {
		case "n_threads":
			o.NThreads, err = decodeSetting[uint](name, val, cty.Number)
		case "cache_line_size":
			o.CacheLineSize, err = decodeSetting[uint](name, val, cty.Number)
		case "tracing":
			o.Tracing, err = decodeSetting[bool](name, val, cty.Bool)
		case "max_term_output":
			o.MaxTermOutput, err = decodeSetting[uint64](name, val, cty.Number)
		case "min_work_per_thread":
			o.MinWorkPerThread, err = decodeSetting[uint64](name, val, cty.Number)
		default:
			err = fmt.Errorf("unsupported settings attribute %q", name)
		}
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

// decodeSetting converts val to ty and decodes it into a new T.
func decodeSetting[T any](name string, val cty.Value, ty cty.Type) (*T, error) {
	if val.IsNull() {
		return nil, fmt.Errorf("settings attribute %q must not be null", name)
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return nil, fmt.Errorf("settings attribute %q: cannot convert %s to %s: %w", name, val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	out := new(T)
	if err := gocty.FromCtyValue(converted, out); err != nil {
		return nil, fmt.Errorf("settings attribute %q: %w", name, err)
	}
	return out, nil
}
