package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/seriesreg/internal/coefficient"
	"github.com/vk/seriesreg/internal/ctxlog"
	"github.com/vk/seriesreg/internal/manifest"
	"github.com/vk/seriesreg/internal/series"
)

// ValidateRegistry performs a strict parity check between the manifests and
// the Go registrations: every declared pair must be registered, every
// registered pair must be declared, and their capabilities must agree.
func (r *Registry) ValidateRegistry(ctx context.Context, model *manifest.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for kind, def := range model.Series {
		if len(def.Coefficients) == 0 {
			logger.Warn("Manifest declares a series without coefficient types; it cannot be resolved.", "series", kind.String(), "file", def.Source)
			continue
		}
		for _, cf := range def.Coefficients {
			d, err := r.Resolve(kind, cf.Kind)
			if err != nil {
				errs = append(errs, fmt.Sprintf("series '%s': manifest %s declares coefficient '%s' which is not registered in Go", kind, def.Source, cf.Kind))
				continue
			}
			errs = append(errs, compareCapabilities(d, cf.Capabilities)...)
		}
	}

	for _, d := range r.Descriptors() {
		if !model.Declared(d.Key) {
			errs = append(errs, fmt.Sprintf("series '%s': Go registers coefficient '%s' (%s) which is not declared in any manifest", d.Key.Series, d.Key.Coefficient, d.Symbol))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "series_types", r.Len())
	return nil
}

func compareCapabilities(d *series.Descriptor, declared series.Capabilities) []string {
	var errs []string
	check := func(name string, registered, manifest []coefficient.Kind) {
		if coefficient.NewSet(registered...).Equal(coefficient.NewSet(manifest...)) {
			return
		}
		errs = append(errs, fmt.Sprintf("%s: '%s' capability mismatch. Manifest declares [%s] but Go registers [%s]",
			d.Symbol, name,
			strings.Join(coefficient.Names(manifest), ", "),
			strings.Join(coefficient.Names(registered), ", ")))
	}
	check("interop", d.Capabilities.Interop, declared.Interop)
	check("pow", d.Capabilities.Pow, declared.Pow)
	check("eval", d.Capabilities.Eval, declared.Eval)
	check("subs", d.Capabilities.Subs, declared.Subs)
	return errs
}
