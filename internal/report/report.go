// Package report renders registry query results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/series"
	"github.com/vk/seriesreg/internal/settings"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be 'text', 'json' or 'yaml'", s)
	}
}

// SeriesType is the rendered form of a descriptor.
type SeriesType struct {
	ID           int                 `json:"id" yaml:"id"`
	Symbol       string              `json:"symbol" yaml:"symbol"`
	Series       string              `json:"series" yaml:"series"`
	Coefficient  string              `json:"coefficient" yaml:"coefficient"`
	Description  string              `json:"description,omitempty" yaml:"description,omitempty"`
	Capabilities map[string][]string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// CoefficientType is the rendered form of a coefficient table entry. Sample
// holds the sample value encoded as JSON.
type CoefficientType struct {
	Name   string `json:"name" yaml:"name"`
	Sample string `json:"sample" yaml:"sample"`
}

// NewSeriesType converts a descriptor for rendering.
func NewSeriesType(d *series.Descriptor) SeriesType {
	caps := make(map[string][]string)
	for name, kinds := range d.Capabilities.Map() {
		if len(kinds) > 0 {
			caps[name] = kinds
		}
	}
	return SeriesType{
		ID:           d.ID,
		Symbol:       d.Symbol,
		Series:       d.Key.Series.String(),
		Coefficient:  d.Key.Coefficient.String(),
		Description:  d.Description,
		Capabilities: caps,
	}
}

// NewCoefficientTypes converts a coefficient table for rendering.
func NewCoefficientTypes(cfTypes []registry.CfType) ([]CoefficientType, error) {
	out := make([]CoefficientType, 0, len(cfTypes))
	for _, cf := range cfTypes {
		sample, err := ctyjson.Marshal(cf.Sample, cf.Sample.Type())
		if err != nil {
			return nil, fmt.Errorf("failed to encode sample of %s: %w", cf.Name, err)
		}
		out = append(out, CoefficientType{Name: cf.Name, Sample: string(sample)})
	}
	return out, nil
}

// Renderer writes results to an io.Writer in one format.
type Renderer struct {
	w      io.Writer
	format Format
}

// NewRenderer returns a renderer for format.
func NewRenderer(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

// SeriesTypes renders a list of descriptors.
func (r *Renderer) SeriesTypes(ds []*series.Descriptor) error {
	views := make([]SeriesType, 0, len(ds))
	for _, d := range ds {
		views = append(views, NewSeriesType(d))
	}
	if r.format != FormatText {
		return r.encode(views)
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSYMBOL\tSERIES\tCOEFFICIENT")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", v.ID, v.Symbol, v.Series, v.Coefficient)
	}
	return tw.Flush()
}

// CoefficientTypes renders the coefficient table of a series kind.
func (r *Renderer) CoefficientTypes(kind series.Kind, cfTypes []registry.CfType) error {
	views, err := NewCoefficientTypes(cfTypes)
	if err != nil {
		return err
	}
	if r.format != FormatText {
		return r.encode(map[string]any{"series": kind.String(), "coefficients": views})
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COEFFICIENT\tSAMPLE")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\n", v.Name, v.Sample)
	}
	return tw.Flush()
}

// Resolution renders a single resolved descriptor.
func (r *Renderer) Resolution(d *series.Descriptor) error {
	v := NewSeriesType(d)
	if r.format != FormatText {
		return r.encode(v)
	}

	fmt.Fprintf(r.w, "%s\n", v.Symbol)
	if v.Description != "" {
		fmt.Fprintf(r.w, "  %s\n", v.Description)
	}
	for _, name := range []string{"interop", "pow", "eval", "subs"} {
		if kinds, ok := v.Capabilities[name]; ok {
			fmt.Fprintf(r.w, "  %-8s %s\n", name+":", strings.Join(kinds, ", "))
		}
	}
	return nil
}

// Settings renders a settings snapshot.
func (r *Renderer) Settings(v settings.Values) error {
	if r.format != FormatText {
		return r.encode(v)
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "n_threads\t%d\n", v.NThreads)
	fmt.Fprintf(tw, "cache_line_size\t%d\n", v.CacheLineSize)
	fmt.Fprintf(tw, "tracing\t%t\n", v.Tracing)
	fmt.Fprintf(tw, "max_term_output\t%d\n", v.MaxTermOutput)
	fmt.Fprintf(tw, "min_work_per_thread\t%d\n", v.MinWorkPerThread)
	return tw.Flush()
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", r.format)
	}
}
