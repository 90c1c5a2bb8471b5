// Package query filters registered series types with CEL expressions.
//
// An expression sees one descriptor at a time through these variables:
//
//	series       string                     e.g. "poisson_series"
//	coefficient  string                     e.g. "polynomial_rational"
//	symbol       string                     e.g. "_poisson_series_polynomial_rational"
//	id           int
//	description  string
//	capabilities map(string, list(string))  keys "interop", "pow", "eval", "subs"
//
// Example: `series == "polynomial" && "integer" in capabilities["pow"]`.
package query

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/vk/seriesreg/internal/series"
)

// Filter is a compiled boolean CEL expression over descriptors.
type Filter struct {
	Expression string
	program    cel.Program
}

// NewFilter compiles expression. An empty expression yields a filter that
// matches every descriptor.
func NewFilter(expression string) (*Filter, error) {
	if expression == "" {
		return &Filter{}, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("series", cel.StringType),
		cel.Variable("coefficient", cel.StringType),
		cel.Variable("symbol", cel.StringType),
		cel.Variable("id", cel.IntType),
		cel.Variable("description", cel.StringType),
		cel.Variable("capabilities", cel.MapType(cel.StringType, cel.ListType(cel.StringType))),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating CEL environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("error compiling filter %q: %w", expression, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("filter %q must evaluate to bool, got %s", expression, ast.OutputType())
	}

	p, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("error creating CEL program: %w", err)
	}
	return &Filter{Expression: expression, program: p}, nil
}

// Match reports whether d satisfies the filter.
func (f *Filter) Match(d *series.Descriptor) (bool, error) {
	if f.program == nil {
		return true, nil
	}
	out, _, err := f.program.Eval(map[string]any{
		"series":       d.Key.Series.String(),
		"coefficient":  d.Key.Coefficient.String(),
		"symbol":       d.Symbol,
		"id":           int64(d.ID),
		"description":  d.Description,
		"capabilities": d.Capabilities.Map(),
	})
	if err != nil {
		return false, fmt.Errorf("error evaluating filter %q on %s: %w", f.Expression, d.Symbol, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q on %s evaluated to %v, not bool", f.Expression, d.Symbol, out.Value())
	}
	return matched, nil
}

// Apply returns the descriptors that satisfy the filter, preserving order.
func (f *Filter) Apply(ds []*series.Descriptor) ([]*series.Descriptor, error) {
	var out []*series.Descriptor
	for _, d := range ds {
		ok, err := f.Match(d)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}
