package coefficient

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// Kind tags a coefficient type.
type Kind int

const (
	Invalid Kind = iota
	Double
	Integer
	Rational
	Real
	PolynomialDouble
	PolynomialInteger
	PolynomialRational
	PolynomialReal
)

// RealPrecision is the mantissa precision, in bits, of the sample value for Real.
const RealPrecision = 113

// ErrUnknownKind is returned when a type name does not map to any Kind.
var ErrUnknownKind = errors.New("unknown coefficient type")

var kindNames = map[Kind]string{
	Double:             "double",
	Integer:            "integer",
	Rational:           "rational",
	Real:               "real",
	PolynomialDouble:   "polynomial_double",
	PolynomialInteger:  "polynomial_integer",
	PolynomialRational: "polynomial_rational",
	PolynomialReal:     "polynomial_real",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		Double, Integer, Rational, Real,
		PolynomialDouble, PolynomialInteger, PolynomialRational, PolynomialReal,
	}
}

// String returns the type name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsPolynomial reports whether the coefficient is itself a polynomial.
func (k Kind) IsPolynomial() bool {
	return k >= PolynomialDouble && k <= PolynomialReal
}

// Base returns the scalar kind underneath a polynomial kind. Scalar kinds
// return themselves.
func (k Kind) Base() Kind {
	if !k.IsPolynomial() {
		return k
	}
	return k - PolynomialDouble + Double
}

// ParseKind maps a type name back to its Kind.
func ParseKind(name string) (Kind, error) {
	k, ok := kindsByName[name]
	if !ok {
		return Invalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// MustParseKind is ParseKind that panics on unknown names. Intended for
// statically known names in module registrations.
func MustParseKind(name string) Kind {
	k, err := ParseKind(name)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseKinds parses a list of type names, stopping at the first unknown one.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Names converts kinds to their type names, preserving order.
func Names(kinds []Kind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// Sample returns a zero-valued sample of the coefficient type.
//
// Rationals are objects with "num" and "den" attributes. Polynomial kinds are
// empty lists of terms, each term being an object with a "cf" of the base kind
// and a list of integer "exponents".
func Sample(k Kind) cty.Value {
	switch k {
	case Double:
		return cty.NumberFloatVal(0)
	case Integer:
		return cty.NumberIntVal(0)
	case Rational:
		return cty.ObjectVal(map[string]cty.Value{
			"num": cty.NumberIntVal(0),
			"den": cty.NumberIntVal(1),
		})
	case Real:
		return cty.NumberVal(new(big.Float).SetPrec(RealPrecision))
	case PolynomialDouble, PolynomialInteger, PolynomialRational, PolynomialReal:
		return cty.ListValEmpty(termType(k.Base()))
	default:
		return cty.NilVal
	}
}

func termType(base Kind) cty.Type {
	return cty.Object(map[string]cty.Type{
		"cf":        Sample(base).Type(),
		"exponents": cty.List(cty.Number),
	})
}
