package series

import (
	"errors"
	"fmt"
)

// Kind tags a series type.
type Kind int

const (
	Invalid Kind = iota
	Polynomial
	PoissonSeries
)

// ErrUnknownSeries is returned when a series name does not map to any Kind.
var ErrUnknownSeries = errors.New("unknown series type")

var kindNames = map[Kind]string{
	Polynomial:    "polynomial",
	PoissonSeries: "poisson_series",
}

// Kinds returns every valid series kind in declaration order.
func Kinds() []Kind {
	return []Kind{Polynomial, PoissonSeries}
}

// String returns the series name.
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

// ParseKind maps a series name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnknownSeries, name)
}
