package series

import (
	"fmt"
	"strings"

	"github.com/vk/seriesreg/internal/coefficient"
)

// Key identifies a concrete series type.
type Key struct {
	Series      Kind
	Coefficient coefficient.Kind
}

// NewKey pairs a series kind with a coefficient kind.
func NewKey(s Kind, cf coefficient.Kind) Key {
	return Key{Series: s, Coefficient: cf}
}

// String returns "<series>[<coefficient>]".
func (k Key) String() string {
	return fmt.Sprintf("%s[%s]", k.Series, k.Coefficient)
}

// Valid reports whether both halves of the key are declared kinds.
func (k Key) Valid() bool {
	return k.Series.Valid() && k.Coefficient.Valid()
}

// SymbolFor returns the exported symbol name of the concrete type.
func SymbolFor(k Key) string {
	return "_" + k.Series.String() + "_" + k.Coefficient.String()
}

// ParseSymbol recovers the Key from a symbol produced by SymbolFor.
func ParseSymbol(symbol string) (Key, error) {
	if symbol == "" {
		return Key{}, fmt.Errorf("symbol cannot be empty")
	}
	rest, ok := strings.CutPrefix(symbol, "_")
	if !ok {
		return Key{}, fmt.Errorf("invalid symbol %q: missing leading underscore", symbol)
	}

	for _, s := range Kinds() {
		cfName, ok := strings.CutPrefix(rest, s.String()+"_")
		if !ok {
			continue
		}
		cf, err := coefficient.ParseKind(cfName)
		if err != nil {
			continue
		}
		return NewKey(s, cf), nil
	}
	return Key{}, fmt.Errorf("invalid symbol %q: no series and coefficient type match", symbol)
}
