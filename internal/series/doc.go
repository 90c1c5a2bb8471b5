// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package series describes the concrete series types exposed by the engine.
//
// A concrete series type is identified by a Key: the series kind (polynomial,
// Poisson series) paired with the coefficient kind it is instantiated with.
// Each Key has exactly one Descriptor, which carries the exported symbol name,
// the optional capability lists and the factory that constructs instances.
//
// # Symbols
//
// The symbol of a Key is "_<series>_<coefficient>", for example
// "_polynomial_rational" or "_poisson_series_polynomial_double". Symbols are
// derived, never chosen, so a symbol always embeds both type names and
// ParseSymbol can recover the Key from it.
package series
