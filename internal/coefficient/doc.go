// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package coefficient enumerates the scalar kinds a series can carry as its
// coefficients.
//
// Every kind is an explicit tag with a stable type name ("double", "integer",
// "rational", ...). The type name is what manifests, the CLI and the HTTP
// surface speak; the tag is what the registry is keyed by. Nothing in this
// package depends on Go's runtime type identity.
package coefficient
