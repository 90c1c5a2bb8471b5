// Package registry is the statically declared table of concrete series types.
//
// Engine modules populate the Registry at startup, one Descriptor per
// (series kind, coefficient kind) pair, through the Module interface. Once
// every module has registered, the registry is sealed and validated against
// the HCL manifests, so that the Go registrations and the public manifests
// are guaranteed to agree before any query is served.
//
// Queries are exact-key lookups: CoefficientKinds lists what a series kind
// supports, Resolve maps a pair to its single Descriptor. Because duplicate
// keys and duplicate symbols are rejected at registration time, a lookup can
// never be ambiguous.
package registry
