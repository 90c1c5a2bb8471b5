// Package server exposes the sealed series registry over a small read-only
// HTTP API. It also serves the health check endpoint used by orchestrators.
package server
