// Package server implements the events board HTTP surface.
//
// The server package wires a gin engine with the events controller, the
// HTML views embedded from templates/, and the request middleware stack
// (request IDs, structured access logs, Prometheus metrics and OpenTelemetry
// spans). Server wraps the engine in an http.Server with configured timeouts
// and graceful shutdown.
package server
