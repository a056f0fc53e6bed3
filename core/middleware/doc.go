// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: Implements API key validation to protect endpoints. Disabled when no
//     key is configured, so the read-only analytics API can run open.
//   - rayid: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// These middleware components are designed to be registered globally or per-route group
// in the server setup.
package middleware
