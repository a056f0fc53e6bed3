// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure for it: listen port, optional API key, CORS origins
// and the upper bound on record search results.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the analytics feature to clamp search limits.
package server
