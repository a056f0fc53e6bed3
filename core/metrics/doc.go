// Package metrics exposes Prometheus instrumentation for the query service.
//
// A Metrics value owns its own registry, so tests can create as many as they
// like without clashing on the global default registry.
//
// # Usage
//
//	m := metrics.New()
//	app.Use(m.Middleware())
//	app.Get("/metrics", m.Handler())
//
// The analytics store reports snapshot size and reload outcomes through
// RecordsLoaded, ReloadSucceeded and ReloadFailed.
package metrics
