// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for both the batch pipeline and the
// query server, and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID (request ID) from a Fiber context and
// attaches it to the log entry, so that all logs of a single request can be
// correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Pipeline started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
