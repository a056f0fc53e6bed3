// Package pipeline holds the configuration of the record reconciliation pipeline.
//
// It names the three source directories (enrolment, demographic, biometric),
// the artifact location, the worker count for identifier assignment and the
// optional secondary sinks (object storage upload, SQL mirror table). The query
// service reads the same section to find the artifact it serves.
package pipeline
