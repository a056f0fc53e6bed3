// Package utils provides common utility functions for the aadhaar-records application.
// It includes helpers for converting raw tabular cell values (always strings on disk)
// into numbers, shared by the reconciler, the pipeline and the query service.
package utils
