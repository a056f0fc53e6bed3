// Package analytics serves read-only queries over the reconciled records.
//
// The artifact is loaded into a Store, which holds an immutable Snapshot and
// swaps it atomically on Reload. Handlers never mutate the snapshot.
//
// # Endpoints
//
//	GET  /                       status and record count
//	GET  /analytics/summary      age bucket totals
//	GET  /analytics/geo?state=   totals per (state, district)
//	GET  /records?pincode=&limit= pincode substring search
//	POST /admin/reload           re-read the artifact
//
// A missing artifact is not an error: the store serves an empty data set and
// the endpoints return empty results.
package analytics
