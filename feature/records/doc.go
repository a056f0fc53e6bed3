// Package records builds the reconciled records artifact.
//
// A run loads the enrolment, demographic and biometric directories, outer-joins
// them on (date, state, district, pincode), stamps every row with a record_id
// and writes the result through one or more sinks.
//
// # Record identifiers
//
//	ADHR-<YYYYMMDD>-<PINCODE>-<HASH6>
//
// HASH6 is the first 6 uppercase hex characters of the SHA-256 of
// "{date}-{pincode}-{district}-{state}". Identical tuples always produce the
// same identifier. Collisions in the 48-bit suffix are not detected.
//
// # Sinks
//
//   - FileSink: the primary CSV artifact, replaced via temp file and rename.
//   - StorageSink: uploads the same bytes to object storage.
//   - DatabaseSink: drops and recreates a TEXT-only mirror table.
//
// Mirrors are written first and the file last, so a failed mirror leaves the
// previous artifact in place.
//
// # Usage
//
//	m := records.NewMaterializer(logger, records.NewFileSink(cfg.OutputFile))
//	result, err := records.NewPipeline(cfg, m, logger).Run(ctx)
package records
