// Package database handles SQL connections and schema inspection.
//
// It wraps GORM to open MySQL or SQLite connections from the application's
// configuration. The pipeline uses it for the optional mirror sink, which
// replaces a SQL table with the reconciled rows after every run.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for either dialect. The mirror
// sink uses it to report the schema it produced.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "processed_records")
package database
