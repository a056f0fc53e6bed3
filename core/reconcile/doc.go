// Package reconcile merges several tabular sources into one denormalized table.
//
// Rows are aligned on a composite merge key. The first source in a Spec is the
// anchor: reconciliation refuses to run without it. Every further source is
// full-outer-joined onto the running result, so no row of either side is lost.
//
// # Join semantics
//
//   - Rows sharing a key are paired; duplicate keys on both sides produce every
//     combination, as a relational join would.
//   - Unmatched rows keep their own cells and are missing the other side's
//     exclusive columns.
//   - A non-key column already present in the running result is renamed on the
//     incoming side by appending the source suffix (age_5_17 -> age_5_17_demo).
//
// # Normalization
//
// After the last join, and only then, each non-key column is classified: it is
// numeric when every non-missing value parses as a number. Missing cells of
// numeric columns are set to "0". Finally each key column is coerced to a
// trimmed string on every row, so downstream equality checks never see a
// missing key.
//
// # Usage
//
//	spec := &reconcile.Spec{
//	    Keys: []string{"date", "state", "district", "pincode"},
//	    Sources: []reconcile.Source{
//	        {Name: "enrolment", Table: enrol},
//	        {Name: "demographic", Suffix: "_demo", Table: demo},
//	        {Name: "biometric", Suffix: "_bio", Table: bio},
//	    },
//	}
//	merged, report, err := reconcile.ReconcileAll(spec)
//	if errors.Is(err, reconcile.ErrAnchorEmpty) {
//	    // nothing to write
//	}
package reconcile
