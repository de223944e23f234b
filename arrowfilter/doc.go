// Package arrowfilter evaluates filter predicates over Apache Arrow records.
//
// Build predicates against an Arrow schema and apply them to record batches:
//
//	target := filter.NewTarget("x", arrowfilter.NewSchema("people", rec.Schema()))
//	age, err := target.Schema.Property("age")
//	pred, err := filter.BuildComparison(target, age, filter.GreaterThanOrEqual, 18)
//
//	out, err := arrowfilter.Filter(ctx, pred, rec, nil)
//	defer out.Release()
//
// Nullable fields resolve to optional properties. Rows whose cell is NULL
// are never selected.
package arrowfilter
