// Package autofilter turns "property, operator, value" filter descriptors into
// typed predicate expressions.
//
// The root package offers the generic Where helper over the filter package:
//
//	type Person struct {
//	    Age   int
//	    Score *float64
//	}
//
//	pred, err := autofilter.Where[Person]("Age", filter.GreaterThanOrEqual, 18)
//	if err != nil {
//	    return err // *filter.PropertyResolutionError for unknown properties
//	}
//
// Predicates are trees of filter.Expression values. They can be evaluated
// against Go values (filter.Compile), against Arrow records
// (arrowfilter.Filter), or encoded to SQL (filter.NewDuckDBEncoder,
// filter.NewPostgresEncoder).
//
// # Package Structure
//
//   - filter: expression tree, builder, evaluation, SQL encoders and codecs
//   - arrowfilter: predicate evaluation over Arrow record batches
package autofilter
