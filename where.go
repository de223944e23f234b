package autofilter

import (
	"github.com/hugr-lab/autofilter-go/filter"
)

// Where builds the predicate "x.property OP value" over struct type T.
// The property name is resolved against T; unknown names fail with a
// *filter.PropertyResolutionError.
func Where[T any](property string, op filter.Operator, value any) (filter.Expression, error) {
	return WhereDescriptor[T](filter.Descriptor{
		Property: property,
		Operator: op,
		Value:    value,
	})
}

// WhereDescriptor builds the predicate described by d over struct type T.
func WhereDescriptor[T any](d filter.Descriptor) (filter.Expression, error) {
	return filter.BuildDescriptor(filter.NewTarget("x", filter.SchemaOf[T]()), d)
}
