// Package filter builds, evaluates and encodes single-property comparison
// predicates.
//
// This package enables developers to:
//   - Build the predicate "target.property OP value" for one of six comparison operators
//   - Evaluate compiled predicates against Go struct values
//   - Encode predicates to SQL for DuckDB and PostgreSQL
//   - Serialize predicates to JSON or MessagePack and read them back
//
// # Basic Usage
//
// Resolve the property on the target type and build the comparison:
//
//	type Person struct {
//	    Age   int
//	    Score *float64 // optional
//	}
//
//	target := filter.NewTarget("x", filter.SchemaOf[Person]())
//	age, err := target.Schema.Property("Age")
//	if err != nil {
//	    return err // *PropertyResolutionError
//	}
//
//	pred, err := filter.BuildComparison(target, age, filter.GreaterThanOrEqual, 18)
//
// Optional properties are unwrapped before comparison, so `Score < 100`
// compares the payload of the pointer. Unwrapping a nil pointer fails at
// evaluation time with ErrNoValue.
//
// # Evaluation
//
//	prog, err := filter.Compile(pred, nil)
//	ok, err := prog.Eval(Person{Age: 30})
//
// # SQL Encoding
//
//	enc := filter.NewDuckDBEncoder(&filter.EncoderOptions{
//	    ColumnMapping: map[string]string{"Age": "age"},
//	})
//	where := enc.Encode(pred) // age >= 18
//
// Predicates the encoder cannot express, including the empty placeholder,
// encode to the empty string; callers skip such terms.
//
// # Descriptors
//
// Filter descriptors pair a property name with an operator and a literal and
// can be loaded from YAML:
//
//	- property: Age
//	  operator: gte
//	  value: 18
package filter
