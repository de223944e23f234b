package filter

import "errors"

// Standard errors returned by the filter package.
var (
	// ErrPropertyNotFound matches every *PropertyResolutionError via errors.Is.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidOperator indicates an operator name or value outside the six comparisons.
	ErrInvalidOperator = errors.New("invalid comparison operator")

	// ErrNoValue indicates an optional property without a value was unwrapped during evaluation.
	ErrNoValue = errors.New("optional property has no value")

	// ErrTypeMismatch indicates the operands of a comparison are not comparable.
	ErrTypeMismatch = errors.New("operand types are not comparable")

	// ErrEmptyExpression indicates evaluation reached the empty placeholder expression.
	ErrEmptyExpression = errors.New("empty expression has no truth value")

	// ErrUnsupportedExpression indicates an expression kind the evaluator cannot run.
	ErrUnsupportedExpression = errors.New("unsupported expression")

	// ErrInvalidTarget indicates the evaluated value is not a struct or pointer to struct.
	ErrInvalidTarget = errors.New("invalid evaluation target")
)

// PropertyResolutionError indicates a property name does not exist on the target type.
type PropertyResolutionError struct {
	// Target names the type the property was resolved against.
	Target string
	Name   string
}

func (e *PropertyResolutionError) Error() string {
	if e.Target == "" {
		return "property " + e.Name + " not found"
	}
	return "property " + e.Name + " not found on " + e.Target
}

// Is reports whether target is ErrPropertyNotFound.
func (e *PropertyResolutionError) Is(target error) bool {
	return target == ErrPropertyNotFound
}
