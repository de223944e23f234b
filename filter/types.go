package filter

// ExpressionClass identifies the category of expression.
type ExpressionClass string

const (
	ClassBoundComparison ExpressionClass = "BOUND_COMPARISON"
	ClassBoundConstant   ExpressionClass = "BOUND_CONSTANT"
	ClassBoundParameter  ExpressionClass = "BOUND_PARAMETER"
	ClassBoundProperty   ExpressionClass = "BOUND_PROPERTY"
	ClassBoundUnwrap     ExpressionClass = "BOUND_UNWRAP"
	ClassEmpty           ExpressionClass = "EMPTY"
)

// ExpressionType identifies the specific operation type.
type ExpressionType string

const (
	// Comparison operators
	TypeCompareEqual              ExpressionType = "COMPARE_EQUAL"
	TypeCompareNotEqual           ExpressionType = "COMPARE_NOTEQUAL"
	TypeCompareLessThan           ExpressionType = "COMPARE_LESSTHAN"
	TypeCompareGreaterThan        ExpressionType = "COMPARE_GREATERTHAN"
	TypeCompareLessThanOrEqual    ExpressionType = "COMPARE_LESSTHANOREQUALTO"
	TypeCompareGreaterThanOrEqual ExpressionType = "COMPARE_GREATERTHANOREQUALTO"

	// Value types
	TypeValueConstant  ExpressionType = "VALUE_CONSTANT"
	TypeValueParameter ExpressionType = "VALUE_PARAMETER"

	// Member access
	TypePropertyAccess ExpressionType = "PROPERTY_ACCESS"
	TypeUnwrapValue    ExpressionType = "UNWRAP_VALUE"

	TypeEmpty ExpressionType = "EMPTY"
)

// Expression is the interface implemented by all predicate expression types.
// Use type assertions or type switches to access specific expression data.
type Expression interface {
	// Class returns the expression class (e.g., BOUND_COMPARISON, BOUND_PROPERTY).
	Class() ExpressionClass

	// Type returns the specific expression type (e.g., COMPARE_EQUAL, PROPERTY_ACCESS).
	Type() ExpressionType

	// Alias returns the optional alias for the expression.
	Alias() string

	// expressionMarker is a marker method to prevent external implementation.
	expressionMarker()
}

// BaseExpression contains common fields for all expression types.
type BaseExpression struct {
	ExprClass ExpressionClass `json:"expression_class"`
	ExprType  ExpressionType  `json:"type"`
	ExprAlias string          `json:"alias"`
}

// Class returns the expression class.
func (b *BaseExpression) Class() ExpressionClass { return b.ExprClass }

// Type returns the expression type.
func (b *BaseExpression) Type() ExpressionType { return b.ExprType }

// Alias returns the expression alias.
func (b *BaseExpression) Alias() string { return b.ExprAlias }

func (b *BaseExpression) expressionMarker() {}

// TargetExpression is the symbolic root a property access is rooted at,
// the "x" in "x => x.Age >= 18".
type TargetExpression struct {
	BaseExpression

	// Name identifies the target in rendered output. May be empty.
	Name string

	// Schema resolves property names on the target type.
	// Nil for targets decoded from JSON or MessagePack.
	Schema Schema
}

// NewTarget creates a target reference resolved through schema.
func NewTarget(name string, schema Schema) *TargetExpression {
	return &TargetExpression{
		BaseExpression: BaseExpression{
			ExprClass: ClassBoundParameter,
			ExprType:  TypeValueParameter,
		},
		Name:   name,
		Schema: schema,
	}
}

// PropertyExpression represents target.property.
type PropertyExpression struct {
	BaseExpression
	Target   *TargetExpression
	Property Property
}

// UnwrapExpression extracts the payload of an optional-valued child,
// asserting that a value is present.
type UnwrapExpression struct {
	BaseExpression
	Child      Expression
	ReturnType LogicalType
}

// ConstantExpression represents a literal value.
type ConstantExpression struct {
	BaseExpression
	Value Value
}

// ComparisonExpression represents binary comparisons (=, <>, <, >, <=, >=).
type ComparisonExpression struct {
	BaseExpression
	Left       Expression
	Right      Expression
	ReturnType LogicalType
}

// Operator returns the comparison operator of the expression.
// ok is false if the expression type is not one of the six comparisons.
func (c *ComparisonExpression) Operator() (op Operator, ok bool) {
	return operatorForType(c.Type())
}

// EmptyExpression is the neutral placeholder produced for an operator outside
// the six defined comparisons. It carries no semantics: encoders skip it and
// evaluation reports ErrEmptyExpression.
type EmptyExpression struct {
	BaseExpression
}

func newEmptyExpression() *EmptyExpression {
	return &EmptyExpression{
		BaseExpression: BaseExpression{
			ExprClass: ClassEmpty,
			ExprType:  TypeEmpty,
		},
	}
}

// UnsupportedExpression represents a decoded expression whose class is not known.
// This allows decoding to succeed while marking the expression as unsupported.
type UnsupportedExpression struct {
	BaseExpression
}
