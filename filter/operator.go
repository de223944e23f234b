package filter

import (
	"fmt"
	"strings"
)

// Operator selects one of the six scalar comparison semantics.
// The set is closed; the zero value is not a valid operator.
type Operator uint8

const (
	Equal Operator = 1 + iota
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
)

// Operators lists every defined operator in declaration order.
var Operators = []Operator{
	Equal,
	NotEqual,
	GreaterThan,
	GreaterThanOrEqual,
	LessThan,
	LessThanOrEqual,
}

var operatorNames = map[Operator]string{
	Equal:              "eq",
	NotEqual:           "ne",
	GreaterThan:        "gt",
	GreaterThanOrEqual: "gte",
	LessThan:           "lt",
	LessThanOrEqual:    "lte",
}

var operatorSymbols = map[Operator]string{
	Equal:              "=",
	NotEqual:           "<>",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
}

var operatorTypes = map[Operator]ExpressionType{
	Equal:              TypeCompareEqual,
	NotEqual:           TypeCompareNotEqual,
	GreaterThan:        TypeCompareGreaterThan,
	GreaterThanOrEqual: TypeCompareGreaterThanOrEqual,
	LessThan:           TypeCompareLessThan,
	LessThanOrEqual:    TypeCompareLessThanOrEqual,
}

// parseTable accepts short names, SQL symbols and the C-style spellings.
var parseTable = map[string]Operator{
	"eq":  Equal,
	"=":   Equal,
	"==":  Equal,
	"ne":  NotEqual,
	"neq": NotEqual,
	"<>":  NotEqual,
	"!=":  NotEqual,
	"gt":  GreaterThan,
	">":   GreaterThan,
	"gte": GreaterThanOrEqual,
	"ge":  GreaterThanOrEqual,
	">=":  GreaterThanOrEqual,
	"lt":  LessThan,
	"<":   LessThan,
	"lte": LessThanOrEqual,
	"le":  LessThanOrEqual,
	"<=":  LessThanOrEqual,
}

// ParseOperator parses an operator name ("gte") or symbol (">=").
// Names are case-insensitive.
func ParseOperator(s string) (Operator, error) {
	if op, ok := parseTable[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, s)
}

// Valid reports whether op is one of the six defined operators.
func (op Operator) Valid() bool {
	_, ok := operatorNames[op]
	return ok
}

// String returns the short name of the operator ("eq", "gte", ...).
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// Symbol returns the SQL symbol of the operator, or "" if op is not valid.
func (op Operator) Symbol() string {
	return operatorSymbols[op]
}

// ExpressionType returns the COMPARE_* expression type of the operator,
// or "" if op is not valid.
func (op Operator) ExpressionType() ExpressionType {
	return operatorTypes[op]
}

// MarshalText implements encoding.TextMarshaler.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOperator, uint8(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

func operatorForType(t ExpressionType) (Operator, bool) {
	for op, et := range operatorTypes {
		if et == t {
			return op, true
		}
	}
	return 0, false
}
