package filter

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hugr-lab/autofilter-go/internal/recovery"
)

// EvalOptions configures predicate compilation and evaluation.
type EvalOptions struct {
	// Logger for evaluation diagnostics.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Program is a compiled predicate that evaluates against Go struct values.
// A Program is immutable and safe for concurrent use.
type Program struct {
	expr   Expression
	eval   func(target reflect.Value) (bool, error)
	logger *slog.Logger
}

// operand produces the value of one side of a comparison.
// A nil pointer result means "no value".
type operand func(target reflect.Value) (any, error)

// Compile turns a predicate built by BuildComparison (or decoded from JSON or
// MessagePack) into a Program. Only comparison trees are accepted; an
// EmptyExpression fails with ErrEmptyExpression.
func Compile(expr Expression, opts *EvalOptions) (*Program, error) {
	if opts == nil {
		opts = &EvalOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	eval, err := compilePredicate(expr)
	if err != nil {
		return nil, err
	}

	logger.Debug("Predicate compiled", "predicate", Format(expr))

	return &Program{expr: expr, eval: eval, logger: logger}, nil
}

// Expression returns the expression the program was compiled from.
func (p *Program) Expression() Expression {
	return p.expr
}

// Eval evaluates the predicate against target, a struct value or a pointer to one.
//
// Unwrapping an optional property without a value fails with ErrNoValue.
// Operands of incompatible types fail with ErrTypeMismatch.
func (p *Program) Eval(target any) (bool, error) {
	return recovery.RecoverToValue(p.logger, "Eval", func() (bool, error) {
		rv, err := structValue(target)
		if err != nil {
			return false, err
		}
		return p.eval(rv)
	})
}

func compilePredicate(expr Expression) (func(reflect.Value) (bool, error), error) {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		op, ok := ex.Operator()
		if !ok {
			return nil, fmt.Errorf("%w: comparison type %s", ErrUnsupportedExpression, ex.Type())
		}
		left, err := compileOperand(ex.Left)
		if err != nil {
			return nil, fmt.Errorf("invalid left operand: %w", err)
		}
		right, err := compileOperand(ex.Right)
		if err != nil {
			return nil, fmt.Errorf("invalid right operand: %w", err)
		}
		return func(target reflect.Value) (bool, error) {
			l, err := left(target)
			if err != nil {
				return false, err
			}
			r, err := right(target)
			if err != nil {
				return false, err
			}
			return Compare(op, l, r)
		}, nil
	case *EmptyExpression:
		return nil, ErrEmptyExpression
	case nil:
		return nil, fmt.Errorf("%w: nil expression", ErrUnsupportedExpression)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, expr.Class())
	}
}

func compileOperand(expr Expression) (operand, error) {
	switch ex := expr.(type) {
	case *ConstantExpression:
		if ex.Value.IsNull {
			return func(reflect.Value) (any, error) { return nil, nil }, nil
		}
		data := ex.Value.Data
		return func(reflect.Value) (any, error) { return data, nil }, nil

	case *PropertyExpression:
		read := compileProperty(ex)
		return func(target reflect.Value) (any, error) {
			fv, err := read(target)
			if err != nil {
				return nil, err
			}
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					return nil, nil
				}
				fv = fv.Elem()
			}
			return fv.Interface(), nil
		}, nil

	case *UnwrapExpression:
		prop, ok := ex.Child.(*PropertyExpression)
		if !ok {
			return nil, fmt.Errorf("%w: unwrap of %s", ErrUnsupportedExpression, ex.Child.Class())
		}
		read := compileProperty(prop)
		name := prop.Property.Name
		return func(target reflect.Value) (any, error) {
			fv, err := read(target)
			if err != nil {
				return nil, err
			}
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					return nil, fmt.Errorf("%w: %s", ErrNoValue, name)
				}
				fv = fv.Elem()
			}
			return fv.Interface(), nil
		}, nil

	case nil:
		return nil, fmt.Errorf("%w: nil operand", ErrUnsupportedExpression)
	default:
		return nil, fmt.Errorf("%w: operand %s", ErrUnsupportedExpression, expr.Class())
	}
}

// compileProperty returns a field reader. Targets of the type the property
// was resolved against are read by index; any other struct type (or a
// decoded expression without index information) is resolved by name.
func compileProperty(p *PropertyExpression) func(reflect.Value) (reflect.Value, error) {
	var expected reflect.Type
	if p.Target != nil {
		if s, ok := p.Target.Schema.(*StructSchema); ok {
			expected = s.Type()
		}
	}
	index := p.Property.Index
	name := p.Property.Name

	return func(target reflect.Value) (reflect.Value, error) {
		if expected != nil && target.Type() == expected && len(index) > 0 {
			return target.FieldByIndexErr(index)
		}
		prop, err := NewStructSchema(target.Type()).Property(name)
		if err != nil {
			return reflect.Value{}, err
		}
		return target.FieldByIndexErr(prop.Index)
	}
}

func structValue(target any) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil", ErrInvalidTarget)
	}
	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrInvalidTarget, rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s is not a struct", ErrInvalidTarget, rv.Type())
	}
	return rv, nil
}

// errUnordered reports a comparison involving NaN.
var errUnordered = errors.New("unordered")

// Compare applies op to left and right.
//
// Numbers compare by value across integer and floating-point widths.
// Strings, byte slices, times, durations and UUIDs compare within their
// own kind; booleans support only Equal and NotEqual. Equality is exact.
// A nil left operand fails with ErrNoValue.
func Compare(op Operator, left, right any) (bool, error) {
	if !op.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidOperator, uint8(op))
	}

	l, r := NewValue(left), NewValue(right)
	if l.IsNull {
		return false, ErrNoValue
	}
	if r.IsNull {
		return false, fmt.Errorf("%w: comparison with NULL", ErrTypeMismatch)
	}

	c, err := compareData(l.Data, r.Data, op == Equal || op == NotEqual)
	if errors.Is(err, errUnordered) {
		return op == NotEqual, nil
	}
	if err != nil {
		return false, err
	}

	switch op {
	case Equal:
		return c == 0, nil
	case NotEqual:
		return c != 0, nil
	case GreaterThan:
		return c > 0, nil
	case GreaterThanOrEqual:
		return c >= 0, nil
	case LessThan:
		return c < 0, nil
	case LessThanOrEqual:
		return c <= 0, nil
	}
	return false, fmt.Errorf("%w: %d", ErrInvalidOperator, uint8(op))
}

func compareData(l, r any, equality bool) (int, error) {
	switch lv := l.(type) {
	case int64:
		switch rv := r.(type) {
		case int64:
			return cmp.Compare(lv, rv), nil
		case uint64:
			if lv < 0 {
				return -1, nil
			}
			return cmp.Compare(uint64(lv), rv), nil
		case float64:
			return compareIntFloat(lv, rv)
		}
	case uint64:
		switch rv := r.(type) {
		case uint64:
			return cmp.Compare(lv, rv), nil
		case int64:
			if rv < 0 {
				return 1, nil
			}
			return cmp.Compare(lv, uint64(rv)), nil
		case float64:
			return compareUintFloat(lv, rv)
		}
	case float64:
		switch rv := r.(type) {
		case float64:
			return compareFloat(lv, rv)
		case int64:
			c, err := compareIntFloat(rv, lv)
			return -c, err
		case uint64:
			c, err := compareUintFloat(rv, lv)
			return -c, err
		}
	case string:
		switch rv := r.(type) {
		case string:
			return strings.Compare(lv, rv), nil
		case []byte:
			return bytes.Compare([]byte(lv), rv), nil
		case uuid.UUID:
			parsed, err := uuid.Parse(lv)
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
			}
			return bytes.Compare(parsed[:], rv[:]), nil
		}
	case []byte:
		switch rv := r.(type) {
		case []byte:
			return bytes.Compare(lv, rv), nil
		case string:
			return bytes.Compare(lv, []byte(rv)), nil
		}
	case bool:
		if rv, ok := r.(bool); ok {
			if !equality {
				return 0, fmt.Errorf("%w: booleans are not ordered", ErrTypeMismatch)
			}
			if lv == rv {
				return 0, nil
			}
			return 1, nil
		}
	case time.Time:
		if rv, ok := r.(time.Time); ok {
			return lv.Compare(rv), nil
		}
	case time.Duration:
		if rv, ok := r.(time.Duration); ok {
			return cmp.Compare(lv, rv), nil
		}
	case uuid.UUID:
		switch rv := r.(type) {
		case uuid.UUID:
			return bytes.Compare(lv[:], rv[:]), nil
		case string:
			parsed, err := uuid.Parse(rv)
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
			}
			return bytes.Compare(lv[:], parsed[:]), nil
		}
	}
	return 0, fmt.Errorf("%w: %T and %T", ErrTypeMismatch, l, r)
}

func compareFloat(l, r float64) (int, error) {
	if math.IsNaN(l) || math.IsNaN(r) {
		return 0, errUnordered
	}
	return cmp.Compare(l, r), nil
}

// compareIntFloat compares an integer with a float without rounding the
// integer to the nearest float64.
func compareIntFloat(i int64, f float64) (int, error) {
	switch {
	case math.IsNaN(f):
		return 0, errUnordered
	case f >= 1<<63:
		return -1, nil
	case f < -(1 << 63):
		return 1, nil
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c, nil
	}
	return -cmp.Compare(f, t), nil
}

func compareUintFloat(u uint64, f float64) (int, error) {
	switch {
	case math.IsNaN(f):
		return 0, errUnordered
	case f >= 1<<64:
		return -1, nil
	case f < 0:
		return 1, nil
	}
	t := math.Trunc(f)
	if c := cmp.Compare(u, uint64(t)); c != 0 {
		return c, nil
	}
	return -cmp.Compare(f, t), nil
}
