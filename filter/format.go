package filter

import (
	"fmt"
	"strconv"
	"time"
)

// Format renders an expression in a compact Go-like notation for logs and
// error messages, e.g. `x.Age >= 18` or `*x.Score < 100`.
func Format(expr Expression) string {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		op, ok := ex.Operator()
		symbol := string(ex.Type())
		if ok {
			symbol = goSymbol(op)
		}
		return Format(ex.Left) + " " + symbol + " " + Format(ex.Right)
	case *PropertyExpression:
		if ex.Target == nil || ex.Target.Name == "" {
			return ex.Property.Name
		}
		return ex.Target.Name + "." + ex.Property.Name
	case *UnwrapExpression:
		return "*" + Format(ex.Child)
	case *ConstantExpression:
		return formatLiteral(ex.Value)
	case *TargetExpression:
		return ex.Name
	case *EmptyExpression:
		return "<empty>"
	case nil:
		return "<nil>"
	default:
		return "<" + string(expr.Class()) + ">"
	}
}

func goSymbol(op Operator) string {
	switch op {
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	}
	return op.Symbol()
}

func formatLiteral(v Value) string {
	if v.IsNull {
		return "nil"
	}
	switch d := v.Data.(type) {
	case string:
		return strconv.Quote(d)
	case []byte:
		return fmt.Sprintf("%x", d)
	case time.Time:
		return d.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(d)
	}
}
