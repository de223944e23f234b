package filter

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Encoder converts predicate expressions to SQL strings.
// Implementations handle dialect-specific syntax (DuckDB, PostgreSQL, etc.).
type Encoder interface {
	// Encode converts a predicate to a SQL condition with inline literals,
	// without the "WHERE" keyword.
	// Returns empty string if the expression is unsupported.
	Encode(expr Expression) string

	// EncodeParams converts a predicate to a SQL condition with literals
	// replaced by placeholders, and returns the placeholder arguments in order.
	// Returns empty string and nil if the expression is unsupported.
	EncodeParams(expr Expression) (string, []any)
}

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps property names to column names.
	// Properties not in the map use their own names.
	ColumnMapping map[string]string

	// ColumnExpressions maps property names to SQL expressions.
	// Takes precedence over ColumnMapping.
	// Use for computed columns or complex transformations.
	ColumnExpressions map[string]string
}

// sqlEncoder is the dialect-independent part of the SQL encoders.
type sqlEncoder struct {
	opts        *EncoderOptions
	placeholder func(n int) string
	literal     func(v Value) string
	// notNaN renders a condition that holds when col is not NaN.
	notNaN func(col string) string
}

// argList collects placeholder arguments while encoding.
type argList struct {
	args []any
}

func (e *sqlEncoder) encode(expr Expression, params *argList) string {
	if expr == nil {
		return ""
	}

	switch ex := expr.(type) {
	case *ComparisonExpression:
		return e.encodeComparison(ex, params)
	case *PropertyExpression:
		return e.encodeProperty(ex)
	case *UnwrapExpression:
		// SQL columns already yield their value or NULL.
		return e.encode(ex.Child, params)
	case *ConstantExpression:
		return e.encodeConstant(ex, params)
	case *EmptyExpression, *UnsupportedExpression, *TargetExpression:
		return ""
	default:
		return ""
	}
}

func (e *sqlEncoder) encodeComparison(c *ComparisonExpression, params *argList) string {
	op, ok := c.Operator()
	if !ok {
		return ""
	}

	left := e.encode(c.Left, params)
	if left == "" {
		return ""
	}

	// SQL orders NaN above every number and equal to itself. A NaN literal
	// matches nothing, except that every present value differs from it.
	if isNaNConstant(c.Right) {
		if op == NotEqual {
			return left + " IS NOT NULL"
		}
		return "FALSE"
	}

	right := e.encode(c.Right, params)
	if right == "" {
		return ""
	}

	cond := left + " " + op.Symbol() + " " + right
	if (op == GreaterThan || op == GreaterThanOrEqual) && isFloatColumn(c.Left) {
		return "(" + cond + " AND " + e.notNaN(left) + ")"
	}
	return cond
}

func isNaNConstant(expr Expression) bool {
	c, ok := expr.(*ConstantExpression)
	if !ok || c.Value.IsNull {
		return false
	}
	f, ok := c.Value.Data.(float64)
	return ok && math.IsNaN(f)
}

func isFloatColumn(expr Expression) bool {
	if u, ok := expr.(*UnwrapExpression); ok {
		expr = u.Child
	}
	p, ok := expr.(*PropertyExpression)
	if !ok {
		return false
	}
	switch p.Property.Type.ID.Normalize() {
	case TypeIDFloat, TypeIDDouble:
		return true
	}
	return false
}

func (e *sqlEncoder) encodeProperty(p *PropertyExpression) string {
	name := p.Property.Name
	if name == "" {
		return ""
	}

	// Check for expression mapping first (takes precedence)
	if e.opts.ColumnExpressions != nil {
		if expr, ok := e.opts.ColumnExpressions[name]; ok {
			return expr
		}
	}

	if e.opts.ColumnMapping != nil {
		if mapped, ok := e.opts.ColumnMapping[name]; ok {
			name = mapped
		}
	}

	return quoteIdentifier(name)
}

func (e *sqlEncoder) encodeConstant(c *ConstantExpression, params *argList) string {
	if params == nil || c.Value.IsNull {
		return e.literal(c.Value)
	}
	params.args = append(params.args, sqlArg(c.Value))
	return e.placeholder(len(params.args))
}

func (e *sqlEncoder) encodeParams(expr Expression) (string, []any) {
	params := &argList{}
	sql := e.encode(expr, params)
	if sql == "" {
		return "", nil
	}
	return sql, params.args
}

// sqlArg converts canonical value data to a database/sql argument.
func sqlArg(v Value) any {
	if u, ok := v.Data.(uuid.UUID); ok {
		return u.String()
	}
	return v.Data
}

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// quoteIdentifier returns a quoted identifier if needed.
// Both DuckDB and PostgreSQL use double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
// Mixed-case names are quoted so they are not folded to lower case.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	// Check first character (must be lower-case letter or underscore)
	c := name[0]
	if !isLower(c) && c != '_' {
		return true
	}

	// Check remaining characters (lower-case letters, digits, or underscore)
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLower(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Check for reserved words (simplified list)
	upper := strings.ToUpper(name)
	switch upper {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "TABLE", "INDEX",
		"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "ON", "AS", "IN", "IS", "LIKE",
		"BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END", "ORDER", "BY",
		"GROUP", "HAVING", "LIMIT", "OFFSET", "UNION", "EXCEPT", "INTERSECT",
		"ALL", "DISTINCT", "VALUES", "SET", "INTO", "PRIMARY", "KEY", "FOREIGN",
		"REFERENCES", "CONSTRAINT", "DEFAULT", "CHECK", "UNIQUE", "ASC", "DESC",
		"NULLS", "FIRST", "LAST", "CAST", "INTERVAL", "DATE", "TIME", "TIMESTAMP",
		"USER":
		return true
	}

	return false
}

// isLower returns true if c is a lower-case ASCII letter.
func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// isDigit returns true if c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
