package filter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// PostgresEncoder encodes predicate expressions to PostgreSQL syntax.
// Comparisons involving NaN are rewritten to select the same rows as Eval.
type PostgresEncoder struct {
	sqlEncoder
}

// NewPostgresEncoder creates a new PostgreSQL encoder.
// If opts is nil, default options are used.
func NewPostgresEncoder(opts *EncoderOptions) *PostgresEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	e := &PostgresEncoder{}
	e.opts = opts
	e.placeholder = func(n int) string { return "$" + strconv.Itoa(n) }
	e.literal = e.formatValue
	e.notNaN = func(col string) string { return col + " <> 'NaN'::float8" }
	return e
}

// Encode converts a predicate to SQL with inline literals.
// Returns empty string if the expression is unsupported.
func (e *PostgresEncoder) Encode(expr Expression) string {
	return e.encode(expr, nil)
}

// EncodeParams converts a predicate to SQL with $1, $2, ... placeholders.
func (e *PostgresEncoder) EncodeParams(expr Expression) (string, []any) {
	return e.encodeParams(expr)
}

// EncodeNamed converts a predicate to SQL with @p1, @p2, ... placeholders
// and the matching pgx named arguments.
//
//	sql, args := enc.EncodeNamed(pred)
//	rows, err := conn.Query(ctx, "SELECT * FROM users WHERE "+sql, args)
func (e *PostgresEncoder) EncodeNamed(expr Expression) (string, pgx.NamedArgs) {
	named := *e
	named.placeholder = func(n int) string { return "@p" + strconv.Itoa(n) }

	sql, args := named.encodeParams(expr)
	if sql == "" {
		return "", nil
	}

	namedArgs := make(pgx.NamedArgs, len(args))
	for i, arg := range args {
		namedArgs["p"+strconv.Itoa(i+1)] = arg
	}
	return sql, namedArgs
}

// formatValue formats a Value as a PostgreSQL literal.
func (e *PostgresEncoder) formatValue(v Value) string {
	if v.IsNull {
		return "NULL"
	}

	switch v.Type.ID {
	case TypeIDBoolean:
		return formatBoolValue(v.Data)
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt:
		return formatIntValue(v.Data)
	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt:
		return formatUIntValue(v.Data)
	case TypeIDFloat, TypeIDDouble:
		f, ok := v.Data.(float64)
		if !ok {
			return ""
		}
		switch {
		case math.IsNaN(f):
			return "'NaN'::float8"
		case math.IsInf(f, 1):
			return "'Infinity'::float8"
		case math.IsInf(f, -1):
			return "'-Infinity'::float8"
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case TypeIDVarchar:
		return formatStringValue(v.Data)
	case TypeIDBlob:
		b, ok := v.Data.([]byte)
		if !ok {
			return ""
		}
		return fmt.Sprintf("'\\x%x'::bytea", b)
	case TypeIDDate:
		t, ok := v.Data.(time.Time)
		if !ok {
			return ""
		}
		return "'" + t.Format("2006-01-02") + "'::date"
	case TypeIDTimestamp:
		t, ok := v.Data.(time.Time)
		if !ok {
			return ""
		}
		return "'" + formatTimestamp(t) + "'::timestamp"
	case TypeIDTimestampTZ:
		t, ok := v.Data.(time.Time)
		if !ok {
			return ""
		}
		return "'" + formatTimestamp(t) + "+00'::timestamptz"
	case TypeIDInterval:
		d, ok := v.Data.(time.Duration)
		if !ok {
			return ""
		}
		return "'" + strconv.FormatInt(d.Microseconds(), 10) + " microseconds'::interval"
	case TypeIDUUID:
		s := formatUUIDValue(v.Data)
		if s == "" {
			return ""
		}
		return s + "::uuid"
	default:
		return formatGenericValue(v.Data)
	}
}
