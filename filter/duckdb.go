package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DuckDBEncoder encodes predicate expressions to DuckDB SQL syntax.
// Comparisons involving NaN are rewritten to select the same rows as Eval.
type DuckDBEncoder struct {
	sqlEncoder
}

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
// If opts is nil, default options are used.
func NewDuckDBEncoder(opts *EncoderOptions) *DuckDBEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	e := &DuckDBEncoder{}
	e.opts = opts
	e.placeholder = func(int) string { return "?" }
	e.literal = e.formatValue
	e.notNaN = func(col string) string { return "NOT isnan(" + col + ")" }
	return e
}

// Encode converts a predicate to SQL.
// Returns empty string if the expression is unsupported.
func (e *DuckDBEncoder) Encode(expr Expression) string {
	return e.encode(expr, nil)
}

// EncodeParams converts a predicate to SQL with "?" placeholders.
//
//	sql, args := enc.EncodeParams(pred)
//	rows, err := db.QueryContext(ctx, "SELECT * FROM users WHERE "+sql, args...)
func (e *DuckDBEncoder) EncodeParams(expr Expression) (string, []any) {
	return e.encodeParams(expr)
}

// formatValue formats a Value as a SQL literal.
func (e *DuckDBEncoder) formatValue(v Value) string {
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
		return e.formatFloatValue(v.Data)
	case TypeIDVarchar:
		return formatStringValue(v.Data)
	case TypeIDBlob:
		return e.formatBlobValue(v.Data)
	case TypeIDDate:
		return formatDateValue(v.Data)
	case TypeIDTimestamp, TypeIDTimestampTZ:
		return e.formatTimestampValue(v.Data, v.Type.ID)
	case TypeIDInterval:
		return formatIntervalValue(v.Data)
	case TypeIDUUID:
		return formatUUIDValue(v.Data)
	default:
		// For unknown types, try to format as generic
		return formatGenericValue(v.Data)
	}
}

// formatBoolValue formats a boolean value.
func formatBoolValue(data any) string {
	if b, ok := data.(bool); ok {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// formatIntValue formats a signed integer value.
func formatIntValue(data any) string {
	switch v := data.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

// formatUIntValue formats an unsigned integer value.
func formatUIntValue(data any) string {
	switch v := data.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return ""
	}
}

// formatFloatValue formats a floating-point value.
func (e *DuckDBEncoder) formatFloatValue(data any) string {
	v, ok := data.(float64)
	if !ok {
		return ""
	}
	switch {
	case math.IsNaN(v):
		return "'NaN'::DOUBLE"
	case math.IsInf(v, 1):
		return "'Infinity'::DOUBLE"
	case math.IsInf(v, -1):
		return "'-Infinity'::DOUBLE"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatStringValue formats a string value with proper escaping.
func formatStringValue(data any) string {
	switch v := data.(type) {
	case string:
		return quoteLiteral(v)
	default:
		return ""
	}
}

// formatBlobValue formats a blob value as an escaped byte literal.
func (e *DuckDBEncoder) formatBlobValue(data any) string {
	switch v := data.(type) {
	case []byte:
		var sb strings.Builder
		sb.WriteString("'")
		for _, b := range v {
			fmt.Fprintf(&sb, "\\x%02X", b)
		}
		sb.WriteString("'::BLOB")
		return sb.String()
	case string:
		return quoteLiteral(v) + "::BLOB"
	default:
		return ""
	}
}

// formatDateValue formats a date value.
func formatDateValue(data any) string {
	switch v := data.(type) {
	case time.Time:
		return "DATE '" + v.Format("2006-01-02") + "'"
	default:
		return ""
	}
}

// formatTimestampValue formats a timestamp value in UTC.
func (e *DuckDBEncoder) formatTimestampValue(data any, typeID LogicalTypeID) string {
	t, ok := data.(time.Time)
	if !ok {
		return ""
	}

	formatted := formatTimestamp(t)
	if typeID == TypeIDTimestampTZ {
		return "TIMESTAMPTZ '" + formatted + "+00'"
	}
	return "TIMESTAMP '" + formatted + "'"
}

// formatTimestamp renders t in UTC with microsecond precision when needed.
func formatTimestamp(t time.Time) string {
	t = t.UTC()
	formatted := t.Format("2006-01-02 15:04:05")
	if micro := t.Nanosecond() / 1000; micro != 0 {
		formatted = fmt.Sprintf("%s.%06d", formatted, micro)
	}
	return formatted
}

// formatIntervalValue formats an interval value.
func formatIntervalValue(data any) string {
	switch v := data.(type) {
	case time.Duration:
		return "INTERVAL '" + strconv.FormatInt(v.Microseconds(), 10) + " microseconds'"
	default:
		return ""
	}
}

// formatUUIDValue formats a UUID value.
func formatUUIDValue(data any) string {
	switch v := data.(type) {
	case uuid.UUID:
		return quoteLiteral(v.String())
	case string:
		return quoteLiteral(v)
	default:
		return ""
	}
}

// formatGenericValue formats a generic value.
func formatGenericValue(data any) string {
	switch v := data.(type) {
	case string:
		return quoteLiteral(v)
	case bool:
		return formatBoolValue(v)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%g", v)
	case nil:
		return "NULL"
	default:
		return ""
	}
}
