package filter

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

type record struct {
	Name    string
	Age     int
	Score   *float64
	Active  bool
	Created time.Time
	Updated time.Time `filter:"updated_at"`
	Elapsed time.Duration
	ID      uuid.UUID
	Data    []byte
	User    string `filter:"user"`
	Count   uint16
}

func buildRecord(t *testing.T, name string, op Operator, value any) Expression {
	t.Helper()
	target := NewTarget("r", SchemaOf[record]())
	p, err := target.Schema.Property(name)
	if err != nil {
		t.Fatalf("Property(%q) failed: %v", name, err)
	}
	expr, err := BuildComparison(target, p, op, value)
	if err != nil {
		t.Fatalf("BuildComparison failed: %v", err)
	}
	return expr
}

func TestDuckDBEncodeOperators(t *testing.T) {
	enc := NewDuckDBEncoder(&EncoderOptions{
		ColumnMapping: map[string]string{"Age": "age"},
	})

	tests := []struct {
		op       Operator
		expected string
	}{
		{Equal, "age = 42"},
		{NotEqual, "age <> 42"},
		{GreaterThan, "age > 42"},
		{GreaterThanOrEqual, "age >= 42"},
		{LessThan, "age < 42"},
		{LessThanOrEqual, "age <= 42"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			sql := enc.Encode(buildRecord(t, "Age", tt.op, 42))
			if sql != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, sql)
			}
		})
	}
}

func TestDuckDBEncodeLiterals(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 123456000, time.UTC)
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	tests := []struct {
		name     string
		property string
		value    any
		expected string
	}{
		{"quoted mixed-case identifier", "Age", 7, `"Age" = 7`},
		{"unwrapped optional", "Score", 99.5, `"Score" = 99.5`},
		{"string escaping", "Name", "O'Brien", `"Name" = 'O''Brien'`},
		{"boolean", "Active", true, `"Active" = TRUE`},
		{"timestamp", "Created", ts, `"Created" = TIMESTAMP '2024-01-15 10:30:00.123456'`},
		{"renamed property", "updated_at", ts.Truncate(time.Second), `updated_at = TIMESTAMP '2024-01-15 10:30:00'`},
		{"interval", "Elapsed", 90 * time.Second, `"Elapsed" = INTERVAL '90000000 microseconds'`},
		{"uuid", "ID", id, `"ID" = '550e8400-e29b-41d4-a716-446655440000'`},
		{"blob", "Data", []byte{0x01, 0xAB}, `"Data" = '\x01\xAB'::BLOB`},
		{"reserved word", "user", "admin", `"user" = 'admin'`},
		{"unsigned", "Count", uint16(9), `"Count" = 9`},
		{"null literal", "Name", nil, `"Name" = NULL`},
		{"nil pointer literal", "Score", (*float64)(nil), `"Score" = NULL`},
	}

	enc := NewDuckDBEncoder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := enc.Encode(buildRecord(t, tt.property, Equal, tt.value))
			if sql != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, sql)
			}
		})
	}
}

func TestDuckDBEncodeNaN(t *testing.T) {
	enc := NewDuckDBEncoder(&EncoderOptions{
		ColumnMapping: map[string]string{"Score": "score", "Age": "age"},
	})

	tests := []struct {
		name     string
		property string
		op       Operator
		value    any
		expected string
		args     []any
	}{
		{"greater than guards column", "Score", GreaterThan, 1.5, "(score > ? AND NOT isnan(score))", []any{1.5}},
		{"greater or equal guards column", "Score", GreaterThanOrEqual, 1.5, "(score >= ? AND NOT isnan(score))", []any{1.5}},
		{"equal unchanged", "Score", Equal, 1.5, "score = ?", []any{1.5}},
		{"integer column unguarded", "Age", GreaterThan, 1, "age > ?", []any{int64(1)}},
		{"nan literal", "Score", LessThan, math.NaN(), "FALSE", nil},
		{"nan literal on integer column", "Age", Equal, math.NaN(), "FALSE", nil},
		{"not nan literal", "Score", NotEqual, math.NaN(), "score IS NOT NULL", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := enc.EncodeParams(buildRecord(t, tt.property, tt.op, tt.value))
			if sql != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, sql)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Errorf("expected args %#v, got %#v", tt.args, args)
			}
		})
	}

	if lit := enc.formatValue(NewValue(math.NaN())); lit != "'NaN'::DOUBLE" {
		t.Errorf("expected NaN literal, got '%s'", lit)
	}
}

func TestDuckDBEncodeColumnExpressions(t *testing.T) {
	enc := NewDuckDBEncoder(&EncoderOptions{
		ColumnMapping: map[string]string{
			"Name": "full_name",
			"Age":  "age",
		},
		ColumnExpressions: map[string]string{
			"Name": "lower(first_name || ' ' || last_name)",
		},
	})

	sql := enc.Encode(buildRecord(t, "Name", Equal, "ann lee"))
	expected := "lower(first_name || ' ' || last_name) = 'ann lee'"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}

	sql = enc.Encode(buildRecord(t, "Age", LessThan, 3))
	if sql != "age < 3" {
		t.Errorf("expected 'age < 3', got '%s'", sql)
	}
}

func TestDuckDBEncodeParams(t *testing.T) {
	enc := NewDuckDBEncoder(&EncoderOptions{
		ColumnMapping: map[string]string{"ID": "id", "Name": "name"},
	})
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	tests := []struct {
		name     string
		expr     Expression
		expected string
		args     []any
	}{
		{"integer", buildRecord(t, "Age", GreaterThanOrEqual, 18), `"Age" >= ?`, []any{int64(18)}},
		{"string", buildRecord(t, "Name", Equal, "O'Brien"), `name = ?`, []any{"O'Brien"}},
		{"uuid as text", buildRecord(t, "ID", NotEqual, id), `id <> ?`, []any{id.String()}},
		{"null stays inline", buildRecord(t, "Name", Equal, nil), `name = NULL`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := enc.EncodeParams(tt.expr)
			if sql != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, sql)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Errorf("expected args %#v, got %#v", tt.args, args)
			}
		})
	}
}

func TestDuckDBEncodeUnsupported(t *testing.T) {
	enc := NewDuckDBEncoder(nil)

	tests := []struct {
		name string
		expr Expression
	}{
		{"nil", nil},
		{"empty", newEmptyExpression()},
		{"unsupported", &UnsupportedExpression{BaseExpression{ExprClass: "BOUND_FUNCTION"}}},
		{"comparison with unsupported operand", &ComparisonExpression{
			BaseExpression: BaseExpression{ExprClass: ClassBoundComparison, ExprType: TypeCompareEqual},
			Left:           &UnsupportedExpression{},
			Right:          &ConstantExpression{Value: NewValue(1)},
		}},
		{"comparison with unknown type", &ComparisonExpression{
			BaseExpression: BaseExpression{ExprClass: ClassBoundComparison, ExprType: "COMPARE_IN"},
			Left:           &ConstantExpression{Value: NewValue(1)},
			Right:          &ConstantExpression{Value: NewValue(1)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sql := enc.Encode(tt.expr); sql != "" {
				t.Errorf("expected empty SQL, got '%s'", sql)
			}
			sql, args := enc.EncodeParams(tt.expr)
			if sql != "" || args != nil {
				t.Errorf("expected empty params encoding, got '%s' %v", sql, args)
			}
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"age", "age"},
		{"_private", "_private"},
		{"col_2", "col_2"},
		{"Age", `"Age"`},
		{"2col", `"2col"`},
		{"my col", `"my col"`},
		{`we"ird`, `"we""ird"`},
		{"select", `"select"`},
		{"", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quoteIdentifier(tt.name); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
