package filter

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// LogicalTypeID identifies value types using DuckDB type names.
type LogicalTypeID string

const (
	TypeIDInvalid     LogicalTypeID = "INVALID"
	TypeIDSQLNull     LogicalTypeID = "SQLNULL"
	TypeIDAny         LogicalTypeID = "ANY"
	TypeIDBoolean     LogicalTypeID = "BOOLEAN"
	TypeIDTinyInt     LogicalTypeID = "TINYINT"
	TypeIDSmallInt    LogicalTypeID = "SMALLINT"
	TypeIDInteger     LogicalTypeID = "INTEGER"
	TypeIDBigInt      LogicalTypeID = "BIGINT"
	TypeIDUTinyInt    LogicalTypeID = "UTINYINT"
	TypeIDUSmallInt   LogicalTypeID = "USMALLINT"
	TypeIDUInteger    LogicalTypeID = "UINTEGER"
	TypeIDUBigInt     LogicalTypeID = "UBIGINT"
	TypeIDFloat       LogicalTypeID = "FLOAT"
	TypeIDDouble      LogicalTypeID = "DOUBLE"
	TypeIDVarchar     LogicalTypeID = "VARCHAR"
	TypeIDBlob        LogicalTypeID = "BLOB"
	TypeIDDate        LogicalTypeID = "DATE"
	TypeIDTimestamp   LogicalTypeID = "TIMESTAMP"
	TypeIDTimestampTZ LogicalTypeID = "TIMESTAMP_TZ"
	TypeIDInterval    LogicalTypeID = "INTERVAL"
	TypeIDUUID        LogicalTypeID = "UUID"
	TypeIDStruct      LogicalTypeID = "STRUCT"
	TypeIDList        LogicalTypeID = "LIST"
)

// typeIDMapping maps DuckDB type aliases and full SQL names to normalized short names.
var typeIDMapping = map[LogicalTypeID]LogicalTypeID{
	"TIMESTAMP WITH TIME ZONE":    TypeIDTimestampTZ,
	"TIMESTAMPTZ":                 TypeIDTimestampTZ,
	"TIMESTAMP WITHOUT TIME ZONE": TypeIDTimestamp,
	"DATETIME":                    TypeIDTimestamp,
	"INT":                         TypeIDInteger,
	"INT4":                        TypeIDInteger,
	"INT8":                        TypeIDBigInt,
	"INT2":                        TypeIDSmallInt,
	"INT1":                        TypeIDTinyInt,
	"UINT8":                       TypeIDUBigInt,
	"UINT4":                       TypeIDUInteger,
	"UINT2":                       TypeIDUSmallInt,
	"UINT1":                       TypeIDUTinyInt,
	"FLOAT4":                      TypeIDFloat,
	"FLOAT8":                      TypeIDDouble,
	"REAL":                        TypeIDFloat,
	"STRING":                      TypeIDVarchar,
	"TEXT":                        TypeIDVarchar,
	"BOOL":                        TypeIDBoolean,
	"BYTEA":                       TypeIDBlob,
}

// Normalize returns the canonical LogicalTypeID for the given type ID.
func (t LogicalTypeID) Normalize() LogicalTypeID {
	if mapped, ok := typeIDMapping[t]; ok {
		return mapped
	}
	return t
}

// LogicalType describes the type of a property or literal.
type LogicalType struct {
	ID LogicalTypeID `json:"id"`
}

// Boolean is the logical type of every comparison result.
var Boolean = LogicalType{ID: TypeIDBoolean}

// Value represents a typed constant value.
//
// Data holds the canonical Go form of the value: bool, int64, uint64,
// float64, string, []byte, time.Time, time.Duration or uuid.UUID. Values of
// other types are kept as-is with type ANY.
type Value struct {
	Type   LogicalType `json:"type"`
	IsNull bool        `json:"is_null"`
	Data   any         `json:"value"`
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	bytesType    = reflect.TypeOf([]byte(nil))
)

// NewValue wraps a Go value as a typed constant.
// Pointers are dereferenced; nil and nil pointers become NULL.
// Named types are typed by their underlying kind.
func NewValue(v any) Value {
	if v == nil {
		return Value{Type: LogicalType{ID: TypeIDSQLNull}, IsNull: true}
	}
	if val, ok := v.(Value); ok {
		return val
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Value{Type: LogicalTypeOf(rv.Type().Elem()), IsNull: true}
		}
		rv = rv.Elem()
	}

	lt := LogicalTypeOf(rv.Type())
	data, ok := canonical(rv)
	if !ok {
		return Value{Type: LogicalType{ID: TypeIDAny}, Data: rv.Interface()}
	}
	return Value{Type: lt, Data: data}
}

// LogicalTypeOf maps a Go type to its logical type.
// Pointer types map to the type of their element.
func LogicalTypeOf(t reflect.Type) LogicalType {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t {
	case timeType:
		return LogicalType{ID: TypeIDTimestamp}
	case durationType:
		return LogicalType{ID: TypeIDInterval}
	case uuidType:
		return LogicalType{ID: TypeIDUUID}
	}

	switch t.Kind() {
	case reflect.Bool:
		return LogicalType{ID: TypeIDBoolean}
	case reflect.Int8:
		return LogicalType{ID: TypeIDTinyInt}
	case reflect.Int16:
		return LogicalType{ID: TypeIDSmallInt}
	case reflect.Int32:
		return LogicalType{ID: TypeIDInteger}
	case reflect.Int, reflect.Int64:
		return LogicalType{ID: TypeIDBigInt}
	case reflect.Uint8:
		return LogicalType{ID: TypeIDUTinyInt}
	case reflect.Uint16:
		return LogicalType{ID: TypeIDUSmallInt}
	case reflect.Uint32:
		return LogicalType{ID: TypeIDUInteger}
	case reflect.Uint, reflect.Uint64:
		return LogicalType{ID: TypeIDUBigInt}
	case reflect.Float32:
		return LogicalType{ID: TypeIDFloat}
	case reflect.Float64:
		return LogicalType{ID: TypeIDDouble}
	case reflect.String:
		return LogicalType{ID: TypeIDVarchar}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return LogicalType{ID: TypeIDBlob}
		}
		return LogicalType{ID: TypeIDList}
	case reflect.Array:
		return LogicalType{ID: TypeIDList}
	case reflect.Struct:
		return LogicalType{ID: TypeIDStruct}
	}
	return LogicalType{ID: TypeIDAny}
}

// canonical converts a non-pointer reflect value to its canonical Data form.
func canonical(rv reflect.Value) (any, bool) {
	switch rv.Type() {
	case timeType:
		return rv.Interface().(time.Time), true
	case durationType:
		return time.Duration(rv.Int()), true
	case uuidType:
		return rv.Interface().(uuid.UUID), true
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), true
		}
	}
	return nil, false
}

// IsNumeric returns true if the type is a numeric type.
func (t LogicalTypeID) IsNumeric() bool {
	return t.IsInteger() || t == TypeIDFloat || t == TypeIDDouble
}

// IsInteger returns true if the type is an integer type.
func (t LogicalTypeID) IsInteger() bool {
	return t.IsSigned() || t.IsUnsigned()
}

// IsSigned returns true if the type is a signed integer type.
func (t LogicalTypeID) IsSigned() bool {
	switch t {
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt:
		return true
	}
	return false
}

// IsUnsigned returns true if the type is an unsigned integer type.
func (t LogicalTypeID) IsUnsigned() bool {
	switch t {
	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt:
		return true
	}
	return false
}

// IsTemporal returns true if the type is a date/time type.
func (t LogicalTypeID) IsTemporal() bool {
	switch t {
	case TypeIDDate, TypeIDTimestamp, TypeIDTimestampTZ, TypeIDInterval:
		return true
	}
	return false
}

// IsString returns true if the type is a string type.
func (t LogicalTypeID) IsString() bool {
	return t == TypeIDVarchar || t == TypeIDBlob
}

// IsOrdered returns true if values of the type support <, <=, > and >=.
func (t LogicalTypeID) IsOrdered() bool {
	return t.IsNumeric() || t.IsTemporal() || t.IsString() || t == TypeIDUUID
}
