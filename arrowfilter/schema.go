package arrowfilter

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/extensions"

	"github.com/hugr-lab/autofilter-go/filter"
)

// Schema resolves filter properties against the fields of an Arrow schema.
// Nullable fields are optional properties.
type Schema struct {
	name   string
	schema *arrow.Schema
}

// NewSchema returns a filter schema over s. name identifies the record type
// in resolution errors and may be empty.
func NewSchema(name string, s *arrow.Schema) *Schema {
	return &Schema{name: name, schema: s}
}

// Name returns the record type name.
func (s *Schema) Name() string {
	return s.name
}

// Arrow returns the underlying Arrow schema.
func (s *Schema) Arrow() *arrow.Schema {
	return s.schema
}

// Property resolves name to the first field with that name, falling back to
// a case-insensitive match.
func (s *Schema) Property(name string) (filter.Property, error) {
	idx := fieldIndex(s.schema, name)
	if idx < 0 {
		return filter.Property{}, &filter.PropertyResolutionError{Target: s.name, Name: name}
	}

	field := s.schema.Field(idx)
	return filter.Property{
		Name:     field.Name,
		Type:     LogicalType(field.Type),
		Optional: field.Nullable,
		Index:    []int{idx},
	}, nil
}

func fieldIndex(s *arrow.Schema, name string) int {
	if s == nil {
		return -1
	}
	if indices := s.FieldIndices(name); len(indices) > 0 {
		return indices[0]
	}
	for i := 0; i < s.NumFields(); i++ {
		if strings.EqualFold(s.Field(i).Name, name) {
			return i
		}
	}
	return -1
}

// LogicalType maps an Arrow data type to the filter logical type.
func LogicalType(dt arrow.DataType) filter.LogicalType {
	if _, ok := dt.(*extensions.UUIDType); ok {
		return filter.LogicalType{ID: filter.TypeIDUUID}
	}

	switch dt.ID() {
	case arrow.BOOL:
		return filter.LogicalType{ID: filter.TypeIDBoolean}
	case arrow.INT8:
		return filter.LogicalType{ID: filter.TypeIDTinyInt}
	case arrow.INT16:
		return filter.LogicalType{ID: filter.TypeIDSmallInt}
	case arrow.INT32:
		return filter.LogicalType{ID: filter.TypeIDInteger}
	case arrow.INT64:
		return filter.LogicalType{ID: filter.TypeIDBigInt}
	case arrow.UINT8:
		return filter.LogicalType{ID: filter.TypeIDUTinyInt}
	case arrow.UINT16:
		return filter.LogicalType{ID: filter.TypeIDUSmallInt}
	case arrow.UINT32:
		return filter.LogicalType{ID: filter.TypeIDUInteger}
	case arrow.UINT64:
		return filter.LogicalType{ID: filter.TypeIDUBigInt}
	case arrow.FLOAT32:
		return filter.LogicalType{ID: filter.TypeIDFloat}
	case arrow.FLOAT64:
		return filter.LogicalType{ID: filter.TypeIDDouble}
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return filter.LogicalType{ID: filter.TypeIDVarchar}
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.BINARY_VIEW, arrow.FIXED_SIZE_BINARY:
		return filter.LogicalType{ID: filter.TypeIDBlob}
	case arrow.DATE32, arrow.DATE64:
		return filter.LogicalType{ID: filter.TypeIDDate}
	case arrow.TIMESTAMP:
		if ts, ok := dt.(*arrow.TimestampType); ok && ts.TimeZone != "" {
			return filter.LogicalType{ID: filter.TypeIDTimestampTZ}
		}
		return filter.LogicalType{ID: filter.TypeIDTimestamp}
	case arrow.DURATION:
		return filter.LogicalType{ID: filter.TypeIDInterval}
	case arrow.STRUCT:
		return filter.LogicalType{ID: filter.TypeIDStruct}
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		return filter.LogicalType{ID: filter.TypeIDList}
	}
	return filter.LogicalType{ID: filter.TypeIDAny}
}
