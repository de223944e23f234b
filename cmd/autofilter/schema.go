package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/extensions"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hugr-lab/autofilter-go/arrowfilter"
	"github.com/hugr-lab/autofilter-go/filter"
)

// schemaFile declares the columns filters may reference.
//
//	name: people
//	columns:
//	  - name: age
//	    type: INTEGER
//	  - name: score
//	    type: DOUBLE
//	    nullable: true
type schemaFile struct {
	Name    string   `yaml:"name"`
	Columns []column `yaml:"columns" validate:"required,min=1,dive"`
}

type column struct {
	Name     string `yaml:"name" validate:"required"`
	Type     string `yaml:"type" validate:"required"`
	Nullable bool   `yaml:"nullable"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var columnTypes = map[filter.LogicalTypeID]arrow.DataType{
	filter.TypeIDBoolean:     arrow.FixedWidthTypes.Boolean,
	filter.TypeIDTinyInt:     arrow.PrimitiveTypes.Int8,
	filter.TypeIDSmallInt:    arrow.PrimitiveTypes.Int16,
	filter.TypeIDInteger:     arrow.PrimitiveTypes.Int32,
	filter.TypeIDBigInt:      arrow.PrimitiveTypes.Int64,
	filter.TypeIDUTinyInt:    arrow.PrimitiveTypes.Uint8,
	filter.TypeIDUSmallInt:   arrow.PrimitiveTypes.Uint16,
	filter.TypeIDUInteger:    arrow.PrimitiveTypes.Uint32,
	filter.TypeIDUBigInt:     arrow.PrimitiveTypes.Uint64,
	filter.TypeIDFloat:       arrow.PrimitiveTypes.Float32,
	filter.TypeIDDouble:      arrow.PrimitiveTypes.Float64,
	filter.TypeIDVarchar:     arrow.BinaryTypes.String,
	filter.TypeIDBlob:        arrow.BinaryTypes.Binary,
	filter.TypeIDDate:        arrow.FixedWidthTypes.Date32,
	filter.TypeIDTimestamp:   &arrow.TimestampType{Unit: arrow.Microsecond},
	filter.TypeIDTimestampTZ: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"},
	filter.TypeIDInterval:    arrow.FixedWidthTypes.Duration_us,
	filter.TypeIDUUID:        extensions.NewUUIDType(),
}

// parseSchema builds a filter schema from a YAML column list.
// Column types use DuckDB type names and their aliases, in any case.
func parseSchema(data []byte) (*arrowfilter.Schema, error) {
	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("invalid schema YAML: %w", err)
	}
	if err := validate.Struct(sf); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	fields := make([]arrow.Field, 0, len(sf.Columns))
	for _, c := range sf.Columns {
		dt, ok := columnTypes[filter.LogicalTypeID(strings.ToUpper(c.Type)).Normalize()]
		if !ok {
			return nil, fmt.Errorf("column %s: unsupported type %q", c.Name, c.Type)
		}
		fields = append(fields, arrow.Field{Name: c.Name, Type: dt, Nullable: c.Nullable})
	}

	return arrowfilter.NewSchema(sf.Name, arrow.NewSchema(fields, nil)), nil
}

func readSchema(path string) (*arrowfilter.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSchema(data)
}

func readDescriptors(path string) ([]filter.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return filter.ParseDescriptors(data)
}
