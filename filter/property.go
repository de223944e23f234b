package filter

import (
	"reflect"
	"strings"
)

// Property describes a named, typed property on a target type.
type Property struct {
	// Name is the property name as addressed by filters and rendered in SQL.
	Name string `json:"name"`

	// Type is the logical type of the property value.
	// For optional properties this is the type of the payload.
	Type LogicalType `json:"type"`

	// Optional is true if the declared type may hold no value
	// (a pointer to a value type, or a nullable column).
	Optional bool `json:"optional,omitempty"`

	// GoType is the declared Go type for struct-backed properties. Nil otherwise.
	GoType reflect.Type `json:"-"`

	// Index is the field index path for struct-backed properties,
	// or the column index for columnar schemas.
	Index []int `json:"-"`
}

// Schema resolves property names on a target type.
// Implementations return a *PropertyResolutionError for unknown names.
type Schema interface {
	// Name returns the name of the target type, used in error messages.
	Name() string

	// Property resolves name to a property descriptor.
	Property(name string) (Property, error)
}

// StructSchema resolves properties on a Go struct type by reflection.
//
// Exported fields are properties, including fields promoted from embedded
// structs. A `filter:"name"` tag renames a field, `filter:"-"` hides it.
// A pointer to a non-pointer type is an optional property.
type StructSchema struct {
	typ reflect.Type
}

// SchemaOf returns the schema of struct type T.
func SchemaOf[T any]() *StructSchema {
	return NewStructSchema(reflect.TypeOf((*T)(nil)).Elem())
}

// NewStructSchema returns the schema of t, which must be a struct type or a
// pointer to one. It panics otherwise.
func NewStructSchema(t reflect.Type) *StructSchema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic("filter: NewStructSchema of non-struct type " + t.String())
	}
	return &StructSchema{typ: t}
}

// Name returns the struct type name.
func (s *StructSchema) Name() string {
	return s.typ.String()
}

// Type returns the struct type.
func (s *StructSchema) Type() reflect.Type {
	return s.typ
}

// Property resolves name to an exported field.
// An exact match wins; otherwise the first case-insensitive match is used.
func (s *StructSchema) Property(name string) (Property, error) {
	var fold *reflect.StructField
	var foldName string

	for _, f := range reflect.VisibleFields(s.typ) {
		if !f.IsExported() || (f.Anonymous && f.Type.Kind() == reflect.Struct) {
			continue
		}
		fieldName, ok := propertyName(f)
		if !ok {
			continue
		}
		if fieldName == name {
			return structProperty(fieldName, f), nil
		}
		if fold == nil && strings.EqualFold(fieldName, name) {
			fold = &f
			foldName = fieldName
		}
	}

	if fold != nil {
		return structProperty(foldName, *fold), nil
	}
	return Property{}, &PropertyResolutionError{Target: s.Name(), Name: name}
}

// Properties lists all properties of the struct in field order.
func (s *StructSchema) Properties() []Property {
	var props []Property
	for _, f := range reflect.VisibleFields(s.typ) {
		if !f.IsExported() || (f.Anonymous && f.Type.Kind() == reflect.Struct) {
			continue
		}
		if name, ok := propertyName(f); ok {
			props = append(props, structProperty(name, f))
		}
	}
	return props
}

func propertyName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("filter")
	if !ok {
		return f.Name, true
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return "", false
	case "":
		return f.Name, true
	}
	return name, true
}

func structProperty(name string, f reflect.StructField) Property {
	t := f.Type
	optional := t.Kind() == reflect.Pointer && t.Elem().Kind() != reflect.Pointer
	return Property{
		Name:     name,
		Type:     LogicalTypeOf(t),
		Optional: optional,
		GoType:   t,
		Index:    f.Index,
	}
}
