package filter

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Parse decodes a predicate from its JSON form.
//
// Decoded property references carry the property descriptor but no target
// schema; they are evaluated by property name. Unknown expression classes
// decode to *UnsupportedExpression so encoders can skip them.
//
// Example JSON for `x.age >= 18`:
//
//	{
//	  "expression_class": "BOUND_COMPARISON",
//	  "type": "COMPARE_GREATERTHANOREQUALTO",
//	  "left": {
//	    "expression_class": "BOUND_PROPERTY", "type": "PROPERTY_ACCESS",
//	    "target": "x", "property": {"name": "age", "type": {"id": "BIGINT"}}
//	  },
//	  "right": {
//	    "expression_class": "BOUND_CONSTANT", "type": "VALUE_CONSTANT",
//	    "value": {"type": {"id": "BIGINT"}, "is_null": false, "value": 18}
//	  },
//	  "return_type": {"id": "BOOLEAN"}
//	}
func Parse(data []byte) (Expression, error) {
	if len(data) == 0 {
		return nil, errors.New("filter: empty predicate")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw rawNode
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("filter: invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("filter: invalid JSON: unexpected data after predicate")
	}

	expr, err := parseNode(&raw)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return expr, nil
}

// Marshal encodes a predicate to its JSON form.
func Marshal(expr Expression) ([]byte, error) {
	raw, err := toRawNode(expr)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return json.Marshal(raw)
}

// rawNode is the serialized form shared by the JSON and MessagePack codecs.
type rawNode struct {
	ExpressionClass string       `json:"expression_class"`
	Type            string       `json:"type"`
	Alias           string       `json:"alias,omitempty"`
	Left            *rawNode     `json:"left,omitempty"`
	Right           *rawNode     `json:"right,omitempty"`
	Child           *rawNode     `json:"child,omitempty"`
	Target          string       `json:"target,omitempty"`
	Property        *rawProperty `json:"property,omitempty"`
	Value           *rawValue    `json:"value,omitempty"`
	ReturnType      *LogicalType `json:"return_type,omitempty"`
}

type rawProperty struct {
	Name     string      `json:"name"`
	Type     LogicalType `json:"type"`
	Optional bool        `json:"optional,omitempty"`
}

type rawValue struct {
	Type   LogicalType `json:"type"`
	IsNull bool        `json:"is_null"`
	Value  any         `json:"value"`
}

func base(raw *rawNode) BaseExpression {
	return BaseExpression{
		ExprClass: ExpressionClass(raw.ExpressionClass),
		ExprType:  ExpressionType(raw.Type),
		ExprAlias: raw.Alias,
	}
}

// parseNode converts a decoded node to an expression.
func parseNode(raw *rawNode) (Expression, error) {
	if raw == nil {
		return nil, errors.New("missing expression")
	}

	switch ExpressionClass(raw.ExpressionClass) {
	case ClassBoundComparison:
		if _, ok := operatorForType(ExpressionType(raw.Type)); !ok {
			return nil, fmt.Errorf("%w: comparison type %q", ErrInvalidOperator, raw.Type)
		}
		left, err := parseNode(raw.Left)
		if err != nil {
			return nil, fmt.Errorf("invalid left operand: %w", err)
		}
		right, err := parseNode(raw.Right)
		if err != nil {
			return nil, fmt.Errorf("invalid right operand: %w", err)
		}
		return &ComparisonExpression{
			BaseExpression: base(raw),
			Left:           left,
			Right:          right,
			ReturnType:     Boolean,
		}, nil

	case ClassBoundProperty:
		if raw.Property == nil || raw.Property.Name == "" {
			return nil, errors.New("property expression without property name")
		}
		return &PropertyExpression{
			BaseExpression: base(raw),
			Target: &TargetExpression{
				BaseExpression: BaseExpression{
					ExprClass: ClassBoundParameter,
					ExprType:  TypeValueParameter,
				},
				Name: raw.Target,
			},
			Property: Property{
				Name:     raw.Property.Name,
				Type:     LogicalType{ID: raw.Property.Type.ID.Normalize()},
				Optional: raw.Property.Optional,
			},
		}, nil

	case ClassBoundUnwrap:
		child, err := parseNode(raw.Child)
		if err != nil {
			return nil, fmt.Errorf("invalid child: %w", err)
		}
		var rt LogicalType
		if raw.ReturnType != nil {
			rt = LogicalType{ID: raw.ReturnType.ID.Normalize()}
		}
		return &UnwrapExpression{
			BaseExpression: base(raw),
			Child:          child,
			ReturnType:     rt,
		}, nil

	case ClassBoundConstant:
		value, err := parseValue(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		return &ConstantExpression{
			BaseExpression: base(raw),
			Value:          value,
		}, nil

	case ClassEmpty:
		return newEmptyExpression(), nil

	default:
		// Return an unsupported expression that can be identified during encoding
		return &UnsupportedExpression{BaseExpression: base(raw)}, nil
	}
}

// toRawNode converts an expression to its serialized form.
func toRawNode(expr Expression) (*rawNode, error) {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		left, err := toRawNode(ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := toRawNode(ex.Right)
		if err != nil {
			return nil, err
		}
		return &rawNode{
			ExpressionClass: string(ex.Class()),
			Type:            string(ex.Type()),
			Alias:           ex.Alias(),
			Left:            left,
			Right:           right,
			ReturnType:      &Boolean,
		}, nil

	case *PropertyExpression:
		var target string
		if ex.Target != nil {
			target = ex.Target.Name
		}
		return &rawNode{
			ExpressionClass: string(ex.Class()),
			Type:            string(ex.Type()),
			Alias:           ex.Alias(),
			Target:          target,
			Property: &rawProperty{
				Name:     ex.Property.Name,
				Type:     ex.Property.Type,
				Optional: ex.Property.Optional,
			},
		}, nil

	case *UnwrapExpression:
		child, err := toRawNode(ex.Child)
		if err != nil {
			return nil, err
		}
		rt := ex.ReturnType
		return &rawNode{
			ExpressionClass: string(ex.Class()),
			Type:            string(ex.Type()),
			Alias:           ex.Alias(),
			Child:           child,
			ReturnType:      &rt,
		}, nil

	case *ConstantExpression:
		data, err := wireData(ex.Value)
		if err != nil {
			return nil, err
		}
		return &rawNode{
			ExpressionClass: string(ex.Class()),
			Type:            string(ex.Type()),
			Alias:           ex.Alias(),
			Value: &rawValue{
				Type:   ex.Value.Type,
				IsNull: ex.Value.IsNull,
				Value:  data,
			},
		}, nil

	case *EmptyExpression:
		return &rawNode{
			ExpressionClass: string(ClassEmpty),
			Type:            string(TypeEmpty),
		}, nil

	case nil:
		return nil, errors.New("nil expression")

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, expr.Class())
	}
}

// wireData converts canonical value data to its serialized form:
// times as RFC 3339 strings, durations as nanoseconds, UUIDs as strings
// and blobs as base64.
func wireData(v Value) (any, error) {
	if v.IsNull {
		return nil, nil
	}
	switch d := v.Data.(type) {
	case time.Time:
		return d.Format(time.RFC3339Nano), nil
	case time.Duration:
		return int64(d), nil
	case uuid.UUID:
		return d.String(), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(d), nil
	case bool, int64, uint64, string:
		return d, nil
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			// JSON has no literal for these.
			return strconv.FormatFloat(d, 'g', -1, 64), nil
		}
		return d, nil
	default:
		return nil, fmt.Errorf("value of type %T cannot be serialized", v.Data)
	}
}

// parseValue converts a serialized value back to its canonical form.
func parseValue(raw *rawValue) (Value, error) {
	if raw == nil || raw.IsNull || raw.Value == nil {
		lt := LogicalType{ID: TypeIDSQLNull}
		if raw != nil && raw.Type.ID != "" {
			lt = LogicalType{ID: raw.Type.ID.Normalize()}
		}
		return Value{Type: lt, IsNull: true}, nil
	}

	lt := LogicalType{ID: raw.Type.ID.Normalize()}
	data, err := parseValueData(raw.Value, lt)
	if err != nil {
		return Value{}, fmt.Errorf("invalid %s value: %w", lt.ID, err)
	}
	return Value{Type: lt, Data: data}, nil
}

// parseValueData parses the actual value data based on the logical type.
func parseValueData(data any, lt LogicalType) (any, error) {
	switch {
	case lt.ID == TypeIDBoolean:
		if b, ok := data.(bool); ok {
			return b, nil
		}
	case lt.ID.IsSigned():
		return toInt64(data)
	case lt.ID.IsUnsigned():
		return toUint64(data)
	case lt.ID == TypeIDFloat, lt.ID == TypeIDDouble:
		return toFloat64(data)
	case lt.ID == TypeIDVarchar:
		if s, ok := data.(string); ok {
			return s, nil
		}
	case lt.ID == TypeIDBlob:
		switch v := data.(type) {
		case string:
			return base64.StdEncoding.DecodeString(v)
		case []byte:
			return v, nil
		}
	case lt.ID == TypeIDDate, lt.ID == TypeIDTimestamp, lt.ID == TypeIDTimestampTZ:
		switch v := data.(type) {
		case string:
			return time.Parse(time.RFC3339Nano, v)
		case time.Time:
			return v, nil
		}
	case lt.ID == TypeIDInterval:
		n, err := toInt64(data)
		if err != nil {
			return nil, err
		}
		return time.Duration(n), nil
	case lt.ID == TypeIDUUID:
		if s, ok := data.(string); ok {
			return uuid.Parse(s)
		}
	default:
		// For unknown types keep the decoded value, with numbers narrowed.
		if n, ok := data.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			return n.Float64()
		}
		return data, nil
	}
	return nil, fmt.Errorf("unexpected %T", data)
}

func toInt64(data any) (int64, error) {
	switch v := data.(type) {
	case json.Number:
		return strconv.ParseInt(string(v), 10, 64)
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", v)
		}
		return int64(v), nil
	case float64:
		return int64(v), nil
	}
	return 0, fmt.Errorf("unexpected %T", data)
}

func toUint64(data any) (uint64, error) {
	switch v := data.(type) {
	case json.Number:
		return strconv.ParseUint(string(v), 10, 64)
	case uint64:
		return v, nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%d is negative", v)
		}
		return uint64(v), nil
	case float64:
		return uint64(v), nil
	}
	return 0, fmt.Errorf("unexpected %T", data)
}

func toFloat64(data any) (float64, error) {
	switch v := data.(type) {
	case json.Number:
		return v.Float64()
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return 0, fmt.Errorf("unexpected %T", data)
}
