package msgpack

import (
	"testing"
)

type node struct {
	Class string `json:"expression_class"`
	Alias string `json:"alias,omitempty"`
	Value any    `json:"value"`
	Child *node  `json:"child,omitempty"`
}

func TestEncodeDecodeUsesJSONTags(t *testing.T) {
	in := node{Class: "BOUND_CONSTANT", Value: int64(0), Child: &node{Class: "EMPTY"}}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var fields map[string]any
	if err := Decode(data, &fields); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := fields["expression_class"]; !ok {
		t.Errorf("expected json tag key, got %v", fields)
	}
	if _, ok := fields["alias"]; ok {
		t.Error("expected omitempty field to be dropped")
	}
	if v, ok := fields["value"]; !ok || v != int64(0) {
		t.Errorf("expected zero value to be kept as int64, got %#v", v)
	}

	var out node
	if err := Decode(data, &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out.Class != in.Class || out.Child == nil || out.Child.Class != "EMPTY" {
		t.Errorf("unexpected decoded node: %+v", out)
	}
}

func TestDecodeEmpty(t *testing.T) {
	var out node
	if err := Decode(nil, &out); err == nil {
		t.Error("expected error for empty data")
	}
}
