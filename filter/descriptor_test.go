package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDescriptors(t *testing.T) {
	data := []byte(`
- property: Age
  operator: gte
  value: 18
- property: Score
  operator: "<"
  value: 99.5
- property: Name
  operator: "!="
  value: bob
`)

	descriptors, err := ParseDescriptors(data)
	if err != nil {
		t.Fatalf("ParseDescriptors failed: %v", err)
	}
	want := []Descriptor{
		{Property: "Age", Operator: GreaterThanOrEqual, Value: 18},
		{Property: "Score", Operator: LessThan, Value: 99.5},
		{Property: "Name", Operator: NotEqual, Value: "bob"},
	}
	if diff := cmp.Diff(want, descriptors); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}

	target := personTarget()
	p := person{Name: "ann", Age: 20, Score: float(50)}
	for _, d := range descriptors {
		expr, err := BuildDescriptor(target, d)
		if err != nil {
			t.Fatalf("BuildDescriptor failed: %v", err)
		}
		if !mustEval(t, expr, p) {
			t.Errorf("%s: expected true for %+v", Format(expr), p)
		}
	}
}

func TestParseDescriptorsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		message string
	}{
		{
			name:    "unknown operator",
			yaml:    "- property: Age\n  operator: like\n  value: 1\n",
			wantErr: ErrInvalidOperator,
		},
		{
			name:    "missing property",
			yaml:    "- operator: eq\n  value: 1\n",
			message: "Property",
		},
		{
			name:    "missing operator",
			yaml:    "- property: Age\n  value: 1\n",
			message: "Operator",
		},
		{
			name:    "not a list",
			yaml:    "property: Age\n",
			message: "invalid descriptor YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptors([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected %q in error, got %v", tt.message, err)
			}
		})
	}
}

func TestDescriptorValidate(t *testing.T) {
	if err := (Descriptor{Property: "Age", Operator: Equal}).Validate(); err != nil {
		t.Errorf("expected valid descriptor, got %v", err)
	}
	err := Descriptor{Property: "Age", Operator: Operator(9)}.Validate()
	if !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("expected ErrInvalidOperator, got %v", err)
	}
}
