package autofilter

import (
	"errors"
	"testing"

	"github.com/hugr-lab/autofilter-go/filter"
)

type person struct {
	Age   int
	Score *float64
}

func TestWhere(t *testing.T) {
	score := 42.0

	tests := []struct {
		name     string
		property string
		op       filter.Operator
		value    any
		target   person
		want     bool
	}{
		{"age equals", "Age", filter.Equal, 30, person{Age: 30}, true},
		{"adult", "Age", filter.GreaterThanOrEqual, 18, person{Age: 17}, false},
		{"score below", "Score", filter.LessThan, 100, person{Score: &score}, true},
		{"age not zero", "Age", filter.NotEqual, 0, person{Age: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := Where[person](tt.property, tt.op, tt.value)
			if err != nil {
				t.Fatalf("Where failed: %v", err)
			}
			prog, err := filter.Compile(pred, nil)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			got, err := prog.Eval(tt.target)
			if err != nil {
				t.Fatalf("Eval failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("%s: expected %v, got %v", filter.Format(pred), tt.want, got)
			}
		})
	}
}

func TestWhereUnknownProperty(t *testing.T) {
	_, err := Where[person]("Height", filter.Equal, 1)

	var resErr *filter.PropertyResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *filter.PropertyResolutionError, got %v", err)
	}
	if resErr.Name != "Height" {
		t.Errorf("expected Height, got %s", resErr.Name)
	}
}
