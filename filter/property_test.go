package filter

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

type audit struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type account struct {
	audit
	ID       uuid.UUID
	Login    string `filter:"login"`
	Password string `filter:"-"`
	Balance  *int64
	Tags     []string
	Avatar   []byte
	TTL      time.Duration
	Nested   **int
	internal int
}

func TestStructSchemaProperty(t *testing.T) {
	s := SchemaOf[account]()

	tests := []struct {
		name     string
		wantName string
		wantType LogicalTypeID
		optional bool
	}{
		{"ID", "ID", TypeIDUUID, false},
		{"login", "login", TypeIDVarchar, false},
		{"LOGIN", "login", TypeIDVarchar, false},
		{"Balance", "Balance", TypeIDBigInt, true},
		{"Tags", "Tags", TypeIDList, false},
		{"Avatar", "Avatar", TypeIDBlob, false},
		{"TTL", "TTL", TypeIDInterval, false},
		{"CreatedAt", "CreatedAt", TypeIDTimestamp, false},
		{"UpdatedAt", "UpdatedAt", TypeIDTimestamp, true},
		{"Nested", "Nested", TypeIDBigInt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.Property(tt.name)
			if err != nil {
				t.Fatalf("Property failed: %v", err)
			}
			if p.Name != tt.wantName {
				t.Errorf("expected name %s, got %s", tt.wantName, p.Name)
			}
			if p.Type.ID != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, p.Type.ID)
			}
			if p.Optional != tt.optional {
				t.Errorf("expected optional=%v, got %v", tt.optional, p.Optional)
			}
			if len(p.Index) == 0 {
				t.Error("expected field index")
			}
		})
	}
}

func TestStructSchemaHiddenFields(t *testing.T) {
	s := SchemaOf[account]()

	for _, name := range []string{"Password", "internal", "audit"} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Property(name)
			var resErr *PropertyResolutionError
			if !errors.As(err, &resErr) {
				t.Fatalf("expected *PropertyResolutionError, got %v", err)
			}
		})
	}
}

func TestStructSchemaExactMatchWins(t *testing.T) {
	type pair struct {
		Value int `filter:"value"`
		VALUE string
	}
	s := SchemaOf[pair]()

	p, err := s.Property("VALUE")
	if err != nil {
		t.Fatalf("Property failed: %v", err)
	}
	if p.Type.ID != TypeIDVarchar {
		t.Errorf("expected exact match VALUE (VARCHAR), got %s", p.Type.ID)
	}
}

func TestStructSchemaProperties(t *testing.T) {
	props := SchemaOf[person]().Properties()

	var names []string
	for _, p := range props {
		names = append(names, p.Name)
	}
	want := []string{"Name", "Age", "Score"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestStructSchemaName(t *testing.T) {
	if got := SchemaOf[person]().Name(); got != "filter.person" {
		t.Errorf("expected filter.person, got %s", got)
	}
	if got := NewStructSchema(reflect.TypeOf(&person{})).Type(); got != reflect.TypeOf(person{}) {
		t.Errorf("expected pointer to be dereferenced, got %s", got)
	}
}

func TestNewStructSchemaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-struct type")
		}
	}()
	NewStructSchema(reflect.TypeOf(42))
}

func TestPropertyResolutionErrorMessage(t *testing.T) {
	err := &PropertyResolutionError{Target: "filter.person", Name: "Height"}
	if got := err.Error(); got != "property Height not found on filter.person" {
		t.Errorf("unexpected message: %s", got)
	}
	err = &PropertyResolutionError{Name: "Height"}
	if got := err.Error(); got != "property Height not found" {
		t.Errorf("unexpected message: %s", got)
	}
}
