package filter

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Descriptor declares one comparison: which property, which operator,
// and the literal to compare against.
//
// Descriptors load from configuration:
//
//	- property: Age
//	  operator: gte
//	  value: 18
//	- property: Score
//	  operator: "<"
//	  value: 100
type Descriptor struct {
	Property string   `json:"property" yaml:"property" validate:"required"`
	Operator Operator `json:"operator" yaml:"operator" validate:"required"`
	Value    any      `json:"value" yaml:"value"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the descriptor names a property and a defined operator.
// The value is not checked; compatibility with the property type is the
// caller's responsibility.
func (d Descriptor) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid filter descriptor: %w", err)
	}
	if !d.Operator.Valid() {
		return fmt.Errorf("invalid filter descriptor: %w: %d", ErrInvalidOperator, uint8(d.Operator))
	}
	return nil
}

// ParseDescriptors parses a YAML sequence of descriptors and validates each.
func ParseDescriptors(data []byte) ([]Descriptor, error) {
	var descriptors []Descriptor
	if err := yaml.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("filter: invalid descriptor YAML: %w", err)
	}

	for i, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("filter: descriptor %d: %w", i, err)
		}
	}

	return descriptors, nil
}
