package filter

// BuildComparison builds the predicate "target.property OP value".
//
// The property is resolved by name against the target schema; a resolution
// failure is returned unchanged before any comparison is built. Optional
// properties are always unwrapped to their payload. The literal is wrapped
// as a constant without checking it against the property type.
//
// The result is a *ComparisonExpression typed BOOLEAN. For an operator
// outside the six comparisons the result is an *EmptyExpression; converting
// an arbitrary integer to Operator is the only way to get there.
//
// BuildComparison keeps no state and is safe for concurrent use.
func BuildComparison(target *TargetExpression, property Property, op Operator, value any) (Expression, error) {
	resolved, err := resolve(target, property.Name)
	if err != nil {
		return nil, err
	}

	var left Expression = &PropertyExpression{
		BaseExpression: BaseExpression{
			ExprClass: ClassBoundProperty,
			ExprType:  TypePropertyAccess,
		},
		Target:   target,
		Property: resolved,
	}

	if resolved.Optional {
		left = &UnwrapExpression{
			BaseExpression: BaseExpression{
				ExprClass: ClassBoundUnwrap,
				ExprType:  TypeUnwrapValue,
			},
			Child:      left,
			ReturnType: resolved.Type,
		}
	}

	right := &ConstantExpression{
		BaseExpression: BaseExpression{
			ExprClass: ClassBoundConstant,
			ExprType:  TypeValueConstant,
		},
		Value: NewValue(value),
	}

	switch op {
	case Equal, NotEqual, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		return &ComparisonExpression{
			BaseExpression: BaseExpression{
				ExprClass: ClassBoundComparison,
				ExprType:  op.ExpressionType(),
			},
			Left:       left,
			Right:      right,
			ReturnType: Boolean,
		}, nil
	}

	// Unreachable for the declared operators.
	return newEmptyExpression(), nil
}

// BuildDescriptor builds the comparison described by d against target.
// d.Property is resolved through the target schema.
func BuildDescriptor(target *TargetExpression, d Descriptor) (Expression, error) {
	property, err := resolve(target, d.Property)
	if err != nil {
		return nil, err
	}
	return BuildComparison(target, property, d.Operator, d.Value)
}

func resolve(target *TargetExpression, name string) (Property, error) {
	if target == nil || target.Schema == nil {
		return Property{}, &PropertyResolutionError{Name: name}
	}
	return target.Schema.Property(name)
}
