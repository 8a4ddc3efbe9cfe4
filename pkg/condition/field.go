package condition

import (
	"strings"

	"quercus/pkg/apperror"
	"quercus/pkg/value"
)

// Field is an immutable name/value pair - the unit a comparison is built from.
// The name is whatever the mapping layer extracted (column, document key);
// this package never checks it against a real schema.
type Field struct {
	name  string
	value value.Value
}

// NewField creates a Field. The name must be non-empty and the value must not
// be nil: absence is expressed by omitting the pair, never by a nil value.
func NewField(name string, v any) (Field, error) {
	if strings.TrimSpace(name) == "" {
		return Field{}, apperror.NewNullArgument("field name")
	}
	if v == nil {
		return Field{}, apperror.NewInvalidArgument("field value must not be nil; omit the pair to express absence").
			WithDetail("field", name)
	}
	return Field{name: name, value: value.New(v)}, nil
}

// MustField is like NewField but panics on error.
// Use only for constants and tests.
func MustField(name string, v any) Field {
	f, err := NewField(name, v)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field name.
func (f Field) Name() string {
	return f.name
}

// Value returns the wrapped field value.
func (f Field) Value() value.Value {
	return f.value
}

// IsZero reports whether the field was never constructed through NewField.
func (f Field) IsZero() bool {
	return f.name == ""
}
