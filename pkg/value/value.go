// Package value provides an immutable wrapper over caller-supplied values
// with typed conversion getters. Comparisons carry their values through this
// wrapper so adapters can read them in the representation they need without
// re-implementing the conversions.
package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quercus/pkg/apperror"
)

// Value wraps an arbitrary value. The zero Value wraps nil.
// Values are immutable; all getters are read-only conversions.
type Value struct {
	raw any
}

// New wraps v. The wrapper keeps the value as-is; conversion happens
// lazily in the getters.
func New(v any) Value {
	return Value{raw: v}
}

// Raw returns the wrapped value unchanged.
func (v Value) Raw() any {
	return v.raw
}

// IsNil reports whether the wrapped value is absent.
func (v Value) IsNil() bool {
	return v.raw == nil
}

// Text converts the value to a string.
// Accepts string, []byte and fmt.Stringer.
func (v Value) Text() (string, error) {
	switch t := v.raw.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	return "", apperror.NewTypeMismatch("string", v.raw)
}

// Int converts the value to an int64.
func (v Value) Int() (int64, error) {
	switch t := v.raw.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case float32:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case decimal.Decimal:
		return t.IntPart(), nil
	case json.Number:
		return t.Int64()
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, apperror.NewTypeMismatch("int64", v.raw).WithCause(err)
		}
		return n, nil
	}
	return 0, apperror.NewTypeMismatch("int64", v.raw)
}

// Float converts the value to a float64.
func (v Value) Float() (float64, error) {
	d, err := v.Decimal()
	if err != nil {
		return 0, apperror.NewTypeMismatch("float64", v.raw)
	}
	f, _ := d.Float64()
	return f, nil
}

// Bool converts the value to a bool. Accepts bool and strconv-parsable strings.
func (v Value) Bool() (bool, error) {
	switch t := v.raw.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return false, apperror.NewTypeMismatch("bool", v.raw).WithCause(err)
		}
		return b, nil
	}
	return false, apperror.NewTypeMismatch("bool", v.raw)
}

// Decimal converts the value to a decimal.Decimal with full precision.
// Accepts integers, floats, numeric strings, json.Number and decimal.Decimal.
// Preferred over Float for monetary and quantity values.
func (v Value) Decimal() (decimal.Decimal, error) {
	switch t := v.raw.(type) {
	case decimal.Decimal:
		return t, nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, apperror.NewTypeMismatch("decimal", v.raw).WithCause(err)
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, apperror.NewTypeMismatch("decimal", v.raw).WithCause(err)
		}
		return d, nil
	}

	rv := reflect.ValueOf(v.raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromUint64(rv.Uint()), nil
	}
	return decimal.Zero, apperror.NewTypeMismatch("decimal", v.raw)
}

// Time converts the value to a time.Time.
// Accepts time.Time and RFC 3339 strings.
func (v Value) Time() (time.Time, error) {
	switch t := v.raw.(type) {
	case time.Time:
		return t, nil
	case string:
		ts, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, apperror.NewTypeMismatch("time", v.raw).WithCause(err)
		}
		return ts, nil
	}
	return time.Time{}, apperror.NewTypeMismatch("time", v.raw)
}

// UUID converts the value to a uuid.UUID.
// Accepts uuid.UUID, canonical strings and raw 16-byte arrays.
func (v Value) UUID() (uuid.UUID, error) {
	switch t := v.raw.(type) {
	case uuid.UUID:
		return t, nil
	case [16]byte:
		return uuid.UUID(t), nil
	case string:
		id, err := uuid.Parse(t)
		if err != nil {
			return uuid.Nil, apperror.NewTypeMismatch("uuid", v.raw).WithCause(err)
		}
		return id, nil
	}
	return uuid.Nil, apperror.NewTypeMismatch("uuid", v.raw)
}

// IsSequence reports whether the wrapped value is an ordered sequence.
// Strings and byte blobs (including [16]byte UUIDs) are scalars here,
// not sequences.
func (v Value) IsSequence() bool {
	if v.raw == nil {
		return false
	}
	t := reflect.TypeOf(v.raw)
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return false
	}
	return t.Elem().Kind() != reflect.Uint8
}

// Items returns the elements of a sequence value, each wrapped as a Value.
// Fails with TYPE_MISMATCH if the value is not a sequence.
func (v Value) Items() ([]Value, error) {
	if !v.IsSequence() {
		return nil, apperror.NewTypeMismatch("sequence", v.raw)
	}
	rv := reflect.ValueOf(v.raw)
	items := make([]Value, rv.Len())
	for i := range items {
		items[i] = New(rv.Index(i).Interface())
	}
	return items, nil
}

// MarshalJSON serializes the wrapped value directly.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}
