// Package evaluator applies a condition tree directly to in-memory records.
// It is the reference consumer of the tree's inspection surface: adapters
// that translate into a native query language live elsewhere, this one just
// answers whether a record matches.
package evaluator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quercus/pkg/apperror"
	"quercus/pkg/condition"
	"quercus/pkg/logger"
)

// Evaluator matches condition trees against map records.
// The zero value is usable; New exists for option wiring.
type Evaluator struct {
	log *logger.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger enables debug tracing of per-comparison outcomes.
func WithLogger(l *logger.Logger) Option {
	return func(e *Evaluator) { e.log = l }
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Matches is a convenience wrapper over a default Evaluator.
func Matches(c condition.Condition, record map[string]any) (bool, error) {
	return (&Evaluator{}).Matches(c, record)
}

// Matches reports whether record satisfies the condition tree.
// A field missing from the record makes its comparison false, not an error;
// incomparable ordering operands fail with TYPE_MISMATCH.
func (e *Evaluator) Matches(c condition.Condition, record map[string]any) (bool, error) {
	if c == nil {
		return false, apperror.NewNullArgument("condition")
	}

	switch node := c.(type) {
	case condition.Comparison:
		return e.matchComparison(node, record)
	case condition.Combinator:
		return e.matchCombinator(node, record)
	}
	return false, apperror.NewInvalidArgument(fmt.Sprintf("unknown condition node %T", c))
}

func (e *Evaluator) matchCombinator(c condition.Combinator, record map[string]any) (bool, error) {
	operands := c.Operands()

	switch c.Connective() {
	case condition.ConnAnd:
		for _, operand := range operands {
			ok, err := e.Matches(operand, record)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case condition.ConnOr:
		for _, operand := range operands {
			ok, err := e.Matches(operand, record)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case condition.ConnNot:
		ok, err := e.Matches(operands[0], record)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
	return false, apperror.NewInvalidArgument(fmt.Sprintf("unknown connective %q", c.Connective()))
}

func (e *Evaluator) matchComparison(c condition.Comparison, record map[string]any) (bool, error) {
	field := c.Field()
	actual, present := record[field.Name()]
	if !present {
		// Absence matches nothing, including negated comparisons' operands.
		e.trace(c, false, "field absent")
		return false, nil
	}

	matched, err := e.applyOperator(c, actual)
	if err != nil {
		return false, err
	}
	e.trace(c, matched, "")
	return matched, nil
}

func (e *Evaluator) applyOperator(c condition.Comparison, actual any) (bool, error) {
	field := c.Field()
	want := field.Value()

	switch c.Operator() {
	case condition.OpEqual:
		return equal(actual, want.Raw()), nil

	case condition.OpGreaterThan:
		cmp, err := compare(actual, want.Raw())
		return cmp > 0, err
	case condition.OpGreaterOrEqual:
		cmp, err := compare(actual, want.Raw())
		return cmp >= 0, err
	case condition.OpLesserThan:
		cmp, err := compare(actual, want.Raw())
		return cmp < 0, err
	case condition.OpLesserOrEqual:
		cmp, err := compare(actual, want.Raw())
		return cmp <= 0, err

	case condition.OpLike:
		pattern, err := want.Text()
		if err != nil {
			return false, apperror.NewTypeMismatch("string pattern", want.Raw())
		}
		text, ok := textOf(actual)
		if !ok {
			// Non-text record values never match a pattern.
			return false, nil
		}
		return likeMatch(pattern, text)

	case condition.OpIn:
		items, err := want.Items()
		if err != nil {
			return false, err
		}
		for _, item := range items {
			if equal(actual, item.Raw()) {
				return true, nil
			}
		}
		return false, nil

	case condition.OpBetween:
		items, err := want.Items()
		if err != nil {
			return false, err
		}
		lower, err := compare(actual, items[0].Raw())
		if err != nil {
			return false, err
		}
		upper, err := compare(actual, items[1].Raw())
		if err != nil {
			return false, err
		}
		return lower >= 0 && upper <= 0, nil
	}
	return false, apperror.NewInvalidArgument(fmt.Sprintf("unknown operator %q", c.Operator()))
}

func (e *Evaluator) trace(c condition.Comparison, matched bool, note string) {
	if e.log == nil {
		return
	}
	kv := []any{"field", c.Field().Name(), "op", c.Operator(), "matched", matched}
	if note != "" {
		kv = append(kv, "note", note)
	}
	e.log.Debugw("comparison evaluated", kv...)
}

// --- Value comparison ---

// equal tests equality with numeric, time and uuid normalization.
// Incompatible types are unequal, never an error.
func equal(a, b any) bool {
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Equal(db)
		}
		return false
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
		return false
	}
	if ua, ok := toUUID(a); ok {
		if ub, ok := toUUID(b); ok {
			return ua == ub
		}
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two values: numerics through decimal normalization, strings
// lexicographically, times chronologically. Anything else is incomparable.
func compare(a, b any) (int, error) {
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Cmp(db), nil
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb), nil
		}
	}
	return 0, apperror.NewTypeMismatch(fmt.Sprintf("value comparable with %T", a), b)
}

// toDecimal normalizes numeric kinds. Strings stay strings: "10" orders
// lexicographically, not numerically, matching the construction-time type.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case float32:
		return decimal.NewFromFloat32(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromUint64(rv.Uint()), true
	}
	return decimal.Zero, false
}

func toUUID(v any) (uuid.UUID, bool) {
	switch t := v.(type) {
	case uuid.UUID:
		return t, true
	case string:
		id, err := uuid.Parse(t)
		return id, err == nil
	}
	return uuid.Nil, false
}

func textOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

// likeMatch applies SQL LIKE semantics, case-insensitive (the translation
// target for text matching is ILIKE): % matches any run, _ one character.
func likeMatch(pattern, text string) (bool, error) {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, "%", ".*")
	quoted = strings.ReplaceAll(quoted, "_", ".")
	re, err := regexp.Compile("(?is)^" + quoted + "$")
	if err != nil {
		return false, apperror.NewInvalidArgument("invalid like pattern").
			WithDetail("pattern", pattern).WithCause(err)
	}
	return re.MatchString(text), nil
}
