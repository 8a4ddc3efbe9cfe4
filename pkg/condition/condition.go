// Package condition implements the query condition algebra: field
// comparisons combined with AND/OR/NOT into an immutable expression tree.
// The tree is built here and consumed elsewhere - storage adapters translate
// or evaluate it through the inspection surface (Comparison/Combinator
// accessors and Walk), never through this package.
//
// Every constructor and composition operation is a pure function: no node is
// mutated after construction, so trees may be built, shared and traversed
// concurrently without coordination.
package condition

import (
	"fmt"
	"slices"

	"quercus/pkg/apperror"
)

// Condition is the tree node: either a Comparison leaf or a Combinator.
// The interface is sealed - only types in this package implement it - so
// consumers can type-switch exhaustively.
type Condition interface {
	// And joins the receiver with cond under AND, flattening
	// same-connective operands. Fails with NULL_ARGUMENT when cond is nil.
	And(cond Condition) (Condition, error)

	// Or joins the receiver with cond under OR, flattening
	// same-connective operands. Fails with NULL_ARGUMENT when cond is nil.
	Or(cond Condition) (Condition, error)

	// Negate wraps the receiver in a single-operand NOT combinator.
	// Double negation is never collapsed.
	Negate() Condition

	node() // marker - seals the interface to this package
}

// --- Comparison ---

// Comparison is a leaf testing one field against one operator and value(s).
type Comparison struct {
	op    Operator
	field Field
}

func (Comparison) node() {}

// Operator returns the comparison operator tag.
func (c Comparison) Operator() Operator {
	return c.op
}

// Field returns the field/value pair under comparison.
func (c Comparison) Field() Field {
	return c.field
}

// And implements Condition.
func (c Comparison) And(cond Condition) (Condition, error) {
	return combine(ConnAnd, c, cond)
}

// Or implements Condition.
func (c Comparison) Or(cond Condition) (Condition, error) {
	return combine(ConnOr, c, cond)
}

// Negate implements Condition.
func (c Comparison) Negate() Condition {
	return Combinator{connective: ConnNot, operands: []Condition{c}}
}

// --- Combinator ---

// Combinator joins child conditions with AND, OR or NOT.
// NOT always has exactly one operand; AND/OR always have two or more
// (single-operand composition returns the operand itself).
type Combinator struct {
	connective Connective
	operands   []Condition
}

func (Combinator) node() {}

// Connective returns the combinator's connective tag.
func (c Combinator) Connective() Connective {
	return c.connective
}

// Operands returns a copy of the ordered operand list.
func (c Combinator) Operands() []Condition {
	return slices.Clone(c.operands)
}

// And implements Condition.
func (c Combinator) And(cond Condition) (Condition, error) {
	return combine(ConnAnd, c, cond)
}

// Or implements Condition.
func (c Combinator) Or(cond Condition) (Condition, error) {
	return combine(ConnOr, c, cond)
}

// Negate implements Condition.
func (c Combinator) Negate() Condition {
	return Combinator{connective: ConnNot, operands: []Condition{c}}
}

// --- Comparison builders ---

// Eq creates an equality comparison.
func Eq(f Field) (Comparison, error) { return newComparison(OpEqual, f) }

// Gt creates a greater-than comparison.
func Gt(f Field) (Comparison, error) { return newComparison(OpGreaterThan, f) }

// Gte creates a greater-or-equal comparison.
func Gte(f Field) (Comparison, error) { return newComparison(OpGreaterOrEqual, f) }

// Lt creates a lesser-than comparison.
func Lt(f Field) (Comparison, error) { return newComparison(OpLesserThan, f) }

// Lte creates a lesser-or-equal comparison.
func Lte(f Field) (Comparison, error) { return newComparison(OpLesserOrEqual, f) }

// Like creates a pattern comparison (% matches any run, _ one character).
func Like(f Field) (Comparison, error) { return newComparison(OpLike, f) }

// In creates a membership comparison. The field value must be an ordered
// sequence; an empty sequence is legal and matches nothing.
func In(f Field) (Comparison, error) {
	if f.IsZero() {
		return Comparison{}, apperror.NewNullArgument("field")
	}
	if !f.Value().IsSequence() {
		return Comparison{}, apperror.NewInvalidArgument("in requires a sequence value").
			WithDetail("field", f.Name()).
			WithDetail("got", fmt.Sprintf("%T", f.Value().Raw()))
	}
	return Comparison{op: OpIn, field: f}, nil
}

// Between creates a range comparison, semantically lower <= field <= upper.
// The field value must be a sequence of exactly two elements. Bound ordering
// is not validated here: ordering depends on the value's comparison
// semantics at evaluation time, so the check stays with the consumer.
func Between(f Field) (Comparison, error) {
	if f.IsZero() {
		return Comparison{}, apperror.NewNullArgument("field")
	}
	items, err := f.Value().Items()
	if err != nil {
		return Comparison{}, apperror.NewInvalidArgument("between requires a sequence value").
			WithDetail("field", f.Name()).
			WithDetail("got", fmt.Sprintf("%T", f.Value().Raw()))
	}
	if len(items) != 2 {
		return Comparison{}, apperror.NewInvalidArgument("between requires exactly two elements (lower, upper)").
			WithDetail("field", f.Name()).
			WithDetail("len", len(items))
	}
	return Comparison{op: OpBetween, field: f}, nil
}

func newComparison(op Operator, f Field) (Comparison, error) {
	if f.IsZero() {
		return Comparison{}, apperror.NewNullArgument("field")
	}
	return Comparison{op: op, field: f}, nil
}

// --- Variadic composition ---

// And aggregates one or more conditions under AND, flattening left-to-right.
// A single argument is returned unchanged (identity); zero arguments is a
// caller error.
func And(conds ...Condition) (Condition, error) {
	return combineAll(ConnAnd, conds)
}

// Or aggregates one or more conditions under OR, flattening left-to-right.
// A single argument is returned unchanged (identity); zero arguments is a
// caller error.
func Or(conds ...Condition) (Condition, error) {
	return combineAll(ConnOr, conds)
}

func combineAll(conn Connective, conds []Condition) (Condition, error) {
	if len(conds) == 0 {
		return nil, apperror.NewInvalidArgument(
			fmt.Sprintf("%s requires at least one condition", conn))
	}
	for i, c := range conds {
		if c == nil {
			return nil, apperror.NewNullArgument("condition").WithDetail("index", i)
		}
	}
	if len(conds) == 1 {
		return conds[0], nil
	}
	operands := make([]Condition, 0, len(conds))
	for _, c := range conds {
		operands = spliceOperands(operands, conn, c)
	}
	return Combinator{connective: conn, operands: operands}, nil
}

func combine(conn Connective, left, right Condition) (Condition, error) {
	if right == nil {
		return nil, apperror.NewNullArgument("condition")
	}
	operands := make([]Condition, 0, 4)
	operands = spliceOperands(operands, conn, left)
	operands = spliceOperands(operands, conn, right)
	return Combinator{connective: conn, operands: operands}, nil
}

// spliceOperands appends c to dst, splicing in its operand list instead when
// c is a combinator of the same connective. Same-connective trees stay flat:
// AND inside AND becomes one operand list, mixed nesting is preserved as-is.
func spliceOperands(dst []Condition, conn Connective, c Condition) []Condition {
	if comb, ok := c.(Combinator); ok && comb.connective == conn {
		return append(dst, comb.operands...)
	}
	return append(dst, c)
}
