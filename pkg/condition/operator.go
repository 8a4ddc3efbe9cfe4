package condition

// Operator defines the comparison kinds a leaf condition can carry.
type Operator string

const (
	OpEqual          Operator = "eq"      // Field equals value
	OpGreaterThan    Operator = "gt"      // Field greater than value
	OpGreaterOrEqual Operator = "gte"     // Field greater than or equal to value
	OpLesserThan     Operator = "lt"      // Field lesser than value
	OpLesserOrEqual  Operator = "lte"     // Field lesser than or equal to value
	OpLike           Operator = "like"    // Field matches pattern (% and _ wildcards)
	OpIn             Operator = "in"      // Field within an ordered sequence of values
	OpBetween        Operator = "between" // Field within [lower, upper] bounds
)

// Connective defines how a combinator joins its operands.
type Connective string

const (
	ConnAnd Connective = "and" // All operands must hold
	ConnOr  Connective = "or"  // At least one operand must hold
	ConnNot Connective = "not" // Single operand must not hold
)

// valid reports whether op is one of the known operators.
func (op Operator) valid() bool {
	switch op {
	case OpEqual, OpGreaterThan, OpGreaterOrEqual, OpLesserThan,
		OpLesserOrEqual, OpLike, OpIn, OpBetween:
		return true
	}
	return false
}

// valid reports whether c is one of the known connectives.
func (c Connective) valid() bool {
	switch c {
	case ConnAnd, ConnOr, ConnNot:
		return true
	}
	return false
}
