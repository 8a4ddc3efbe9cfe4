package condition

import (
	"encoding/json"
	"fmt"

	"quercus/pkg/apperror"
)

// Wire shape. A comparison is {"op":"eq","field":"name","value":...}, a
// combinator is {"connective":"and","operands":[...]}. Decoding re-runs the
// construction validation, so a decoded tree honors the same invariants as a
// built one (a same-connective nesting written by hand is flattened, a
// single-operand AND/OR collapses to its operand).

type comparisonJSON struct {
	Op    Operator `json:"op"`
	Field string   `json:"field"`
	Value any      `json:"value"`
}

type combinatorJSON struct {
	Connective Connective        `json:"connective"`
	Operands   []json.RawMessage `json:"operands"`
}

// MarshalJSON implements json.Marshaler.
func (c Comparison) MarshalJSON() ([]byte, error) {
	return json.Marshal(comparisonJSON{
		Op:    c.op,
		Field: c.field.Name(),
		Value: c.field.Value().Raw(),
	})
}

// MarshalJSON implements json.Marshaler.
func (c Combinator) MarshalJSON() ([]byte, error) {
	operands := make([]json.RawMessage, len(c.operands))
	for i, operand := range c.operands {
		data, err := json.Marshal(operand)
		if err != nil {
			return nil, err
		}
		operands[i] = data
	}
	return json.Marshal(combinatorJSON{
		Connective: c.connective,
		Operands:   operands,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Comparison) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	cmp, ok := decoded.(Comparison)
	if !ok {
		return apperror.NewInvalidArgument("expected a comparison node")
	}
	*c = cmp
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Combinator) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	comb, ok := decoded.(Combinator)
	if !ok {
		return apperror.NewInvalidArgument("expected a combinator node")
	}
	*c = comb
	return nil
}

// Decode parses a condition tree from its JSON wire form.
func Decode(data []byte) (Condition, error) {
	var probe struct {
		Op         Operator   `json:"op"`
		Connective Connective `json:"connective"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, apperror.NewInvalidArgument("malformed condition json").WithCause(err)
	}

	switch {
	case probe.Op != "" && probe.Connective != "":
		return nil, apperror.NewInvalidArgument("condition node cannot carry both op and connective")
	case probe.Op != "":
		return decodeComparison(data)
	case probe.Connective != "":
		return decodeCombinator(data)
	}
	return nil, apperror.NewInvalidArgument("condition node requires either op or connective")
}

func decodeComparison(data []byte) (Condition, error) {
	var raw comparisonJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperror.NewInvalidArgument("malformed comparison json").WithCause(err)
	}
	if !raw.Op.valid() {
		return nil, apperror.NewInvalidArgument(fmt.Sprintf("unknown operator %q", raw.Op))
	}

	field, err := NewField(raw.Field, raw.Value)
	if err != nil {
		return nil, err
	}

	switch raw.Op {
	case OpIn:
		return In(field)
	case OpBetween:
		return Between(field)
	default:
		return newComparison(raw.Op, field)
	}
}

func decodeCombinator(data []byte) (Condition, error) {
	var raw combinatorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperror.NewInvalidArgument("malformed combinator json").WithCause(err)
	}
	if !raw.Connective.valid() {
		return nil, apperror.NewInvalidArgument(fmt.Sprintf("unknown connective %q", raw.Connective))
	}

	operands := make([]Condition, len(raw.Operands))
	for i, operandData := range raw.Operands {
		operand, err := Decode(operandData)
		if err != nil {
			return nil, err
		}
		operands[i] = operand
	}

	if raw.Connective == ConnNot {
		if len(operands) != 1 {
			return nil, apperror.NewInvalidArgument("not requires exactly one operand").
				WithDetail("len", len(operands))
		}
		return operands[0].Negate(), nil
	}
	return combineAll(raw.Connective, operands)
}
