package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quercus/pkg/apperror"
)

func TestNewField_Validation(t *testing.T) {
	_, err := NewField("", "v")
	assert.True(t, apperror.IsCode(err, apperror.CodeNullArgument))

	_, err = NewField("   ", "v")
	assert.True(t, apperror.IsCode(err, apperror.CodeNullArgument))

	_, err = NewField("name", nil)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidArgument))

	f, err := NewField("name", "otavio")
	require.NoError(t, err)
	assert.Equal(t, "name", f.Name())
	assert.Equal(t, "otavio", f.Value().Raw())
	assert.False(t, f.IsZero())
}

func TestComparisonBuilders(t *testing.T) {
	f := MustField("age", 26)

	builders := []struct {
		name string
		fn   func(Field) (Comparison, error)
		want Operator
	}{
		{"Eq", Eq, OpEqual},
		{"Gt", Gt, OpGreaterThan},
		{"Gte", Gte, OpGreaterOrEqual},
		{"Lt", Lt, OpLesserThan},
		{"Lte", Lte, OpLesserOrEqual},
		{"Like", Like, OpLike},
	}

	for _, tt := range builders {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.fn(f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Operator())
			assert.Equal(t, f, c.Field())

			_, err = tt.fn(Field{})
			assert.True(t, apperror.IsCode(err, apperror.CodeNullArgument))
		})
	}
}

func TestIn(t *testing.T) {
	_, err := In(MustField("age", 26))
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidArgument))

	_, err = In(Field{})
	assert.True(t, apperror.IsCode(err, apperror.CodeNullArgument))

	// Empty sequence is legal: it matches nothing.
	c, err := In(MustField("city", []string{}))
	require.NoError(t, err)
	items, err := c.Field().Value().Items()
	require.NoError(t, err)
	assert.Empty(t, items)

	c, err = In(MustField("city", []string{"Salvador", "Lisbon"}))
	require.NoError(t, err)
	assert.Equal(t, OpIn, c.Operator())
}

func TestBetween(t *testing.T) {
	_, err := Between(MustField("age", 26))
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidArgument))

	_, err = Between(MustField("age", []int{1, 2, 3}))
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidArgument))

	_, err = Between(MustField("age", []int{1}))
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidArgument))

	c, err := Between(MustField("age", []int{10, 20}))
	require.NoError(t, err)
	assert.Equal(t, OpBetween, c.Operator())

	// Element order is preserved as given: (lower, upper).
	items, err := c.Field().Value().Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 10, items[0].Raw())
	assert.Equal(t, 20, items[1].Raw())
}

func TestAnd_Flattening(t *testing.T) {
	a, _ := Eq(MustField("a", 1))
	b, _ := Eq(MustField("b", 2))
	c, _ := Eq(MustField("c", 3))

	ab, err := a.And(b)
	require.NoError(t, err)
	abc, err := ab.And(c)
	require.NoError(t, err)

	comb, ok := abc.(Combinator)
	require.True(t, ok)
	assert.Equal(t, ConnAnd, comb.Connective())
	assert.Equal(t, []Condition{a, b, c}, comb.Operands())
}

func TestAnd_SpliceRightSide(t *testing.T) {
	a, _ := Eq(MustField("a", 1))
	b, _ := Eq(MustField("b", 2))
	c, _ := Eq(MustField("c", 3))

	bc, err := b.And(c)
	require.NoError(t, err)
	abc, err := a.And(bc)
	require.NoError(t, err)

	comb := abc.(Combinator)
	assert.Equal(t, []Condition{a, b, c}, comb.Operands())
}

func TestOr_Flattening(t *testing.T) {
	a, _ := Eq(MustField("a", 1))
	b, _ := Eq(MustField("b", 2))
	c, _ := Eq(MustField("c", 3))

	ab, err := a.Or(b)
	require.NoError(t, err)
	abc, err := ab.Or(c)
	require.NoError(t, err)

	comb := abc.(Combinator)
	assert.Equal(t, ConnOr, comb.Connective())
	assert.Len(t, comb.Operands(), 3)
}

func TestMixedNesting_Preserved(t *testing.T) {
	a, _ := Eq(MustField("a", 1))
	b, _ := Eq(MustField("b", 2))
	c, _ := Eq(MustField("c", 3))

	ab, err := a.And(b)
	require.NoError(t, err)
	mixed, err := ab.Or(c)
	require.NoError(t, err)

	comb := mixed.(Combinator)
	assert.Equal(t, ConnOr, comb.Connective())
	require.Len(t, comb.Operands(), 2)
	assert.Equal(t, ab, comb.Operands()[0])
	assert.Equal(t, Condition(c), comb.Operands()[1])
}

func TestInstanceComposition_NilArgument(t *testing.T) {
	a, _ := Eq(MustField("a", 1))

	_, err := a.And(nil)
	assert.True(t, apperror.IsCode(err, apperror.CodeNullArgument))

	_, err = a.Or(nil)
	assert.True(t, apperror.IsCode(err, apperror.CodeNullArgument))
}

func TestVariadicAnd(t *testing.T) {
	a, _ := Eq(MustField("a", 1))
	b, _ := Eq(MustField("b", 2))
	c, _ := Eq(MustField("c", 3))

	// Three arguments produce one flat combinator, never a nested pair.
	abc, err := And(a, b, c)
	require.NoError(t, err)
	comb := abc.(Combinator)
	assert.Equal(t, ConnAnd, comb.Connective())
	assert.Equal(t, []Condition{a, b, c}, comb.Operands())

	// A single argument is identity.
	single, err := And(a)
	require.NoError(t, err)
	assert.Equal(t, Condition(a), single)

	// Zero arguments is a caller error.
	_, err = And()
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidArgument))

	// A nil element is rejected before any node is built.
	_, err = And(a, nil, c)
	assert.True(t, apperror.IsCode(err, apperror.CodeNullArgument))
}

func TestVariadicOr(t *testing.T) {
	a, _ := Eq(MustField("a", 1))
	b, _ := Eq(MustField("b", 2))

	ab, err := Or(a, b)
	require.NoError(t, err)
	comb := ab.(Combinator)
	assert.Equal(t, ConnOr, comb.Connective())
	assert.Len(t, comb.Operands(), 2)

	_, err = Or()
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidArgument))
}

func TestNegate_NoCollapse(t *testing.T) {
	x, _ := Eq(MustField("a", 1))

	once := x.Negate()
	notComb, ok := once.(Combinator)
	require.True(t, ok)
	assert.Equal(t, ConnNot, notComb.Connective())
	require.Len(t, notComb.Operands(), 1)
	assert.Equal(t, Condition(x), notComb.Operands()[0])

	twice := once.Negate()
	outer := twice.(Combinator)
	assert.Equal(t, ConnNot, outer.Connective())
	inner, ok := outer.Operands()[0].(Combinator)
	require.True(t, ok)
	assert.Equal(t, ConnNot, inner.Connective())
	assert.Equal(t, Condition(x), inner.Operands()[0])
}

func TestImmutability(t *testing.T) {
	x, _ := Eq(MustField("name", "otavio"))
	y, _ := Gte(MustField("age", 26))

	xy, err := x.Or(y)
	require.NoError(t, err)

	// Both inputs keep their original identity after composition.
	assert.Equal(t, OpEqual, x.Operator())
	assert.Equal(t, "otavio", x.Field().Value().Raw())
	assert.Equal(t, OpGreaterOrEqual, y.Operator())

	// Further composition of the result leaves the result untouched.
	z, _ := Lt(MustField("score", 10))
	xyz, err := xy.And(z)
	require.NoError(t, err)
	assert.Len(t, xy.(Combinator).Operands(), 2)
	assert.Len(t, xyz.(Combinator).Operands(), 2) // mixed nesting, not flattened

	// Operands returns a defensive copy.
	comb := xy.(Combinator)
	operands := comb.Operands()
	operands[0] = z
	assert.Equal(t, Condition(x), comb.Operands()[0])
}

func TestConcreteScenario(t *testing.T) {
	nameEq, err := Eq(MustField("name", "otavio"))
	require.NoError(t, err)
	ageGte, err := Gte(MustField("age", 26))
	require.NoError(t, err)

	cond, err := nameEq.And(ageGte)
	require.NoError(t, err)

	comb, ok := cond.(Combinator)
	require.True(t, ok)
	assert.Equal(t, ConnAnd, comb.Connective())
	require.Len(t, comb.Operands(), 2)

	first := comb.Operands()[0].(Comparison)
	assert.Equal(t, OpEqual, first.Operator())
	assert.Equal(t, "name", first.Field().Name())
	assert.Equal(t, "otavio", first.Field().Value().Raw())

	second := comb.Operands()[1].(Comparison)
	assert.Equal(t, OpGreaterOrEqual, second.Operator())
	assert.Equal(t, "age", second.Field().Name())
	assert.Equal(t, 26, second.Field().Value().Raw())
}

func TestWalk(t *testing.T) {
	a, _ := Eq(MustField("a", 1))
	b, _ := Eq(MustField("b", 2))
	c, _ := Eq(MustField("c", 3))
	ab, _ := a.And(b)
	tree, _ := ab.Or(c)

	var visited []Condition
	Walk(tree, func(node Condition) bool {
		visited = append(visited, node)
		return true
	})
	// Pre-order: or, and, a, b, c.
	require.Len(t, visited, 5)
	assert.Equal(t, tree, visited[0])
	assert.Equal(t, ab, visited[1])
	assert.Equal(t, Condition(a), visited[2])
	assert.Equal(t, Condition(c), visited[4])

	// Returning false skips a subtree but not its siblings.
	var kinds []Condition
	Walk(tree, func(node Condition) bool {
		kinds = append(kinds, node)
		_, isComparison := node.(Comparison)
		return isComparison || node == nil || len(kinds) == 1
	})
	// or (descend), and (skip), c.
	assert.Len(t, kinds, 3)
}
