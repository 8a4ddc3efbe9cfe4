// Package query provides the fluent select/delete query model built around a
// condition tree. A query carries the entity name, an optional column
// projection, the condition, sorting and pagination; a storage adapter
// receives the finished query and translates it into its native form.
package query

import (
	"slices"
	"strings"

	"quercus/pkg/apperror"
	"quercus/pkg/condition"
)

// --- Sorting ---

// Direction defines sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort is one ordering clause.
type Sort struct {
	field     string
	direction Direction
}

// Asc creates an ascending sort on field.
func Asc(field string) Sort {
	return Sort{field: field, direction: Ascending}
}

// Desc creates a descending sort on field.
func Desc(field string) Sort {
	return Sort{field: field, direction: Descending}
}

// Field returns the sorted field name.
func (s Sort) Field() string { return s.field }

// Direction returns the sort direction.
func (s Sort) Direction() Direction { return s.direction }

// MarshalJSON implements json.Marshaler.
func (s Sort) MarshalJSON() ([]byte, error) {
	return marshalSort(s)
}

// --- Select ---

// SelectBuilder accumulates the parts of a select query.
// Builders are single-use; Build validates and returns the immutable query.
type SelectBuilder struct {
	columns []string
	entity  string
	cond    condition.Condition
	sorts   []Sort
	limit   uint64
	skip    uint64
}

// Select starts a select query over the given columns.
// No columns means the whole entity is projected.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: slices.Clone(columns)}
}

// From sets the target entity name.
func (b *SelectBuilder) From(entity string) *SelectBuilder {
	b.entity = entity
	return b
}

// Where sets the condition tree. A nil condition means "select all".
func (b *SelectBuilder) Where(c condition.Condition) *SelectBuilder {
	b.cond = c
	return b
}

// OrderBy appends ordering clauses.
func (b *SelectBuilder) OrderBy(sorts ...Sort) *SelectBuilder {
	b.sorts = append(b.sorts, sorts...)
	return b
}

// Limit caps the number of returned results. Zero means no limit.
func (b *SelectBuilder) Limit(limit uint64) *SelectBuilder {
	b.limit = limit
	return b
}

// Skip sets how many results to skip before returning. Zero means none.
func (b *SelectBuilder) Skip(skip uint64) *SelectBuilder {
	b.skip = skip
	return b
}

// Build validates the accumulated parts and returns the query.
func (b *SelectBuilder) Build() (SelectQuery, error) {
	if err := validateEntity(b.entity); err != nil {
		return SelectQuery{}, err
	}
	if err := validateSorts(b.sorts); err != nil {
		return SelectQuery{}, err
	}
	return SelectQuery{
		entity:  b.entity,
		columns: slices.Clone(b.columns),
		cond:    b.cond,
		sorts:   slices.Clone(b.sorts),
		limit:   b.limit,
		skip:    b.skip,
	}, nil
}

// SelectQuery is an immutable select query.
type SelectQuery struct {
	entity  string
	columns []string
	cond    condition.Condition
	sorts   []Sort
	limit   uint64
	skip    uint64
}

// Entity returns the target entity name.
func (q SelectQuery) Entity() string { return q.entity }

// Columns returns a copy of the projected column names.
func (q SelectQuery) Columns() []string { return slices.Clone(q.columns) }

// Condition returns the condition tree and whether one is set.
func (q SelectQuery) Condition() (condition.Condition, bool) {
	return q.cond, q.cond != nil
}

// Sorts returns a copy of the ordering clauses.
func (q SelectQuery) Sorts() []Sort { return slices.Clone(q.sorts) }

// Limit returns the result cap (zero = unlimited).
func (q SelectQuery) Limit() uint64 { return q.limit }

// Skip returns the number of results to skip.
func (q SelectQuery) Skip() uint64 { return q.skip }

// --- Delete ---

// DeleteBuilder accumulates the parts of a delete query.
type DeleteBuilder struct {
	columns []string
	entity  string
	cond    condition.Condition
}

// Delete starts a delete query. Naming columns requests a partial delete of
// those attributes; no columns means whole entities are removed.
func Delete(columns ...string) *DeleteBuilder {
	return &DeleteBuilder{columns: slices.Clone(columns)}
}

// From sets the target entity name.
func (b *DeleteBuilder) From(entity string) *DeleteBuilder {
	b.entity = entity
	return b
}

// Where sets the condition tree. A nil condition means "delete all".
func (b *DeleteBuilder) Where(c condition.Condition) *DeleteBuilder {
	b.cond = c
	return b
}

// Build validates the accumulated parts and returns the query.
func (b *DeleteBuilder) Build() (DeleteQuery, error) {
	if err := validateEntity(b.entity); err != nil {
		return DeleteQuery{}, err
	}
	return DeleteQuery{
		entity:  b.entity,
		columns: slices.Clone(b.columns),
		cond:    b.cond,
	}, nil
}

// DeleteQuery is an immutable delete query.
type DeleteQuery struct {
	entity  string
	columns []string
	cond    condition.Condition
}

// Entity returns the target entity name.
func (q DeleteQuery) Entity() string { return q.entity }

// Columns returns a copy of the column names targeted for removal.
func (q DeleteQuery) Columns() []string { return slices.Clone(q.columns) }

// Condition returns the condition tree and whether one is set.
func (q DeleteQuery) Condition() (condition.Condition, bool) {
	return q.cond, q.cond != nil
}

// --- Validation ---

func validateEntity(entity string) error {
	if strings.TrimSpace(entity) == "" {
		return apperror.NewInvalidArgument("query requires an entity name")
	}
	return nil
}

func validateSorts(sorts []Sort) error {
	for i, s := range sorts {
		if strings.TrimSpace(s.field) == "" {
			return apperror.NewNullArgument("sort field").WithDetail("index", i)
		}
	}
	return nil
}
