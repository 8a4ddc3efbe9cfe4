package query

import "encoding/json"

// JSON wire forms for handing a finished query to an out-of-process adapter.
// Queries only marshal; decoding is the adapter's concern since a query is
// always produced by the builder on the caller's side.

type sortJSON struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

type selectJSON struct {
	Entity    string   `json:"entity"`
	Columns   []string `json:"columns,omitempty"`
	Condition any      `json:"condition,omitempty"`
	Sorts     []Sort   `json:"sorts,omitempty"`
	Limit     uint64   `json:"limit,omitempty"`
	Skip      uint64   `json:"skip,omitempty"`
}

type deleteJSON struct {
	Entity    string   `json:"entity"`
	Columns   []string `json:"columns,omitempty"`
	Condition any      `json:"condition,omitempty"`
}

func marshalSort(s Sort) ([]byte, error) {
	return json.Marshal(sortJSON{Field: s.field, Direction: s.direction})
}

// MarshalJSON implements json.Marshaler.
func (q SelectQuery) MarshalJSON() ([]byte, error) {
	out := selectJSON{
		Entity:  q.entity,
		Columns: q.columns,
		Sorts:   q.sorts,
		Limit:   q.limit,
		Skip:    q.skip,
	}
	if q.cond != nil {
		out.Condition = q.cond
	}
	return json.Marshal(out)
}

// MarshalJSON implements json.Marshaler.
func (q DeleteQuery) MarshalJSON() ([]byte, error) {
	out := deleteJSON{
		Entity:  q.entity,
		Columns: q.columns,
	}
	if q.cond != nil {
		out.Condition = q.cond
	}
	return json.Marshal(out)
}
