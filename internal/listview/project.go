package listview

import "slices"

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query is the filter state of one list view.
type Query struct {
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
	Kind   string `json:"type,omitempty"`
	Order  string `json:"order,omitempty"`
}

// Project filters items by q and stable-sorts the survivors. items is not
// modified.
func Project[T any](items []T, schema *Schema[T], q Query) []T {
	out := make([]T, 0, len(items))
	for _, rec := range items {
		if schema.Match(q, rec) {
			out = append(out, rec)
		}
	}
	if schema.Sort == nil {
		return out
	}
	desc := schema.SortDesc
	switch q.Order {
	case OrderAsc:
		desc = false
	case OrderDesc:
		desc = true
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if desc {
			return schema.Sort(b, a)
		}
		return schema.Sort(a, b)
	})
	return out
}
