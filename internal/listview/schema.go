package listview

import "strings"

// Sentinel facet values that match every record.
const (
	All   = "all"
	AllKo = "전체"
)

func isAll(v string) bool {
	return v == "" || v == All || v == AllKo
}

// Facet is one exact-match filter dimension (status tab, type dropdown).
// Named predicates take precedence over Field for special tab values.
type Facet[T any] struct {
	Field func(T) string
	Named map[string]func(T) bool
}

func (f Facet[T]) match(v string, rec T) bool {
	if isAll(v) {
		return true
	}
	if pred, ok := f.Named[v]; ok {
		return pred(rec)
	}
	if f.Field == nil {
		return false
	}
	return f.Field(rec) == v
}

// Schema describes how the generic store reads and writes one entity type.
type Schema[T any] struct {
	Name string

	ID    func(T) int64
	SetID func(*T, int64)
	// Clone deep-copies nested slices; nil means a plain value copy is enough.
	Clone func(T) T

	Search []func(T) string
	Status Facet[T]
	Kind   Facet[T]

	// Sort compares two records ascending. Nil keeps insertion order.
	Sort     func(a, b T) int
	SortDesc bool

	// Terminal is the soft-delete status. Empty means delete removes the record.
	Terminal  string
	SetStatus func(*T, string)

	Prepend  bool
	OnCreate func(*T)
	Validate func(T) error
}

func (s *Schema[T]) clone(v T) T {
	if s.Clone == nil {
		return v
	}
	return s.Clone(v)
}

func (s *Schema[T]) matchSearch(term string, rec T) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range s.Search {
		if strings.Contains(strings.ToLower(field(rec)), needle) {
			return true
		}
	}
	return false
}

// Match reports whether rec satisfies every active filter of q.
func (s *Schema[T]) Match(q Query, rec T) bool {
	return s.matchSearch(q.Search, rec) &&
		s.Status.match(q.Status, rec) &&
		s.Kind.match(q.Kind, rec)
}
