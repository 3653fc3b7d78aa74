package listview

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("record not found")

type Op string

const (
	OpAdd        Op = "add"
	OpReplace    Op = "replace"
	OpRemove     Op = "remove"
	OpSoftDelete Op = "soft_delete"
)

// Change is delivered to subscribers after every mutation.
// Before is nil for OpAdd, After is nil for OpRemove.
type Change[T any] struct {
	Entity string
	Op     Op
	ID     int64
	Before *T
	After  *T
}

// Store is the in-memory ordered sequence of one entity type.
type Store[T any] struct {
	mu     sync.RWMutex
	schema *Schema[T]
	items  []T
	lastID int64
	subs   []func(Change[T])
}

func NewStore[T any](schema *Schema[T], initial []T) *Store[T] {
	s := &Store[T]{schema: schema, items: make([]T, 0, len(initial))}
	for _, rec := range initial {
		if id := schema.ID(rec); id > s.lastID {
			s.lastID = id
		}
		s.items = append(s.items, schema.clone(rec))
	}
	return s
}

func (s *Store[T]) Schema() *Schema[T] { return s.schema }

// Subscribe registers fn for every later mutation. fn runs under the store
// lock so it must not call back into the store.
func (s *Store[T]) Subscribe(fn func(Change[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store[T]) notify(op Op, id int64, before, after *T) {
	ch := Change[T]{Entity: s.schema.Name, Op: op, ID: id, Before: before, After: after}
	for _, fn := range s.subs {
		fn(ch)
	}
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// All returns a copy of the sequence in store order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	for i, rec := range s.items {
		out[i] = s.schema.clone(rec)
	}
	return out
}

func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.schema.clone(s.items[i]), true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) indexOf(id int64) int {
	for i, rec := range s.items {
		if s.schema.ID(rec) == id {
			return i
		}
	}
	return -1
}

// Add assigns a fresh identifier and inserts rec at the front or back
// depending on the schema. Identifiers are never handed out twice.
func (s *Store[T]) Add(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	rec = s.schema.clone(rec)
	s.schema.SetID(&rec, s.lastID)
	if s.schema.Prepend {
		s.items = append([]T{rec}, s.items...)
	} else {
		s.items = append(s.items, rec)
	}
	after := s.schema.clone(rec)
	s.notify(OpAdd, s.lastID, nil, &after)
	return s.schema.clone(rec)
}

// ReplaceByID swaps the record with the given id for rec, keeping its
// position. It is a no-op returning false when the id is absent.
func (s *Store[T]) ReplaceByID(id int64, rec T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.replaceAt(i, id, s.schema.clone(rec), OpReplace)
	return true
}

// Patch applies fn to a copy of the record and stores the result.
func (s *Store[T]) Patch(id int64, fn func(*T)) (T, bool) {
	rec, err := s.Update(id, func(v *T) error {
		fn(v)
		return nil
	})
	return rec, err == nil
}

// Update is Patch with an abort: when fn returns an error nothing is
// stored. A missing id yields ErrNotFound.
func (s *Store[T]) Update(id int64, fn func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	i := s.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%s %d: %w", s.schema.Name, id, ErrNotFound)
	}
	rec := s.schema.clone(s.items[i])
	if err := fn(&rec); err != nil {
		return zero, err
	}
	s.replaceAt(i, id, rec, OpReplace)
	return s.schema.clone(rec), nil
}

// replaceAt builds a new backing slice so slices handed out earlier keep
// their old contents. Callers hold the write lock.
func (s *Store[T]) replaceAt(i int, id int64, rec T, op Op) {
	s.schema.SetID(&rec, id)
	before := s.items[i]
	next := make([]T, len(s.items))
	copy(next, s.items)
	next[i] = rec
	s.items = next
	after := s.schema.clone(rec)
	s.notify(op, id, &before, &after)
}

func (s *Store[T]) RemoveByID(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	before := s.items[i]
	next := make([]T, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	s.items = next
	s.notify(OpRemove, id, &before, nil)
	return true
}

// RemoveWhere drops every record matching pred and returns how many went.
func (s *Store[T]) RemoveWhere(pred func(T) bool) int {
	var ids []int64
	for _, rec := range s.All() {
		if pred(rec) {
			ids = append(ids, s.schema.ID(rec))
		}
	}
	n := 0
	for _, id := range ids {
		if s.RemoveByID(id) {
			n++
		}
	}
	return n
}

// Delete flags the record with the terminal status when the schema has one
// and removes it otherwise.
func (s *Store[T]) Delete(id int64) bool {
	if s.schema.Terminal == "" || s.schema.SetStatus == nil {
		return s.RemoveByID(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	rec := s.schema.clone(s.items[i])
	s.schema.SetStatus(&rec, s.schema.Terminal)
	s.replaceAt(i, id, rec, OpSoftDelete)
	return true
}

// Counts returns the tab badges: the total under All, one entry per status
// value, and one per named predicate of either facet.
func (s *Store[T]) Counts() map[string]int {
	out := map[string]int{All: 0}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.items {
		out[All]++
		if s.schema.Status.Field != nil {
			out[s.schema.Status.Field(rec)]++
		}
		countNamed(out, s.schema.Status.Named, rec)
		countNamed(out, s.schema.Kind.Named, rec)
	}
	return out
}

func countNamed[T any](out map[string]int, named map[string]func(T) bool, rec T) {
	for name, pred := range named {
		if pred(rec) {
			out[name]++
		}
	}
}
