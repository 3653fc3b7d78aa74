package listview

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDraftClosed = errors.New("draft is closed")

// ValidationError reports a required field that is missing or a value
// outside its enumeration.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required returns a *ValidationError when v is blank.
func Required(field, v string) error {
	if strings.TrimSpace(v) != "" {
		return nil
	}
	return &ValidationError{Field: field, Message: "required"}
}

// OneOf returns a *ValidationError when v is not one of allowed.
func OneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return &ValidationError{Field: field, Message: fmt.Sprintf("must be one of %v", allowed)}
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type DraftState int

const (
	DraftClosed DraftState = iota
	DraftOpen
	DraftEditing
)

func (s DraftState) String() string {
	switch s {
	case DraftOpen:
		return "open"
	case DraftEditing:
		return "editing"
	}
	return "closed"
}

// Draft is a staged edit of one record. It owns its copy; nothing reaches
// the store before Commit.
type Draft[T any] struct {
	store  *Store[T]
	id     int64
	create bool
	value  T
	state  DraftState
}

// Open stages an edit of the record with the given id.
func (s *Store[T]) Open(id int64) (*Draft[T], error) {
	rec, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("open %s %d: %w", s.schema.Name, id, ErrNotFound)
	}
	return &Draft[T]{store: s, id: id, value: rec, state: DraftOpen}, nil
}

// Create stages a new record seeded from template.
func (s *Store[T]) Create(template T) *Draft[T] {
	return &Draft[T]{store: s, create: true, value: s.schema.clone(template), state: DraftOpen}
}

func (d *Draft[T]) State() DraftState { return d.state }
func (d *Draft[T]) IsNew() bool       { return d.create }
func (d *Draft[T]) ID() int64         { return d.id }

// Value returns a copy of the staged record.
func (d *Draft[T]) Value() T { return d.store.schema.clone(d.value) }

// Edit mutates the staged record.
func (d *Draft[T]) Edit(fn func(*T)) error {
	if d.state == DraftClosed {
		return ErrDraftClosed
	}
	fn(&d.value)
	d.state = DraftEditing
	return nil
}

// Commit validates the staged record and writes it to the store. On a
// validation failure the draft stays open with its input intact. Committing
// an edit whose record has meanwhile disappeared is a silent no-op.
func (d *Draft[T]) Commit() (T, error) {
	if d.state == DraftClosed {
		var zero T
		return zero, ErrDraftClosed
	}
	schema := d.store.schema
	rec := schema.clone(d.value)
	if d.create && schema.OnCreate != nil {
		schema.OnCreate(&rec)
	}
	if schema.Validate != nil {
		if err := schema.Validate(rec); err != nil {
			var zero T
			return zero, err
		}
	}

	if d.create {
		rec = d.store.Add(rec)
		d.id = schema.ID(rec)
	} else {
		schema.SetID(&rec, d.id)
		d.store.ReplaceByID(d.id, rec)
	}
	d.close()
	return rec, nil
}

// Cancel discards the staged record.
func (d *Draft[T]) Cancel() {
	d.close()
}

func (d *Draft[T]) close() {
	var zero T
	d.value = zero
	d.state = DraftClosed
}
