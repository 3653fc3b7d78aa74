package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

// Mirror keeps a JSON snapshot of one store in redis. The snapshot is read
// once at startup and rewritten after mutations. Writes are best effort.
type Mirror[T any] struct {
	kv    KV
	key   string
	store *listview.Store[T]
	dirty chan struct{}
}

func NewMirror[T any](kv KV, entity string) *Mirror[T] {
	return &Mirror[T]{
		kv:    kv,
		key:   fmt.Sprintf(KeySnapshot, entity),
		dirty: make(chan struct{}, 1),
	}
}

func (m *Mirror[T]) Key() string { return m.key }

// Load returns the stored snapshot. ok is false when there is none or it
// cannot be decoded, in which case the caller keeps its seed data.
func (m *Mirror[T]) Load(ctx context.Context) (items []T, ok bool, err error) {
	b, err := m.kv.Get(ctx, m.key)
	if errors.Is(err, ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mirror load %s: %w", m.key, err)
	}
	if err := json.Unmarshal(b, &items); err != nil {
		log.Printf("mirror %s: discarding unreadable snapshot: %v", m.key, err)
		return nil, false, nil
	}
	return items, true, nil
}

// Attach marks the mirror dirty on every mutation of s.
func (m *Mirror[T]) Attach(s *listview.Store[T]) {
	m.store = s
	s.Subscribe(func(listview.Change[T]) {
		select {
		case m.dirty <- struct{}{}:
		default:
		}
	})
}

// Save writes items as the current snapshot.
func (m *Mirror[T]) Save(ctx context.Context, items []T) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, m.key, b, TTLSnapshot)
}

// Run flushes the attached store whenever it changed, until ctx is done.
func (m *Mirror[T]) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.dirty:
			m.flush(ctx)
		}
	}
}

func (m *Mirror[T]) flush(ctx context.Context) {
	if m.store == nil {
		return
	}
	sctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := m.Save(sctx, m.store.All()); err != nil {
		log.Printf("mirror save %s: %v", m.key, err)
	}
}
