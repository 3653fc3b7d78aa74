package redisx

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func itemSchema() *listview.Schema[item] {
	return &listview.Schema[item]{
		Name:  "items",
		ID:    func(v item) int64 { return v.ID },
		SetID: func(v *item, id int64) { v.ID = id },
	}
}

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return b, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = value
	m.sets++
	return nil
}

func (m *memKV) get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}

func TestMirror_loadMissAndGarbage(t *testing.T) {
	t.Parallel()

	kv := &memKV{}
	m := NewMirror[item](kv, "items")
	assert.Equal(t, "admin:snapshot:items", m.Key())

	_, ok, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	kv.data = map[string][]byte{m.Key(): []byte("{not json")}
	_, ok, err = m.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMirror_saveThenLoad(t *testing.T) {
	t.Parallel()

	kv := &memKV{}
	m := NewMirror[item](kv, "items")
	require.NoError(t, m.Save(context.Background(), []item{{ID: 7, Name: "사과"}}))

	got, ok, err := m.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []item{{ID: 7, Name: "사과"}}, got)
}

func TestMirror_runFlushesAfterMutation(t *testing.T) {
	t.Parallel()

	kv := &memKV{}
	m := NewMirror[item](kv, "items")
	s := listview.NewStore(itemSchema(), []item{{ID: 1, Name: "배"}})
	m.Attach(s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	s.Add(item{Name: "감"})

	require.Eventually(t, func() bool {
		return kv.get(m.Key()) == `[{"id":1,"name":"배"},{"id":2,"name":"감"}]`
	}, time.Second, 10*time.Millisecond)
}
