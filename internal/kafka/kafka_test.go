package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	m := kafka.Message{Headers: []kafka.Header{
		{Key: "x-event-type", Value: []byte("RecordChanged")},
		{Key: "x-event-version", Value: []byte("1")},
	}}
	assert.Equal(t, "RecordChanged", Header(m, "x-event-type"))
	assert.Equal(t, "", Header(m, "missing"))
}

func TestUnwrapPayload(t *testing.T) {
	t.Parallel()

	type payload struct {
		Entity string `json:"entity"`
	}
	p, err := UnwrapPayload[payload](json.RawMessage(`{"entity":"products"}`))
	require.NoError(t, err)
	assert.Equal(t, "products", p.Entity)

	_, err = UnwrapPayload[payload](json.RawMessage(`[`))
	assert.Error(t, err)
}

func TestPublish_neverBlocks(t *testing.T) {
	t.Parallel()

	// not started: the inbox only fills, nothing drains it
	p := NewProducer([]string{"127.0.0.1:1"}, "test", 1)
	p.Publish([]byte("k"), []byte("v1"))
	p.Publish([]byte("k"), []byte("v2"))
	assert.Len(t, p.inbox, 1)
	p.Close()
	p.Close()
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	fetchErr  error
	committed []kafka.Message
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		m := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return m, nil
	}
	err := f.fetchErr
	f.mu.Unlock()
	if err != nil {
		return kafka.Message{}, err
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeReader) commits(partition int) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, m := range f.committed {
		if m.Partition == partition {
			out = append(out, m.Offset)
		}
	}
	return out
}

func testConsumer(r reader, workers int) *Consumer {
	c := newConsumer(r, workers)
	c.minBackoff = time.Millisecond
	c.maxBackoff = 4 * time.Millisecond
	return c
}

func runConsumer(ctx context.Context, c *Consumer, h Handler) <-chan error {
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx, h) }()
	return done
}

func TestConsumer_retriesFailedMessageBeforeCommitting(t *testing.T) {
	t.Parallel()

	r := &fakeReader{queue: []kafka.Message{
		{Partition: 0, Offset: 10},
		{Partition: 1, Offset: 5},
		{Partition: 0, Offset: 11},
	}}
	var (
		mu    sync.Mutex
		calls []int64 // partition 0 only
	)
	h := func(_ context.Context, m kafka.Message) error {
		if m.Partition != 0 {
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, m.Offset)
		if m.Offset == 10 && len(calls) < 3 {
			return errors.New("db down")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runConsumer(ctx, testConsumer(r, 2), h)

	require.Eventually(t, func() bool {
		return len(r.commits(0)) == 2 && len(r.commits(1)) == 1
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, []int64{10, 11}, r.commits(0))
	assert.Equal(t, []int64{5}, r.commits(1))
	mu.Lock()
	assert.Equal(t, []int64{10, 10, 10, 11}, calls)
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.True(t, r.closed)
}

func TestConsumer_failingMessageIsNeverCommitted(t *testing.T) {
	t.Parallel()

	r := &fakeReader{queue: []kafka.Message{
		{Partition: 0, Offset: 1},
		{Partition: 0, Offset: 2},
	}}
	var (
		mu       sync.Mutex
		attempts int
	)
	h := func(_ context.Context, m kafka.Message) error {
		mu.Lock()
		defer mu.Unlock()
		if m.Offset == 2 {
			t.Errorf("offset 2 handled while offset 1 still failing")
		}
		attempts++
		return errors.New("db down")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runConsumer(ctx, testConsumer(r, 1), h)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts >= 5
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Empty(t, r.commits(0))
}

func TestConsumer_fetchErrorStops(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker gone")
	r := &fakeReader{fetchErr: boom}
	err := testConsumer(r, 1).Start(context.Background(), func(context.Context, kafka.Message) error { return nil })
	assert.ErrorIs(t, err, boom)
	assert.True(t, r.closed)
}
