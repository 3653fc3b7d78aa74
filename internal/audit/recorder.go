package audit

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/agri-admin/internal/kafka"
	"github.com/ariefcatur/agri-admin/internal/listview"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Recorder turns store mutations into RecordChanged events.
type Recorder struct {
	Producer Publisher
	Service  string
	Actor    string
	Now      func() time.Time
	NewID    func() string
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r *Recorder) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

// Watch publishes an event for every mutation of s.
func Watch[T any](r *Recorder, s *listview.Store[T]) {
	s.Subscribe(func(c listview.Change[T]) {
		p := RecordChangedPayload{
			Entity:   c.Entity,
			RecordID: c.ID,
			Op:       string(c.Op),
			Actor:    r.Actor,
		}
		var err error
		if p.Before, err = snapshot(c.Before); err != nil {
			log.Printf("audit %s/%d: %v", c.Entity, c.ID, err)
			return
		}
		if p.After, err = snapshot(c.After); err != nil {
			log.Printf("audit %s/%d: %v", c.Entity, c.ID, err)
			return
		}
		r.publish(p)
	})
}

func snapshot[T any](v *T) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *Recorder) publish(p RecordChangedPayload) {
	ev := Envelope{
		EventID:       r.newID(),
		EventType:     EventRecordChanged,
		EventVersion:  EventVersion,
		OccurredAt:    r.now(),
		Producer:      r.Service,
		CorrelationID: CorrelationID(p.Entity, p.RecordID),
		Payload:       kafkax.MustMarshal(p),
	}
	r.Producer.Publish(PartitionKey(p.Entity, p.RecordID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: HeaderEventType, Value: []byte(EventRecordChanged)},
		kafkago.Header{Key: HeaderEventVersion, Value: []byte(strconv.Itoa(EventVersion))},
	)
}
