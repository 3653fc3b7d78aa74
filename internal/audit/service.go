package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/agri-admin/internal/kafka"
	"github.com/ariefcatur/agri-admin/internal/redisx"
)

// Writer is satisfied by *Repo.
type Writer interface {
	Insert(ctx context.Context, e Entry) (bool, error)
}

// Service consumes RecordChanged events into the audit log.
type Service struct {
	Repo        Writer
	Redis       *redis.Client // optional fast-path dedup
	ServiceName string
}

// HandleRecordChanged is installed as the consumer handler.
func (s *Service) HandleRecordChanged(ctx context.Context, m kafkago.Message) error {
	if t := kafkax.Header(m, HeaderEventType); t != "" && t != EventRecordChanged {
		return nil
	}
	var env Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// poison message, committing it is the only way forward
		log.Printf("audit: skip undecodable message at offset %d: %v", m.Offset, err)
		return nil
	}
	if env.EventType != EventRecordChanged {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if s.Redis != nil {
		if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
			return nil
		}
	}

	p, err := kafkax.UnwrapPayload[RecordChangedPayload](env.Payload)
	if err != nil {
		log.Printf("audit: skip event %s: %v", env.EventID, err)
		return nil
	}

	// the unique event_id keeps redelivery idempotent even without redis
	if _, err := s.Repo.Insert(ctx, Entry{
		EventID:    env.EventID,
		Entity:     p.Entity,
		RecordID:   p.RecordID,
		Op:         p.Op,
		Actor:      p.Actor,
		Producer:   env.Producer,
		OccurredAt: env.OccurredAt,
		Before:     p.Before,
		After:      p.After,
	}); err != nil {
		return fmt.Errorf("insert audit %s: %w", env.EventID, err)
	}

	if s.Redis != nil {
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}
	return nil
}
