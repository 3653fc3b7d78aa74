package redisx

import "time"

const (
	// Store snapshot: admin:snapshot:{entity} -> JSON array of records
	KeySnapshot = "admin:snapshot:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLSnapshot = 30 * 24 * time.Hour
	TTLDedup    = 48 * time.Hour
)
