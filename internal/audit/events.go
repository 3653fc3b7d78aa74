package audit

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	EventRecordChanged = "RecordChanged"
	EventVersion       = 1

	TopicAdminAudit = "admin.audit"

	HeaderEventType    = "x-event-type"
	HeaderEventVersion = "x-event-version"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // entity/id
	Payload       json.RawMessage `json:"payload"`
}

type RecordChangedPayload struct {
	Entity   string          `json:"entity"`
	RecordID int64           `json:"record_id"`
	Op       string          `json:"op"`
	Actor    string          `json:"actor"`
	Before   json.RawMessage `json:"before,omitempty"`
	After    json.RawMessage `json:"after,omitempty"`
}

// Entry is one row of the audit log.
type Entry struct {
	EventID    string          `json:"event_id"`
	Entity     string          `json:"entity"`
	RecordID   int64           `json:"record_id"`
	Op         string          `json:"op"`
	Actor      string          `json:"actor"`
	Producer   string          `json:"producer"`
	OccurredAt time.Time       `json:"occurred_at"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

// Filter narrows audit log reads. Zero fields match everything.
type Filter struct {
	Entity   string
	RecordID int64
	Op       string
}

// PartitionKey keeps every event of one record on the same partition.
func PartitionKey(entity string, id int64) []byte {
	return []byte(CorrelationID(entity, id))
}

func CorrelationID(entity string, id int64) string {
	return entity + "/" + strconv.FormatInt(id, 10)
}
