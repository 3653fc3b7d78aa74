package audit

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

type Repo struct{ DB *pgxpool.Pool }

// EnsureSchema creates the audit_log table when it is missing.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("audit schema: %w", err)
	}
	return nil
}

// Insert stores e once; a replayed event_id reports false.
func (r *Repo) Insert(ctx context.Context, e Entry) (bool, error) {
	tag, err := r.DB.Exec(ctx, `
		INSERT INTO audit_log (event_id, entity, record_id, op, actor, producer, occurred_at, before, after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (event_id) DO NOTHING`,
		e.EventID, e.Entity, e.RecordID, e.Op, e.Actor, e.Producer, e.OccurredAt,
		nullJSON(e.Before), nullJSON(e.After))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// List returns one page of entries, newest first, and the total match count.
func (r *Repo) List(ctx context.Context, f Filter, limit, offset int) ([]Entry, int, error) {
	where, args := f.where()

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT count(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.DB.Query(ctx, fmt.Sprintf(`
		SELECT event_id::text, entity, record_id, op, actor, producer, occurred_at, before, after
		FROM audit_log%s
		ORDER BY occurred_at DESC, event_id
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.EventID, &e.Entity, &e.RecordID, &e.Op, &e.Actor, &e.Producer,
			&e.OccurredAt, &e.Before, &e.After); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.Entity != "" {
		add("entity", f.Entity)
	}
	if f.RecordID != 0 {
		add("record_id", f.RecordID)
	}
	if f.Op != "" {
		add("op", f.Op)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
