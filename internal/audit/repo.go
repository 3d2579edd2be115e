// Package audit records which administrator did what to which order.
// Console-owned telemetry only; best-effort, never blocks the admin action.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionReorder = "reorder"
)

type Entry struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	OrderID    int64     `json:"order_id"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Record(ctx context.Context, actor, action string, orderID int64, detail string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO admin_audit(id, actor, action, order_id, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, uuid.NewString(), actor, action, orderID, detail)
	return err
}

func (r *Repo) ListByOrder(ctx context.Context, orderID int64) ([]Entry, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, actor, action, order_id, detail, occurred_at
		FROM admin_audit WHERE order_id = $1 ORDER BY occurred_at DESC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.OrderID, &e.Detail, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
