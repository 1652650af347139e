package claims

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) MarkClaimed(ctx context.Context, chatID int64, itemKey string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_claims (chat_id, item_key) VALUES ($1,$2)
		ON CONFLICT (chat_id, item_key) DO NOTHING
	`, chatID, itemKey)
	return err
}

func (r *Repo) ListClaimed(ctx context.Context, chatID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT item_key FROM user_claims WHERE chat_id = $1`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *Repo) CountClaimed(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM user_claims`).Scan(&n)
	return n, err
}

func (r *Repo) RecordEvent(ctx context.Context, ev Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO claim_events (chat_id, item_key, handle, created_at)
		VALUES ($1,$2,$3,$4)
	`, ev.ChatID, ev.ItemKey, ev.Handle, ev.CreatedAt)
	return err
}

func (r *Repo) ListEventsAfter(ctx context.Context, t time.Time) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT chat_id, item_key, handle, created_at
		FROM claim_events WHERE created_at >= $1 ORDER BY created_at
	`, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ChatID, &ev.ItemKey, &ev.Handle, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *Repo) SetPending(ctx context.Context, p Pending) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pending_claims (chat_id, item_key, handle, created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (chat_id) DO UPDATE SET
		  item_key=$2, handle=$3, created_at=$4
	`, p.ChatID, p.ItemKey, p.Handle, p.CreatedAt)
	return err
}

func (r *Repo) GetPending(ctx context.Context, chatID int64) (*Pending, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT chat_id, item_key, handle, created_at FROM pending_claims WHERE chat_id = $1
	`, chatID)
	var p Pending
	if err := row.Scan(&p.ChatID, &p.ItemKey, &p.Handle, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) DeletePending(ctx context.Context, chatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pending_claims WHERE chat_id = $1`, chatID)
	return err
}

func (r *Repo) ListPending(ctx context.Context) ([]Pending, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT chat_id, item_key, handle, created_at FROM pending_claims ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Pending
	for rows.Next() {
		var p Pending
		if err := rows.Scan(&p.ChatID, &p.ItemKey, &p.Handle, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM pending_claims`).Scan(&n)
	return n, err
}
