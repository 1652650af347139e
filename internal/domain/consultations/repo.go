package consultations

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/childpsy/adaptation-bot/internal/i18n"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, req Request) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO consultation_requests
			(chat_id, username, first_name, last_name, language, contact, age, problem, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, req.ChatID, req.Username, req.FirstName, req.LastName, string(req.Language),
		req.Contact, req.Age, req.Problem, req.CreatedAt)
	return err
}

func (r *Repo) ListCreatedAfter(ctx context.Context, t time.Time) ([]Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, chat_id, username, first_name, last_name, language, contact, age, problem, created_at
		FROM consultation_requests WHERE created_at >= $1 ORDER BY created_at
	`, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Request
	for rows.Next() {
		var req Request
		var lang string
		if err := rows.Scan(&req.ID, &req.ChatID, &req.Username, &req.FirstName, &req.LastName,
			&lang, &req.Contact, &req.Age, &req.Problem, &req.CreatedAt); err != nil {
			return nil, err
		}
		req.Language = i18n.Lang(lang)
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM consultation_requests`).Scan(&n)
	return n, err
}
