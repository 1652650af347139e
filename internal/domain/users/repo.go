package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/childpsy/adaptation-bot/internal/i18n"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const userCols = `chat_id, username, first_name, last_name, language, instagram, created_at, last_activity`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var lang string
	if err := row.Scan(&u.ChatID, &u.Username, &u.FirstName, &u.LastName, &lang, &u.Instagram, &u.CreatedAt, &u.LastActivity); err != nil {
		return nil, err
	}
	u.Language = i18n.Lang(lang)
	return &u, nil
}

func (r *Repo) Get(ctx context.Context, chatID int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE chat_id = $1`, chatID)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// Upsert по Telegram-профилю. Язык существующего пользователя не понижаем
// до дефолтного — меняется он только явным выбором.
func (r *Repo) Upsert(ctx context.Context, tg Telegram) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (chat_id, username, first_name, last_name, language)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (chat_id)
		DO UPDATE SET
			username      = EXCLUDED.username,
			first_name    = EXCLUDED.first_name,
			last_name     = EXCLUDED.last_name,
			last_activity = now()
		RETURNING `+userCols+`
	`, tg.ChatID, tg.Username, tg.FirstName, tg.LastName, string(i18n.Default))
	return scanUser(row)
}

func (r *Repo) SetLanguage(ctx context.Context, chatID int64, lang i18n.Lang) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET language = $2, last_activity = now() WHERE chat_id = $1`, chatID, string(lang))
	return err
}

func (r *Repo) SetInstagram(ctx context.Context, chatID int64, handle string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET instagram = $2, last_activity = now() WHERE chat_id = $1`, chatID, handle)
	return err
}

func (r *Repo) Touch(ctx context.Context, chatID int64, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_activity = $2 WHERE chat_id = $1`, chatID, at)
	return err
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	return r.list(ctx, `SELECT `+userCols+` FROM users ORDER BY created_at`)
}

func (r *Repo) ListCreatedAfter(ctx context.Context, t time.Time) ([]User, error) {
	return r.list(ctx, `SELECT `+userCols+` FROM users WHERE created_at >= $1 ORDER BY created_at`, t)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]User, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}
