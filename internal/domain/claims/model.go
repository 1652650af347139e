package claims

import (
	"context"
	"time"
)

// Event — одна успешная выдача материала. Только добавляется, используется
// для отчётности.
type Event struct {
	ChatID    int64
	ItemKey   string
	Handle    string
	CreatedAt time.Time
}

// Pending — заявка, ушедшая на ручную проверку. Не больше одной на чат.
type Pending struct {
	ChatID    int64
	ItemKey   string
	Handle    string
	CreatedAt time.Time
}

type Store interface {
	// MarkClaimed добавляет ключ в множество выданного. Повторная выдача
	// того же ключа — no-op.
	MarkClaimed(ctx context.Context, chatID int64, itemKey string) error
	ListClaimed(ctx context.Context, chatID int64) ([]string, error)
	CountClaimed(ctx context.Context) (int64, error)

	RecordEvent(ctx context.Context, ev Event) error
	ListEventsAfter(ctx context.Context, t time.Time) ([]Event, error)

	SetPending(ctx context.Context, p Pending) error
	GetPending(ctx context.Context, chatID int64) (*Pending, error)
	DeletePending(ctx context.Context, chatID int64) error
	ListPending(ctx context.Context) ([]Pending, error)
	CountPending(ctx context.Context) (int64, error)
}
