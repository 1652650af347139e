package consultations

import (
	"context"
	"time"

	"github.com/childpsy/adaptation-bot/internal/i18n"
)

// Request — снимок заполненной заявки на консультацию. Создаётся один раз
// при подтверждении и дальше не меняется, поэтому переживает сброс мастера.
type Request struct {
	ID        int64
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
	Language  i18n.Lang
	Contact   string
	Age       string
	Problem   string
	CreatedAt time.Time
}

type Store interface {
	Create(ctx context.Context, r Request) error
	ListCreatedAfter(ctx context.Context, t time.Time) ([]Request, error)
	Count(ctx context.Context) (int64, error)
}
