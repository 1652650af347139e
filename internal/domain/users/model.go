package users

import (
	"context"
	"time"

	"github.com/childpsy/adaptation-bot/internal/i18n"
)

// User — одна запись на чат. Создаётся лениво при первом апдейте,
// профиль обновляется из Telegram на каждом /start.
type User struct {
	ChatID       int64
	Username     string
	FirstName    string
	LastName     string
	Language     i18n.Lang
	Instagram    string
	CreatedAt    time.Time
	LastActivity time.Time
}

// Telegram — метаданные отправителя из апдейта.
type Telegram struct {
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

type Store interface {
	// Upsert создаёт запись с языком по умолчанию либо освежает профиль
	// существующей, не трогая выбранный язык.
	Upsert(ctx context.Context, tg Telegram) (*User, error)
	Get(ctx context.Context, chatID int64) (*User, error)
	SetLanguage(ctx context.Context, chatID int64, lang i18n.Lang) error
	SetInstagram(ctx context.Context, chatID int64, handle string) error
	// Touch освежает last_activity; вызывается на каждом входящем апдейте.
	Touch(ctx context.Context, chatID int64, at time.Time) error
	List(ctx context.Context) ([]User, error)
	ListCreatedAfter(ctx context.Context, t time.Time) ([]User, error)
	Count(ctx context.Context) (int64, error)
}
