package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/childpsy/adaptation-bot/internal/dialog"
	"github.com/childpsy/adaptation-bot/internal/domain/claims"
	"github.com/childpsy/adaptation-bot/internal/domain/consultations"
	"github.com/childpsy/adaptation-bot/internal/domain/users"
	httpx "github.com/childpsy/adaptation-bot/internal/infra/http"
	"github.com/childpsy/adaptation-bot/internal/infra/metrics"
	"github.com/childpsy/adaptation-bot/internal/verify"
)

// conflictBackoff — пауза перед повторным запуском long-poll после 409
// (второй активный поллер на том же токене).
const conflictBackoff = 5 * time.Second

// telegramAPI — используемое подмножество *tgbotapi.BotAPI; в тестах
// подменяется записывающим фейком.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type Bot struct {
	api       telegramAPI
	log       *slog.Logger
	users     users.Store
	states    dialog.Store
	claims    claims.Store
	consults  consultations.Store
	checker   verify.Checker
	adminChat int64

	minProblemLen int
	now           func() time.Time
}

func New(api telegramAPI, log *slog.Logger,
	usersStore users.Store, statesStore dialog.Store,
	claimsStore claims.Store, consultsStore consultations.Store,
	checker verify.Checker, adminChatID int64, minProblemLen int) *Bot {

	if minProblemLen < 1 {
		minProblemLen = 1
	}
	return &Bot{
		api: api, log: log, users: usersStore, states: statesStore,
		claims: claimsStore, consults: consultsStore,
		checker: checker, adminChat: adminChatID,
		minProblemLen: minProblemLen,
		now:           time.Now,
	}
}

// Run крутит long-poll до отмены контекста. Каждый апдейт обрабатывается
// до конца прежде, чем берётся следующий — порядок в пределах чата
// обеспечивает сам Telegram.
func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	b.syncPendingGauge(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := b.api.GetUpdates(u)
		if err != nil {
			if isConflict(err) {
				b.log.Warn("poll conflict, backing off", "err", err)
				metrics.PollRestarts.Inc()
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(conflictBackoff):
				}
				continue
			}
			b.log.Error("get updates failed", "err", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= u.Offset {
				u.Offset = upd.UpdateID + 1
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func isConflict(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.Code == 409 {
		return true
	}
	return strings.Contains(err.Error(), "Conflict")
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		metrics.UpdatesTotal.WithLabelValues("message").Inc()
		b.onMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		metrics.UpdatesTotal.WithLabelValues("callback").Inc()
		b.onCallback(ctx, upd.CallbackQuery)
	}
}

// send: ошибки доставки логируем и едем дальше — сессию они не роняют.
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	if _, err := b.api.Request(resp); err != nil {
		b.log.Error("answer callback failed", "err", err)
	}
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// syncPendingGauge выставляет метрику из хранилища: заявки latest-wins по
// чату и переживают рестарт, поэтому Inc/Dec насчитали бы мимо.
func (b *Bot) syncPendingGauge(ctx context.Context) {
	n, err := b.claims.CountPending(ctx)
	if err != nil {
		b.log.Error("count pending failed", "err", err)
		return
	}
	metrics.PendingReviews.Set(float64(n))
}

// StatsSnapshot отдаёт счётчики для HTTP-эндпоинта /stats.
func (b *Bot) StatsSnapshot(ctx context.Context) (httpx.Stats, error) {
	var s httpx.Stats
	var err error
	if s.Users, err = b.users.Count(ctx); err != nil {
		return s, err
	}
	if s.GuidesDelivered, err = b.claims.CountClaimed(ctx); err != nil {
		return s, err
	}
	if s.PendingReviews, err = b.claims.CountPending(ctx); err != nil {
		return s, err
	}
	return s, nil
}
