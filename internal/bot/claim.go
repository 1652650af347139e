package bot

import (
	"context"
	"fmt"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/childpsy/adaptation-bot/internal/catalog"
	"github.com/childpsy/adaptation-bot/internal/dialog"
	"github.com/childpsy/adaptation-bot/internal/domain/claims"
	"github.com/childpsy/adaptation-bot/internal/domain/users"
	"github.com/childpsy/adaptation-bot/internal/i18n"
	"github.com/childpsy/adaptation-bot/internal/infra/metrics"
	"github.com/childpsy/adaptation-bot/internal/verify"
)

const payloadItemKey = "item_key"

func (b *Bot) showClaimMenu(chatID int64, lang i18n.Lang) {
	text := "Що тебе цікавить? 👇"
	if lang == i18n.LangRU {
		text = "Что тебя интересует? 👇"
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = claimMenuKeyboard(lang)
	b.send(m)
}

// Пользователь выбрал материал из каталога. Уже выданное отдаём повторно
// без проверки, новое — через экран условий.
func (b *Bot) handleClaimPick(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, itemKey string) {
	chatID := cb.Message.Chat.ID
	item, ok := catalog.Get(itemKey)
	if !ok {
		b.answerCallback(cb, "")
		return
	}
	lang := u.Language

	claimed, err := b.claims.ListClaimed(ctx, chatID)
	if err != nil {
		b.log.Error("list claimed failed", "chat", chatID, "err", err)
	}
	if slices.Contains(claimed, itemKey) {
		b.answerCallback(cb, "")
		loc := item.In(lang)
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(i18n.T(lang, i18n.KeySuccess), loc.Title, loc.URL)))
		return
	}

	b.answerCallback(cb, "")
	m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConditions))
	m.ReplyMarkup = conditionsKeyboard(lang, itemKey)
	b.send(m)
}

// Кнопка «я виконав умови»: переходим в режим ожидания username.
func (b *Bot) handleVerifyStart(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, itemKey string) {
	chatID := cb.Message.Chat.ID
	if _, ok := catalog.Get(itemKey); !ok {
		b.answerCallback(cb, "")
		return
	}
	if err := b.states.Set(ctx, chatID, dialog.StateAwaitProof, dialog.Payload{payloadItemKey: itemKey}); err != nil {
		b.log.Error("set state failed", "chat", chatID, "err", err)
		b.answerCallback(cb, "")
		return
	}
	b.answerCallback(cb, "")
	m := tgbotapi.NewMessage(chatID, i18n.T(u.Language, i18n.KeyEnterUsername))
	m.ReplyMarkup = cancelKeyboard(u.Language)
	b.send(m)
}

// handleProofInput — текст, пришедший в состоянии await_proof.
func (b *Bot) handleProofInput(ctx context.Context, msg *tgbotapi.Message, u *users.User, st *dialog.Item) {
	chatID := msg.Chat.ID
	lang := u.Language

	handle, ok := verify.NormalizeHandle(msg.Text)
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyInvalidUsername)))
		return
	}
	itemKey, _ := dialog.GetString(st.Payload, payloadItemKey)
	item, found := catalog.Get(itemKey)
	if !found {
		// состояние пережило каталог; сбрасываем без выдачи
		_ = b.states.Reset(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyUseMenu))
		m.ReplyMarkup = mainKeyboard(lang)
		b.send(m)
		return
	}

	if err := b.users.SetInstagram(ctx, chatID, handle); err != nil {
		b.log.Error("set instagram failed", "chat", chatID, "err", err)
	}
	b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyChecking)))

	approved, err := b.checker.Check(ctx, handle)
	if err != nil {
		b.log.Error("verify check failed", "chat", chatID, "handle", handle, "err", err)
		approved = false
	}

	if approved {
		b.deliver(ctx, chatID, lang, item, handle)
		return
	}

	// На ручную проверку: фиксируем заявку и уведомляем оператора.
	if err := b.claims.SetPending(ctx, claims.Pending{
		ChatID:    chatID,
		ItemKey:   itemKey,
		Handle:    handle,
		CreatedAt: b.now(),
	}); err != nil {
		b.log.Error("set pending failed", "chat", chatID, "err", err)
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.syncPendingGauge(ctx)

	m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyManualReview))
	m.ReplyMarkup = mainKeyboard(lang)
	b.send(m)

	b.notifyPendingReview(u, item, handle)
}

// deliver — успешная выдача: помечаем, пишем событие, шлём ссылку.
func (b *Bot) deliver(ctx context.Context, chatID int64, lang i18n.Lang, item catalog.Item, handle string) {
	if err := b.claims.MarkClaimed(ctx, chatID, item.Key); err != nil {
		b.log.Error("mark claimed failed", "chat", chatID, "item", item.Key, "err", err)
		return
	}
	if err := b.claims.RecordEvent(ctx, claims.Event{
		ChatID:    chatID,
		ItemKey:   item.Key,
		Handle:    handle,
		CreatedAt: b.now(),
	}); err != nil {
		b.log.Error("record claim event failed", "chat", chatID, "err", err)
	}
	_ = b.states.Reset(ctx, chatID)
	metrics.GuidesDelivered.Inc()

	loc := item.In(lang)
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(i18n.T(lang, i18n.KeySuccess), loc.Title, loc.URL))
	m.ReplyMarkup = mainKeyboard(lang)
	b.send(m)
}

func (b *Bot) notifyPendingReview(u *users.User, item catalog.Item, handle string) {
	if b.adminChat == 0 {
		return
	}
	text := fmt.Sprintf("🔔 Новая заявка на проверку\n\n👤 %s %s (@%s)\n💬 chat_id: %d\n📸 Instagram: @%s\n📦 Материал: %s",
		u.FirstName, u.LastName, u.Username, u.ChatID, handle, item.Key)
	m := tgbotapi.NewMessage(b.adminChat, text)
	m.ReplyMarkup = adminReviewKeyboard(u.ChatID)
	b.send(m)
}
