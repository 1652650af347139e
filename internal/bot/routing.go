package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/childpsy/adaptation-bot/internal/dialog"
	"github.com/childpsy/adaptation-bot/internal/domain/users"
	"github.com/childpsy/adaptation-bot/internal/i18n"
)

// onMessage — единая точка входа для текстов, команд и контактов.
// Порядок: команды -> глобальная отмена -> активный мастер -> меню.
func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID

	u, err := b.users.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get user failed", "chat", chatID, "err", err)
		return
	}
	if u == nil || msg.Command() == "start" {
		// первый контакт либо /start: создаём запись / освежаем профиль
		u, err = b.users.Upsert(ctx, users.Telegram{
			ChatID:    chatID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		})
		if err != nil {
			b.log.Error("upsert user failed", "chat", chatID, "err", err)
			return
		}
	} else {
		_ = b.users.Touch(ctx, chatID, b.now())
	}
	lang := u.Language

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			_ = b.states.Reset(ctx, chatID)
			b.send(msgWithInline(chatID, "Выберите язык / Оберіть мову:", languageKeyboard()))
		case "cancel":
			b.cancelWizard(ctx, chatID, lang)
		case "admin", "users", "export", "today", "pending", "report":
			b.handleAdminCommand(ctx, msg, lang)
		default:
			m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyUseMenu))
			m.ReplyMarkup = mainKeyboard(lang)
			b.send(m)
		}
		return
	}

	// Глобальная отмена работает на любом шаге любого мастера.
	if i18n.IsCancel(msg.Text) {
		b.cancelWizard(ctx, chatID, lang)
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get dialog state failed", "chat", chatID, "err", err)
		st = &dialog.Item{ChatID: chatID, State: dialog.StateIdle, Payload: dialog.Payload{}}
	}
	switch {
	case st.State == dialog.StateAwaitProof:
		b.handleProofInput(ctx, msg, u, st)
		return
	case st.State.InConsult():
		b.handleConsultMessage(ctx, msg, u, st)
		return
	}

	switch msg.Text {
	case i18n.BtnGetGuideUA, i18n.BtnGetGuideRU:
		b.showClaimMenu(chatID, lang)
	case i18n.BtnConditionsUA, i18n.BtnConditionsRU:
		m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConditions))
		m.ReplyMarkup = conditionsKeyboard(lang, "")
		b.send(m)
	case i18n.BtnLanguageUA, i18n.BtnLanguageRU:
		b.send(msgWithInline(chatID, "Выберите язык / Оберіть мову:", languageKeyboard()))
	case i18n.BtnAboutUA, i18n.BtnAboutRU:
		b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyAbout)))
	case i18n.BtnContactsUA, i18n.BtnContactsRU:
		b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyContacts)))
	case i18n.BtnConsultUA, i18n.BtnConsultRU:
		b.startConsult(ctx, chatID, lang)
	default:
		m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyUseMenu))
		m.ReplyMarkup = mainKeyboard(lang)
		b.send(m)
	}
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	act, ok := ParseAction(cb.Data)
	if !ok {
		b.answerCallback(cb, "")
		return
	}

	if act.Kind == ActionAdmin {
		b.handleAdminAction(ctx, cb, act)
		return
	}

	u, err := b.users.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get user failed", "chat", chatID, "err", err)
		b.answerCallback(cb, "")
		return
	}
	if u == nil {
		u, err = b.users.Upsert(ctx, users.Telegram{
			ChatID:    chatID,
			Username:  cb.From.UserName,
			FirstName: cb.From.FirstName,
			LastName:  cb.From.LastName,
		})
		if err != nil {
			b.log.Error("upsert user failed", "chat", chatID, "err", err)
			b.answerCallback(cb, "")
			return
		}
	} else {
		_ = b.users.Touch(ctx, chatID, b.now())
	}

	switch act.Kind {
	case ActionLang:
		b.handleLanguagePick(ctx, cb, act.Lang)
	case ActionClaim:
		b.handleClaimPick(ctx, cb, u, act.ItemKey)
	case ActionVerify:
		b.handleVerifyStart(ctx, cb, u, act.ItemKey)
	case ActionConsult:
		b.handleConsultAction(ctx, cb, u, act.Verb)
	}
}

// Смена языка доступна всегда; активный мастер при этом сбрасывается,
// чтобы не продолжать диалог промптами на старом языке.
func (b *Bot) handleLanguagePick(ctx context.Context, cb *tgbotapi.CallbackQuery, lang i18n.Lang) {
	chatID := cb.Message.Chat.ID
	if err := b.users.SetLanguage(ctx, chatID, lang); err != nil {
		b.log.Error("set language failed", "chat", chatID, "err", err)
	}
	_ = b.states.Reset(ctx, chatID)

	// убираем сообщение с выбором языка и показываем приветствие с условиями
	b.send(tgbotapi.NewDeleteMessage(chatID, cb.Message.MessageID))
	b.answerCallback(cb, i18n.T(lang, i18n.KeyLangChanged))

	m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyWelcome))
	m.ReplyMarkup = mainKeyboard(lang)
	b.send(m)

	cond := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConditions))
	cond.ReplyMarkup = conditionsKeyboard(lang, "")
	b.send(cond)
}

func (b *Bot) cancelWizard(ctx context.Context, chatID int64, lang i18n.Lang) {
	_ = b.states.Reset(ctx, chatID)
	m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyCancelled))
	m.ReplyMarkup = mainKeyboard(lang)
	b.send(m)
}

func msgWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) tgbotapi.MessageConfig {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	return m
}
