package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/childpsy/adaptation-bot/internal/dialog"
	"github.com/childpsy/adaptation-bot/internal/domain/consultations"
	"github.com/childpsy/adaptation-bot/internal/domain/users"
	"github.com/childpsy/adaptation-bot/internal/i18n"
	"github.com/childpsy/adaptation-bot/internal/infra/metrics"
)

const (
	payloadContact = "contact"
	payloadAge     = "age"
	payloadProblem = "problem"

	maxAgeLen = 20
)

func (b *Bot) startConsult(ctx context.Context, chatID int64, lang i18n.Lang) {
	if err := b.states.Set(ctx, chatID, dialog.StateConsultContact, dialog.Payload{}); err != nil {
		b.log.Error("set state failed", "chat", chatID, "err", err)
		return
	}
	m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConsultStart))
	m.ReplyMarkup = consultContactKeyboard(lang)
	b.send(m)
}

// handleConsultMessage — ввод очередного шага мастера записи.
func (b *Bot) handleConsultMessage(ctx context.Context, msg *tgbotapi.Message, u *users.User, st *dialog.Item) {
	chatID := msg.Chat.ID
	lang := u.Language

	switch st.State {
	case dialog.StateConsultContact:
		contact := strings.TrimSpace(msg.Text)
		if msg.Contact != nil && msg.Contact.PhoneNumber != "" {
			contact = msg.Contact.PhoneNumber
			if !strings.HasPrefix(contact, "+") {
				contact = "+" + contact
			}
		}
		if contact == "" {
			b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyEmptyInput)))
			return
		}
		st.Payload[payloadContact] = contact
		if err := b.states.Set(ctx, chatID, dialog.StateConsultAge, st.Payload); err != nil {
			b.log.Error("set state failed", "chat", chatID, "err", err)
			return
		}
		m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConsultAge))
		m.ReplyMarkup = cancelKeyboard(lang)
		b.send(m)

	case dialog.StateConsultAge:
		age := strings.TrimSpace(msg.Text)
		if age == "" {
			b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyEmptyInput)))
			return
		}
		if len([]rune(age)) > maxAgeLen {
			b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyAgeTooLong)))
			return
		}
		st.Payload[payloadAge] = age
		if err := b.states.Set(ctx, chatID, dialog.StateConsultProblem, st.Payload); err != nil {
			b.log.Error("set state failed", "chat", chatID, "err", err)
			return
		}
		m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConsultProblem))
		m.ReplyMarkup = cancelKeyboard(lang)
		b.send(m)

	case dialog.StateConsultProblem:
		problem := strings.TrimSpace(msg.Text)
		if len([]rune(problem)) < b.minProblemLen {
			b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyProblemTooShort)))
			return
		}
		st.Payload[payloadProblem] = problem
		if err := b.states.Set(ctx, chatID, dialog.StateConsultReview, st.Payload); err != nil {
			b.log.Error("set state failed", "chat", chatID, "err", err)
			return
		}
		b.sendConsultReview(chatID, lang, st.Payload)

	case dialog.StateConsultReview:
		// На экране подтверждения текст не принимаем, только кнопки.
		b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConsultUseButtons)))
	}
}

func (b *Bot) sendConsultReview(chatID int64, lang i18n.Lang, p dialog.Payload) {
	contact, _ := dialog.GetString(p, payloadContact)
	age, _ := dialog.GetString(p, payloadAge)
	problem, _ := dialog.GetString(p, payloadProblem)

	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(i18n.T(lang, i18n.KeyConsultReview), contact, age, problem))
	m.ReplyMarkup = reviewKeyboard(lang)
	b.send(m)
}

// handleConsultAction — инлайн-кнопки экрана подтверждения. Вне состояния
// review все три глагола игнорируются: колбэк мог пережить сброс мастера.
func (b *Bot) handleConsultAction(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, verb string) {
	chatID := cb.Message.Chat.ID
	lang := u.Language

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get dialog state failed", "chat", chatID, "err", err)
		b.answerCallback(cb, "")
		return
	}
	if st.State != dialog.StateConsultReview {
		b.answerCallback(cb, "")
		return
	}

	switch verb {
	case "confirm":
		contact, _ := dialog.GetString(st.Payload, payloadContact)
		age, _ := dialog.GetString(st.Payload, payloadAge)
		problem, _ := dialog.GetString(st.Payload, payloadProblem)

		req := consultations.Request{
			ChatID:    chatID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Language:  lang,
			Contact:   contact,
			Age:       age,
			Problem:   problem,
			CreatedAt: b.now(),
		}
		if err := b.consults.Create(ctx, req); err != nil {
			b.log.Error("create consultation failed", "chat", chatID, "err", err)
			b.answerCallback(cb, "")
			return
		}
		_ = b.states.Reset(ctx, chatID)
		metrics.ConsultationsTotal.Inc()

		b.answerCallback(cb, "")
		b.editTextAndClear(chatID, cb.Message.MessageID, cb.Message.Text)

		m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConsultDone))
		m.ReplyMarkup = mainKeyboard(lang)
		b.send(m)

		b.notifyConsultation(req)

	case "edit":
		// Начинаем заново с контакта, собранное отбрасываем.
		if err := b.states.Set(ctx, chatID, dialog.StateConsultContact, dialog.Payload{}); err != nil {
			b.log.Error("set state failed", "chat", chatID, "err", err)
			b.answerCallback(cb, "")
			return
		}
		b.answerCallback(cb, "")
		m := tgbotapi.NewMessage(chatID, i18n.T(lang, i18n.KeyConsultStart))
		m.ReplyMarkup = consultContactKeyboard(lang)
		b.send(m)

	case "cancel":
		b.answerCallback(cb, "")
		b.cancelWizard(ctx, chatID, lang)
	}
}

func (b *Bot) notifyConsultation(req consultations.Request) {
	if b.adminChat == 0 {
		return
	}
	text := fmt.Sprintf("🗓 Новая заявка на консультацию\n\n👤 %s %s (@%s)\n💬 chat_id: %d\n📞 Контакт: %s\n👶 Возраст ребёнка: %s\n📝 Запрос: %s",
		req.FirstName, req.LastName, req.Username, req.ChatID, req.Contact, req.Age, req.Problem)
	b.send(tgbotapi.NewMessage(b.adminChat, text))
}
