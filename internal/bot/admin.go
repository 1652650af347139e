package bot

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/childpsy/adaptation-bot/internal/catalog"
	"github.com/childpsy/adaptation-bot/internal/domain/claims"
	"github.com/childpsy/adaptation-bot/internal/i18n"
	"github.com/childpsy/adaptation-bot/internal/infra/metrics"
)

// Сообщения длиннее лимита Telegram режем заранее, с запасом на разметку.
const chunkLimit = 3500

func (b *Bot) isOperator(chatID int64) bool {
	return b.adminChat != 0 && chatID == b.adminChat
}

func (b *Bot) handleAdminCommand(ctx context.Context, msg *tgbotapi.Message, lang i18n.Lang) {
	if !b.isOperator(msg.Chat.ID) {
		// для остальных операторские команды выглядят как незнакомые
		b.send(tgbotapi.NewMessage(msg.Chat.ID, i18n.T(lang, i18n.KeyUseMenu)))
		return
	}
	switch msg.Command() {
	case "admin":
		b.adminStats(ctx, msg.Chat.ID)
	case "users":
		b.adminUsers(ctx, msg.Chat.ID)
	case "export":
		b.adminExport(ctx, msg.Chat.ID)
	case "today":
		b.adminToday(ctx, msg.Chat.ID)
	case "pending":
		b.adminPending(ctx, msg.Chat.ID)
	case "report":
		b.adminReport(ctx, msg.Chat.ID, msg.CommandArguments())
	}
}

func (b *Bot) adminStats(ctx context.Context, chatID int64) {
	list, err := b.users.List(ctx)
	if err != nil {
		b.log.Error("list users failed", "err", err)
	}
	var withInstagram int
	for _, u := range list {
		if u.Instagram != "" {
			withInstagram++
		}
	}
	delivered, err := b.claims.CountClaimed(ctx)
	if err != nil {
		b.log.Error("count claimed failed", "err", err)
	}
	pending, err := b.claims.CountPending(ctx)
	if err != nil {
		b.log.Error("count pending failed", "err", err)
	}
	consults, err := b.consults.Count(ctx)
	if err != nil {
		b.log.Error("count consultations failed", "err", err)
	}
	text := fmt.Sprintf("📊 Статистика\n\n👥 Пользователей: %d\n📸 С Instagram: %d\n📖 Выдано материалов: %d\n⏳ На проверке: %d\n🗓 Заявок на консультацию: %d",
		len(list), withInstagram, delivered, pending, consults)
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) adminUsers(ctx context.Context, chatID int64) {
	list, err := b.users.List(ctx)
	if err != nil {
		b.log.Error("list users failed", "err", err)
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Пользователей пока нет."))
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Пользователи (%d):\n\n", len(list)))
	for i, u := range list {
		line := fmt.Sprintf("%d. %s %s @%s | ig: @%s | %s | %s\n",
			i+1, u.FirstName, u.LastName, u.Username, u.Instagram, u.Language,
			u.CreatedAt.Format("02.01.2006"))
		if sb.Len()+len(line) > chunkLimit {
			b.send(tgbotapi.NewMessage(chatID, sb.String()))
			sb.Reset()
		}
		sb.WriteString(line)
	}
	if sb.Len() > 0 {
		b.send(tgbotapi.NewMessage(chatID, sb.String()))
	}
}

// adminExport — выгрузка пользователей в CSV одним файлом.
func (b *Bot) adminExport(ctx context.Context, chatID int64) {
	list, err := b.users.List(ctx)
	if err != nil {
		b.log.Error("list users failed", "err", err)
		return
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"chat_id", "username", "first_name", "last_name", "language", "instagram", "created_at", "last_activity"})
	for _, u := range list {
		_ = w.Write([]string{
			strconv.FormatInt(u.ChatID, 10),
			u.Username,
			u.FirstName,
			u.LastName,
			string(u.Language),
			u.Instagram,
			u.CreatedAt.Format(time.RFC3339),
			u.LastActivity.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		b.log.Error("write csv failed", "err", err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("users_%s.csv", b.now().Format("2006-01-02")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("Экспорт пользователей: %d", len(list))
	b.send(doc)
}

func (b *Bot) adminToday(ctx context.Context, chatID int64) {
	now := b.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	newUsers, err := b.users.ListCreatedAfter(ctx, midnight)
	if err != nil {
		b.log.Error("list users failed", "err", err)
	}
	events, err := b.claims.ListEventsAfter(ctx, midnight)
	if err != nil {
		b.log.Error("list claim events failed", "err", err)
	}
	consults, err := b.consults.ListCreatedAfter(ctx, midnight)
	if err != nil {
		b.log.Error("list consultations failed", "err", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 Сегодня, %s\n\n", now.Format("02.01.2006")))
	sb.WriteString(fmt.Sprintf("👥 Новых пользователей: %d\n", len(newUsers)))
	sb.WriteString(fmt.Sprintf("📖 Выдач материалов: %d\n", len(events)))
	sb.WriteString(fmt.Sprintf("🗓 Заявок на консультацию: %d\n", len(consults)))
	for _, c := range consults {
		sb.WriteString(fmt.Sprintf("\n• %s %s (@%s), контакт %s", c.FirstName, c.LastName, c.Username, c.Contact))
	}
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}

// adminPending — заявки на ручной проверке, каждая со своими кнопками.
func (b *Bot) adminPending(ctx context.Context, chatID int64) {
	list, err := b.claims.ListPending(ctx)
	if err != nil {
		b.log.Error("list pending failed", "err", err)
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Заявок на проверке нет. 👌"))
		return
	}
	for _, p := range list {
		name := ""
		if u, err := b.users.Get(ctx, p.ChatID); err == nil && u != nil {
			name = fmt.Sprintf("%s %s (@%s)", u.FirstName, u.LastName, u.Username)
		}
		text := fmt.Sprintf("⏳ Заявка от %s\n💬 chat_id: %d\n📸 Instagram: @%s\n📦 Материал: %s\n🕐 %s",
			name, p.ChatID, p.Handle, p.ItemKey, p.CreatedAt.Format("02.01.2006 15:04"))
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = adminReviewKeyboard(p.ChatID)
		b.send(m)
	}
}

// adminReport собирает xlsx-отчёт за период (в днях, по умолчанию 7).
func (b *Bot) adminReport(ctx context.Context, chatID int64, args string) {
	days := 7
	if v, err := strconv.Atoi(strings.TrimSpace(args)); err == nil && v > 0 {
		days = v
	}
	since := b.now().AddDate(0, 0, -days)

	events, err := b.claims.ListEventsAfter(ctx, since)
	if err != nil {
		b.log.Error("list claim events failed", "err", err)
		return
	}
	consults, err := b.consults.ListCreatedAfter(ctx, since)
	if err != nil {
		b.log.Error("list consultations failed", "err", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const deliveries = "Выдачи"
	idx, err := f.NewSheet(deliveries)
	if err != nil {
		b.log.Error("build report failed", "err", err)
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"chat_id", "Материал", "Instagram", "Дата"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(deliveries, cell, h)
	}
	for i, ev := range events {
		row := i + 2
		_ = f.SetCellValue(deliveries, fmt.Sprintf("A%d", row), ev.ChatID)
		_ = f.SetCellValue(deliveries, fmt.Sprintf("B%d", row), ev.ItemKey)
		_ = f.SetCellValue(deliveries, fmt.Sprintf("C%d", row), "@"+ev.Handle)
		_ = f.SetCellValue(deliveries, fmt.Sprintf("D%d", row), ev.CreatedAt.Format("02.01.2006 15:04"))
	}

	const consultSheet = "Консультации"
	if _, err := f.NewSheet(consultSheet); err != nil {
		b.log.Error("build report failed", "err", err)
		return
	}
	cheaders := []string{"chat_id", "Имя", "Контакт", "Возраст", "Запрос", "Дата"}
	for i, h := range cheaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(consultSheet, cell, h)
	}
	for i, c := range consults {
		row := i + 2
		_ = f.SetCellValue(consultSheet, fmt.Sprintf("A%d", row), c.ChatID)
		_ = f.SetCellValue(consultSheet, fmt.Sprintf("B%d", row), strings.TrimSpace(c.FirstName+" "+c.LastName))
		_ = f.SetCellValue(consultSheet, fmt.Sprintf("C%d", row), c.Contact)
		_ = f.SetCellValue(consultSheet, fmt.Sprintf("D%d", row), c.Age)
		_ = f.SetCellValue(consultSheet, fmt.Sprintf("E%d", row), c.Problem)
		_ = f.SetCellValue(consultSheet, fmt.Sprintf("F%d", row), c.CreatedAt.Format("02.01.2006 15:04"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.log.Error("write report failed", "err", err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("report_%s.xlsx", b.now().Format("2006-01-02")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("Отчёт за %d дн.: выдач %d, консультаций %d", days, len(events), len(consults))
	b.send(doc)
}

func claimEvent(p *claims.Pending, at time.Time) claims.Event {
	return claims.Event{ChatID: p.ChatID, ItemKey: p.ItemKey, Handle: p.Handle, CreatedAt: at}
}

// handleAdminAction — кнопки одобрить/отклонить под заявкой. Решение
// одноразовое: повторное нажатие по уже обработанной заявке — no-op.
func (b *Bot) handleAdminAction(ctx context.Context, cb *tgbotapi.CallbackQuery, act Action) {
	if !b.isOperator(cb.From.ID) {
		lang := i18n.Default
		if u, err := b.users.Get(ctx, cb.From.ID); err == nil && u != nil {
			lang = u.Language
		}
		b.answerCallback(cb, i18n.T(lang, i18n.KeyAccessDenied))
		return
	}
	p, err := b.claims.GetPending(ctx, act.TargetChat)
	if err != nil {
		b.log.Error("get pending failed", "chat", act.TargetChat, "err", err)
		b.answerCallback(cb, "")
		return
	}
	if p == nil {
		b.answerCallback(cb, "Заявка уже обработана")
		return
	}

	u, err := b.users.Get(ctx, p.ChatID)
	if err != nil {
		b.log.Error("get user failed", "chat", p.ChatID, "err", err)
		b.answerCallback(cb, "")
		return
	}
	lang := i18n.Default
	if u != nil {
		lang = u.Language
	}

	if err := b.claims.DeletePending(ctx, p.ChatID); err != nil {
		b.log.Error("delete pending failed", "chat", p.ChatID, "err", err)
		b.answerCallback(cb, "")
		return
	}
	b.syncPendingGauge(ctx)

	switch act.Verb {
	case "approve":
		item, ok := catalog.Get(p.ItemKey)
		if ok {
			if err := b.claims.MarkClaimed(ctx, p.ChatID, p.ItemKey); err != nil {
				b.log.Error("mark claimed failed", "chat", p.ChatID, "err", err)
			}
			_ = b.claims.RecordEvent(ctx, claimEvent(p, b.now()))
			metrics.GuidesDelivered.Inc()

			loc := item.In(lang)
			m := tgbotapi.NewMessage(p.ChatID, fmt.Sprintf(i18n.T(lang, i18n.KeyApproved), loc.Title, loc.URL))
			m.ReplyMarkup = mainKeyboard(lang)
			b.send(m)
		}
		b.answerCallback(cb, "Одобрено ✅")
		b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID, cb.Message.Text+"\n\n✅ ОДОБРЕНО")

	case "reject":
		m := tgbotapi.NewMessage(p.ChatID, i18n.T(lang, i18n.KeyRejected))
		m.ReplyMarkup = mainKeyboard(lang)
		b.send(m)

		b.answerCallback(cb, "Отклонено ❌")
		b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID, cb.Message.Text+"\n\n❌ ОТКЛОНЕНО")
	}
}
