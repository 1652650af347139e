package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/childpsy/adaptation-bot/internal/catalog"
	"github.com/childpsy/adaptation-bot/internal/i18n"
)

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇺🇦 Українська", Action{Kind: ActionLang, Lang: i18n.LangUA}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", Action{Kind: ActionLang, Lang: i18n.LangRU}.Encode()),
		),
	)
}

// mainKeyboard — нижняя панель (ReplyKeyboard) пользователя.
func mainKeyboard(lang i18n.Lang) tgbotapi.ReplyKeyboardMarkup {
	if lang == i18n.LangRU {
		return tgbotapi.ReplyKeyboardMarkup{
			ResizeKeyboard: true,
			Keyboard: [][]tgbotapi.KeyboardButton{
				{tgbotapi.NewKeyboardButton(i18n.BtnGetGuideRU)},
				{tgbotapi.NewKeyboardButton(i18n.BtnConditionsRU), tgbotapi.NewKeyboardButton(i18n.BtnLanguageRU)},
				{tgbotapi.NewKeyboardButton(i18n.BtnAboutRU), tgbotapi.NewKeyboardButton(i18n.BtnContactsRU)},
				{tgbotapi.NewKeyboardButton(i18n.BtnConsultRU)},
			},
		}
	}
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(i18n.BtnGetGuideUA)},
			{tgbotapi.NewKeyboardButton(i18n.BtnConditionsUA), tgbotapi.NewKeyboardButton(i18n.BtnLanguageUA)},
			{tgbotapi.NewKeyboardButton(i18n.BtnAboutUA), tgbotapi.NewKeyboardButton(i18n.BtnContactsUA)},
			{tgbotapi.NewKeyboardButton(i18n.BtnConsultUA)},
		},
	}
}

// claimMenuKeyboard — список материалов каталога инлайн-кнопками.
func claimMenuKeyboard(lang i18n.Lang) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, it := range catalog.All() {
		label := it.Emoji + " " + it.In(lang).Title
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, Action{Kind: ActionClaim, ItemKey: it.Key}.Encode()),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// conditionsKeyboard под текстом условий: кнопка подтверждения (если выбран
// материал) плюс ссылки на Instagram.
func conditionsKeyboard(lang i18n.Lang, itemKey string) tgbotapi.InlineKeyboardMarkup {
	doneUA, doneRU := "✅ Я виконав всі умови!", "✅ Я выполнил все условия!"
	igUA, igRU := "📱 Перейти в Instagram", "📱 Перейти в Instagram"
	reelUA, reelRU := "🎬 Перейти до Reels", "🎬 Перейти к Reels"
	done, ig, reel := doneUA, igUA, reelUA
	if lang == i18n.LangRU {
		done, ig, reel = doneRU, igRU, reelRU
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	if itemKey != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(done, Action{Kind: ActionVerify, ItemKey: itemKey}.Encode()),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(ig, i18n.InstagramProfile)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(reel, i18n.InstagramPost)),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// consultContactKeyboard — шаг контакта: нативная кнопка «поделиться
// контактом» плюс отмена.
func consultContactKeyboard(lang i18n.Lang) tgbotapi.ReplyKeyboardMarkup {
	share, cancel := "📱 Поділитися контактом", i18n.BtnCancelUA
	if lang == i18n.LangRU {
		share, cancel = "📱 Поделиться контактом", i18n.BtnCancelRU
	}
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButtonContact(share)},
			{tgbotapi.NewKeyboardButton(cancel)},
		},
	}
}

func cancelKeyboard(lang i18n.Lang) tgbotapi.ReplyKeyboardMarkup {
	cancel := i18n.BtnCancelUA
	if lang == i18n.LangRU {
		cancel = i18n.BtnCancelRU
	}
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(cancel)},
		},
	}
}

// reviewKeyboard — три действия на шаге проверки заявки.
func reviewKeyboard(lang i18n.Lang) tgbotapi.InlineKeyboardMarkup {
	confirm, edit, cancel := "✅ Підтвердити", "✏️ Змінити", "✖️ Скасувати"
	if lang == i18n.LangRU {
		confirm, edit, cancel = "✅ Подтвердить", "✏️ Изменить", "✖️ Отменить"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(confirm, Action{Kind: ActionConsult, Verb: "confirm"}.Encode()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(edit, Action{Kind: ActionConsult, Verb: "edit"}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData(cancel, Action{Kind: ActionConsult, Verb: "cancel"}.Encode()),
		),
	)
}

// adminReviewKeyboard — одобрить/отклонить заявку конкретного пользователя.
func adminReviewKeyboard(targetChat int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Одобрить", Action{Kind: ActionAdmin, Verb: "approve", TargetChat: targetChat}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", Action{Kind: ActionAdmin, Verb: "reject", TargetChat: targetChat}.Encode()),
		),
	)
}
