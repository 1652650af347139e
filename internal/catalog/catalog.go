package catalog

import "github.com/childpsy/adaptation-bot/internal/i18n"

// Category различает два раздела каталога.
type Category string

const (
	CategoryGuide     Category = "guide"
	CategoryChecklist Category = "checklist"
)

// Localized — название и описание материала на одном языке плюс ссылка
// (гайды размещены на разных доменах для разных языков).
type Localized struct {
	Title       string
	Description string
	URL         string
}

type Item struct {
	Key      string
	Category Category
	Emoji    string
	Locales  map[i18n.Lang]Localized
}

func (it Item) In(lang i18n.Lang) Localized {
	if l, ok := it.Locales[lang]; ok {
		return l
	}
	return it.Locales[i18n.Default]
}

// Каталог статический: материалы меняются релизом бота, не данными.
var items = []Item{
	{
		Key:      "adaptation_guide",
		Category: CategoryGuide,
		Emoji:    "📖",
		Locales: map[i18n.Lang]Localized{
			i18n.LangUA: {
				Title:       "Міцний зв'язок в нових обставинах",
				Description: "Покрокове керівництво з м'якої адаптації дітей до садочка або школи.",
				URL:         "https://kids-adaptation.netlify.app",
			},
			i18n.LangRU: {
				Title:       "Крепкая связь в новых обстоятельствах",
				Description: "Пошаговое руководство по мягкой адаптации детей к детскому саду или школе.",
				URL:         "https://kids-adaptation1.netlify.app",
			},
		},
	},
	{
		Key:      "first_days_checklist",
		Category: CategoryChecklist,
		Emoji:    "📋",
		Locales: map[i18n.Lang]Localized{
			i18n.LangUA: {
				Title:       "Чек-лист «Перші дні в садочку»",
				Description: "Що підготувати і як підтримати дитину в перший тиждень.",
				URL:         "https://kids-adaptation.netlify.app/checklist-first-days",
			},
			i18n.LangRU: {
				Title:       "Чек-лист «Первые дни в садике»",
				Description: "Что подготовить и как поддержать ребенка в первую неделю.",
				URL:         "https://kids-adaptation1.netlify.app/checklist-first-days",
			},
		},
	},
	{
		Key:      "school_morning_checklist",
		Category: CategoryChecklist,
		Emoji:    "🎒",
		Locales: map[i18n.Lang]Localized{
			i18n.LangUA: {
				Title:       "Чек-лист «Спокійний шкільний ранок»",
				Description: "Ранкова рутина без сліз і поспіху.",
				URL:         "https://kids-adaptation.netlify.app/checklist-morning",
			},
			i18n.LangRU: {
				Title:       "Чек-лист «Спокойное школьное утро»",
				Description: "Утренняя рутина без слез и спешки.",
				URL:         "https://kids-adaptation1.netlify.app/checklist-morning",
			},
		},
	},
}

func All() []Item { return items }

func Get(key string) (Item, bool) {
	for _, it := range items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}
