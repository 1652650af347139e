package i18n

// Lang — язык интерфейса пользователя. Новые пользователи создаются с LangUA.
type Lang string

const (
	LangUA Lang = "ua"
	LangRU Lang = "ru"
)

const Default = LangUA

func Valid(l Lang) bool { return l == LangUA || l == LangRU }

// Key — идентификатор сообщения в каталоге текстов.
type Key string

const (
	KeyWelcome         Key = "welcome"
	KeyConditions      Key = "conditions"
	KeyEnterUsername   Key = "enter_username"
	KeyChecking        Key = "checking"
	KeySuccess         Key = "success" // fmt: item title, URL
	KeyManualReview    Key = "manual_review"
	KeyApproved        Key = "approved" // fmt: item title, URL
	KeyRejected        Key = "rejected"
	KeyInvalidUsername Key = "invalid_username"
	KeyAbout           Key = "about"
	KeyContacts        Key = "contacts"
	KeyLangChanged     Key = "lang_changed"
	KeyUseMenu         Key = "use_menu"
	KeyCancelled       Key = "cancelled"
	KeyAccessDenied    Key = "access_denied"

	KeyConsultStart      Key = "consult_start"
	KeyConsultAge        Key = "consult_age"
	KeyConsultProblem    Key = "consult_problem"
	KeyConsultReview     Key = "consult_review" // fmt: contact, age, problem
	KeyConsultDone       Key = "consult_done"
	KeyConsultUseButtons Key = "consult_use_buttons"
	KeyEmptyInput        Key = "empty_input"
	KeyAgeTooLong        Key = "age_too_long"
	KeyProblemTooShort   Key = "problem_too_short"
)

// Кнопки главного меню и мастеров. Совпадение по тексту — это и есть
// словарь меню, поэтому константы, а не произвольные строки.
const (
	BtnGetGuideUA   = "📖 Отримати матеріали"
	BtnGetGuideRU   = "📖 Получить материалы"
	BtnConditionsUA = "📋 Умови отримання"
	BtnConditionsRU = "📋 Условия получения"
	BtnLanguageUA   = "🔄 Змінити мову"
	BtnLanguageRU   = "🔄 Сменить язык"
	BtnAboutUA      = "👩‍⚕️ Про психолога"
	BtnAboutRU      = "👩‍⚕️ О психологе"
	BtnContactsUA   = "📞 Контакти"
	BtnContactsRU   = "📞 Контакты"
	BtnConsultUA    = "🗓 Записатися на консультацію"
	BtnConsultRU    = "🗓 Записаться на консультацию"
	BtnCancelUA     = "✖️ Скасувати"
	BtnCancelRU     = "✖️ Отмена"
)

const (
	InstagramProfile = "https://www.instagram.com/childpsy_khatsevych"
	InstagramPost    = "https://www.instagram.com/reel/DNYrXLyo4XU/?igsh=MWNrcTYzMXdybWNtbw=="
	RequiredUsername = "childpsy_khatsevych"
)

var messages = map[Lang]map[Key]string{
	LangUA: {
		KeyWelcome: `Привіт! 👋
Вітаю тебе у моєму боті «М'яка адаптація до садочку та школи» 🌿

Тут ти отримаєш мої гайди та чек-листи для батьків, які допоможуть дитині легко адаптуватися до садочку чи школи.

Щоб отримати доступ до матеріалів, виконай прості кроки 👇`,
		KeyConditions: `✅ Підпишись на мій Instagram-профіль: @` + RequiredUsername + `
✅ Залиши лайк ❤️ під Reels з анонсом
✅ Напиши у коментарях до цього Reels: «Хочу Гайд»

Після виконання умов обери матеріал у боті, і я надішлю тобі посилання 📩`,
		KeyEnterUsername: `Відмінно! 🎉
Тепер введи свій Instagram username (без @), щоб я могла перевірити виконання умов.

Наприклад: username_example`,
		KeyChecking: `Перевіряю твій профіль... ⏳
Це може зайняти кілька секунд.`,
		KeySuccess: `Вітаю! 🎉
Ви виконали всі умови та тепер можете отримати «%s».

📥 Ось ваше посилання: %s

Нехай цей матеріал допоможе зробити адаптацію вашої дитини м'якою, спокійною та успішною 💛`,
		KeyManualReview: `Дякую за інтерес! 📋

Ваша заявка відправлена на ручну перевірку. Це може зайняти від кількох хвилин до кількох годин.

Я сповіщу вас, як тільки перевірка буде завершена! 🔔`,
		KeyApproved: `Чудово! ✅
Ваша заявка схвалена!

📥 Ось «%s»: %s

Дякую за підписку та активність! 💛`,
		KeyRejected: `На жаль, умови не виконані повністю 😔

Будь ласка, переконайтесь що ви:
✅ Підписались на @` + RequiredUsername + `
✅ Поставили лайк під Reels
✅ Написали коментар "Хочу Гайд"

Після виконання спробуйте ще раз!`,
		KeyInvalidUsername: `Неправильний формат username 😅

Введіть тільки ім'я користувача без @ та спецсимволів.
Наприклад: username_example`,
		KeyAbout: `👩‍⚕️ Про мене:

Мене звати Юлія Хацевич. Я — дитячий та юнацький психотерапевт в навчанні, психолог і нейрокорекційний спеціаліст.

Я працюю з дітьми, підлітками та батьками, які стикаються з тривогою, агресією, емоційними зривами, труднощами в адаптації, навчанні, самооцінці чи поведінці.

💛 Моя мета — не «виправити» дитину, а допомогти їй зростати, розуміти себе і мати ресурс бути собою.

✅ 1500+ консультацій: індивідуальна робота, групи, підтримка батьків
📍 Працюю онлайн з родинами по всьому світу
📍 Мови роботи: українська, російська, англійська`,
		KeyContacts: `📞 Мої контакти:

Instagram: @` + RequiredUsername + `
` + InstagramProfile + `

Для консультацій та питань звертайтесь у Direct Instagram або до цього бота.

Буду рада допомогти вашій родині! 🌿`,
		KeyLangChanged:  `Мова змінена на українську 🇺🇦`,
		KeyUseMenu:      `Використовуйте кнопки меню для навігації 😊`,
		KeyCancelled:    `Добре, скасовано. Повертаємось у головне меню.`,
		KeyAccessDenied: `Доступ заборонено`,

		KeyConsultStart: `Запис на консультацію 🗓

Крок 1 з 3. Поділіться контактом кнопкою нижче або напишіть телефон чи нікнейм для зв'язку.`,
		KeyConsultAge:     `Крок 2 з 3. Скільки років дитині?`,
		KeyConsultProblem: `Крок 3 з 3. Опишіть коротко, з чим хочете звернутися.`,
		KeyConsultReview: `Перевірте заявку:

📞 Контакт: %s
🎂 Вік: %s
📝 Запит: %s

Все вірно?`,
		KeyConsultDone: `Дякую! 💛 Заявку прийнято, я зв'яжусь з вами найближчим часом.`,
		KeyConsultUseButtons: `Скористайтесь, будь ласка, кнопками під заявкою: підтвердити, змінити або скасувати.`,
		KeyEmptyInput:        `Повідомлення виглядає порожнім. Спробуйте ще раз.`,
		KeyAgeTooLong:        `Занадто довго для віку. Напишіть коротше, наприклад: 5 або 6 років.`,
		KeyProblemTooShort:   `Опишіть, будь ласка, трохи докладніше.`,
	},

	LangRU: {
		KeyWelcome: `Привет! 👋
Добро пожаловать в мой бот «Мягкая адаптация к садику и школе» 🌿

Здесь ты получишь мои гайды и чек-листы для родителей, которые помогут ребенку легко адаптироваться к садику или школе.

Чтобы получить доступ к материалам, выполни простые шаги 👇`,
		KeyConditions: `✅ Подпишись на мой Instagram-профиль: @` + RequiredUsername + `
✅ Поставь лайк ❤️ под Reels с анонсом
✅ Напиши в комментариях к этому Reels: «Хочу Гайд»

После выполнения условий выбери материал в боте, и я отправлю тебе ссылку 📩`,
		KeyEnterUsername: `Отлично! 🎉
Теперь введи свой Instagram username (без @), чтобы я могла проверить выполнение условий.

Например: username_example`,
		KeyChecking: `Проверяю твой профиль... ⏳
Это может занять несколько секунд.`,
		KeySuccess: `Поздравляю! 🎉
Вы выполнили все условия и теперь можете получить «%s».

📥 Вот ваша ссылка: %s

Пусть этот материал поможет сделать адаптацию вашего ребенка мягкой, спокойной и успешной 💛`,
		KeyManualReview: `Спасибо за интерес! 📋

Ваша заявка отправлена на ручную проверку. Это может занять от нескольких минут до нескольких часов.

Я уведомлю вас, как только проверка будет завершена! 🔔`,
		KeyApproved: `Отлично! ✅
Ваша заявка одобрена!

📥 Вот «%s»: %s

Спасибо за подписку и активность! 💛`,
		KeyRejected: `К сожалению, условия выполнены не полностью 😔

Пожалуйста, убедитесь что вы:
✅ Подписались на @` + RequiredUsername + `
✅ Поставили лайк под Reels
✅ Написали комментарий "Хочу Гайд"

После выполнения попробуйте еще раз!`,
		KeyInvalidUsername: `Неправильный формат username 😅

Введите только имя пользователя без @ и спецсимволов.
Например: username_example`,
		KeyAbout: `👩‍⚕️ Обо мне:

Меня зовут Юлия Хацевич. Я — детский и юношеский психотерапевт в обучении, психолог и нейрокоррекционный специалист.

Я работаю с детьми, подростками и родителями, которые сталкиваются с тревогой, агрессией, эмоциональными срывами, трудностями в адаптации, обучении, самооценке или поведении.

💛 Моя цель — не «исправить» ребенка, а помочь ему расти, понимать себя и иметь ресурс быть собой.

✅ 1500+ консультаций: индивидуальная работа, группы, поддержка родителей
📍 Работаю онлайн с семьями по всему миру
📍 Языки работы: украинский, русский, английский`,
		KeyContacts: `📞 Мои контакты:

Instagram: @` + RequiredUsername + `
` + InstagramProfile + `

Для консультаций и вопросов обращайтесь в Direct Instagram или в этот бот.

Буду рада помочь вашей семье! 🌿`,
		KeyLangChanged:  `Язык изменен на русский 🇷🇺`,
		KeyUseMenu:      `Используйте кнопки меню для навигации 😊`,
		KeyCancelled:    `Хорошо, отменено. Возвращаемся в главное меню.`,
		KeyAccessDenied: `Доступ запрещен`,

		KeyConsultStart: `Запись на консультацию 🗓

Шаг 1 из 3. Поделитесь контактом кнопкой ниже или напишите телефон или никнейм для связи.`,
		KeyConsultAge:     `Шаг 2 из 3. Сколько лет ребенку?`,
		KeyConsultProblem: `Шаг 3 из 3. Опишите коротко, с чем хотите обратиться.`,
		KeyConsultReview: `Проверьте заявку:

📞 Контакт: %s
🎂 Возраст: %s
📝 Запрос: %s

Все верно?`,
		KeyConsultDone: `Спасибо! 💛 Заявка принята, я свяжусь с вами в ближайшее время.`,
		KeyConsultUseButtons: `Пожалуйста, используйте кнопки под заявкой: подтвердить, изменить или отменить.`,
		KeyEmptyInput:        `Сообщение выглядит пустым. Попробуйте еще раз.`,
		KeyAgeTooLong:        `Слишком длинно для возраста. Напишите короче, например: 5 или 6 лет.`,
		KeyProblemTooShort:   `Опишите, пожалуйста, немного подробнее.`,
	},
}

// T возвращает текст по ключу для выбранного языка. Неизвестный язык
// откатывается на язык по умолчанию, неизвестный ключ — на пустую строку.
func T(lang Lang, key Key) string {
	if !Valid(lang) {
		lang = Default
	}
	return messages[lang][key]
}

// IsCancel — глобальное слово отмены, распознаётся на любом шаге мастера.
func IsCancel(text string) bool {
	return text == BtnCancelUA || text == BtnCancelRU
}
