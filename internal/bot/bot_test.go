package bot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childpsy/adaptation-bot/internal/catalog"
	"github.com/childpsy/adaptation-bot/internal/dialog"
	"github.com/childpsy/adaptation-bot/internal/domain/claims"
	"github.com/childpsy/adaptation-bot/internal/domain/consultations"
	"github.com/childpsy/adaptation-bot/internal/domain/users"
	"github.com/childpsy/adaptation-bot/internal/i18n"
	"github.com/childpsy/adaptation-bot/internal/infra/metrics"
	"github.com/childpsy/adaptation-bot/internal/verify"
)

// fakeAPI пишет всё отправленное в память вместо Telegram.
type fakeAPI struct {
	sent []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.sent = append(f.sent, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdates(tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	return nil, nil
}

func (f *fakeAPI) textsTo(chatID int64) []string {
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeAPI) callbackAnswers() []string {
	var out []string
	for _, c := range f.sent {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb.Text)
		}
	}
	return out
}

func (f *fakeAPI) reset() { f.sent = nil }

const adminChatID = int64(9000)

type env struct {
	api      *fakeAPI
	bot      *Bot
	users    *users.Memory
	states   *dialog.Memory
	claims   *claims.Memory
	consults *consultations.Memory
}

func newEnv(t *testing.T, checker verify.Checker) *env {
	t.Helper()
	api := &fakeAPI{}
	us := users.NewMemory()
	st := dialog.NewMemory()
	cl := claims.NewMemory()
	cs := consultations.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := New(api, log, us, st, cl, cs, checker, adminChatID, 5)
	return &env{api: api, bot: b, users: us, states: st, claims: cl, consults: cs}
}

func textMsg(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: chatID, UserName: "olena_k", FirstName: "Olena", LastName: "K"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
}

func cmdMsg(chatID int64, cmd string) *tgbotapi.Message {
	m := textMsg(chatID, cmd)
	m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	return m
}

func callback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: chatID, UserName: "olena_k", FirstName: "Olena"},
		Message: &tgbotapi.Message{MessageID: 42, Chat: &tgbotapi.Chat{ID: chatID}, Text: "исходное"},
		Data:    data,
	}
}

func adminCallback(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: adminChatID},
		Message: &tgbotapi.Message{MessageID: 42, Chat: &tgbotapi.Chat{ID: adminChatID}, Text: "заявка"},
		Data:    data,
	}
}

func TestStartCreatesUserWithDefaultLanguage(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))

	u, err := e.users.Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, i18n.LangUA, u.Language)
	assert.Equal(t, "olena_k", u.Username)

	// повторный /start не плодит дубликаты
	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	n, err := e.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLanguagePickResetsWizard(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	require.NoError(t, e.states.Set(ctx, 100, dialog.StateConsultAge, dialog.Payload{"contact": "+380991234567"}))

	e.bot.onCallback(ctx, callback(100, "lang:ru"))

	u, err := e.users.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, i18n.LangRU, u.Language)

	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateIdle, st.State)
}

func TestClaimFlowAutoApprove(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "claim:adaptation_guide"))
	e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))

	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, dialog.StateAwaitProof, st.State)

	e.api.reset()
	e.bot.onMessage(ctx, textMsg(100, "@my.handle"))

	claimed, err := e.claims.ListClaimed(ctx, 100)
	require.NoError(t, err)
	assert.Contains(t, claimed, "adaptation_guide")

	item, _ := catalog.Get("adaptation_guide")
	texts := strings.Join(e.api.textsTo(100), "\n")
	assert.Contains(t, texts, item.In(i18n.LangUA).URL)

	u, err := e.users.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "my.handle", u.Instagram)

	st, err = e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateIdle, st.State)
}

func TestRepeatClaimResendsWithoutCheck(t *testing.T) {
	e := newEnv(t, verify.Manual{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	require.NoError(t, e.claims.MarkClaimed(ctx, 100, "adaptation_guide"))

	e.api.reset()
	e.bot.onCallback(ctx, callback(100, "claim:adaptation_guide"))

	item, _ := catalog.Get("adaptation_guide")
	texts := strings.Join(e.api.textsTo(100), "\n")
	assert.Contains(t, texts, item.In(i18n.LangUA).URL)

	// повторный клейм не заводит новой заявки на проверку
	n, err := e.claims.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestInvalidHandleKeepsAwaitProof(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))

	e.bot.onMessage(ctx, textMsg(100, "плохой хендл!"))

	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateAwaitProof, st.State)

	claimed, err := e.claims.ListClaimed(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, claimed)
}

func TestManualReviewNotifiesOperator(t *testing.T) {
	e := newEnv(t, verify.Manual{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "verify:first_days_checklist"))
	e.bot.onMessage(ctx, textMsg(100, "olena.k"))

	p, err := e.claims.GetPending(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "first_days_checklist", p.ItemKey)
	assert.Equal(t, "olena.k", p.Handle)

	adminTexts := strings.Join(e.api.textsTo(adminChatID), "\n")
	assert.Contains(t, adminTexts, "olena.k")

	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateIdle, st.State)
}

func TestAdminApproveDeliversOnce(t *testing.T) {
	e := newEnv(t, verify.Manual{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))
	e.bot.onMessage(ctx, textMsg(100, "olena.k"))

	e.api.reset()
	e.bot.onCallback(ctx, adminCallback("adm:approve:100"))

	claimed, err := e.claims.ListClaimed(ctx, 100)
	require.NoError(t, err)
	assert.Contains(t, claimed, "adaptation_guide")

	item, _ := catalog.Get("adaptation_guide")
	texts := strings.Join(e.api.textsTo(100), "\n")
	assert.Contains(t, texts, item.In(i18n.LangUA).URL)

	p, err := e.claims.GetPending(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, p)

	// повторное нажатие — уже обработано, без второй выдачи
	e.api.reset()
	e.bot.onCallback(ctx, adminCallback("adm:approve:100"))
	assert.Empty(t, e.api.textsTo(100))
	assert.Contains(t, e.api.callbackAnswers(), "Заявка уже обработана")
}

func TestAdminRejectNotifiesUser(t *testing.T) {
	e := newEnv(t, verify.Manual{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))
	e.bot.onMessage(ctx, textMsg(100, "olena.k"))

	e.api.reset()
	e.bot.onCallback(ctx, adminCallback("adm:reject:100"))

	claimed, err := e.claims.ListClaimed(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, claimed)

	texts := strings.Join(e.api.textsTo(100), "\n")
	assert.Contains(t, texts, i18n.T(i18n.LangUA, i18n.KeyRejected))
}

func TestAdminCallbackIgnoredForOutsiders(t *testing.T) {
	e := newEnv(t, verify.Manual{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))
	e.bot.onMessage(ctx, textMsg(100, "olena.k"))

	// пользователь жмёт операторскую кнопку из своего чата
	e.api.reset()
	e.bot.onCallback(ctx, callback(100, "adm:approve:100"))

	p, err := e.claims.GetPending(ctx, 100)
	require.NoError(t, err)
	assert.NotNil(t, p)

	// в ответ на колбэк уходит отказ в доступе на языке пользователя
	assert.Contains(t, e.api.callbackAnswers(), i18n.T(i18n.LangUA, i18n.KeyAccessDenied))
	assert.Empty(t, e.api.textsTo(100))
}

func TestOperatorCommandsGated(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	require.NoError(t, e.users.SetLanguage(ctx, 100, i18n.LangRU))
	e.api.reset()
	e.bot.onMessage(ctx, cmdMsg(100, "/admin"))

	// отказ выглядит как обычная подсказка про меню, на языке пользователя
	texts := strings.Join(e.api.textsTo(100), "\n")
	assert.NotContains(t, texts, "Статистика")
	assert.Contains(t, texts, i18n.T(i18n.LangRU, i18n.KeyUseMenu))

	e.bot.onMessage(ctx, cmdMsg(adminChatID, "/start"))
	e.api.reset()
	e.bot.onMessage(ctx, cmdMsg(adminChatID, "/admin"))

	adminTexts := strings.Join(e.api.textsTo(adminChatID), "\n")
	assert.Contains(t, adminTexts, "Статистика")
}

func TestConsultWizardHappyPath(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))

	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, dialog.StateConsultContact, st.State)

	// подтверждение до экрана review игнорируется
	e.bot.onCallback(ctx, callback(100, "consult:confirm"))
	n, err := e.consults.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	e.bot.onMessage(ctx, textMsg(100, "+380991234567"))
	e.bot.onMessage(ctx, textMsg(100, "6 лет"))
	e.bot.onMessage(ctx, textMsg(100, "ребёнок боится идти в школу"))

	st, err = e.states.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, dialog.StateConsultReview, st.State)

	e.api.reset()
	e.bot.onCallback(ctx, callback(100, "consult:confirm"))

	list, err := e.consults.ListCreatedAfter(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "+380991234567", list[0].Contact)
	assert.Equal(t, "6 лет", list[0].Age)
	assert.Equal(t, "ребёнок боится идти в школу", list[0].Problem)
	assert.Equal(t, int64(100), list[0].ChatID)

	st, err = e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateIdle, st.State)

	adminTexts := strings.Join(e.api.textsTo(adminChatID), "\n")
	assert.Contains(t, adminTexts, "+380991234567")
}

func TestConsultSharedContactGetsPlusPrefix(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))

	m := textMsg(100, "")
	m.Contact = &tgbotapi.Contact{PhoneNumber: "380991234567"}
	e.bot.onMessage(ctx, m)

	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, dialog.StateConsultAge, st.State)
	contact, _ := dialog.GetString(st.Payload, "contact")
	assert.Equal(t, "+380991234567", contact)
}

func TestConsultValidation(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))
	e.bot.onMessage(ctx, textMsg(100, "+380991234567"))

	// возраст длиннее 20 знаков не принимаем
	e.bot.onMessage(ctx, textMsg(100, strings.Repeat("7", 30)))
	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateConsultAge, st.State)

	e.bot.onMessage(ctx, textMsg(100, "7"))

	// запрос короче минимума не принимаем
	e.bot.onMessage(ctx, textMsg(100, "ок"))
	st, err = e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateConsultProblem, st.State)
}

func TestConsultEditRestartsFromContact(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))
	e.bot.onMessage(ctx, textMsg(100, "+380991234567"))
	e.bot.onMessage(ctx, textMsg(100, "7"))
	e.bot.onMessage(ctx, textMsg(100, "страхи перед школой"))

	e.bot.onCallback(ctx, callback(100, "consult:edit"))

	st, err := e.states.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateConsultContact, st.State)
	_, hasContact := dialog.GetString(st.Payload, "contact")
	assert.False(t, hasContact)
}

func TestCancelWorksOnEveryStep(t *testing.T) {
	steps := []struct {
		name  string
		setup func(ctx context.Context, e *env)
	}{
		{"await_proof", func(ctx context.Context, e *env) {
			e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))
		}},
		{"consult_contact", func(ctx context.Context, e *env) {
			e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))
		}},
		{"consult_age", func(ctx context.Context, e *env) {
			e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))
			e.bot.onMessage(ctx, textMsg(100, "+380991234567"))
		}},
		{"consult_problem", func(ctx context.Context, e *env) {
			e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))
			e.bot.onMessage(ctx, textMsg(100, "+380991234567"))
			e.bot.onMessage(ctx, textMsg(100, "7"))
		}},
		{"consult_review", func(ctx context.Context, e *env) {
			e.bot.onMessage(ctx, textMsg(100, i18n.BtnConsultUA))
			e.bot.onMessage(ctx, textMsg(100, "+380991234567"))
			e.bot.onMessage(ctx, textMsg(100, "7"))
			e.bot.onMessage(ctx, textMsg(100, "страхи перед школой"))
		}},
	}
	for _, tc := range steps {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t, verify.Auto{})
			ctx := context.Background()
			e.bot.onMessage(ctx, cmdMsg(100, "/start"))
			tc.setup(ctx, e)

			e.bot.onMessage(ctx, textMsg(100, i18n.BtnCancelUA))

			st, err := e.states.Get(ctx, 100)
			require.NoError(t, err)
			assert.Equal(t, dialog.StateIdle, st.State)

			n, err := e.consults.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(0), n)
		})
	}
}

func TestUnknownTextFallsBackToMenu(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.api.reset()
	e.bot.onMessage(ctx, textMsg(100, "просто текст"))

	texts := strings.Join(e.api.textsTo(100), "\n")
	assert.Contains(t, texts, i18n.T(i18n.LangUA, i18n.KeyUseMenu))
}

func TestPendingGaugeFollowsStore(t *testing.T) {
	e := newEnv(t, verify.Manual{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))
	e.bot.onMessage(ctx, textMsg(100, "olena.k"))

	// повторная заявка того же чата перезаписывает старую, не добавляет
	e.bot.onCallback(ctx, callback(100, "verify:first_days_checklist"))
	e.bot.onMessage(ctx, textMsg(100, "olena.k"))

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.PendingReviews))

	e.bot.onCallback(ctx, adminCallback("adm:reject:100"))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.PendingReviews))
}

func TestStatsSnapshot(t *testing.T) {
	e := newEnv(t, verify.Auto{})
	ctx := context.Background()

	e.bot.onMessage(ctx, cmdMsg(100, "/start"))
	e.bot.onCallback(ctx, callback(100, "verify:adaptation_guide"))
	e.bot.onMessage(ctx, textMsg(100, "olena.k"))

	s, err := e.bot.StatsSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Users)
	assert.Equal(t, int64(1), s.GuidesDelivered)
	assert.Equal(t, int64(0), s.PendingReviews)
}
