package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/childpsy/adaptation-bot/internal/i18n"
)

// Разбор callback data собран в одном месте и возвращает типизированное
// действие — роутинг не завязан на формат строки.

type ActionKind string

const (
	ActionLang    ActionKind = "lang"    // выбор языка
	ActionClaim   ActionKind = "claim"   // выбор материала из каталога
	ActionVerify  ActionKind = "verify"  // «я выполнил условия» для материала
	ActionConsult ActionKind = "consult" // confirm | edit | cancel на шаге review
	ActionAdmin   ActionKind = "adm"     // approve | reject для заявки пользователя
)

type Action struct {
	Kind       ActionKind
	Lang       i18n.Lang // ActionLang
	ItemKey    string    // ActionClaim, ActionVerify
	Verb       string    // ActionConsult, ActionAdmin
	TargetChat int64     // ActionAdmin
}

func (a Action) Encode() string {
	switch a.Kind {
	case ActionLang:
		return fmt.Sprintf("lang:%s", a.Lang)
	case ActionClaim:
		return fmt.Sprintf("claim:%s", a.ItemKey)
	case ActionVerify:
		return fmt.Sprintf("verify:%s", a.ItemKey)
	case ActionConsult:
		return fmt.Sprintf("consult:%s", a.Verb)
	case ActionAdmin:
		return fmt.Sprintf("adm:%s:%d", a.Verb, a.TargetChat)
	}
	return ""
}

func ParseAction(data string) (Action, bool) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 {
		return Action{}, false
	}
	switch ActionKind(parts[0]) {
	case ActionLang:
		l := i18n.Lang(parts[1])
		if !i18n.Valid(l) {
			return Action{}, false
		}
		return Action{Kind: ActionLang, Lang: l}, true
	case ActionClaim:
		if parts[1] == "" {
			return Action{}, false
		}
		return Action{Kind: ActionClaim, ItemKey: parts[1]}, true
	case ActionVerify:
		if parts[1] == "" {
			return Action{}, false
		}
		return Action{Kind: ActionVerify, ItemKey: parts[1]}, true
	case ActionConsult:
		switch parts[1] {
		case "confirm", "edit", "cancel":
			return Action{Kind: ActionConsult, Verb: parts[1]}, true
		}
		return Action{}, false
	case ActionAdmin:
		if len(parts) != 3 {
			return Action{}, false
		}
		if parts[1] != "approve" && parts[1] != "reject" {
			return Action{}, false
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: ActionAdmin, Verb: parts[1], TargetChat: id}, true
	}
	return Action{}, false
}
