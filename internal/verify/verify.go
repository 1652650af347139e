package verify

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
)

// Checker решает судьбу заявки по введённому Instagram username:
// либо автоматический успех, либо передача на ручную проверку оператору.
// Настоящей проверки Instagram здесь нет и не будет — API закрыт.
type Checker interface {
	Check(ctx context.Context, handle string) (approved bool, err error)
}

// Auto одобряет всех.
type Auto struct{}

func (Auto) Check(context.Context, string) (bool, error) { return true, nil }

// Manual отправляет всех на ручную проверку.
type Manual struct{}

func (Manual) Check(context.Context, string) (bool, error) { return false, nil }

// Random одобряет с вероятностью PassRate, остальных — на ручную проверку.
type Random struct {
	PassRate float64
	// rnd подменяется в тестах; nil означает глобальный генератор.
	Rnd *rand.Rand
}

func (r Random) Check(context.Context, string) (bool, error) {
	f := rand.Float64
	if r.Rnd != nil {
		f = r.Rnd.Float64
	}
	return f() < r.PassRate, nil
}

// FromConfig выбирает реализацию по verify.mode. Незнакомый режим
// трактуем как ручную проверку, а не как автоодобрение.
func FromConfig(mode string, passRate float64) Checker {
	switch mode {
	case "auto":
		return Auto{}
	case "random":
		return Random{PassRate: passRate}
	default:
		return Manual{}
	}
}

var handleRe = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)

// NormalizeHandle срезает не больше одного ведущего @ и проверяет формат.
func NormalizeHandle(raw string) (string, bool) {
	h := strings.TrimSpace(raw)
	h = strings.TrimPrefix(h, "@")
	if !handleRe.MatchString(h) {
		return "", false
	}
	return h, true
}
