package dialog

import (
	"context"
	"time"
)

// State — текущий шаг мастера для одного чата. Одно поле состояния,
// поэтому два мастера одновременно активны быть не могут.
type State string

const (
	StateIdle State = "idle"

	// Выдача материала: ждём Instagram username (payload: item_key)
	StateAwaitProof State = "await_proof"

	// Запись на консультацию: contact -> age -> problem -> review
	StateConsultContact State = "consult_contact"
	StateConsultAge     State = "consult_age"
	StateConsultProblem State = "consult_problem"
	StateConsultReview  State = "consult_review"
)

// InConsult — шаг принадлежит мастеру записи на консультацию.
func (s State) InConsult() bool {
	switch s {
	case StateConsultContact, StateConsultAge, StateConsultProblem, StateConsultReview:
		return true
	}
	return false
}

// Active — любой мастер в процессе.
func (s State) Active() bool { return s != StateIdle && s != "" }

type Payload map[string]any

type Item struct {
	ChatID    int64
	State     State
	Payload   Payload
	UpdatedAt time.Time
}

// Store — хранилище состояний диалогов. Постоянная реализация — Postgres,
// in-memory — для dev-режима и тестов.
type Store interface {
	Get(ctx context.Context, chatID int64) (*Item, error)
	Set(ctx context.Context, chatID int64, state State, payload Payload) error
	Reset(ctx context.Context, chatID int64) error
	// ResetStale сбрасывает мастера, брошенные дольше ttl назад.
	ResetStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// GetString — безопасное чтение строки из payload.
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
